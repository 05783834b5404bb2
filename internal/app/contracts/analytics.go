package contracts

import (
	"context"
	"mediport-service/internal/pkg/dto/responses"
	"time"
)

type AnalyticsRepository interface {
	// An empty doctorID means no doctor filter (admin-wide view).
	CountAppointmentsByStatus(ctx context.Context, doctorID string, from, to time.Time) (map[string]int, error)
	CountAppointmentsByPriority(ctx context.Context, doctorID string, from, to time.Time) (map[string]int, error)
	DailyTrends(ctx context.Context, doctorID string, from, to time.Time) ([]responses.DailyTrend, error)
	TopDoctors(ctx context.Context, from, to time.Time, limit int) ([]responses.TopDoctor, error)
	CountNewPatients(ctx context.Context, from, to time.Time) (int, error)
}

type AnalyticsUsecase interface {
	Dashboard(ctx context.Context, sessionData string, days int) (*responses.AnalyticsDashboard, error)
}
