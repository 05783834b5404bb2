package analytics

import (
	"context"
	"mediport-service/internal/app/config"
	"mediport-service/internal/app/contracts"
	"mediport-service/internal/pkg/constvars"
	"mediport-service/internal/pkg/dto/responses"
	"mediport-service/internal/pkg/exceptions"
	"sync"
	"time"

	"go.uber.org/zap"
)

const topDoctorsLimit = 5

type analyticsUsecase struct {
	AnalyticsRepository contracts.AnalyticsRepository
	SessionService      contracts.SessionService
	InternalConfig      *config.InternalConfig
	Location            *time.Location
	Log                 *zap.Logger
}

var (
	analyticsUsecaseInstance contracts.AnalyticsUsecase
	onceAnalyticsUsecase     sync.Once
)

func NewAnalyticsUsecase(
	analyticsRepository contracts.AnalyticsRepository,
	sessionService contracts.SessionService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AnalyticsUsecase {
	onceAnalyticsUsecase.Do(func() {
		location, err := time.LoadLocation(internalConfig.App.Timezone)
		if err != nil {
			location = time.UTC
		}
		instance := &analyticsUsecase{
			AnalyticsRepository: analyticsRepository,
			SessionService:      sessionService,
			InternalConfig:      internalConfig,
			Location:            location,
			Log:                 logger,
		}
		analyticsUsecaseInstance = instance
	})
	return analyticsUsecaseInstance
}

func (uc *analyticsUsecase) Dashboard(ctx context.Context, sessionData string, days int) (*responses.AnalyticsDashboard, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("analyticsUsecase.Dashboard called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("days", days),
	)

	session, err := uc.SessionService.ParseSession(sessionData)
	if err != nil {
		return nil, err
	}
	if !session.IsAdmin() && !session.IsDoctor() {
		return nil, exceptions.ErrPermissionDenied(nil)
	}
	// Doctors see their own practice; admins see the whole portal.
	doctorID := ""
	if session.IsDoctor() {
		doctorID = session.DoctorID
	}

	if days <= 0 {
		days = 30
	}
	if days > 365 {
		days = 365
	}

	now := time.Now().In(uc.Location)
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.Location)
	from := to.AddDate(0, 0, -days+1)

	statusCounts, err := uc.AnalyticsRepository.CountAppointmentsByStatus(ctx, doctorID, from, to)
	if err != nil {
		return nil, err
	}
	priorityCounts, err := uc.AnalyticsRepository.CountAppointmentsByPriority(ctx, doctorID, from, to)
	if err != nil {
		return nil, err
	}
	trends, err := uc.AnalyticsRepository.DailyTrends(ctx, doctorID, from, to)
	if err != nil {
		return nil, err
	}

	var topDoctors []responses.TopDoctor
	newPatients := 0
	if session.IsAdmin() {
		topDoctors, err = uc.AnalyticsRepository.TopDoctors(ctx, from, to, topDoctorsLimit)
		if err != nil {
			return nil, err
		}
		newPatients, err = uc.AnalyticsRepository.CountNewPatients(ctx, from, to.Add(24*time.Hour))
		if err != nil {
			return nil, err
		}
	}

	total := 0
	for _, count := range statusCounts {
		total += count
	}
	completed := statusCounts[constvars.AppointmentStatusCompleted]
	cancelled := statusCounts[constvars.AppointmentStatusCancelled]
	successRate := 0.0
	if total > 0 {
		successRate = float64(completed) / float64(total) * 100
	}

	return &responses.AnalyticsDashboard{
		Period: responses.AnalyticsPeriod{
			StartDate: from.Format(constvars.DateLayout),
			EndDate:   to.Format(constvars.DateLayout),
			Days:      days,
		},
		Overview: responses.AnalyticsOverview{
			TotalAppointments:     total,
			SuccessRate:           successRate,
			CompletedAppointments: completed,
			CancelledAppointments: cancelled,
			NewPatients:           newPatients,
		},
		StatusDistribution:   statusCounts,
		PriorityDistribution: priorityCounts,
		DailyTrends:          trends,
		TopDoctors:           topDoctors,
	}, nil
}
