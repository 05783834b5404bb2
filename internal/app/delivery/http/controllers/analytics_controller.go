package controllers

import (
	"context"
	"mediport-service/internal/app/contracts"
	"mediport-service/internal/pkg/constvars"
	"mediport-service/internal/pkg/exceptions"
	"mediport-service/internal/pkg/utils"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type AnalyticsController struct {
	Log              *zap.Logger
	AnalyticsUsecase contracts.AnalyticsUsecase
}

func NewAnalyticsController(logger *zap.Logger, analyticsUsecase contracts.AnalyticsUsecase) *AnalyticsController {
	return &AnalyticsController{
		Log:              logger,
		AnalyticsUsecase: analyticsUsecase,
	}
}

func (ctrl *AnalyticsController) Dashboard(w http.ResponseWriter, r *http.Request) {
	// Get session
	sessionData := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(string)
	params := utils.BuildQueryParamsRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	response, err := ctrl.AnalyticsUsecase.Dashboard(ctx, sessionData, params.Days)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Send response
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAnalyticsSuccessMessage, response)
}
