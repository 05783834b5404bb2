package controllers

import (
	"context"
	"encoding/csv"
	"fmt"
	"mediport-service/internal/app/contracts"
	"mediport-service/internal/pkg/constvars"
	"mediport-service/internal/pkg/dto/requests"
	"mediport-service/internal/pkg/dto/responses"
	"mediport-service/internal/pkg/exceptions"
	"mediport-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type AppointmentController struct {
	Log                *zap.Logger
	AppointmentUsecase contracts.AppointmentUsecase
}

func NewAppointmentController(logger *zap.Logger, appointmentUsecase contracts.AppointmentUsecase) *AppointmentController {
	return &AppointmentController{
		Log:                logger,
		AppointmentUsecase: appointmentUsecase,
	}
}

func (ctrl *AppointmentController) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	// Get session
	sessionData := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(string)

	// Bind body to request
	request := new(requests.CreateAppointmentRequest)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	// Sanitize request
	utils.SanitizeCreateAppointmentRequest(request)

	// Validate request
	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	// Send it to be processed by usecase
	response, err := ctrl.AppointmentUsecase.CreateAppointment(ctx, sessionData, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Send response
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateAppointmentSuccess, response)
}

func (ctrl *AppointmentController) FindAll(w http.ResponseWriter, r *http.Request) {
	// Get session
	sessionData := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(string)
	params := utils.BuildQueryParamsRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, pagination, err := ctrl.AppointmentUsecase.FindAll(ctx, sessionData, params)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Send response
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.GetAppointmentSuccessMessage, pagination, response)
}

func (ctrl *AppointmentController) FindUpcoming(w http.ResponseWriter, r *http.Request) {
	// Get session
	sessionData := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(string)
	params := utils.BuildQueryParamsRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.FindUpcoming(ctx, sessionData, params)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Send response
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentSuccessMessage, response)
}

func (ctrl *AppointmentController) FindByID(w http.ResponseWriter, r *http.Request) {
	appointmentID := chi.URLParam(r, "appointmentID")
	if appointmentID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "appointmentID"))
		return
	}

	// Get session
	sessionData := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(string)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.FindByID(ctx, sessionData, appointmentID)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Send response
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentSuccessMessage, response)
}

func (ctrl *AppointmentController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	appointmentID := chi.URLParam(r, "appointmentID")
	if appointmentID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "appointmentID"))
		return
	}

	// Get session
	sessionData := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(string)

	// Bind body to request
	request := new(requests.UpdateAppointmentStatusRequest)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	// Validate request
	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.UpdateStatus(ctx, sessionData, appointmentID, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Send response
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateStatusSuccessMessage, response)
}

func (ctrl *AppointmentController) Reschedule(w http.ResponseWriter, r *http.Request) {
	appointmentID := chi.URLParam(r, "appointmentID")
	if appointmentID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "appointmentID"))
		return
	}

	// Get session
	sessionData := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(string)

	// Bind body to request
	request := new(requests.RescheduleAppointmentRequest)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	// Validate request
	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.Reschedule(ctx, sessionData, appointmentID, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Send response
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RescheduleSuccessMessage, response)
}

func (ctrl *AppointmentController) BulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	// Get session
	sessionData := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(string)

	// Bind body to request
	request := new(requests.BulkUpdateStatusRequest)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	// Validate request
	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.BulkUpdateStatus(ctx, sessionData, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Send response
	utils.BuildSuccessResponse(w, constvars.StatusOK, fmt.Sprintf(constvars.BulkUpdateSuccessMessage, response.UpdatedCount), response)
}

// Export streams the caller's appointments as a CSV or JSON attachment
// instead of the usual response envelope.
func (ctrl *AppointmentController) Export(w http.ResponseWriter, r *http.Request) {
	// Get session
	sessionData := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(string)
	params := utils.BuildQueryParamsRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	appointments, err := ctrl.AppointmentUsecase.Export(ctx, sessionData, params)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	if params.Format == "json" {
		records := make([]responses.Appointment, 0, len(appointments))
		for _, appointment := range appointments {
			records = append(records, responses.Appointment{
				ID:                   appointment.ID,
				DoctorID:             appointment.DoctorID,
				DoctorName:           appointment.DoctorName,
				DoctorSpecialization: appointment.DoctorSpecialization,
				PatientName:          appointment.PatientName,
				AppointmentDate:      appointment.AppointmentDate.Format(constvars.DateLayout),
				AppointmentTime:      appointment.AppointmentTime,
				Status:               appointment.Status,
				Priority:             appointment.Priority,
				Reason:               appointment.Reason,
				CreatedAt:            appointment.CreatedAt,
			})
		}
		filename := fmt.Sprintf("appointments_%s.json", time.Now().Format(constvars.ExportFilenameTimeLayout))
		w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
		w.Header().Set(constvars.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
		if err := json.NewEncoder(w).Encode(records); err != nil {
			ctrl.Log.Error("AppointmentController.Export write failed", zap.Error(err))
		}
		return
	}

	filename := fmt.Sprintf("appointments_%s.csv", time.Now().Format(constvars.ExportFilenameTimeLayout))
	w.Header().Set(constvars.HeaderContentType, constvars.MIMETextCSV)
	w.Header().Set(constvars.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))

	writer := csv.NewWriter(w)
	defer writer.Flush()

	_ = writer.Write([]string{"id", "patient", "doctor", "specialization", "date", "time", "status", "priority", "reason"})
	for _, appointment := range appointments {
		record := []string{
			appointment.ID,
			appointment.PatientName,
			appointment.DoctorName,
			appointment.DoctorSpecialization,
			appointment.AppointmentDate.Format(constvars.DateLayout),
			appointment.AppointmentTime,
			appointment.Status,
			appointment.Priority,
			appointment.Reason,
		}
		if err := writer.Write(record); err != nil {
			ctrl.Log.Error("AppointmentController.Export write failed", zap.Error(err))
			return
		}
	}
}

func (ctrl *AppointmentController) CalendarEvents(w http.ResponseWriter, r *http.Request) {
	// Get session
	sessionData := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(string)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.CalendarEvents(ctx, sessionData)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Send response
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetCalendarSuccessMessage, response)
}
