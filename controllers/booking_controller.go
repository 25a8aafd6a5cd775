package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"wellness-backend/services"
	"wellness-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BookingController struct {
	BookingSvc *services.BookingService
	StatusSvc  *services.StatusService
}

func NewBookingController(bookingSvc *services.BookingService, statusSvc *services.StatusService) *BookingController {
	return &BookingController{BookingSvc: bookingSvc, StatusSvc: statusSvc}
}

type UpdateStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// actorID reads the authenticated user's id from the X-Actor-ID header.
// The gateway that authenticates requests sets it; core calls take it as
// an explicit parameter, never from ambient state.
func actorID(c *gin.Context) *uint {
	raw := strings.TrimSpace(c.GetHeader("X-Actor-ID"))
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil
	}
	v := uint(id)
	return &v
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// CreateBooking is the submission entry point. Every failure response
// still carries a download URL for the audit export of the attempt.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var payload services.BookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := bc.BookingSvc.Submit(payload, actorID(c))
	if err != nil {
		var failure *services.SubmissionFailure
		if errors.As(err, &failure) {
			status := http.StatusInternalServerError
			if failure.Stage == services.FailureStagePrecondition {
				status = http.StatusUnprocessableEntity
			}
			exportURL := ""
			if failure.ExportPath != "" {
				exportURL = "/exports/" + failure.ExportPath
			}
			utils.JSONFailureWithExport(c, status, failure.Reason, exportURL)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, result)
}

// UpdateBookingStatus applies a guarded status transition.
func (bc *BookingController) UpdateBookingStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	var payload UpdateStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "status is required")
		return
	}
	target := strings.ToLower(strings.TrimSpace(payload.Status))
	if !services.KnownBookingStatus(target) {
		utils.JSONError(c, http.StatusBadRequest, "unknown booking status: "+payload.Status)
		return
	}

	booking, err := bc.StatusSvc.Transition(id, target, actorID(c))
	if err != nil {
		var invalid *services.InvalidTransitionError
		switch {
		case errors.As(err, &invalid):
			utils.JSONError(c, http.StatusConflict, invalid.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.JSONError(c, http.StatusNotFound, "booking not found")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to update booking status")
		}
		return
	}

	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (bc *BookingController) GetBookings(c *gin.Context) {
	companyID := queryUint(c, "company_id")
	officeID := queryUint(c, "office_id")
	status := strings.TrimSpace(c.Query("status"))

	list, err := bc.BookingSvc.List(companyID, officeID, status)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (bc *BookingController) GetBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	booking, err := bc.BookingSvc.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load booking")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// DeleteBooking hard-deletes a booking and its applicant details.
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	if err := bc.BookingSvc.HardDelete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete booking")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

func queryUint(c *gin.Context, key string) uint {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}
