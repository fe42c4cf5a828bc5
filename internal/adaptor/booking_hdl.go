package adaptor

import (
	"encoding/json"
	"net/http"

	"ticket-booking/internal/dto/request"
	"ticket-booking/internal/dto/response"
	"ticket-booking/internal/usecase"
	"ticket-booking/pkg/utils"

	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.RequestBooking(r.Context(), req.MovieID, *req.Row, *req.Col)
	if err != nil {
		writeServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", response.BookingToResponse(booking))
}

// ProcessBooking handles POST /api/bookings/process
func (h *BookingHandler) ProcessBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.ProcessNext(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "process booking")
		return
	}

	utils.ResponseSuccess(w, "success", response.BookingToResponse(booking))
}

// GetQueue handles GET /api/bookings/queue
func (h *BookingHandler) GetQueue(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", response.QueueResponse{Pending: h.service.QueueDepth()})
}

// GetSeating handles GET /api/seating
func (h *BookingHandler) GetSeating(w http.ResponseWriter, r *http.Request) {
	grid := h.service.CachedSeating(r.Context())
	utils.ResponseSuccess(w, "success", response.SeatingToResponse(grid))
}
