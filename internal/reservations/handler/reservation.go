package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"goodfoods/internal/reservations/service"
	apperrors "goodfoods/pkg/errors"
	httputil "goodfoods/pkg/http"
	"goodfoods/pkg/logger"
	"goodfoods/pkg/model"
)

// ReservationHandler exposes the booking operations over REST. Dates travel
// in the DD.MM.YYYY wire format everywhere, including path segments.
type ReservationHandler struct {
	service *service.ReservationService
	log     *logger.Logger
}

func NewReservationHandler(svc *service.ReservationService, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: svc,
		log:     log,
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/reservations", h.Create)
	router.GET("/api/v1/reservations/:date/:id", h.GetByID)
	router.PUT("/api/v1/reservations/:date/:id", h.Modify)
	router.DELETE("/api/v1/reservations/:date/:id", h.Cancel)
	router.POST("/api/v1/reservations/search", h.Search)
	router.GET("/api/v1/restaurants/availability", h.Availability)
	router.GET("/api/v1/slots", h.Slots)
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	booking, err := h.service.Book(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, booking)
}

func (h *ReservationHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.BookingDetails(r.Context(), ps.ByName("date"), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, booking)
}

func (h *ReservationHandler) Modify(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req model.BookingRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	booking, err := h.service.Modify(r.Context(), ps.ByName("date"), ps.ByName("id"), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, booking)
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.Cancel(r.Context(), ps.ByName("date"), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, booking)
}

type searchRequest struct {
	Date          string `json:"date"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

func (h *ReservationHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req searchRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	bookings, err := h.service.FindBookings(r.Context(), req.Date, model.CustomerIdentity{
		Name:  req.CustomerName,
		Email: req.CustomerEmail,
		Phone: req.CustomerPhone,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, bookings)
}

func (h *ReservationHandler) Availability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	partySize, err := strconv.Atoi(query.Get("party_size"))
	if err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("invalid party_size parameter: "+query.Get("party_size")))
		return
	}

	restaurants, err := h.service.AvailableRestaurants(r.Context(), query.Get("date"), query.Get("time_slot"), partySize)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, restaurants)
}

func (h *ReservationHandler) Slots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	slots, note, err := h.service.BookableSlots(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, httputil.SuccessResponse{Data: slots, Note: note}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Slots", "error", err)
	}
}
