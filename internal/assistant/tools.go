// Package assistant exposes the reservation operations as a tool registry
// for an LLM planner. The planner picks a tool by name and supplies raw JSON
// arguments; the dispatcher validates them, calls the reservation service,
// and returns a tagged result the planner can feed back into the
// conversation. Bad tool names and malformed arguments come back as error
// results, never as panics.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"goodfoods/internal/reservations/service"
	apperrors "goodfoods/pkg/errors"
	"goodfoods/pkg/logger"
	"goodfoods/pkg/model"
)

const (
	ToolAvailableRestaurants = "get_available_restaurants"
	ToolBookTable            = "book_table"
	ToolBookingDetails       = "get_booking_details"
	ToolFindBookings         = "find_bookings"
	ToolBookableSlots        = "get_bookable_slots"
	ToolCancelBooking        = "cancel_booking"
	ToolModifyBooking        = "modify_booking"
)

const (
	StatusOK        = "ok"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusError     = "error"
)

// Property describes one tool parameter in the JSON-schema subset the
// chat-completion APIs accept.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

type Parameters struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required"`
}

type Definition struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Parameters  Parameters `json:"parameters"`
}

// Result is what a tool call produces. Payload carries structured data on
// success; Message carries the human-readable error otherwise.
type Result struct {
	Status  string         `json:"status"`
	Payload any            `json:"payload,omitempty"`
	Message string         `json:"message,omitempty"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

type toolFunc func(ctx context.Context, args json.RawMessage) Result

// Registry maps tool names to reservation operations.
type Registry struct {
	service *service.ReservationService
	log     *logger.Logger
	tools   map[string]toolFunc
}

func NewRegistry(svc *service.ReservationService, log *logger.Logger) *Registry {
	r := &Registry{service: svc, log: log}
	r.tools = map[string]toolFunc{
		ToolAvailableRestaurants: r.availableRestaurants,
		ToolBookTable:            r.bookTable,
		ToolBookingDetails:       r.bookingDetails,
		ToolFindBookings:         r.findBookings,
		ToolBookableSlots:        r.bookableSlots,
		ToolCancelBooking:        r.cancelBooking,
		ToolModifyBooking:        r.modifyBooking,
	}
	return r
}

// Dispatch looks up the named tool and runs it with the raw JSON arguments.
func (r *Registry) Dispatch(ctx context.Context, name string, args json.RawMessage) Result {
	tool, ok := r.tools[name]
	if !ok {
		r.log.Warn("Planner requested unknown tool", "tool", name)
		return Result{Status: StatusError, Message: fmt.Sprintf("Unknown tool: %s", name)}
	}

	r.log.Debug("Dispatching tool call", "tool", name)
	return tool(ctx, args)
}

type availabilityArgs struct {
	Date      string `json:"date"`
	TimeSlot  string `json:"time_slot"`
	PartySize int    `json:"party_size"`
}

func (r *Registry) availableRestaurants(ctx context.Context, raw json.RawMessage) Result {
	var args availabilityArgs
	if res, ok := r.decode(raw, &args); !ok {
		return res
	}

	restaurants, err := r.service.AvailableRestaurants(ctx, args.Date, args.TimeSlot, args.PartySize)
	if err != nil {
		return r.errorResult(err)
	}
	if restaurants == nil {
		restaurants = []*model.RestaurantAvailability{}
	}
	return Result{Status: StatusOK, Payload: map[string]any{"restaurants": restaurants}}
}

func (r *Registry) bookTable(ctx context.Context, raw json.RawMessage) Result {
	var req model.BookingRequest
	if res, ok := r.decode(raw, &req); !ok {
		return res
	}

	booking, err := r.service.Book(ctx, &req)
	if err != nil {
		return r.errorResult(err)
	}
	return Result{Status: StatusConfirmed, Payload: booking}
}

type bookingRefArgs struct {
	BookingID string `json:"booking_id"`
	Date      string `json:"date"`
}

func (r *Registry) bookingDetails(ctx context.Context, raw json.RawMessage) Result {
	var args bookingRefArgs
	if res, ok := r.decode(raw, &args); !ok {
		return res
	}

	booking, err := r.service.BookingDetails(ctx, args.Date, args.BookingID)
	if err != nil {
		return r.errorResult(err)
	}
	return Result{Status: StatusOK, Payload: booking}
}

type findBookingsArgs struct {
	Date          string `json:"date"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

func (r *Registry) findBookings(ctx context.Context, raw json.RawMessage) Result {
	var args findBookingsArgs
	if res, ok := r.decode(raw, &args); !ok {
		return res
	}

	bookings, err := r.service.FindBookings(ctx, args.Date, model.CustomerIdentity{
		Name:  args.CustomerName,
		Email: args.CustomerEmail,
		Phone: args.CustomerPhone,
	})
	if err != nil {
		return r.errorResult(err)
	}
	return Result{Status: StatusOK, Payload: map[string]any{"bookings": bookings}}
}

type bookableSlotsArgs struct {
	Date string `json:"date"`
}

func (r *Registry) bookableSlots(ctx context.Context, raw json.RawMessage) Result {
	var args bookableSlotsArgs
	if res, ok := r.decode(raw, &args); !ok {
		return res
	}

	slots, note, err := r.service.BookableSlots(ctx, args.Date)
	if err != nil {
		return r.errorResult(err)
	}
	payload := map[string]any{"slots": slots}
	if note != "" {
		payload["note"] = note
	}
	return Result{Status: StatusOK, Payload: payload}
}

func (r *Registry) cancelBooking(ctx context.Context, raw json.RawMessage) Result {
	var args bookingRefArgs
	if res, ok := r.decode(raw, &args); !ok {
		return res
	}

	booking, err := r.service.Cancel(ctx, args.Date, args.BookingID)
	if err != nil {
		return r.errorResult(err)
	}
	return Result{Status: StatusCancelled, Payload: map[string]any{
		"booking_id":      booking.BookingID,
		"restaurant_name": booking.RestaurantName,
		"tables_returned": booking.TablesReserved,
	}}
}

// modifyArgs carries the reference to the existing booking plus the full
// replacement request. The embedded request's "date" field is the new date;
// "current_date" locates the booking being replaced.
type modifyArgs struct {
	BookingID   string `json:"booking_id"`
	CurrentDate string `json:"current_date"`
	model.BookingRequest
}

func (r *Registry) modifyBooking(ctx context.Context, raw json.RawMessage) Result {
	var args modifyArgs
	if res, ok := r.decode(raw, &args); !ok {
		return res
	}

	booking, err := r.service.Modify(ctx, args.CurrentDate, args.BookingID, &args.BookingRequest)
	if err != nil {
		return r.errorResult(err)
	}
	return Result{Status: StatusConfirmed, Payload: booking}
}

func (r *Registry) decode(raw json.RawMessage, dst any) (Result, bool) {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		r.log.Warn("Planner sent malformed tool arguments", "error", err)
		return Result{Status: StatusError, Message: fmt.Sprintf("Invalid tool arguments: %v", err)}, false
	}
	return Result{}, true
}

func (r *Registry) errorResult(err error) Result {
	appErr := apperrors.AsAppError(err)
	return Result{
		Status:  StatusError,
		Message: appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	}
}
