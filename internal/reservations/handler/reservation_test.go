package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	"goodfoods/internal/reservations/repository"
	"goodfoods/internal/reservations/service"
	"goodfoods/internal/reservations/validator"
	"goodfoods/pkg/config"
	"goodfoods/pkg/logger"
	"goodfoods/pkg/model"
)

func newTestRouter(t *testing.T) *httprouter.Router {
	t.Helper()

	dir := t.TempDir()
	catalog := filepath.Join(dir, "restaurantData.csv")
	data := "name,location,address,phone,cuisines,approx_cost,rating,max_party_size\n" +
		"Bistro A,Indiranagar,12 Main Rd,+919800000001,Italian,1200,4.4,12\n"
	if err := os.WriteFile(catalog, []byte(data), 0o644); err != nil {
		t.Fatalf("writing catalog: %v", err)
	}

	log := logger.New(logger.Config{Output: io.Discard})
	directory := repository.NewCSVRestaurantDirectory(catalog)
	tracker := repository.NewCSVAvailabilityStore(dir, directory, 10)
	ledger := repository.NewCSVBookingLedger(dir, 4)
	v := validator.NewReservationValidator(log, 3, 30*time.Minute)
	cfg := &config.Config{GuestsPerTable: 4, SlotLockTTL: time.Second}

	svc := service.NewReservationService(directory, tracker, ledger, v, log, cfg)

	router := httprouter.New()
	NewReservationHandler(svc, log).RegisterRoutes(router)
	return router
}

func tomorrow() string {
	return time.Now().AddDate(0, 0, 1).Format(model.DateLayout)
}

func createBody(date string) string {
	return fmt.Sprintf(`{
		"customer_name": "Asha Rao",
		"customer_email": "asha@example.com",
		"customer_phone": "+91 98765 43210",
		"restaurant_name": "Bistro A",
		"party_size": 9,
		"date": %q,
		"time_slot": "07:00 PM"
	}`, date)
}

func doJSON(t *testing.T, router *httprouter.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response envelope: %v (body %s)", err, rec.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, v); err != nil {
		t.Fatalf("decoding response data: %v", err)
	}
}

func TestCreateAndCancelReservation(t *testing.T) {
	router := newTestRouter(t)
	date := tomorrow()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/reservations", createBody(date))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}

	var booking model.Booking
	decodeData(t, rec, &booking)
	if len(booking.BookingID) != 8 {
		t.Errorf("booking id = %q, want 8 characters", booking.BookingID)
	}
	if booking.TablesReserved != 3 {
		t.Errorf("tables reserved = %d, want 3", booking.TablesReserved)
	}

	getRec := doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/v1/reservations/%s/%s", date, booking.BookingID), "")
	if getRec.Code != http.StatusOK {
		t.Fatalf("get status = %d, body %s", getRec.Code, getRec.Body.String())
	}

	cancelRec := doJSON(t, router, http.MethodDelete,
		fmt.Sprintf("/api/v1/reservations/%s/%s", date, booking.BookingID), "")
	if cancelRec.Code != http.StatusOK {
		t.Fatalf("cancel status = %d, body %s", cancelRec.Code, cancelRec.Body.String())
	}

	var cancelled model.Booking
	decodeData(t, cancelRec, &cancelled)
	if cancelled.Status != model.StatusCancelled {
		t.Errorf("status after cancel = %q, want %q", cancelled.Status, model.StatusCancelled)
	}

	againRec := doJSON(t, router, http.MethodDelete,
		fmt.Sprintf("/api/v1/reservations/%s/%s", date, booking.BookingID), "")
	if againRec.Code != http.StatusConflict {
		t.Errorf("second cancel status = %d, want %d", againRec.Code, http.StatusConflict)
	}
}

func TestCreateRejectsInvalidPayload(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"empty body", "", http.StatusBadRequest},
		{"malformed json", "{not json", http.StatusBadRequest},
		{"missing fields", `{"customer_name": "Asha Rao"}`, http.StatusUnprocessableEntity},
		{"unknown restaurant", strings.Replace(createBody(tomorrow()), "Bistro A", "Nowhere", 1), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/v1/reservations", tt.body)
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}
}

func TestAvailabilityEndpoint(t *testing.T) {
	router := newTestRouter(t)
	date := tomorrow()

	rec := doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/v1/restaurants/availability?date=%s&time_slot=07:00+PM&party_size=4", date), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var restaurants []*model.RestaurantAvailability
	decodeData(t, rec, &restaurants)
	if len(restaurants) != 1 || restaurants[0].TablesAvailable != 10 {
		t.Errorf("unexpected availability payload: %+v", restaurants)
	}

	badRec := doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/v1/restaurants/availability?date=%s&time_slot=07:00+PM&party_size=abc", date), "")
	if badRec.Code != http.StatusBadRequest {
		t.Errorf("bad party_size status = %d, want %d", badRec.Code, http.StatusBadRequest)
	}
}

func TestSearchEndpoint(t *testing.T) {
	router := newTestRouter(t)
	date := tomorrow()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/reservations", createBody(date))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}

	searchRec := doJSON(t, router, http.MethodPost, "/api/v1/reservations/search", fmt.Sprintf(`{
		"date": %q,
		"customer_name": "ASHA RAO",
		"customer_email": "asha@example.com",
		"customer_phone": "+91 98765 43210"
	}`, date))
	if searchRec.Code != http.StatusOK {
		t.Fatalf("search status = %d, body %s", searchRec.Code, searchRec.Body.String())
	}

	var bookings []*model.Booking
	decodeData(t, searchRec, &bookings)
	if len(bookings) != 1 {
		t.Errorf("found %d bookings, want 1", len(bookings))
	}
}

func TestSlotsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/slots?date="+tomorrow(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var slots []string
	decodeData(t, rec, &slots)
	if len(slots) != len(model.TimeSlots) {
		t.Errorf("got %d slots, want %d", len(slots), len(model.TimeSlots))
	}
}
