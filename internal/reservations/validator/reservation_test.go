package validator

import (
	"testing"
	"time"

	reserrors "goodfoods/internal/reservations/errors"
	apperrors "goodfoods/pkg/errors"
	"goodfoods/pkg/logger"
	"goodfoods/pkg/model"
)

func newTestValidator(now time.Time) *ReservationValidator {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	v := NewReservationValidator(log, 3, 30*time.Minute)
	v.now = func() time.Time { return now }
	return v
}

// fixedNow is mid-afternoon so today still has bookable evening slots.
var fixedNow = time.Date(2026, 3, 10, 18, 30, 0, 0, time.Local)

func TestValidateDateWindow(t *testing.T) {
	v := newTestValidator(fixedNow)

	tests := []struct {
		name     string
		date     string
		wantKind string
	}{
		{"today is accepted", "10.03.2026", ""},
		{"upper bound today+3 is accepted", "13.03.2026", ""},
		{"yesterday is rejected", "09.03.2026", reserrors.KindOutOfWindow},
		{"today+4 is rejected", "14.03.2026", reserrors.KindOutOfWindow},
		{"unparsable date", "2026-03-10", reserrors.KindInvalidFormat},
		{"empty date", "", reserrors.KindInvalidFormat},
		{"nonsense", "99.99.9999", reserrors.KindInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := v.ValidateDateWindow(tt.date)
			if tt.wantKind == "" {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
				if parsed.Format(model.DateLayout) != tt.date {
					t.Errorf("parsed date %s does not round-trip to %s", parsed.Format(model.DateLayout), tt.date)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected %s, got success", tt.wantKind)
			}
			if !apperrors.HasCode(err, tt.wantKind) {
				t.Errorf("expected kind %s, got %v", tt.wantKind, err)
			}
		})
	}
}

func TestValidateDateWindowSlides(t *testing.T) {
	// The same date flips from accepted to rejected as the clock advances
	// past it.
	date := "10.03.2026"

	v := newTestValidator(fixedNow)
	if _, err := v.ValidateDateWindow(date); err != nil {
		t.Fatalf("expected %s accepted on the same day, got %v", date, err)
	}

	dayAfter := fixedNow.AddDate(0, 0, 1)
	v = newTestValidator(dayAfter)
	if _, err := v.ValidateDateWindow(date); !apperrors.HasCode(err, reserrors.KindOutOfWindow) {
		t.Errorf("expected %s out of window one day later, got %v", date, err)
	}
}

func TestValidateLeadTime(t *testing.T) {
	v := newTestValidator(fixedNow) // 18:30
	today, err := v.ValidateDateWindow("10.03.2026")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		slot     string
		wantKind string
	}{
		{"exactly now+30m is accepted", "07:00 PM", ""},
		{"well in the future is accepted", "09:00 PM", ""},
		{"29 minutes ahead is too soon", "", reserrors.KindInsufficientLeadTime}, // filled below
		{"in the past", "06:00 PM", reserrors.KindPastTime},
		{"unparsable slot", "7 PM", reserrors.KindInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := tt.slot
			now := fixedNow
			if tt.wantKind == reserrors.KindInsufficientLeadTime {
				// Shift now to 18:31 so 07:00 PM is only 29 minutes out.
				now = time.Date(2026, 3, 10, 18, 31, 0, 0, time.Local)
				slot = "07:00 PM"
			}
			vv := newTestValidator(now)
			err := vv.ValidateLeadTime(today, slot)
			if tt.wantKind == "" {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
				return
			}
			if !apperrors.HasCode(err, tt.wantKind) {
				t.Errorf("expected kind %s, got %v", tt.wantKind, err)
			}
		})
	}
}

func TestValidateLeadTimePastBeatsLeadTime(t *testing.T) {
	// A slot one minute in the past reports PAST_TIME, not the lead-time
	// kind, even though both rules fail.
	now := time.Date(2026, 3, 10, 19, 1, 0, 0, time.Local)
	v := newTestValidator(now)
	today, err := v.ValidateDateWindow("10.03.2026")
	if err != nil {
		t.Fatal(err)
	}

	err = v.ValidateLeadTime(today, "07:00 PM")
	if !apperrors.HasCode(err, reserrors.KindPastTime) {
		t.Errorf("expected PAST_TIME, got %v", err)
	}
}

func TestBookableSlots(t *testing.T) {
	t.Run("future date returns the full schedule", func(t *testing.T) {
		v := newTestValidator(fixedNow)
		slots, note, err := v.BookableSlots("12.03.2026")
		if err != nil {
			t.Fatal(err)
		}
		if note != "" {
			t.Errorf("unexpected note: %q", note)
		}
		if len(slots) != len(model.TimeSlots) {
			t.Errorf("expected %d slots, got %d", len(model.TimeSlots), len(slots))
		}
	})

	t.Run("today filters by lead time", func(t *testing.T) {
		v := newTestValidator(fixedNow) // 18:30, earliest bookable 19:00
		slots, note, err := v.BookableSlots("10.03.2026")
		if err != nil {
			t.Fatal(err)
		}
		if note != "" {
			t.Errorf("unexpected note: %q", note)
		}
		want := []string{"07:00 PM", "08:00 PM", "09:00 PM", "10:00 PM"}
		if len(slots) != len(want) {
			t.Fatalf("expected %v, got %v", want, slots)
		}
		for i := range want {
			if slots[i] != want[i] {
				t.Errorf("slot %d: expected %s, got %s", i, want[i], slots[i])
			}
		}
	})

	t.Run("late today yields empty set with note", func(t *testing.T) {
		late := time.Date(2026, 3, 10, 23, 0, 0, 0, time.Local)
		v := newTestValidator(late)
		slots, note, err := v.BookableSlots("10.03.2026")
		if err != nil {
			t.Fatal(err)
		}
		if len(slots) != 0 {
			t.Errorf("expected no slots, got %v", slots)
		}
		if note == "" {
			t.Error("expected an explanatory note for the empty set")
		}
	})

	t.Run("window errors propagate", func(t *testing.T) {
		v := newTestValidator(fixedNow)
		_, _, err := v.BookableSlots("01.01.2020")
		if !apperrors.HasCode(err, reserrors.KindOutOfWindow) {
			t.Errorf("expected OUT_OF_WINDOW, got %v", err)
		}
	})
}

func TestValidateRequest(t *testing.T) {
	v := newTestValidator(fixedNow)

	valid := model.BookingRequest{
		CustomerName:   "Priya Sharma",
		CustomerEmail:  "priya@example.com",
		CustomerPhone:  "+12125550187",
		RestaurantName: "Bistro A",
		PartySize:      4,
		Date:           "10.03.2026",
		TimeSlot:       "07:00 PM",
	}

	if err := v.ValidateRequest(&valid); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*model.BookingRequest)
	}{
		{"missing name", func(r *model.BookingRequest) { r.CustomerName = "" }},
		{"bad email", func(r *model.BookingRequest) { r.CustomerEmail = "not-an-email" }},
		{"zero party size", func(r *model.BookingRequest) { r.PartySize = 0 }},
		{"unknown slot label", func(r *model.BookingRequest) { r.TimeSlot = "07:30 PM" }},
		{"missing date", func(r *model.BookingRequest) { r.Date = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			if err := v.ValidateRequest(&req); err == nil {
				t.Error("expected validation failure")
			}
		})
	}
}
