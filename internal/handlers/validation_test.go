package handlers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"bloodportal/internal/models"
	"bloodportal/internal/services"
)

func TestValidateScheduleUsesLocalCalendarDay(t *testing.T) {
	ist := time.FixedZone("IST", 5*60*60+30*60)
	// 20:00 UTC on the 18th is 01:30 IST on the 19th.
	now := time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC)

	if err := validateSchedule("2026-10-18", "09:00", "17:00", now, ist); err == nil {
		t.Fatalf("yesterday in IST must be rejected")
	}
	if err := validateSchedule("2026-10-19", "09:00", "17:00", now, ist); err != nil {
		t.Fatalf("today in IST rejected: %v", err)
	}
	if err := validateSchedule("2026-10-18", "09:00", "17:00", now, time.UTC); err != nil {
		t.Fatalf("today in UTC rejected: %v", err)
	}
}

func TestValidateScheduleTimes(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	cases := map[string][3]string{
		"bad date":         {"18-10-2026", "09:00", "10:00"},
		"bad start":        {"2026-10-20", "9am", "10:00"},
		"bad end":          {"2026-10-20", "09:00", "24:30"},
		"end before start": {"2026-10-20", "10:00", "09:00"},
		"end equals start": {"2026-10-20", "10:00", "10:00"},
	}
	for name, c := range cases {
		if err := validateSchedule(c[0], c[1], c[2], now, time.UTC); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestParseBloodGroupAcceptsExactlyOne(t *testing.T) {
	group, err := parseBloodGroup("ab ")
	if err != nil || group != models.BloodGroupABPos {
		t.Fatalf("expected AB+, got %q err=%v", group, err)
	}
	if _, err := parseBloodGroup("A+,B+"); !errors.Is(err, services.ErrInvalidBloodGroup) {
		t.Fatalf("expected ErrInvalidBloodGroup for two groups, got %v", err)
	}
	if group, err := parseBloodGroup("O-,o-"); err != nil || group != models.BloodGroupONeg {
		t.Fatalf("repeating one group is still one group: %q err=%v", group, err)
	}
}

func TestSingleGroupEndpointsRejectLists(t *testing.T) {
	p := newPortal(t)
	for _, path := range []string{
		"/api/blood-banks/2/inventory?bloodGroup=AB%2B,O%2B",
		"/api/blood-compatibility?bloodGroup=A%2B,B%2B",
	} {
		if rec := p.do(t, http.MethodGet, path, nil); rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, rec.Code)
		}
	}
}
