package pickup

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNormalizeLandmark(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty becomes placeholder", "", "N/A"},
		{"whitespace becomes placeholder", "   ", "N/A"},
		{"value is trimmed", "  Near the gate  ", "Near the gate"},
		{"value kept as is", "Block C", "Block C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeLandmark(tt.input); got != tt.want {
				t.Errorf("NormalizeLandmark(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestScheduledDate(t *testing.T) {
	now := time.Date(2025, 3, 30, 23, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))

	got := ScheduledDate(now, 3)
	if got != "2025-04-02" {
		t.Errorf("ScheduledDate() = %q, want %q", got, "2025-04-02")
	}
}

func TestScheduledDateUsesLocalCalendar(t *testing.T) {
	// 23:30 local on the 30th is already the 31st in UTC. The date must be
	// computed from local calendar fields, not from the UTC instant.
	loc := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2025, 1, 30, 23, 30, 0, 0, loc)

	if got := ScheduledDate(now, 0); got != "2025-01-30" {
		t.Errorf("ScheduledDate() = %q, want %q", got, "2025-01-30")
	}
}

func TestWinnerNotes(t *testing.T) {
	tests := []struct {
		name string
		bid  float64
		want string
	}{
		{"no bids", 0, "Pickup for auction winner."},
		{"whole amount", 1500, "Pickup for auction winner. Final bid: ₹1500"},
		{"fractional amount", 1500.5, "Pickup for auction winner. Final bid: ₹1500.5"},
		{"large amount stays plain decimal", 1500000, "Pickup for auction winner. Final bid: ₹1500000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WinnerNotes(tt.bid); got != tt.want {
				t.Errorf("WinnerNotes(%v) = %q, want %q", tt.bid, got, tt.want)
			}
		})
	}
}

func TestCanonicalItemID(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	b := uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	c := uuid.MustParse("00000000-0000-0000-0000-00000000000c")

	got := CanonicalItemID([]uuid.UUID{c, a, b})
	if got != a {
		t.Errorf("CanonicalItemID() = %v, want %v", got, a)
	}

	// Order of the input group must not change the key
	if again := CanonicalItemID([]uuid.UUID{b, c, a}); again != got {
		t.Errorf("CanonicalItemID() not stable across orderings: %v vs %v", again, got)
	}
}

func TestContains(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	p := &Pickup{ItemIDs: []uuid.UUID{a}}

	if !p.Contains(a) {
		t.Error("expected pickup to contain its item")
	}
	if p.Contains(b) {
		t.Error("expected pickup not to contain an unrelated item")
	}
}

func TestHasAddress(t *testing.T) {
	p := &Pickup{}
	if p.HasAddress() {
		t.Error("expected no address on a fresh pickup")
	}

	p.SetAddress("12 Industrial Estate", "N/A", 12.97, 77.59)
	if !p.HasAddress() {
		t.Error("expected address after SetAddress")
	}
	if p.Landmark != "N/A" {
		t.Errorf("Landmark = %q, want %q", p.Landmark, "N/A")
	}
}
