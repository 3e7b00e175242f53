package model

import (
	"strings"
	"testing"
	"time"
)

func TestNewID_IsValid(t *testing.T) {
	id := NewID()
	if len(id) != 26 {
		t.Fatalf("expected 26-char id, got %q", id)
	}
	if !ValidID(id) {
		t.Errorf("expected %q to be valid", id)
	}
}

func TestNewIDAt_SortsByTime(t *testing.T) {
	earlier := NewIDAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	later := NewIDAt(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if strings.Compare(earlier, later) >= 0 {
		t.Errorf("expected %q < %q", earlier, later)
	}
}

func TestValidID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"ulid", "01ARZ3NDEKTSV4RRFFQ69G5FAV", true},
		{"empty", "", false},
		{"too short", "01ARZ3NDEK", false},
		{"mongo object id", "507f1f77bcf86cd799439011", false},
		{"invalid characters", "01ARZ3NDEKTSV4RRFFQ69G5FA!", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidID(tt.id); got != tt.want {
				t.Errorf("ValidID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestRequestStatus_IsValid(t *testing.T) {
	for _, s := range []RequestStatus{RequestStatusOpen, RequestStatusMatched, RequestStatusCompleted} {
		if !s.IsValid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if RequestStatus("cancelled").IsValid() {
		t.Error("expected cancelled to be invalid")
	}
}

func TestWalker_PrefersSize(t *testing.T) {
	w := &Walker{PreferredDogSizes: []string{SizeSmall, SizeLarge}}
	if !w.PrefersSize(SizeLarge) {
		t.Error("expected walker to prefer large dogs")
	}
	if w.PrefersSize(SizeMedium) {
		t.Error("expected walker not to prefer medium dogs")
	}
}
