package models

import (
	"reflect"
	"testing"
)

// TestPrimaryMuscle verifies the first muscle is primary and an empty list defaults to full-body.
func TestPrimaryMuscle(t *testing.T) {
	ex := Exercise{Muscles: []string{"chest", "triceps"}}
	if got := ex.PrimaryMuscle(); got != "chest" {
		t.Errorf("PrimaryMuscle() = %q, want %q", got, "chest")
	}

	empty := Exercise{}
	if got := empty.PrimaryMuscle(); got != "full-body" {
		t.Errorf("PrimaryMuscle() on empty muscles = %q, want %q", got, "full-body")
	}
}

// TestNeedsNoEquipment covers the empty list and the ["none"] sentinel.
func TestNeedsNoEquipment(t *testing.T) {
	tests := []struct {
		name      string
		equipment []string
		want      bool
	}{
		{"empty", nil, true},
		{"none sentinel", []string{"none"}, true},
		{"none plus other", []string{"none", "mat"}, false},
		{"dumbbell", []string{"dumbbell"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := Exercise{Equipment: tt.equipment}
			if got := ex.NeedsNoEquipment(); got != tt.want {
				t.Errorf("NeedsNoEquipment(%v) = %v, want %v", tt.equipment, got, tt.want)
			}
		})
	}
}

// TestNewSetTrimsAndSorts verifies set construction drops blanks and Sorted is deterministic.
func TestNewSetTrimsAndSorts(t *testing.T) {
	s := NewSet(" strength", "cardio", "", "  ", "cardio")
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if !s.Has("strength") {
		t.Error("expected set to contain trimmed \"strength\"")
	}
	if got, want := s.Sorted(), []string{"cardio", "strength"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Sorted() = %v, want %v", got, want)
	}
}

// TestWeekPlanComplete verifies a short plan reports incomplete without being an error.
func TestWeekPlanComplete(t *testing.T) {
	p := WeekPlan{Days: 2, Sessions: []Session{
		{Day: 1, Exercise: Exercise{Title: "Run"}},
	}}
	if p.Complete() {
		t.Error("Complete() = true for 1 of 2 sessions")
	}
	p.Sessions = append(p.Sessions, Session{Day: 2, Exercise: Exercise{Title: "Push-ups"}, Fallback: true})
	if !p.Complete() {
		t.Error("Complete() = false for 2 of 2 sessions")
	}
	if got, want := p.Titles(), []string{"Run", "Push-ups"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Titles() = %v, want %v", got, want)
	}
	if p.FallbackCount() != 1 {
		t.Errorf("FallbackCount() = %d, want 1", p.FallbackCount())
	}
}

// TestPlanConfigValidate verifies non-positive days or time budgets are rejected.
func TestPlanConfigValidate(t *testing.T) {
	tests := []struct {
		days, time int
		wantErr    bool
	}{
		{7, 30, false},
		{1, 1, false},
		{0, 30, true},
		{-1, 30, true},
		{7, 0, true},
		{7, -5, true},
	}
	for _, tt := range tests {
		err := NewPlanConfig(tt.days, tt.time, nil, nil, nil).Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(days=%d, time=%d) err = %v, wantErr %v", tt.days, tt.time, err, tt.wantErr)
		}
	}
}
