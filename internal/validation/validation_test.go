package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/habitforge/habitforge/internal/models"
	"github.com/habitforge/habitforge/internal/period"
)

func TestName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "Drink water", "Drink water", false},
		{"trims whitespace", "  Read  ", "Read", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
		{"fifty chars ok", strings.Repeat("a", 50), strings.Repeat("a", 50), false},
		{"fifty-one chars too long", strings.Repeat("a", 51), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Name(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Name(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestColor(t *testing.T) {
	tests := []struct {
		color   string
		wantErr bool
	}{
		{"#E57373", false},
		{"#abcdef", false},
		{"#ABCDEF", false},
		{"E57373", true},
		{"#E5737", true},
		{"#E573733", true},
		{"#GGGGGG", true},
		{"", true},
	}

	for _, tt := range tests {
		if err := Color(tt.color); (err != nil) != tt.wantErr {
			t.Errorf("Color(%q) error = %v, wantErr %v", tt.color, err, tt.wantErr)
		}
	}
}

func TestGoalCount(t *testing.T) {
	tests := []struct {
		count   int
		wantErr bool
	}{
		{1, false},
		{50, false},
		{100, false},
		{0, true},
		{-1, true},
		{101, true},
	}

	for _, tt := range tests {
		if err := GoalCount(tt.count); (err != nil) != tt.wantErr {
			t.Errorf("GoalCount(%d) error = %v, wantErr %v", tt.count, err, tt.wantErr)
		}
	}
}

func TestCompletionDate(t *testing.T) {
	today := period.Date(2025, time.June, 5)

	if err := CompletionDate(period.Date(2025, time.June, 5), today); err != nil {
		t.Errorf("CompletionDate(today) error = %v", err)
	}
	if err := CompletionDate(period.Date(2025, time.June, 1), today); err != nil {
		t.Errorf("CompletionDate(past) error = %v", err)
	}
	if err := CompletionDate(period.Date(2025, time.June, 6), today); err == nil {
		t.Error("CompletionDate(future) expected error")
	}
}

func TestCompletionAmount(t *testing.T) {
	if err := CompletionAmount(1); err != nil {
		t.Errorf("CompletionAmount(1) error = %v", err)
	}
	if err := CompletionAmount(0); err == nil {
		t.Error("CompletionAmount(0) expected error")
	}
	if err := CompletionAmount(-3); err == nil {
		t.Error("CompletionAmount(-3) expected error")
	}
}

func TestHabit(t *testing.T) {
	valid := models.Habit{
		Name:      "Journal",
		Color:     "#64B5F6",
		GoalType:  models.GoalDaily,
		GoalCount: 1,
	}
	if errs := Habit(valid); len(errs) != 0 {
		t.Errorf("Habit(valid) = %v, want no errors", errs)
	}

	invalid := models.Habit{
		Name:      "",
		Color:     "blue",
		GoalType:  models.GoalType("hourly"),
		GoalCount: 0,
	}
	errs := Habit(invalid)
	for _, field := range []string{"name", "color", "goal_type", "goal_count"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("Habit(invalid) missing error for %q", field)
		}
	}
}
