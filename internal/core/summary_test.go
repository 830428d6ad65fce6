package core

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	records := []ExpenseRecord{
		{ID: 1, Date: "2024-01-15", Category: "Food", Amount: 0.1},
		{ID: 2, Date: "2024-01-16", Category: "Rent", Amount: 900},
		{ID: 3, Date: "2024-01-17", Category: "Food", Amount: 0.2},
	}

	s := Summarize(records)
	if got := s.Total.StringFixed(2); got != "900.30" {
		t.Fatalf("expected total 900.30, got %s", got)
	}
	if len(s.ByCategory) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(s.ByCategory))
	}
	food := s.ByCategory[0]
	if food.Name != "Food" || food.Count != 2 || food.Amount.String() != "0.3" {
		t.Fatalf("unexpected food total: %+v (amount=%s)", food, food.Amount)
	}
	if s.ByCategory[1].Name != "Rent" {
		t.Fatalf("expected categories sorted by name, got %+v", s.ByCategory)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if !s.Total.IsZero() || len(s.ByCategory) != 0 {
		t.Fatalf("expected empty summary, got %+v", s)
	}
}

func TestSummarizeSkipsNonFinite(t *testing.T) {
	records := []ExpenseRecord{
		{ID: 1, Category: "Food", Amount: 12.5},
		{ID: 2, Category: "Food", Amount: math.Inf(1)},
		{ID: 3, Category: "Rent", Amount: math.NaN()},
	}

	s := Summarize(records)
	if s.Skipped != 2 {
		t.Fatalf("expected 2 skipped records, got %d", s.Skipped)
	}
	if got := s.Total.StringFixed(2); got != "12.50" {
		t.Fatalf("expected total 12.50, got %s", got)
	}
	if len(s.ByCategory) != 1 || s.ByCategory[0].Count != 1 {
		t.Fatalf("unexpected categories: %+v", s.ByCategory)
	}
}
