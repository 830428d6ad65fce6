package core

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	now := time.Date(2024, 3, 9, 18, 0, 0, 0, time.UTC)
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-01-15", "2024-01-15", true},
		{"  2024-12-31 ", "2024-12-31", true},
		{"", "2024-03-09", true},
		{"2024-02-30", "", false},
		{"2024-1-5", "", false},
		{"15/01/2024", "", false},
		{"yesterday", "", false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in, now)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Fatalf("%q expected %q, got %q (err=%v)", tc.in, tc.want, got, err)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("%q expected ErrInvalidDate, got %v", tc.in, err)
		}
	}
}

func TestResolveCategory(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"", "Food", true},
		{"rent", "Rent", true},
		{"Bills", "Bills", true},
		{"2", "Transportation", true},
		{"7", "Others", true},
		{"0", "", false},
		{"8", "", false},
		{"Travel", "", false},
	}
	for _, tc := range cases {
		got, err := ResolveCategory(tc.in, DefaultCategories)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Fatalf("%q expected %q, got %q (err=%v)", tc.in, tc.want, got, err)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidCategory) {
			t.Fatalf("%q expected ErrInvalidCategory, got %v", tc.in, err)
		}
	}

	if _, err := ResolveCategory("Food", nil); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected error for empty category list, got %v", err)
	}
}
