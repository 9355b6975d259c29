package service

import (
	"testing"

	"family_hub_backend/internal/util"
)

func TestGenerateDailyProblems_GoldenVectors(t *testing.T) {
	cases := []struct {
		date   string
		kidKey string
		addA   int
		addB   int
		subA   int
		subB   int
	}{
		{"2026-02-03", "kid-42", 45, 49, 91, 23},
		{"2026-02-03", "kid-7", 62, 13, 73, 48},
		{"2025-12-31", "kid-42", 87, 9, 75, 56},
		{"2026-02-03", "3", 24, 75, 87, 66},
		{"2026-02-04", "3", 47, 35, 51, 20},
	}
	for _, c := range cases {
		got := GenerateDailyProblems(c.date, c.kidKey)
		if got.Addition.A != c.addA || got.Addition.B != c.addB {
			t.Fatalf("%s/%s addition: got %d+%d want %d+%d",
				c.date, c.kidKey, got.Addition.A, got.Addition.B, c.addA, c.addB)
		}
		if got.Subtraction.A != c.subA || got.Subtraction.B != c.subB {
			t.Fatalf("%s/%s subtraction: got %d-%d want %d-%d",
				c.date, c.kidKey, got.Subtraction.A, got.Subtraction.B, c.subA, c.subB)
		}
	}
}

func TestGenerateDailyProblems_Deterministic(t *testing.T) {
	a := GenerateDailyProblems("2026-03-15", "kid-1")
	b := GenerateDailyProblems("2026-03-15", "kid-1")
	if a != b {
		t.Fatalf("same inputs produced different problems: %+v vs %+v", a, b)
	}
	c := GenerateDailyProblems("2026-03-16", "kid-1")
	if a == c {
		t.Fatalf("different dates produced identical problems: %+v", a)
	}
}

func TestGenerateDailyProblems_Ranges(t *testing.T) {
	dates := []string{
		"2026-01-01", "2026-01-02", "2026-02-28", "2026-02-29",
		"2026-06-30", "2026-12-31", "2027-07-04", "2030-10-10",
	}
	kids := []string{"1", "2", "3", "17", "100", "kid-abc", ""}
	for _, d := range dates {
		for _, k := range kids {
			p := GenerateDailyProblems(d, k)
			add, sub := p.Addition, p.Subtraction
			if add.A < 1 || add.A > 98 {
				t.Fatalf("%s/%s: addition a=%d out of [1,98]", d, k, add.A)
			}
			if add.B < 1 || add.A+add.B > 99 {
				t.Fatalf("%s/%s: addition %d+%d exceeds 99", d, k, add.A, add.B)
			}
			if sub.A < 2 || sub.A > 100 {
				t.Fatalf("%s/%s: subtraction a=%d out of [2,100]", d, k, sub.A)
			}
			if sub.B < 1 || sub.B >= sub.A {
				t.Fatalf("%s/%s: subtraction %d-%d not positive", d, k, sub.A, sub.B)
			}
			if add.Question == "" || sub.Question == "" {
				t.Fatalf("%s/%s: empty question text", d, k)
			}
		}
	}
}

func TestExpectedAnswer(t *testing.T) {
	p := GenerateDailyProblems("2026-02-03", "kid-42")

	got, err := ExpectedAnswer(p, "addition")
	if err != nil {
		t.Fatalf("addition: %v", err)
	}
	if got != p.Addition.A+p.Addition.B {
		t.Fatalf("addition: got %d want %d", got, p.Addition.A+p.Addition.B)
	}

	got, err = ExpectedAnswer(p, "subtraction")
	if err != nil {
		t.Fatalf("subtraction: %v", err)
	}
	if got != p.Subtraction.A-p.Subtraction.B {
		t.Fatalf("subtraction: got %d want %d", got, p.Subtraction.A-p.Subtraction.B)
	}

	if _, err = ExpectedAnswer(p, "multiplication"); err != util.ErrQuestionTypeNotSupported {
		t.Fatalf("multiplication: got %v want ErrQuestionTypeNotSupported", err)
	}
	if _, err = ExpectedAnswer(p, "division"); err != util.ErrQuestionTypeNotSupported {
		t.Fatalf("division: got %v want ErrQuestionTypeNotSupported", err)
	}
	if _, err = ExpectedAnswer(p, "geometry"); err != util.ErrInvalidQuestionType {
		t.Fatalf("geometry: got %v want ErrInvalidQuestionType", err)
	}
}
