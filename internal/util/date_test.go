package util

import (
	"errors"
	"testing"
	"time"
)

func TestLocalDateString(t *testing.T) {
	// UTC 晚上 23 点在洛杉矶还是当天下午
	moment := time.Date(2026, 2, 4, 3, 30, 0, 0, time.UTC)

	got, err := LocalDateString(moment, "America/Los_Angeles")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2026-02-03" {
		t.Fatalf("expected 2026-02-03 in Los Angeles, got %s", got)
	}

	got, err = LocalDateString(moment, "UTC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2026-02-04" {
		t.Fatalf("expected 2026-02-04 in UTC, got %s", got)
	}

	got, err = LocalDateString(moment, "Asia/Shanghai")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2026-02-04" {
		t.Fatalf("expected 2026-02-04 in Shanghai, got %s", got)
	}
}

func TestLocalDateStringInvalidTimezone(t *testing.T) {
	if _, err := LocalDateString(time.Now(), "Invalid/Zone"); !errors.Is(err, ErrInvalidTimezone) {
		t.Fatalf("expected ErrInvalidTimezone for unknown zone, got %v", err)
	}
	// 空时区不允许退回UTC
	if _, err := LocalDateString(time.Now(), ""); !errors.Is(err, ErrInvalidTimezone) {
		t.Fatalf("expected ErrInvalidTimezone for empty zone, got %v", err)
	}
	// "Local" 能被 LoadLocation 解析，但那是服务器时区，不是孩子的
	if _, err := LocalDateString(time.Now(), "Local"); !errors.Is(err, ErrInvalidTimezone) {
		t.Fatalf("expected ErrInvalidTimezone for Local zone, got %v", err)
	}
}
