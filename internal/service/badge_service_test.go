package service

import (
	"testing"

	"family_hub_backend/internal/model"
	"family_hub_backend/internal/repository"

	"go.uber.org/zap"
)

func TestChoreLevel(t *testing.T) {
	tests := []struct {
		count int
		level int
	}{
		{0, 0},
		{4, 0},
		{5, 1},
		{14, 1},
		{15, 2},
		{30, 3},
		{60, 4},
		{99, 4},
		{100, 5},
		{500, 5},
	}
	for _, tt := range tests {
		if got := ChoreLevel(tt.count); got != tt.level {
			t.Fatalf("ChoreLevel(%d) = %d, want %d", tt.count, got, tt.level)
		}
	}
}

func TestChoreLevelName(t *testing.T) {
	if en, zh := ChoreLevelName(1); en != "Helper" || zh != "小帮手" {
		t.Fatalf("level 1: got (%s, %s)", en, zh)
	}
	if en, zh := ChoreLevelName(5); en != "Legend" || zh != "传奇" {
		t.Fatalf("level 5: got (%s, %s)", en, zh)
	}
	if en, zh := ChoreLevelName(0); en != "" || zh != "" {
		t.Fatalf("level 0 should be unnamed, got (%s, %s)", en, zh)
	}
	if en, zh := ChoreLevelName(42); en != "" || zh != "" {
		t.Fatalf("out of range level should be unnamed, got (%s, %s)", en, zh)
	}
}

func TestBumpChoreBadgeTx(t *testing.T) {
	db := newTestDB(t, &model.Badge{})
	svc := NewBadgeService(
		repository.NewBadgeRepository(db),
		repository.NewChoreRepository(db),
		repository.NewPointRepository(db),
		repository.NewMathRepository(db),
		zap.NewNop(),
	)

	var badge *model.Badge
	var leveledUp bool
	for i := 1; i <= 4; i++ {
		var err error
		badge, leveledUp, err = svc.BumpChoreBadgeTx(db, 1, 10, 3)
		if err != nil {
			t.Fatalf("bump %d: %v", i, err)
		}
		if leveledUp {
			t.Fatalf("bump %d should stay below level 1", i)
		}
	}
	if badge.Count != 4 || badge.Level != 0 {
		t.Fatalf("after 4 bumps: %+v", badge)
	}

	// 第 5 次触发升级
	badge, leveledUp, err := svc.BumpChoreBadgeTx(db, 1, 10, 3)
	if err != nil {
		t.Fatalf("bump 5: %v", err)
	}
	if !leveledUp || badge.Level != 1 || badge.Count != 5 {
		t.Fatalf("expected level 1 at count 5, got %+v leveledUp=%v", badge, leveledUp)
	}
}
