package service

import (
	"testing"

	"family_hub_backend/internal/model"
	"family_hub_backend/internal/repository"
)

func TestDayIndicator(t *testing.T) {
	tests := []struct {
		points int
		want   string
	}{
		{-3, "none"},
		{0, "none"},
		{1, "star"},
		{10, "star"},
		{11, "fire"},
		{50, "fire"},
	}
	for _, tt := range tests {
		if got := DayIndicator(tt.points); got != tt.want {
			t.Fatalf("DayIndicator(%d) = %s, want %s", tt.points, got, tt.want)
		}
	}
}

func newPointTestService(t *testing.T) *PointService {
	t.Helper()
	db := newTestDB(t, &model.PointEntry{})
	return NewPointService(repository.NewPointRepository(db), repository.NewUserRepository(db), nil)
}

func TestBalanceSumsLedger(t *testing.T) {
	svc := newPointTestService(t)

	entries := []model.PointEntry{
		{FamilyID: 1, KidID: 10, Points: 5, Note: "Chore: dishes", CreatedByID: 10},
		{FamilyID: 1, KidID: 10, Points: 1, Note: "Math: daily practice", CreatedByID: 10},
		{FamilyID: 1, KidID: 10, Points: -4, Note: "Reward: ice cream", CreatedByID: 1},
		{FamilyID: 1, KidID: 99, Points: 7, Note: "Chore: laundry", CreatedByID: 99},
	}
	for i := range entries {
		if err := svc.PointRepo.Create(&entries[i]); err != nil {
			t.Fatalf("seed entry: %v", err)
		}
	}

	balance, err := svc.Balance(10)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 2 {
		t.Fatalf("expected balance 2, got %d", balance)
	}

	// 别的孩子的流水互不影响
	balance, err = svc.Balance(99)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 7 {
		t.Fatalf("expected balance 7, got %d", balance)
	}
}

func TestHistoryPaginationDefaults(t *testing.T) {
	svc := newPointTestService(t)

	for i := 0; i < 25; i++ {
		entry := model.PointEntry{FamilyID: 1, KidID: 10, Points: 1, Note: "Chore: dishes", CreatedByID: 10}
		if err := svc.PointRepo.Create(&entry); err != nil {
			t.Fatalf("seed entry: %v", err)
		}
	}

	resp, err := svc.History(10, 0, 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if resp.Page != 1 || resp.Limit != 20 {
		t.Fatalf("expected clamped defaults page=1 limit=20, got %+v", resp)
	}
	if resp.Total != 25 || len(resp.Entries) != 20 {
		t.Fatalf("expected 20 of 25 entries, got %d of %d", len(resp.Entries), resp.Total)
	}

	resp, err = svc.History(10, 2, 20)
	if err != nil {
		t.Fatalf("History page 2: %v", err)
	}
	if len(resp.Entries) != 5 {
		t.Fatalf("expected 5 entries on page 2, got %d", len(resp.Entries))
	}
}
