package service

import (
	"testing"
	"time"

	"family_hub_backend/internal/model"
	"family_hub_backend/internal/repository"
)

func TestPickTodaysWord(t *testing.T) {
	tests := []struct {
		name        string
		states      []wordState
		wantOutcome rotationOutcome
		wantIndex   int
	}{
		{
			name:        "first unlearned word",
			states:      []wordState{{HasPassed: true}, {}, {}},
			wantOutcome: wordNew,
			wantIndex:   1,
		},
		{
			name:        "word passed today is re-shown",
			states:      []wordState{{HasPassed: true}, {HasPassed: true, PassedToday: true}, {}},
			wantOutcome: wordAlreadyDoneToday,
			wantIndex:   1,
		},
		{
			// 最后一个词刚过完，整轮虽然结束，当天仍重展示那个词
			name:        "last word of the cycle passed today is re-shown",
			states:      []wordState{{HasPassed: true, PointAwarded: true}, {HasPassed: true, PassedToday: true, PointAwarded: true}},
			wantOutcome: wordAlreadyDoneToday,
			wantIndex:   1,
		},
		{
			name:        "review round picks first word still holding its point",
			states:      []wordState{{HasPassed: true}, {HasPassed: true, PointAwarded: true}, {HasPassed: true, PointAwarded: true}},
			wantOutcome: recycleReward,
			wantIndex:   1,
		},
		{
			name:        "all points spent restarts from the top",
			states:      []wordState{{HasPassed: true}, {HasPassed: true}, {HasPassed: true}},
			wantOutcome: recycleReset,
			wantIndex:   0,
		},
		{
			name:        "single word list",
			states:      []wordState{{}},
			wantOutcome: wordNew,
			wantIndex:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, idx := pickTodaysWord(tt.states)
			if outcome != tt.wantOutcome || idx != tt.wantIndex {
				t.Fatalf("got (%d, %d), want (%d, %d)", outcome, idx, tt.wantOutcome, tt.wantIndex)
			}
		})
	}
}

func newSightWordTestService(t *testing.T) *SightWordService {
	t.Helper()
	db := newTestDB(t,
		&model.SightWord{},
		&model.SightWordProgress{},
		&model.PointEntry{},
	)
	pointService := NewPointService(repository.NewPointRepository(db), repository.NewUserRepository(db), nil)
	return NewSightWordService(repository.NewSightWordRepository(db), repository.NewUserRepository(db), pointService, nil)
}

func seedWords(t *testing.T, svc *SightWordService, familyID uint, words ...string) []model.SightWord {
	t.Helper()
	created := make([]model.SightWord, 0, len(words))
	for i, w := range words {
		word := model.SightWord{FamilyID: familyID, Word: w, SortOrder: i, IsActive: true}
		if err := svc.SightWordRepo.Create(&word); err != nil {
			t.Fatalf("seed word %q: %v", w, err)
		}
		created = append(created, word)
	}
	return created
}

func TestSightWordTodayPicksFirstWord(t *testing.T) {
	svc := newSightWordTestService(t)
	words := seedWords(t, svc, 1, "the", "and", "you")

	resp, err := svc.Today(10, 1, "UTC")
	if err != nil {
		t.Fatalf("Today: %v", err)
	}
	if resp.SightWord == nil || resp.SightWord.ID != words[0].ID {
		t.Fatalf("expected first word by sort order, got %+v", resp.SightWord)
	}
	if resp.AlreadyCompletedToday || resp.IsReview {
		t.Fatalf("fresh kid should get a brand new word: %+v", resp)
	}
	if resp.Progress.Current != 0 || resp.Progress.Total != 3 {
		t.Fatalf("unexpected progress: %+v", resp.Progress)
	}
}

func TestSightWordTodayEmptyList(t *testing.T) {
	svc := newSightWordTestService(t)

	resp, err := svc.Today(10, 1, "UTC")
	if err != nil {
		t.Fatalf("Today: %v", err)
	}
	if resp.SightWord != nil || resp.Message != "noWords" {
		t.Fatalf("expected noWords message, got %+v", resp)
	}
}

func TestSightWordQuizAwardsOncePerDay(t *testing.T) {
	svc := newSightWordTestService(t)
	words := seedWords(t, svc, 1, "the", "and")

	// 大小写和首尾空白不影响判卷
	resp, err := svc.Quiz(10, 1, 10, "UTC", &SightWordQuizRequest{SightWordID: words[0].ID, Answer: "  The "})
	if err != nil {
		t.Fatalf("Quiz: %v", err)
	}
	if !resp.Correct || !resp.PointAwarded {
		t.Fatalf("correct spelling should award a point: %+v", resp)
	}

	// 同一天重复提交不再发分
	resp, err = svc.Quiz(10, 1, 10, "UTC", &SightWordQuizRequest{SightWordID: words[0].ID, Answer: "the"})
	if err != nil {
		t.Fatalf("Quiz resubmit: %v", err)
	}
	if !resp.Correct || resp.PointAwarded || resp.Message != "alreadyCompleted" {
		t.Fatalf("same-day resubmission must be idempotent: %+v", resp)
	}

	var entries int64
	svc.SightWordRepo.DB.Model(&model.PointEntry{}).Where("kid_id = ?", 10).Count(&entries)
	if entries != 1 {
		t.Fatalf("expected exactly one point entry, got %d", entries)
	}

	// 今天过过的词会被重展示
	today, err := svc.Today(10, 1, "UTC")
	if err != nil {
		t.Fatalf("Today: %v", err)
	}
	if today.SightWord == nil || today.SightWord.ID != words[0].ID || !today.AlreadyCompletedToday {
		t.Fatalf("expected today's passed word re-shown: %+v", today)
	}
}

func TestSightWordQuizWrongAnswer(t *testing.T) {
	svc := newSightWordTestService(t)
	words := seedWords(t, svc, 1, "the")

	resp, err := svc.Quiz(10, 1, 10, "UTC", &SightWordQuizRequest{SightWordID: words[0].ID, Answer: "teh"})
	if err != nil {
		t.Fatalf("Quiz: %v", err)
	}
	if resp.Correct || resp.PointAwarded {
		t.Fatalf("misspelling must not award: %+v", resp)
	}

	var entries int64
	svc.SightWordRepo.DB.Model(&model.PointEntry{}).Count(&entries)
	if entries != 0 {
		t.Fatalf("expected no point entries, got %d", entries)
	}
}

func TestSightWordQuizUnknownWord(t *testing.T) {
	svc := newSightWordTestService(t)
	seedWords(t, svc, 1, "the")

	if _, err := svc.Quiz(10, 1, 10, "UTC", &SightWordQuizRequest{SightWordID: 999, Answer: "the"}); err == nil {
		t.Fatal("expected error for a word outside the family list")
	}
}

func TestSightWordReviewRound(t *testing.T) {
	svc := newSightWordTestService(t)
	words := seedWords(t, svc, 1, "the", "and")

	// 两个词都在往日过过测验，本轮积分都还在
	yesterday := time.Now().AddDate(0, 0, -1)
	for _, w := range words {
		passed := yesterday
		progress := model.SightWordProgress{
			KidID:        10,
			SightWordID:  w.ID,
			QuizPassedAt: &passed,
			PointAwarded: true,
		}
		if err := svc.SightWordRepo.DB.Create(&progress).Error; err != nil {
			t.Fatalf("seed progress: %v", err)
		}
	}

	resp, err := svc.Today(10, 1, "UTC")
	if err != nil {
		t.Fatalf("Today: %v", err)
	}
	if resp.SightWord == nil || resp.SightWord.ID != words[0].ID || !resp.IsReview {
		t.Fatalf("expected review of the first word, got %+v", resp)
	}

	// 进入复习的词要能重新挣分
	var progress model.SightWordProgress
	if err := svc.SightWordRepo.DB.Where("kid_id = ? AND sight_word_id = ?", 10, words[0].ID).First(&progress).Error; err != nil {
		t.Fatalf("load progress: %v", err)
	}
	if progress.PointAwarded {
		t.Fatal("review word should have its point flag cleared")
	}
}
