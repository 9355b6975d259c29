package service

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"family_hub_backend/internal/model"
	"family_hub_backend/internal/repository"
	"family_hub_backend/internal/util"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(models...); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func newMathTestService(t *testing.T) *MathService {
	t.Helper()
	db := newTestDB(t,
		&model.MathProgress{},
		&model.MathAttempt{},
		&model.MathSettings{},
		&model.PointEntry{},
	)
	pointService := NewPointService(repository.NewPointRepository(db), repository.NewUserRepository(db), nil)
	return NewMathService(repository.NewMathRepository(db), pointService, nil)
}

func todayUTC() string {
	return time.Now().UTC().Format(util.DateFormat)
}

func TestMathTodayNoProgress(t *testing.T) {
	svc := newMathTestService(t)

	resp, err := svc.Today(5, "UTC")
	if err != nil {
		t.Fatalf("Today: %v", err)
	}
	if resp.Date != todayUTC() {
		t.Fatalf("expected date %s, got %s", todayUTC(), resp.Date)
	}
	if resp.AdditionComplete || resp.SubtractionComplete || resp.RewardGranted {
		t.Fatalf("expected clean slate without a progress row, got %+v", resp)
	}

	want := GenerateDailyProblems(resp.Date, "5")
	if resp.Problems != want {
		t.Fatalf("problems not deterministic: got %+v want %+v", resp.Problems, want)
	}
}

func TestMathSubmitWrongAnswer(t *testing.T) {
	svc := newMathTestService(t)
	problems := GenerateDailyProblems(todayUTC(), "5")
	expected, err := ExpectedAnswer(problems, "addition")
	if err != nil {
		t.Fatalf("ExpectedAnswer: %v", err)
	}

	resp, err := svc.Submit(5, 1, "UTC", &MathSubmitRequest{
		QuestionType: "addition",
		Answer:       expected + 1,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if resp.Correct || resp.RewardAwarded {
		t.Fatalf("wrong answer must not pass: %+v", resp)
	}

	// 错题也要进记录
	var attempts int64
	svc.MathRepo.DB.Model(&model.MathAttempt{}).Where("kid_id = ?", 5).Count(&attempts)
	if attempts != 1 {
		t.Fatalf("expected 1 attempt logged, got %d", attempts)
	}

	today, err := svc.Today(5, "UTC")
	if err != nil {
		t.Fatalf("Today: %v", err)
	}
	if today.AdditionComplete {
		t.Fatal("wrong answer must not mark addition complete")
	}
}

func TestMathSubmitAwardsSinglePoint(t *testing.T) {
	svc := newMathTestService(t)
	problems := GenerateDailyProblems(todayUTC(), "7")
	addAnswer, err := ExpectedAnswer(problems, "addition")
	if err != nil {
		t.Fatalf("ExpectedAnswer addition: %v", err)
	}
	subAnswer, err := ExpectedAnswer(problems, "subtraction")
	if err != nil {
		t.Fatalf("ExpectedAnswer subtraction: %v", err)
	}

	resp, err := svc.Submit(7, 1, "UTC", &MathSubmitRequest{
		QuestionType: "addition",
		Answer:       addAnswer,
	})
	if err != nil {
		t.Fatalf("Submit addition: %v", err)
	}
	if !resp.Correct || resp.RewardAwarded {
		t.Fatalf("first correct answer should pass without reward yet: %+v", resp)
	}

	resp, err = svc.Submit(7, 1, "UTC", &MathSubmitRequest{
		QuestionType: "subtraction",
		Answer:       subAnswer,
	})
	if err != nil {
		t.Fatalf("Submit subtraction: %v", err)
	}
	if !resp.Correct || !resp.RewardAwarded {
		t.Fatalf("completing both types should award the daily point: %+v", resp)
	}

	// 重复提交已完成的题型不再发分
	resp, err = svc.Submit(7, 1, "UTC", &MathSubmitRequest{
		QuestionType: "addition",
		Answer:       addAnswer,
	})
	if err != nil {
		t.Fatalf("Resubmit addition: %v", err)
	}
	if !resp.AlreadyCompleted || resp.RewardAwarded {
		t.Fatalf("resubmission must be idempotent: %+v", resp)
	}

	var entries int64
	svc.MathRepo.DB.Model(&model.PointEntry{}).Where("kid_id = ?", 7).Count(&entries)
	if entries != 1 {
		t.Fatalf("expected exactly one point entry, got %d", entries)
	}

	today, err := svc.Today(7, "UTC")
	if err != nil {
		t.Fatalf("Today: %v", err)
	}
	if !today.AdditionComplete || !today.SubtractionComplete || !today.RewardGranted {
		t.Fatalf("progress should show both complete with reward: %+v", today)
	}
}

func TestMathSubmitConcurrentCompletionAwardsOnce(t *testing.T) {
	svc := newMathTestService(t)
	// sqlite 内存库并发写会报 table is locked，收紧到单连接串行执行；
	// 发分的正确性由进度行的标记保证，不依赖连接数
	sqlDB, err := svc.MathRepo.DB.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	problems := GenerateDailyProblems(todayUTC(), "9")
	addAnswer, err := ExpectedAnswer(problems, "addition")
	if err != nil {
		t.Fatalf("ExpectedAnswer addition: %v", err)
	}
	subAnswer, err := ExpectedAnswer(problems, "subtraction")
	if err != nil {
		t.Fatalf("ExpectedAnswer subtraction: %v", err)
	}

	if _, err := svc.Submit(9, 1, "UTC", &MathSubmitRequest{
		QuestionType: "addition",
		Answer:       addAnswer,
	}); err != nil {
		t.Fatalf("Submit addition: %v", err)
	}

	// 两个并发请求同时补完最后一道题，只能有一个发分
	const workers = 2
	results := make([]*MathSubmitResponse, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Submit(9, 1, "UTC", &MathSubmitRequest{
				QuestionType: "subtraction",
				Answer:       subAnswer,
			})
		}(i)
	}
	wg.Wait()

	awarded := 0
	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("concurrent submit %d: %v", i, errs[i])
		}
		if results[i].RewardAwarded {
			awarded++
		}
	}
	if awarded != 1 {
		t.Fatalf("expected exactly one submission to award the point, got %d", awarded)
	}

	var entries int64
	svc.MathRepo.DB.Model(&model.PointEntry{}).Where("kid_id = ?", 9).Count(&entries)
	if entries != 1 {
		t.Fatalf("expected exactly one point entry, got %d", entries)
	}
}

func TestMathSubmitRejectsUnsupportedTypes(t *testing.T) {
	svc := newMathTestService(t)

	if _, err := svc.Submit(5, 1, "UTC", &MathSubmitRequest{QuestionType: "multiplication", Answer: 1}); err != util.ErrQuestionTypeNotSupported {
		t.Fatalf("expected ErrQuestionTypeNotSupported, got %v", err)
	}
	if _, err := svc.Submit(5, 1, "UTC", &MathSubmitRequest{QuestionType: "geometry", Answer: 1}); err != util.ErrInvalidQuestionType {
		t.Fatalf("expected ErrInvalidQuestionType, got %v", err)
	}
}

func TestMathSettingsDefaultsAndPartialUpdate(t *testing.T) {
	svc := newMathTestService(t)

	settings, err := svc.GetSettings(3)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if settings.DailyQuestionCount != 2 || !settings.AdditionEnabled || !settings.SubtractionEnabled {
		t.Fatalf("unexpected defaults: %+v", settings)
	}
	if settings.MultiplicationEnabled {
		t.Fatal("multiplication should default to disabled")
	}

	count := 5
	enabled := true
	updated, err := svc.UpdateSettings(3, &MathSettingsRequest{
		DailyQuestionCount:    &count,
		MultiplicationEnabled: &enabled,
	})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if updated.DailyQuestionCount != 5 || !updated.MultiplicationEnabled {
		t.Fatalf("partial update not applied: %+v", updated)
	}
	if !updated.SubtractionEnabled {
		t.Fatal("untouched fields must keep their values")
	}

	bad := 0
	if _, err := svc.UpdateSettings(3, &MathSettingsRequest{DailyQuestionCount: &bad}); err == nil {
		t.Fatal("expected validation error for dailyQuestionCount=0")
	}
}
