package service

import (
	"testing"
	"time"

	"family_hub_backend/internal/model"
)

func TestParseMealType(t *testing.T) {
	for _, valid := range []string{"BREAKFAST", "LUNCH", "DINNER"} {
		got, err := parseMealType(valid)
		if err != nil {
			t.Fatalf("parseMealType(%s): %v", valid, err)
		}
		if got != model.MealType(valid) {
			t.Fatalf("parseMealType(%s) = %s", valid, got)
		}
	}

	for _, invalid := range []string{"", "breakfast", "SNACK"} {
		if _, err := parseMealType(invalid); err == nil {
			t.Fatalf("parseMealType(%q) should fail", invalid)
		}
	}
}

func TestApplyMealLogUpdate(t *testing.T) {
	base := func() *model.MealLog {
		return &model.MealLog{
			FamilyID:   1,
			DishID:     3,
			Date:       time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC),
			MealType:   model.Dinner,
			LoggedByID: 2,
		}
	}

	// 只带 mealType，其他字段不动
	mealType := "LUNCH"
	log := base()
	if err := applyMealLogUpdate(log, &MealLogUpdateRequest{MealType: &mealType}); err != nil {
		t.Fatalf("update mealType: %v", err)
	}
	if log.MealType != model.Lunch {
		t.Fatalf("mealType not applied: %s", log.MealType)
	}
	if log.DishID != 3 || log.Date.Format("2006-01-02") != "2026-02-03" {
		t.Fatalf("untouched fields changed: %+v", log)
	}

	// 换菜、换日期、补掌勺人
	dishID := uint(8)
	date := "2026-02-05"
	cook := uint(4)
	log = base()
	if err := applyMealLogUpdate(log, &MealLogUpdateRequest{
		DishID:     &dishID,
		Date:       &date,
		CookedByID: &cook,
	}); err != nil {
		t.Fatalf("update fields: %v", err)
	}
	if log.DishID != 8 || log.Date.Format("2006-01-02") != "2026-02-05" {
		t.Fatalf("fields not applied: %+v", log)
	}
	if log.CookedByID == nil || *log.CookedByID != 4 {
		t.Fatalf("cook not applied: %+v", log.CookedByID)
	}
	if log.MealType != model.Dinner {
		t.Fatalf("mealType should stay: %s", log.MealType)
	}

	// 非法值整体拒绝，记录保持原样
	badType := "SNACK"
	log = base()
	if err := applyMealLogUpdate(log, &MealLogUpdateRequest{MealType: &badType}); err == nil {
		t.Fatal("invalid mealType should fail")
	}
	badDate := "02/05/2026"
	if err := applyMealLogUpdate(log, &MealLogUpdateRequest{Date: &badDate}); err == nil {
		t.Fatal("invalid date should fail")
	}
	if log.MealType != model.Dinner || log.Date.Format("2006-01-02") != "2026-02-03" {
		t.Fatalf("failed update must not mutate the record: %+v", log)
	}
}
