package repository

import (
	"family_hub_backend/internal/model"

	"gorm.io/gorm"
)

type PointRepository struct {
	DB *gorm.DB
}

func NewPointRepository(db *gorm.DB) *PointRepository {
	return &PointRepository{DB: db}
}

func (r *PointRepository) Create(entry *model.PointEntry) error {
	return r.DB.Create(entry).Error
}

func (r *PointRepository) BalanceByKid(kidID uint) (int, error) {
	var balance int64
	err := r.DB.Model(&model.PointEntry{}).
		Where("kid_id = ?", kidID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&balance).Error
	return int(balance), err
}

// LifetimeEarnedByKid 只统计正向积分，用于成就判定
func (r *PointRepository) LifetimeEarnedByKid(kidID uint) (int, error) {
	var earned int64
	err := r.DB.Model(&model.PointEntry{}).
		Where("kid_id = ? AND points > 0", kidID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&earned).Error
	return int(earned), err
}

func (r *PointRepository) HistoryByKid(kidID uint, page, limit int) ([]model.PointEntry, int64, error) {
	var entries []model.PointEntry
	var total int64

	query := r.DB.Model(&model.PointEntry{}).Where("kid_id = ?", kidID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&entries).Error
	return entries, total, err
}

// EntriesBetween 按创建时间区间取流水，供积分日历汇总
func (r *PointRepository) EntriesBetween(kidID uint, start, end string) ([]model.PointEntry, error) {
	var entries []model.PointEntry
	err := r.DB.Where("kid_id = ? AND created_at >= ? AND created_at < ?", kidID, start, end).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}
