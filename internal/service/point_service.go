package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"family_hub_backend/internal/model"
	"family_hub_backend/internal/repository"
	"family_hub_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const balanceCacheTTL = 5 * time.Minute

type PointService struct {
	PointRepo *repository.PointRepository
	UserRepo  *repository.UserRepository
	Redis     *redis.Client
}

func NewPointService(
	pointRepo *repository.PointRepository,
	userRepo *repository.UserRepository,
	rdb *redis.Client,
) *PointService {
	return &PointService{
		PointRepo: pointRepo,
		UserRepo:  userRepo,
		Redis:     rdb,
	}
}

func balanceCacheKey(kidID uint) string {
	return fmt.Sprintf("points:balance:%d", kidID)
}

// Balance 当前积分余额，流水求和，短缓存兜住高频查询
func (s *PointService) Balance(kidID uint) (int, error) {
	if s.Redis != nil {
		ctx := context.Background()
		if val, err := s.Redis.Get(ctx, balanceCacheKey(kidID)).Result(); err == nil {
			if balance, convErr := strconv.Atoi(val); convErr == nil {
				return balance, nil
			}
		}
	}

	balance, err := s.PointRepo.BalanceByKid(kidID)
	if err != nil {
		return 0, err
	}

	if s.Redis != nil {
		ctx := context.Background()
		s.Redis.Set(ctx, balanceCacheKey(kidID), strconv.Itoa(balance), balanceCacheTTL)
	}
	return balance, nil
}

// InvalidateBalance 任何积分变动后调用，缓存宁缺勿错
func (s *PointService) InvalidateBalance(kidID uint) {
	if s.Redis == nil {
		return
	}
	s.Redis.Del(context.Background(), balanceCacheKey(kidID))
}

// AwardTx 在外部事务里追加一条流水，提交后调用方自行失效缓存
func (s *PointService) AwardTx(tx *gorm.DB, entry *model.PointEntry) error {
	return tx.Create(entry).Error
}

type PointHistoryResponse struct {
	Entries []model.PointEntry `json:"entries"`
	Total   int64              `json:"total"`
	Page    int                `json:"page"`
	Limit   int                `json:"limit"`
}

func (s *PointService) History(kidID uint, page, limit int) (*PointHistoryResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	entries, total, err := s.PointRepo.HistoryByKid(kidID, page, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.PointEntry{}
	}
	return &PointHistoryResponse{Entries: entries, Total: total, Page: page, Limit: limit}, nil
}

type CalendarDay struct {
	Date      string `json:"date"`
	Points    int    `json:"points"`
	Indicator string `json:"indicator"` // fire / star / none
}

// DayIndicator 日历格子的火花标记：单日超过 10 分是 fire，至少 1 分是 star
func DayIndicator(points int) string {
	switch {
	case points > 10:
		return "fire"
	case points >= 1:
		return "star"
	default:
		return "none"
	}
}

// Calendar 按孩子时区把整月流水折成逐日合计
func (s *PointService) Calendar(kidID uint, year, month int, timezone string) ([]CalendarDay, error) {
	if timezone == "" || timezone == "Local" {
		return nil, util.ErrInvalidTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, util.ErrInvalidTimezone
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	entries, err := s.PointRepo.EntriesBetween(kidID,
		start.UTC().Format("2006-01-02 15:04:05"),
		end.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int)
	for _, e := range entries {
		day := e.CreatedAt.In(loc).Format(util.DateFormat)
		totals[day] += e.Points
	}

	daysInMonth := end.AddDate(0, 0, -1).Day()
	days := make([]CalendarDay, 0, daysInMonth)
	for d := 1; d <= daysInMonth; d++ {
		date := time.Date(year, time.Month(month), d, 0, 0, 0, 0, loc).Format(util.DateFormat)
		points := totals[date]
		days = append(days, CalendarDay{Date: date, Points: points, Indicator: DayIndicator(points)})
	}
	return days, nil
}

type PointAdjustRequest struct {
	KidID  uint   `json:"kidId" binding:"required"`
	Points int    `json:"points" binding:"required"`
	Note   string `json:"note" binding:"required"`
}

// Adjust 家长手动加减分，必须留备注
func (s *PointService) Adjust(familyID, parentID uint, req *PointAdjustRequest) (*model.PointEntry, error) {
	kid, err := s.UserRepo.FindKidInFamily(req.KidID, familyID)
	if err != nil {
		return nil, util.ErrKidNotFound
	}

	entry := &model.PointEntry{
		FamilyID:    familyID,
		KidID:       kid.ID,
		Points:      req.Points,
		Note:        req.Note,
		CreatedByID: parentID,
	}
	if err := s.PointRepo.Create(entry); err != nil {
		return nil, err
	}
	s.InvalidateBalance(kid.ID)
	return entry, nil
}
