package service

import (
	"fmt"
	"io"
	"strings"

	"family_hub_backend/internal/model"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// SightWordImportResult 批量导入统计
type SightWordImportResult struct {
	TotalProcessed int      `json:"totalProcessed"`
	Created        int      `json:"created"`
	Skipped        int      `json:"skipped"`
	Errors         []string `json:"errors"`
}

// ImportFromExcel 从 xlsx 批量导入常见词。A 列是词，B 列是配图地址，
// 首行是表头时自动跳过；与已有词重复（忽略大小写）的行跳过不报错。
func (s *SightWordService) ImportFromExcel(familyID uint, reader io.Reader) (*SightWordImportResult, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("打开 Excel 文件失败: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %w", err)
	}

	existing, err := s.SightWordRepo.FindAllByFamily(familyID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(existing))
	for _, w := range existing {
		seen[strings.ToLower(w.Word)] = true
	}

	maxOrder, err := s.SightWordRepo.MaxSortOrder(familyID)
	if err != nil {
		return nil, err
	}

	result := &SightWordImportResult{Errors: []string{}}
	var toCreate []model.SightWord

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		word := strings.TrimSpace(row[0])
		if word == "" {
			continue
		}
		if i == 0 && strings.EqualFold(word, "word") {
			continue
		}

		result.TotalProcessed++
		key := strings.ToLower(word)
		if seen[key] {
			result.Skipped++
			continue
		}

		imageURL := ""
		if len(row) > 1 {
			imageURL = strings.TrimSpace(row[1])
		}

		maxOrder++
		toCreate = append(toCreate, model.SightWord{
			FamilyID:  familyID,
			Word:      word,
			ImageURL:  imageURL,
			SortOrder: maxOrder,
			IsActive:  true,
		})
		seen[key] = true
	}

	if len(toCreate) > 0 {
		err = s.SightWordRepo.DB.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&toCreate).Error
		})
		if err != nil {
			return nil, err
		}
	}
	result.Created = len(toCreate)
	return result, nil
}
