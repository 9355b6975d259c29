package service

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildWordSheet(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			axis, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, axis, cell); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf
}

func TestImportFromExcel(t *testing.T) {
	svc := newSightWordTestService(t)
	seedWords(t, svc, 1, "the")

	buf := buildWordSheet(t, [][]string{
		{"word", "imageUrl"}, // 表头自动跳过
		{"and", "https://example.com/and.png"},
		{"THE", ""}, // 与已有词重复（忽略大小写）
		{"you", ""},
		{"", "no-word.png"}, // 空词跳过
		{"you", ""},         // 文件内重复
	})

	result, err := svc.ImportFromExcel(1, buf)
	if err != nil {
		t.Fatalf("ImportFromExcel: %v", err)
	}
	if result.TotalProcessed != 4 {
		t.Fatalf("expected 4 processed rows, got %d", result.TotalProcessed)
	}
	if result.Created != 2 || result.Skipped != 2 {
		t.Fatalf("expected 2 created / 2 skipped, got %d / %d", result.Created, result.Skipped)
	}

	words, err := svc.List(1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(words) != 3 {
		t.Fatalf("expected 3 words after import, got %d", len(words))
	}

	// 新词排在已有词之后
	var imported []string
	for _, w := range words {
		imported = append(imported, fmt.Sprintf("%s@%d", w.Word, w.SortOrder))
	}
	if words[len(words)-1].Word != "you" {
		t.Fatalf("expected you appended last, got %v", imported)
	}
}

func TestImportFromExcelRejectsGarbage(t *testing.T) {
	svc := newSightWordTestService(t)

	if _, err := svc.ImportFromExcel(1, bytes.NewReader([]byte("not an xlsx file"))); err == nil {
		t.Fatal("expected error for a non-xlsx payload")
	}
}
