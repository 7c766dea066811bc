package exchange

import (
	"fmt"
	"io"
	"strings"

	"github.com/conorfennell/flashdeck/internal/domain"
	"github.com/xuri/excelize/v2"
)

// ReadSheet reads card texts from the first sheet of an xlsx workbook.
// Column A is the front and column B the back. A leading "front"/"back"
// header row and fully blank rows are skipped.
func ReadSheet(r io.Reader) ([]domain.CardText, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open workbook: %v", domain.ErrFormat, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", domain.ErrFormat)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read sheet %s: %v", domain.ErrFormat, sheets[0], err)
	}

	var cards []domain.CardText
	for i, row := range rows {
		front, back := cell(row, 0), cell(row, 1)
		if i == 0 && strings.EqualFold(front, "front") && strings.EqualFold(back, "back") {
			continue
		}
		if front == "" && back == "" {
			continue
		}
		cards = append(cards, domain.CardText{Front: front, Back: back})
	}
	return cards, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
