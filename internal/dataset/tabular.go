package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/idilsaglam/qotd/internal/model"
)

// loadCSV reads a CSV file whose first row names the columns.
func loadCSV(path string) ([]model.Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, rec)
	}
	return fromRows(rows)
}

// loadXLSX reads the first sheet of an Excel workbook.
func loadXLSX(path string) ([]model.Question, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return fromRows(rows)
}

// fromRows maps a header row plus data rows onto questions. Column order
// is free; blank rows are skipped.
func fromRows(rows [][]string) ([]model.Question, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	cols := map[string]int{"id": -1, "question": -1, "answer": -1}
	for i, name := range rows[0] {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, ok := cols[key]; ok {
			cols[key] = i
		}
	}
	for name, i := range cols {
		if i < 0 {
			return nil, fmt.Errorf("%w: missing %q column", ErrInvalid, name)
		}
	}

	cell := func(row []string, i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	out := make([]model.Question, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}
		rawID := cell(row, cols["id"])
		id, err := strconv.Atoi(rawID)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: id %q is not a number", ErrInvalid, n+2, rawID)
		}
		out = append(out, model.Question{
			ID:       id,
			Question: cell(row, cols["question"]),
			Answer:   cell(row, cols["answer"]),
		})
	}
	return out, nil
}
