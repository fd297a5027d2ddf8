// Package sheet reads and writes the tabular product data as CSV.
//
// The reader is header-driven and deliberately tolerant: column order is
// free, header names are matched case-insensitively against a set of known
// aliases, unknown columns are ignored and malformed numeric cells coerce
// to zero instead of failing the import. Spreadsheet exports are messy;
// the plan model self-heals around missing data, so the codec should too.
package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/planora/shelfplan/pkg/errors"
	"github.com/planora/shelfplan/pkg/record"
)

// Column aliases accepted in the header row, all matched lowercase.
var columnAliases = map[string]string{
	"itemcode":         "itemCode",
	"item_code":        "itemCode",
	"item code":        "itemCode",
	"code":             "itemCode",
	"ean":              "itemCode",
	"originalitemcode": "originalItemCode",
	"original_code":    "originalItemCode",
	"module":           "module",
	"shelf":            "module",
	"width":            "width",
	"height":           "height",
	"depth":            "depth",
	"name":             "name",
	"label":            "name",
	"position":         "position",
	"pos":              "position",
	"quantity":         "quantity",
	"qty":              "quantity",
	"dupindex":         "dupIndex",
	"dup_index":        "dupIndex",
}

// Read decodes CSV rows from r into tabular records.
//
// The first row must be a header naming at least an item code column; rows
// whose item code cell is empty are skipped. Quantity rows are returned
// unexpanded; callers run [record.Expand] (reduce.Import does this) before
// placing products.
func Read(r io.Reader) ([]record.Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1 // ragged rows happen in hand-edited sheets

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidSheet, "sheet is empty")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSheet, err, "read header")
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if canonical, ok := columnAliases[key]; ok {
			if _, dup := cols[canonical]; !dup {
				cols[canonical] = i
			}
		}
	}
	if _, ok := cols["itemCode"]; !ok {
		return nil, errors.New(errors.ErrCodeInvalidSheet, "header has no item code column")
	}

	var records []record.Record
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSheet, err, "read row %d", line+1)
		}
		line++

		cell := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		itemCode := cell("itemCode")
		if itemCode == "" {
			continue
		}

		records = append(records, record.Record{
			ItemCode:         itemCode,
			OriginalItemCode: cell("originalItemCode"),
			Module:           cell("module"),
			Width:            parseFloat(cell("width")),
			Height:           parseFloat(cell("height")),
			Depth:            parseFloat(cell("depth")),
			Name:             cell("name"),
			Position:         parseFloat(cell("position")),
			Quantity:         parseInt(cell("quantity")),
			DupIndex:         parseInt(cell("dupIndex")),
		})
	}

	return records, nil
}

// ReadFile reads a CSV file at path and returns the decoded records.
func ReadFile(path string) ([]record.Record, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Write encodes records as CSV with a canonical header. The output
// round-trips through [Read].
func Write(records []record.Record, w io.Writer) error {
	cw := csv.NewWriter(w)

	header := []string{"itemCode", "originalItemCode", "module", "width", "height", "depth", "name", "position", "quantity", "dupIndex"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.ItemCode,
			r.OriginalItemCode,
			r.Module,
			formatFloat(r.Width),
			formatFloat(r.Height),
			formatFloat(r.Depth),
			r.Name,
			formatFloat(r.Position),
			formatInt(r.Quantity),
			formatInt(r.DupIndex),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", r.ItemCode, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile writes records to a CSV file at path.
func WriteFile(records []record.Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(records, f)
}

// parseFloat coerces a numeric cell, accepting a decimal comma. Malformed
// cells become zero rather than failing the import.
func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func parseInt(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return int(parseFloat(s))
	}
	return n
}

func formatFloat(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
