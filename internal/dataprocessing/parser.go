package dataprocessing

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"glreport/internal/config"
	apperrors "glreport/internal/errors"
	"glreport/internal/validation"
	"glreport/pkg/contracts/domain"
)

// textDateLayouts are tried in order on CSV fields and on EffectiveDate cells
// a workbook stores as text.
var textDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
}

// Loader reads journal-entry exports into datasets.
type Loader struct {
	logger     *slog.Logger
	validator  *validation.FileValidator
	extensions []string
}

// NewLoader creates a loader accepting config.SpreadsheetExtensions.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:     logger,
		validator:  validation.NewFileValidator(logger),
		extensions: config.SpreadsheetExtensions,
	}
}

// LoadFile reads an export with the default loader.
func LoadFile(path string) (*domain.Dataset, error) {
	return NewLoader(nil).Load(context.Background(), path)
}

// Load reads the file at path. Every failure is returned as a LOAD AppError.
func (l *Loader) Load(ctx context.Context, path string) (*domain.Dataset, error) {
	if err := l.validator.ValidateSpreadsheet(path, l.extensions); err != nil {
		return nil, apperrors.NewLoadError(path, "cannot load file", err)
	}

	var (
		ds  *domain.Dataset
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		ds, err = l.LoadCSV(path)
	default:
		ds, err = l.LoadXLSX(path)
	}
	if err != nil {
		return nil, apperrors.NewLoadError(path, "failed to read "+filepath.Base(path), err)
	}

	l.logger.InfoContext(ctx, "Dataset loaded",
		slog.String("file", filepath.Base(path)),
		slog.Int("columns", len(ds.Columns)),
		slog.Int("rows", len(ds.Records)))
	return ds, nil
}

// LoadXLSX reads the first worksheet of an .xlsx/.xlsm workbook; its first
// row is the header. Errors are returned unwrapped; Load adds the LOAD type.
func (l *Loader) LoadXLSX(path string) (*domain.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no worksheets")
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	ds := &domain.Dataset{Source: path}
	if len(rows) == 0 {
		return ds, nil
	}
	ds.Columns = headerNames(rows[0])

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}
	typer := &cellTyper{file: f, sheet: sheet, date1904: date1904, dateStyles: make(map[int]bool)}

	for i := 1; i < len(rows); i++ {
		if isBlankRow(rows[i]) {
			continue
		}
		if len(rows[i]) > len(ds.Columns) {
			l.logger.Debug("Ignoring cells beyond the header",
				slog.Int("row", i+1),
				slog.Int("cells", len(rows[i])))
		}
		rec := make(domain.Record, len(ds.Columns))
		for j, col := range ds.Columns {
			raw := ""
			if j < len(rows[i]) {
				raw = rows[i][j]
			}
			v := typer.value(j+1, i+1, raw)
			if col == domain.ColumnEffectiveDate && v.Kind == domain.KindText {
				if t, ok := parseTextDate(v.Text); ok {
					v = domain.DateValue(t)
				}
			}
			rec[col] = v
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}

// cellTyper turns raw worksheet strings into typed values using the cell's
// stored type and number format.
type cellTyper struct {
	file       *excelize.File
	sheet      string
	date1904   bool
	dateStyles map[int]bool
}

func (c *cellTyper) value(col, row int, raw string) domain.Value {
	if raw == "" {
		return domain.EmptyValue()
	}
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return domain.TextValue(raw)
	}
	cellType, err := c.file.GetCellType(c.sheet, axis)
	if err != nil {
		return domain.TextValue(raw)
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return domain.TextValue(raw)
	case excelize.CellTypeBool:
		return domain.BoolValue(raw == "1" || strings.EqualFold(raw, "true"))
	case excelize.CellTypeError:
		return domain.EmptyValue()
	case excelize.CellTypeDate:
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			return domain.DateValue(t)
		}
		return domain.TextValue(raw)
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return domain.TextValue(raw)
	}
	if c.isDateCell(axis) {
		if t, err := excelize.ExcelDateToTime(f, c.date1904); err == nil {
			return domain.DateValue(t)
		}
	}
	return domain.NumberValue(decimal.NewFromFloat(f))
}

func (c *cellTyper) isDateCell(axis string) bool {
	styleID, err := c.file.GetCellStyle(c.sheet, axis)
	if err != nil || styleID == 0 {
		return false
	}
	if isDate, ok := c.dateStyles[styleID]; ok {
		return isDate
	}
	isDate := false
	if style, err := c.file.GetStyle(styleID); err == nil && style != nil {
		isDate = isDateNumFmt(style.NumFmt, style.CustomNumFmt)
	}
	c.dateStyles[styleID] = isDate
	return isDate
}

// isDateNumFmt reports whether a number format renders a date or time.
func isDateNumFmt(id int, custom *string) bool {
	switch {
	case id >= 14 && id <= 22, id >= 27 && id <= 36, id >= 45 && id <= 47, id >= 50 && id <= 58:
		return true
	}
	if custom == nil {
		return false
	}
	code := strings.ToLower(*custom)
	// Drop quoted literals and bracketed sections such as [Red] or [$-409].
	var b strings.Builder
	inQuote, inBracket := false, false
	for _, r := range code {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		default:
			b.WriteRune(r)
		}
	}
	code = b.String()
	return strings.ContainsAny(code, "yd") || (strings.Contains(code, "h") && strings.Contains(code, "m"))
}

// LoadCSV reads a comma-separated export with a header row.
func (l *Loader) LoadCSV(path string) (*domain.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	ds := &domain.Dataset{Source: path}
	header, err := reader.Read()
	if err == io.EOF {
		return ds, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	ds.Columns = headerNames(header)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if isBlankRow(row) {
			continue
		}
		rec := make(domain.Record, len(ds.Columns))
		for j, col := range ds.Columns {
			raw := ""
			if j < len(row) {
				raw = row[j]
			}
			rec[col] = inferCSVValue(raw)
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}

// inferCSVValue types a CSV field: empty, number, date, otherwise text.
func inferCSVValue(raw string) domain.Value {
	if raw == "" {
		return domain.EmptyValue()
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed != "" {
		if d, err := decimal.NewFromString(trimmed); err == nil {
			return domain.NumberValue(d)
		}
		if t, ok := parseTextDate(trimmed); ok {
			return domain.DateValue(t)
		}
	}
	return domain.TextValue(raw)
}

// parseTextDate tries each of textDateLayouts on the trimmed text.
func parseTextDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range textDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// headerNames trims header cells, names blank ones ColumnN and suffixes
// repeats with .1, .2 so every column name is unique.
func headerNames(cells []string) []string {
	names := make([]string, len(cells))
	seen := make(map[string]int, len(cells))
	for i, cell := range cells {
		name := strings.TrimSpace(cell)
		if name == "" {
			name = fmt.Sprintf("Column%d", i+1)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		}
		seen[name] = 0
		names[i] = name
	}
	return names
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
