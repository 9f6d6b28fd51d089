package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"netzero-nexus/internal/models"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrMissingColumns is wrapped when the header lacks required columns.
	ErrMissingColumns = errors.New("missing required columns")
	// ErrUnsupportedFormat is wrapped for file extensions the loader cannot read.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// LoadError reports why a dataset could not be loaded. It is fatal at startup.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadFile reads a spreadsheet (xlsx) or CSV file into a Dataset.
// sheet selects the worksheet of an xlsx file; empty means the first one.
func LoadFile(path, sheet string) (*models.Dataset, error) {
	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		rows, err = readXLSX(path, sheet)
	case ".csv":
		rows, err = readCSV(path)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}

	return Decode(path, rows)
}

func readXLSX(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rows, err := readDelimited(file, ',')
	if err != nil {
		return nil, err
	}

	// Retry with semicolon separator
	if len(rows) > 0 && len(rows[0]) == 1 && strings.Contains(rows[0][0], ";") {
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		return readDelimited(file, ';')
	}
	return rows, nil
}

func readDelimited(r io.Reader, comma rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1 // Allow variable fields
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows := [][]string{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				// Skip malformed rows
				continue
			}
			return nil, err
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// ValidateHeader checks that every required column is present.
func ValidateHeader(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}

	var missing []string
	for _, col := range models.RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return nil
}

// Decode turns raw rows (header first) into a Dataset. Blank or non-numeric
// cells in numeric columns decode to 0.
func Decode(source string, rows [][]string) (*models.Dataset, error) {
	if len(rows) == 0 {
		return nil, &LoadError{Source: source, Err: errors.New("no header row")}
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	if err := ValidateHeader(header); err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}

	ds := &models.Dataset{
		Source:  source,
		Columns: header,
		Records: []models.Record{},
	}

	body := normalizeRows(rows[1:], len(header))
	ds.Quality = Profile(header, body)
	if len(body) == 0 {
		return ds, nil
	}

	types := make(map[string]series.Type, len(header))
	for _, col := range header {
		if models.NumericColumns[col] {
			types[col] = series.Float
		} else {
			types[col] = series.String
		}
	}

	df := dataframe.LoadRecords(
		append([][]string{header}, body...),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{}),
		dataframe.WithTypes(types),
	)
	if df.Err != nil {
		return nil, &LoadError{Source: source, Err: df.Err}
	}

	text := make(map[string][]string)
	nums := make(map[string][]float64)
	for _, col := range models.RequiredColumns {
		s := df.Col(col)
		if s.Err != nil {
			return nil, &LoadError{Source: source, Err: s.Err}
		}
		if models.NumericColumns[col] {
			nums[col] = s.Float()
		} else {
			text[col] = s.Records()
		}
	}

	n := df.Nrow()
	ds.Records = make([]models.Record, n)
	for i := 0; i < n; i++ {
		ds.Records[i] = models.Record{
			Location:      text[models.ColLocation][i],
			Scenario:      text[models.ColScenario][i],
			Initiative:    text[models.ColInitiative][i],
			CostSaving:    finite(nums[models.ColCostSaving][i]),
			GHGMitigated:  finite(nums[models.ColGHGMitigated][i]),
			MIRR:          finite(nums[models.ColMIRR][i]),
			Alignment:     text[models.ColAlignment][i],
			Customization: text[models.ColCustomization][i],
			Sellable:      text[models.ColSellable][i],
		}
	}

	return ds, nil
}

// normalizeRows pads or truncates rows to the header width, trims cells and
// drops rows that are entirely blank.
func normalizeRows(rows [][]string, width int) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, width)
		blank := true
		for i := 0; i < width && i < len(row); i++ {
			cells[i] = strings.TrimSpace(row[i])
			if cells[i] != "" {
				blank = false
			}
		}
		if !blank {
			out = append(out, cells)
		}
	}
	return out
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
