// reader.go
package file

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/chater-marzougui/two-block-comparaison/src/utils"
)

const (
	// sourceLayout is the date+time convention of the delimited exports.
	sourceLayout = "02-01-2006 15:04:05"
	sourceDate   = "02-01-2006"

	// endOfDayMarker is the concentrator's "end of day" sentinel. It has no
	// representable datetime and historically flags a malformed export row.
	endOfDayMarker = "24:00:00"
)

// trailingSuffix matches the numeric suffix the spreadsheet export appends to
// channel names when identically-named columns repeat across time blocks.
var trailingSuffix = regexp.MustCompile(`\s*\d+$`)

// reservedNames are source fields, never channel names, and never suffixed.
var reservedNames = []string{"Date", "Time"}

// NormalizeColumnName strips the spreadsheet export's trailing numeric suffix
// and applies the delimited format's one-trailing-space convention, so the two
// formats produce equal keys for the same channel. It is idempotent.
func NormalizeColumnName(name string) string {
	normalized := trailingSuffix.ReplaceAllString(strings.TrimSpace(name), "")
	if !strings.HasSuffix(normalized, " ") && !utils.Contains(reservedNames, normalized) {
		normalized += " "
	}
	return normalized
}

// RowCounts reports how many rows of a file never made it into its frame.
type RowCounts struct {
	Excluded int // rows carrying the 24:00:00 end-of-day marker
	Dropped  int // rows whose Date+Time failed to parse
}

// ReadFile loads one export file into a frame indexed by a Datetime column,
// with the Date/Time source fields removed. Any failure covers the whole
// file; partial-file success is not attempted.
func ReadFile(path string) (dataframe.DataFrame, RowCounts, error) {
	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		records, err = readCSV(path)
	case ".xlsx":
		records, err = readXLSX(path)
	default:
		err = fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
	if err != nil {
		return dataframe.DataFrame{}, RowCounts{}, err
	}
	return indexByDatetime(records)
}

// readCSV reads a semicolon-delimited export. Concentrator CSVs predate UTF-8
// and arrive as ISO 8859-1 when channel names carry accents.
func readCSV(path string) ([][]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(raw) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("decode latin-1: %w", err)
		}
		raw = decoded
	}

	r := csv.NewReader(bytes.NewReader(raw))
	r.Comma = ';'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("empty file")
	}
	padRows(records)
	return records, nil
}

// readXLSX reads the first sheet of a spreadsheet export. The native date
// representation is reformatted into the delimited format's convention and
// column names are normalized before the shared parsing path runs.
func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, errors.New("empty sheet")
	}

	for j := range records[0] {
		records[0][j] = NormalizeColumnName(records[0][j])
	}
	padRows(records)

	if dateIdx := columnIndex(records[0], "Date"); dateIdx >= 0 {
		for _, row := range records[1:] {
			row[dateIdx] = reformatDate(row[dateIdx])
		}
	}
	return records, nil
}

// reformatDate renders a spreadsheet date cell as dd-mm-yyyy. Cells arrive as
// rendered datetimes or as raw Excel serials depending on the export tool.
func reformatDate(cell string) string {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02", sourceDate} {
		if t, err := time.Parse(layout, cell); err == nil {
			return t.Format(sourceDate)
		}
	}
	if serial, err := strconv.ParseFloat(cell, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t.Format(sourceDate)
		}
	}
	return cell
}

// indexByDatetime applies the shared path for both formats: filter the
// end-of-day marker rows, build the Datetime index from Date+Time, drop rows
// that fail to parse, and remove the Date/Time source columns.
func indexByDatetime(records [][]string) (dataframe.DataFrame, RowCounts, error) {
	header := records[0]
	dateIdx := columnIndex(header, "Date")
	timeIdx := columnIndex(header, "Time")
	if dateIdx < 0 || timeIdx < 0 {
		return dataframe.DataFrame{}, RowCounts{}, errors.New("missing Date or Time column")
	}

	channels := make([]int, 0, len(header)-2)
	for j := range header {
		if j != dateIdx && j != timeIdx {
			channels = append(channels, j)
		}
	}

	var counts RowCounts
	index := make([]string, 0, len(records)-1)
	columns := make([][]string, len(channels))
	for i := range columns {
		columns[i] = make([]string, 0, len(records)-1)
	}

	for _, row := range records[1:] {
		if row[timeIdx] == endOfDayMarker {
			counts.Excluded++
			continue
		}
		t, err := time.Parse(sourceLayout, row[dateIdx]+" "+row[timeIdx])
		if err != nil {
			counts.Dropped++
			continue
		}
		index = append(index, t.Format(utils.IndexLayout))
		for i, j := range channels {
			columns[i] = append(columns[i], row[j])
		}
	}
	if len(index) == 0 {
		return dataframe.DataFrame{}, counts, errors.New("no rows with a parseable timestamp")
	}

	cols := make([]series.Series, 0, len(channels)+1)
	cols = append(cols, series.New(index, series.String, "Datetime"))
	for i, j := range channels {
		cols = append(cols, series.New(columns[i], series.String, header[j]))
	}
	df := dataframe.New(cols...)
	if df.Err != nil {
		return dataframe.DataFrame{}, counts, fmt.Errorf("build frame: %w", df.Err)
	}
	return df, counts, nil
}

// padRows forces every row to the header's width so ragged export rows do not
// shift channel values between columns.
func padRows(records [][]string) {
	width := len(records[0])
	for i, row := range records[1:] {
		switch {
		case len(row) < width:
			padded := make([]string, width)
			copy(padded, row)
			records[i+1] = padded
		case len(row) > width:
			records[i+1] = row[:width]
		}
	}
}

func columnIndex(header []string, name string) int {
	for j, h := range header {
		if h == name {
			return j
		}
	}
	return -1
}
