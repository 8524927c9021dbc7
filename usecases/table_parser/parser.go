package table_parser

import (
	"encoding/csv"
	"regexp"
	"strconv"
	"strings"

	"github.com/checkmarble/heatmap-backend/models"
	"github.com/checkmarble/heatmap-backend/pure_utils"
)

const (
	ColumnHour        = "Hour of the day"
	ColumnDay         = "Day of the week"
	ColumnConversions = "Conversions"
	ColumnCost        = "Cost"

	// HeaderMarker identifies the header row when exported reports prepend banner lines.
	HeaderMarker = ColumnHour
)

var Columns = []string{ColumnHour, ColumnDay, ColumnConversions, ColumnCost}

var (
	leadingFloatRegexp = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
	leadingIntRegexp   = regexp.MustCompile(`^[+-]?\d+`)
)

// Parse never fails: unusable fields degrade to zero values and blank lines are skipped.
func Parse(text string) []models.Record {
	text = strings.TrimSpace(pure_utils.TrimBom(text))
	if text == "" {
		return []models.Record{}
	}
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}

	headerIndex := findHeader(lines)
	columns := columnPositions(splitLine(lines[headerIndex]))

	records := make([]models.Record, 0, len(lines)-headerIndex-1)
	for _, line := range lines[headerIndex+1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := splitLine(line)
		records = append(records, models.Record{
			Hour:        parseLeadingInt(fieldAt(values, columns, ColumnHour)),
			Day:         models.Weekday(fieldAt(values, columns, ColumnDay)),
			Conversions: nonNegative(parseLeadingFloat(fieldAt(values, columns, ColumnConversions))),
			Cost:        nonNegative(parseLeadingFloat(fieldAt(values, columns, ColumnCost))),
		})
	}
	return records
}

func findHeader(lines []string) int {
	for i, line := range lines {
		if strings.Contains(line, HeaderMarker) {
			return i
		}
	}
	return 0
}

// columnPositions maps each recognized column name to its index in the header row.
func columnPositions(headers []string) map[string]int {
	positions := make(map[string]int, len(Columns))
	for i, h := range headers {
		h = strings.TrimSpace(strings.ReplaceAll(h, `"`, ""))
		for _, c := range Columns {
			if h == c {
				positions[c] = i
			}
		}
	}
	return positions
}

func fieldAt(values []string, positions map[string]int, column string) string {
	i, ok := positions[column]
	if !ok || i >= len(values) {
		return ""
	}
	return strings.TrimSpace(values[i])
}

func splitLine(line string) []string {
	r := csv.NewReader(strings.NewReader(line))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	fields, err := r.Read()
	if err != nil {
		return strings.Split(line, ",")
	}
	return fields
}

func parseLeadingFloat(s string) float64 {
	match := leadingFloatRegexp.FindString(s)
	if match == "" {
		return 0
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return f
}

func parseLeadingInt(s string) int {
	match := leadingIntRegexp.FindString(s)
	if match == "" {
		return 0
	}
	i, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return i
}

func nonNegative(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}
