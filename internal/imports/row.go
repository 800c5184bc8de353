package imports

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/foodtrack-backend/internal/foods"
	pkgerrors "github.com/angelmondragon/foodtrack-backend/pkg/errors"
	"github.com/angelmondragon/foodtrack-backend/pkg/types"
)

// Row is one loosely typed input record, as decoded from JSON or CSV.
type Row map[string]any

// ParsedRow is either a ValidFoodRow or a RejectedRow.
type ParsedRow interface {
	parsedRow()
}

// ValidFoodRow is ready for insertion.
type ValidFoodRow struct {
	Index int
	Input foods.CreateFoodInput
}

// RejectedRow failed validation and is never stored.
type RejectedRow struct {
	Index  int
	Reason string
}

func (ValidFoodRow) parsedRow() {}
func (RejectedRow) parsedRow()  {}

var missingMarkers = map[string]struct{}{
	"":     {},
	"nan":  {},
	"null": {},
	"none": {},
}

type fieldError struct {
	field string
}

func (e fieldError) Error() string {
	return "invalid value for field " + e.field
}

// ParseRow validates a row without touching storage.
func ParseRow(index int, row Row) ParsedRow {
	clean := normalizeRow(row)

	for _, field := range []string{"barcode", "name"} {
		if _, ok := clean[field]; !ok {
			return RejectedRow{Index: index, Reason: "missing required field: " + field}
		}
	}

	input, err := buildInput(clean)
	if err != nil {
		return RejectedRow{Index: index, Reason: err.Error()}
	}
	if err := input.Validate(); err != nil {
		reason := err.Error()
		if typed := pkgerrors.As(err); typed != nil {
			reason = typed.Message()
		}
		return RejectedRow{Index: index, Reason: reason}
	}
	return ValidFoodRow{Index: index, Input: input}
}

// ParseRows parses every row, keeping input order.
func ParseRows(rows []Row) []ParsedRow {
	out := make([]ParsedRow, 0, len(rows))
	for i, row := range rows {
		out = append(out, ParseRow(i, row))
	}
	return out
}

func normalizeRow(row Row) Row {
	clean := make(Row, len(row))
	for key, value := range row {
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" || isMissing(value) {
			continue
		}
		clean[key] = value
	}
	return clean
}

func isMissing(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(val)
	case float32:
		return math.IsNaN(float64(val))
	case string:
		_, ok := missingMarkers[strings.ToLower(strings.TrimSpace(val))]
		return ok
	case json.Number:
		_, ok := missingMarkers[strings.ToLower(strings.TrimSpace(val.String()))]
		return ok
	}
	return false
}

func buildInput(row Row) (foods.CreateFoodInput, error) {
	var in foods.CreateFoodInput

	barcode, err := stringField(row, "barcode")
	if err != nil {
		return in, err
	}
	name, err := stringField(row, "name")
	if err != nil {
		return in, err
	}
	if barcode == nil {
		return in, fmt.Errorf("missing required field: barcode")
	}
	if name == nil {
		return in, fmt.Errorf("missing required field: name")
	}
	in.Barcode, in.Name = *barcode, *name

	for _, f := range []struct {
		name string
		dst  **string
	}{
		{"brand", &in.Brand},
		{"category", &in.Category},
		{"location", &in.Location},
	} {
		if *f.dst, err = stringField(row, f.name); err != nil {
			return in, err
		}
	}

	if in.Calories, err = intField(row, "calories"); err != nil {
		return in, err
	}
	if in.Quantity, err = intField(row, "quantity"); err != nil {
		return in, err
	}

	for _, f := range []struct {
		name string
		dst  **float64
	}{
		{"protein", &in.Protein},
		{"fat", &in.Fat},
		{"carbs", &in.Carbs},
		{"fiber", &in.Fiber},
		{"sugars", &in.Sugars},
		{"sodium", &in.Sodium},
	} {
		if *f.dst, err = floatField(row, f.name); err != nil {
			return in, err
		}
	}

	in.Allergens = allergensField(row["allergens"])
	in.ExpiryDate = dateField(row["expiry_date"])

	if in.Quantity == nil {
		q := foods.DefaultQuantity
		in.Quantity = &q
	}
	return in, nil
}

func stringField(row Row, field string) (*string, error) {
	raw, ok := row[field]
	if !ok {
		return nil, nil
	}

	var s string
	switch v := raw.(type) {
	case string:
		s = strings.TrimSpace(v)
	case json.Number:
		s = v.String()
	case float64:
		if math.IsInf(v, 0) {
			return nil, fieldError{field: field}
		}
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	default:
		return nil, fieldError{field: field}
	}
	if s == "" {
		return nil, nil
	}
	return &s, nil
}

func numberOf(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, !math.IsInf(v, 0)
	case float32:
		return float64(v), !math.IsInf(float64(v), 0)
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
	}
	return 0, false
}

func floatField(row Row, field string) (*float64, error) {
	raw, ok := row[field]
	if !ok {
		return nil, nil
	}
	f, ok := numberOf(raw)
	if !ok {
		return nil, fieldError{field: field}
	}
	return &f, nil
}

func intField(row Row, field string) (*int, error) {
	raw, ok := row[field]
	if !ok {
		return nil, nil
	}
	f, ok := numberOf(raw)
	if !ok || f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return nil, fieldError{field: field}
	}
	i := int(f)
	return &i, nil
}

func allergensField(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return []string{}
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return []string{s}
		}
		return []string{}
	case []string:
		return compactStrings(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if isMissing(item) {
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		return compactStrings(out)
	default:
		return []string{fmt.Sprint(v)}
	}
}

func compactStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// dateField degrades anything unparseable to an absent date rather than rejecting the row.
func dateField(raw any) *types.Date {
	switch v := raw.(type) {
	case string:
		d, err := types.ParseDate(v)
		if err != nil {
			return nil
		}
		return &d
	case time.Time:
		d := types.NewDate(v)
		return &d
	case types.Date:
		return &v
	}
	return nil
}
