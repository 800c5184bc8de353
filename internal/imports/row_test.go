package imports

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustValid(t *testing.T, parsed ParsedRow) ValidFoodRow {
	t.Helper()
	valid, ok := parsed.(ValidFoodRow)
	require.Truef(t, ok, "expected valid row, got %#v", parsed)
	return valid
}

func mustRejected(t *testing.T, parsed ParsedRow) RejectedRow {
	t.Helper()
	rejected, ok := parsed.(RejectedRow)
	require.Truef(t, ok, "expected rejected row, got %#v", parsed)
	return rejected
}

func TestParseRowRequiresBarcodeAndName(t *testing.T) {
	rejected := mustRejected(t, ParseRow(1, Row{"name": "B"}))
	assert.Equal(t, 1, rejected.Index)
	assert.Equal(t, "missing required field: barcode", rejected.Reason)

	rejected = mustRejected(t, ParseRow(2, Row{"barcode": "2", "name": "  "}))
	assert.Equal(t, "missing required field: name", rejected.Reason)

	rejected = mustRejected(t, ParseRow(3, Row{"barcode": "NaN", "name": "C"}))
	assert.Equal(t, "missing required field: barcode", rejected.Reason)
}

func TestParseRowRejectsOverlongColumns(t *testing.T) {
	rejected := mustRejected(t, ParseRow(4, Row{"barcode": strings.Repeat("1", 129), "name": "A"}))
	assert.Equal(t, 4, rejected.Index)
	assert.Equal(t, "barcode must be at most 128 characters", rejected.Reason)

	rejected = mustRejected(t, ParseRow(5, Row{"barcode": "1", "name": "A", "category": strings.Repeat("c", 101)}))
	assert.Equal(t, "category must be at most 100 characters", rejected.Reason)

	mustValid(t, ParseRow(6, Row{"barcode": "1", "name": strings.Repeat("n", 255)}))
}

func TestParseRowMissingMarkersAreAbsent(t *testing.T) {
	valid := mustValid(t, ParseRow(0, Row{
		"barcode":  "1",
		"name":     "A",
		"brand":    "None",
		"category": "null",
		"calories": math.NaN(),
		"protein":  "nan",
		"location": nil,
		"quantity": "",
	}))

	assert.Nil(t, valid.Input.Brand)
	assert.Nil(t, valid.Input.Category)
	assert.Nil(t, valid.Input.Calories)
	assert.Nil(t, valid.Input.Protein)
	assert.Nil(t, valid.Input.Location)
	require.NotNil(t, valid.Input.Quantity)
	assert.Equal(t, 1, *valid.Input.Quantity, "quantity defaults to 1")
}

func TestParseRowCoercesNumbers(t *testing.T) {
	valid := mustValid(t, ParseRow(0, Row{
		"barcode":  5000112637922.0,
		"name":     "Cola",
		"calories": json.Number("42"),
		"quantity": "6",
		"sugars":   "10.6",
		"sodium":   0.01,
		"fat":      json.Number("0"),
	}))

	assert.Equal(t, "5000112637922", valid.Input.Barcode)
	assert.Equal(t, 42, *valid.Input.Calories)
	assert.Equal(t, 6, *valid.Input.Quantity)
	assert.InDelta(t, 10.6, *valid.Input.Sugars, 1e-9)
	assert.InDelta(t, 0.01, *valid.Input.Sodium, 1e-9)
	assert.Zero(t, *valid.Input.Fat)

	// pandas hands integral columns over as floats
	valid = mustValid(t, ParseRow(0, Row{"barcode": "1", "name": "A", "calories": 97.0, "quantity": -3.0}))
	assert.Equal(t, 97, *valid.Input.Calories)
	assert.Equal(t, -3, *valid.Input.Quantity)
}

func TestParseRowRejectsInvalidNumbers(t *testing.T) {
	tests := []struct {
		name   string
		row    Row
		reason string
	}{
		{name: "non numeric quantity", row: Row{"barcode": "3", "name": "C", "quantity": "bad"}, reason: "invalid value for field quantity"},
		{name: "fractional quantity", row: Row{"barcode": "3", "name": "C", "quantity": 1.5}, reason: "invalid value for field quantity"},
		{name: "fractional calories", row: Row{"barcode": "3", "name": "C", "calories": "12.5"}, reason: "invalid value for field calories"},
		{name: "non numeric float", row: Row{"barcode": "3", "name": "C", "protein": "lots"}, reason: "invalid value for field protein"},
		{name: "object barcode", row: Row{"barcode": map[string]any{"x": 1}, "name": "C"}, reason: "invalid value for field barcode"},
		{name: "bool brand", row: Row{"barcode": "3", "name": "C", "brand": true}, reason: "invalid value for field brand"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rejected := mustRejected(t, ParseRow(2, tt.row))
			assert.Equal(t, 2, rejected.Index)
			assert.Equal(t, tt.reason, rejected.Reason)
		})
	}
}

func TestParseRowAllergens(t *testing.T) {
	valid := mustValid(t, ParseRow(0, Row{"barcode": "1", "name": "A", "allergens": "peanuts"}))
	assert.Equal(t, []string{"peanuts"}, valid.Input.Allergens)

	valid = mustValid(t, ParseRow(0, Row{"barcode": "1", "name": "A", "allergens": []any{"milk", "", nil, " soy ", 7}}))
	assert.Equal(t, []string{"milk", "soy", "7"}, valid.Input.Allergens)

	valid = mustValid(t, ParseRow(0, Row{"barcode": "1", "name": "A"}))
	assert.NotNil(t, valid.Input.Allergens)
	assert.Empty(t, valid.Input.Allergens)
}

func TestParseRowExpiryDateDegradesToAbsent(t *testing.T) {
	valid := mustValid(t, ParseRow(0, Row{"barcode": "1", "name": "A", "expiry_date": "31-12-2024"}))
	assert.Nil(t, valid.Input.ExpiryDate)

	valid = mustValid(t, ParseRow(0, Row{"barcode": "1", "name": "A", "expiry_date": 20241231}))
	assert.Nil(t, valid.Input.ExpiryDate)

	valid = mustValid(t, ParseRow(0, Row{"barcode": "1", "name": "A", "expiry_date": "2024-12-31"}))
	require.NotNil(t, valid.Input.ExpiryDate)
	assert.Equal(t, "2024-12-31", valid.Input.ExpiryDate.String())

	valid = mustValid(t, ParseRow(0, Row{"barcode": "1", "name": "A", "expiry_date": "2024-12-31T10:00:00Z"}))
	require.NotNil(t, valid.Input.ExpiryDate)
	assert.Equal(t, "2024-12-31", valid.Input.ExpiryDate.String())
}

func TestParseRowsKeepsOrderAndIndexes(t *testing.T) {
	parsed := ParseRows([]Row{
		{"barcode": "1", "name": "A"},
		{"name": "B"},
		{"barcode": "3", "name": "C", "quantity": "bad"},
	})
	require.Len(t, parsed, 3)
	assert.Equal(t, 0, mustValid(t, parsed[0]).Index)
	assert.Equal(t, 1, mustRejected(t, parsed[1]).Index)
	assert.Equal(t, 2, mustRejected(t, parsed[2]).Index)
}

func TestParseRowNormalisesKeys(t *testing.T) {
	valid := mustValid(t, ParseRow(0, Row{" Barcode ": "1", "NAME": "A", "unknown": "ignored"}))
	assert.Equal(t, "1", valid.Input.Barcode)
	assert.Equal(t, "A", valid.Input.Name)
}
