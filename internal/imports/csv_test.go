package imports

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	doc := "\ufeffBarcode,name,brand,allergens,quantity,expiry_date\n" +
		"111,Peanut Butter,Jif,peanuts;soy,2,2025-01-31\n" +
		"222,Bread,,gluten,,31-12-2024\n" +
		",Orphan,,,,\n"

	rows, err := ReadCSV(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "111", rows[0]["barcode"])
	assert.Equal(t, []any{"peanuts", "soy"}, rows[0]["allergens"])
	assert.Equal(t, "2", rows[0]["quantity"])

	_, hasBrand := rows[1]["brand"]
	assert.False(t, hasBrand, "empty cells are absent")
	assert.Equal(t, "gluten", rows[1]["allergens"])

	_, hasBarcode := rows[2]["barcode"]
	assert.False(t, hasBarcode)

	parsed := ParseRows(rows)
	first := mustValid(t, parsed[0])
	assert.Equal(t, []string{"peanuts", "soy"}, first.Input.Allergens)
	assert.Equal(t, 2, *first.Input.Quantity)
	second := mustValid(t, parsed[1])
	assert.Nil(t, second.Input.ExpiryDate)
	assert.Equal(t, 1, *second.Input.Quantity)
	assert.Equal(t, "missing required field: barcode", mustRejected(t, parsed[2]).Reason)
}

func TestReadCSVShortRowsAndEmptyInput(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = ReadCSV(strings.NewReader("barcode,name,brand\n1,A\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Row{"barcode": "1", "name": "A"}, rows[0])
}

func TestReadCSVReportsEveryOverlongLine(t *testing.T) {
	doc := "barcode,name\n1,A,extra\n2,B\n3,C,extra,more\n"

	_, err := ReadCSV(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), "line 4")
}
