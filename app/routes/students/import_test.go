package students

import (
	"testing"

	"github.com/carlosmourajunior/FisioPilatesApp/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImportRowsValidRow(t *testing.T) {
	rows := [][]string{
		importColumns,
		{"Maria Silva", "maria@example.com", "11999990000", "1990-04-12", "PRE", "10", "", "60", "Pilates", "ana@clinic.com"},
	}

	parsed, rowErrors := parseImportRows(rows)
	require.Empty(t, rowErrors)
	require.Len(t, parsed, 1)

	row := parsed[0]
	assert.Equal(t, 2, row.Line)
	assert.Equal(t, "Maria Silva", row.Student.Name)
	require.NotNil(t, row.Student.Email)
	assert.Equal(t, "maria@example.com", *row.Student.Email)
	assert.Equal(t, models.BillingPrePaid, row.Student.PaymentType)
	require.NotNil(t, row.Student.PaymentDay)
	assert.Equal(t, 10, *row.Student.PaymentDay)
	assert.True(t, row.Student.Commission.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, "Pilates", row.ModalityName)
	assert.Equal(t, "ana@clinic.com", row.PhysioEmail)
}

func TestParseImportRowsDefaults(t *testing.T) {
	rows := [][]string{
		importColumns,
		{"João Souza", "", "", "", "pos"},
	}

	parsed, rowErrors := parseImportRows(rows)
	require.Empty(t, rowErrors)
	require.Len(t, parsed, 1)

	row := parsed[0]
	assert.Equal(t, models.BillingPostPaid, row.Student.PaymentType)
	assert.True(t, row.Student.Active)
	assert.True(t, row.Student.Commission.Equal(decimal.NewFromInt(50)), "commission defaults to 50")
	assert.Nil(t, row.Student.Email)
	assert.Nil(t, row.Student.PaymentDay)
}

func TestParseImportRowsRejectsBadRows(t *testing.T) {
	rows := [][]string{
		importColumns,
		{"", "no-name@example.com"},
		{"Ana", "", "", "", "MONTHLY"},
		{"Bia", "", "", "", "PRE", "32"},
		{"Caio", "", "", "", "PRE", "", "", "120"},
		{"Duda", "", "", "1990-13-40", "PRE"},
	}

	parsed, rowErrors := parseImportRows(rows)
	assert.Empty(t, parsed)
	require.Len(t, rowErrors, 5)

	assert.Equal(t, 2, rowErrors[0].Line)
	assert.Contains(t, rowErrors[0].Error, "name")
	assert.Contains(t, rowErrors[1].Error, "PRE or POS")
	assert.Contains(t, rowErrors[2].Error, "payment day")
	assert.Contains(t, rowErrors[3].Error, "commission")
	assert.Contains(t, rowErrors[4].Error, "date of birth")
}

func TestParseImportRowsSkipsBlankLines(t *testing.T) {
	rows := [][]string{
		importColumns,
		{"", "", "", ""},
		{"Elisa", "", "", "", "PRE"},
		{},
	}

	parsed, rowErrors := parseImportRows(rows)
	assert.Empty(t, rowErrors)
	require.Len(t, parsed, 1)
	assert.Equal(t, "Elisa", parsed[0].Student.Name)
	assert.Equal(t, 3, parsed[0].Line)
}
