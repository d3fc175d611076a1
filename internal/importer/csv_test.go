package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/tommy-vpr/sales-report/pkg/errors"
)

func TestParseCSV_FindsHeaderBelowPreamble(t *testing.T) {
	content := "Monthly Ad Performance - April 2025\n" +
		"Platform,Impressions,Cost,Clicks\n" +
		"Meta Ads,1000,50.00,25\n"

	rows, headers, unknown, err := parseCSV(content)
	require.NoError(t, err)
	assert.Equal(t, []string{"Platform", "Impressions", "Cost", "Clicks"}, headers)
	assert.Zero(t, unknown)
	require.Len(t, rows, 1)
	assert.Equal(t, "Meta Ads", rows[0]["Platform"])
	assert.Equal(t, "1000", rows[0]["Impressions"])
}

func TestParseCSV_QuotedThousandsSurvive(t *testing.T) {
	content := "Platform,Impressions,Cost\n" +
		"Meta Ads,\"1,234\",100\n"

	rows, _, _, err := parseCSV(content)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1,234", rows[0]["Impressions"])

	parsed := parseNumber(rows[0]["Impressions"])
	require.NotNil(t, parsed)
	assert.Equal(t, 1234.0, *parsed)
}

func TestParseCSV_StopsAtTotalsRow(t *testing.T) {
	content := "Platform,Impressions,Cost\n" +
		"Meta Ads,1000,50\n" +
		"TOTAL,9999,999\n" +
		"X Ads,500,25\n"

	rows, _, _, err := parseCSV(content)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Meta Ads", rows[0]["Platform"])
}

func TestParseCSV_StopsAtSeparatorRow(t *testing.T) {
	content := "Platform,Impressions,Cost\n" +
		"Meta Ads,1000,50\n" +
		",,,\n" +
		"X Ads,500,25\n"

	rows, _, _, err := parseCSV(content)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestParseCSV_CountsUnknownPlatforms(t *testing.T) {
	content := "Platform,Impressions,Cost\n" +
		"Google Ads,1000,50\n" +
		"Meta Ads,2000,75\n"

	rows, _, unknown, err := parseCSV(content)
	require.NoError(t, err)
	assert.Equal(t, 1, unknown)
	require.Len(t, rows, 1)
	assert.Equal(t, "Meta Ads", rows[0]["Platform"])
}

func TestParseCSV_MissingHeaderFails(t *testing.T) {
	_, _, _, err := parseCSV("just,some,random\ncells,with,nothing\n")
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestTokenizeLine_TrimsCells(t *testing.T) {
	values := tokenizeLine(` Meta Ads , "1,234" , 50.00 `)
	assert.Equal(t, []string{"Meta Ads", "1,234", "50.00"}, values)
}
