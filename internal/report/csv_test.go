package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendlog/internal/core"
)

func TestWriteBreakdownCSV(t *testing.T) {
	rows := []core.CategoryAmount{
		{Category: "food", Amount: core.Money{Cents: 1500}},
		{Category: "transport", Amount: core.Money{Cents: 300}},
	}

	var b bytes.Buffer
	require.NoError(t, WriteBreakdownCSV(&b, rows))

	assert.Equal(t, "category,total\nfood,15.00\ntransport,3.00\n", b.String())
}

func TestWriteBreakdownCSVEmpty(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, WriteBreakdownCSV(&b, nil))
	assert.Equal(t, "category,total\n", b.String())
}

func TestWriteTrendCSV(t *testing.T) {
	rows := []core.MonthTotal{
		{Year: 2024, Month: 12, Total: core.Money{Cents: 1200}},
		{Year: 2025, Month: 1, Total: core.Money{Cents: 50}},
	}

	var b bytes.Buffer
	require.NoError(t, WriteTrendCSV(&b, rows))

	assert.Equal(t, "month,total\n2024-12,12.00\n2025-01,0.50\n", b.String())
}
