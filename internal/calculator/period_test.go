package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"household/internal/core"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		token   string
		want    Period
		wantErr bool
	}{
		{token: "all", want: Period{All: true}},
		{token: "ALL", want: Period{All: true}},
		{token: "All", want: Period{All: true}},
		{token: "2024-02", want: Period{Year: 2024, Month: time.February}},
		{token: "1999-12", want: Period{Year: 1999, Month: time.December}},
		{token: "2024-2", wantErr: true},
		{token: "2024-13", wantErr: true},
		{token: "2024-00", wantErr: true},
		{token: "24-02", wantErr: true},
		{token: "2024/02", wantErr: true},
		{token: "", wantErr: true},
		{token: "everything", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParsePeriod(tt.token)
			if tt.wantErr {
				require.ErrorIs(t, err, core.ErrInvalidMonthFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPeriod_Range(t *testing.T) {
	tests := []struct {
		token string
		first string
		last  string
	}{
		{"2024-02", "2024-02-01", "2024-02-29"},
		{"2023-02", "2023-02-01", "2023-02-28"},
		{"1900-02", "1900-02-01", "1900-02-28"},
		{"2000-02", "2000-02-01", "2000-02-29"},
		{"2024-04", "2024-04-01", "2024-04-30"},
		{"2024-12", "2024-12-01", "2024-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			p, err := ParsePeriod(tt.token)
			require.NoError(t, err)
			first, last, ok := p.Range()
			require.True(t, ok)
			assert.Equal(t, tt.first, first.String())
			assert.Equal(t, tt.last, last.String())
		})
	}

	_, _, ok := Period{All: true}.Range()
	assert.False(t, ok)
}

func TestFilterByMonth(t *testing.T) {
	expenses := []core.Expense{
		expense("jan31", 10, alice, core.NewDate(2024, 1, 31), "Alimentos", "Mercado"),
		expense("feb01", 20, bob, core.NewDate(2024, 2, 1), "Alimentos", "Mercado"),
		expense("feb29", 30, alice, core.NewDate(2024, 2, 29), "Alimentos", "Mercado"),
		expense("mar01", 40, bob, core.NewDate(2024, 3, 1), "Alimentos", "Mercado"),
	}

	t.Run("leap february is inclusive on both ends", func(t *testing.T) {
		got, err := FilterByMonth(expenses, "2024-02")
		require.NoError(t, err)
		ids := make([]string, 0, len(got))
		for _, e := range got {
			ids = append(ids, e.ID)
		}
		assert.Equal(t, []string{"feb01", "feb29"}, ids)
	})

	t.Run("all returns input unchanged", func(t *testing.T) {
		got, err := FilterByMonth(expenses, "all")
		require.NoError(t, err)
		assert.Equal(t, expenses, got)
	})

	t.Run("month without expenses", func(t *testing.T) {
		got, err := FilterByMonth(expenses, "2023-07")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := FilterByMonth(expenses, "2024-2")
		assert.ErrorIs(t, err, core.ErrInvalidMonthFormat)
	})
}

func TestPeriod_Label(t *testing.T) {
	p, err := ParsePeriod("2024-03")
	require.NoError(t, err)
	assert.Equal(t, "2024-03", p.Label())
	assert.Equal(t, "all", Period{All: true}.Label())
	assert.Equal(t, "expenses-2024-03.csv", ExportFilename(p))
	assert.Equal(t, "expenses-all.csv", ExportFilename(Period{All: true}))
}
