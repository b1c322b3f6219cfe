package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"household/internal/core"
)

func TestComputeSummary_Empty(t *testing.T) {
	s := ComputeSummary(nil, alice, bob, "2024-01")

	assert.Equal(t, "2024-01", s.Month)
	assert.Zero(t, s.TotalSpending)
	assert.Zero(t, s.Person1.TotalPaid)
	assert.Zero(t, s.Person1.Balance)
	assert.Zero(t, s.Person2.TotalPaid)
	assert.Zero(t, s.Person2.Balance)
	require.NotNil(t, s.MainCategoryTotals)
	require.NotNil(t, s.SubCategoryTotals)
	assert.Empty(t, s.MainCategoryTotals)
	assert.Empty(t, s.SubCategoryTotals)
}

func TestComputeSummary_SplitScenario(t *testing.T) {
	expenses := []core.Expense{
		expense("e1", 100, alice, core.NewDate(2024, 1, 5), "Alimentos", "Mercado"),
		expense("e2", 50, bob, core.NewDate(2024, 1, 9), "Servicios", "Internet"),
	}

	s := ComputeSummary(expenses, alice, bob, "2024-01")

	assert.Equal(t, 150.0, s.TotalSpending)
	assert.Equal(t, PersonSummary{ID: "p1", Name: "Alice", TotalPaid: 100, Balance: 25}, s.Person1)
	assert.Equal(t, PersonSummary{ID: "p2", Name: "Bob", TotalPaid: 50, Balance: -25}, s.Person2)
	assert.Equal(t, []CategoryTotal{
		{Name: "Alimentos", Total: 100},
		{Name: "Servicios", Total: 50},
	}, s.MainCategoryTotals)
	assert.Equal(t, []SubCategoryTotal{
		{Name: "Mercado", MainCategory: "Alimentos", Total: 100},
		{Name: "Internet", MainCategory: "Servicios", Total: 50},
	}, s.SubCategoryTotals)
}

func TestComputeSummary_Ordering(t *testing.T) {
	expenses := []core.Expense{
		expense("e1", 10, alice, core.NewDate(2024, 2, 1), "Transporte", "Taxis"),
		expense("e2", 30, bob, core.NewDate(2024, 2, 2), "Alimentos", "Snacks"),
		expense("e3", 20, alice, core.NewDate(2024, 2, 3), "Alimentos", "Mercado"),
		expense("e4", 50, bob, core.NewDate(2024, 2, 4), "Mascotas", "Veterinario"),
		expense("e5", 25, alice, core.NewDate(2024, 2, 5), "Servicios", "Agua"),
		expense("e6", 25, bob, core.NewDate(2024, 2, 6), "Other", "Uncategorized"),
	}

	s := ComputeSummary(expenses, alice, bob, "2024-02")

	names := func(rows []CategoryTotal) []string {
		out := make([]string, 0, len(rows))
		for _, r := range rows {
			out = append(out, r.Name)
		}
		return out
	}
	// Alimentos and Mascotas tie at 50, Other and Servicios at 25
	assert.Equal(t, []string{"Alimentos", "Mascotas", "Other", "Servicios", "Transporte"}, names(s.MainCategoryTotals))

	for i := 1; i < len(s.SubCategoryTotals); i++ {
		assert.GreaterOrEqual(t, s.SubCategoryTotals[i-1].Total, s.SubCategoryTotals[i].Total)
	}
	assert.Equal(t, "Veterinario", s.SubCategoryTotals[0].Name)
	assert.Equal(t, "Mascotas", s.SubCategoryTotals[0].MainCategory)
}

func TestComputeSummary_TotalsAddUp(t *testing.T) {
	expenses := []core.Expense{
		expense("e1", 12.34, alice, core.NewDate(2024, 3, 1), "Alimentos", "Mercado"),
		expense("e2", 56.78, bob, core.NewDate(2024, 3, 2), "Alimentos", "Carne"),
		expense("e3", 9.1, bob, core.NewDate(2024, 3, 3), "Viajes", "Vuelos"),
	}

	s := ComputeSummary(expenses, alice, bob, "2024-03")

	assert.InDelta(t, s.TotalSpending, s.Person1.TotalPaid+s.Person2.TotalPaid, 1e-9)
	assert.InDelta(t, 0, s.Person1.Balance+s.Person2.Balance, 1e-9)

	var mainSum, subSum float64
	for _, m := range s.MainCategoryTotals {
		mainSum += m.Total
	}
	for _, sc := range s.SubCategoryTotals {
		subSum += sc.Total
	}
	assert.InDelta(t, s.TotalSpending, mainSum, 1e-9)
	assert.InDelta(t, s.TotalSpending, subSum, 1e-9)
}
