package calculator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"household/internal/core"
)

func TestComputeBalances(t *testing.T) {
	tests := []struct {
		name     string
		expenses []core.Expense
		want     Balances
	}{
		{
			name: "no expenses",
			want: Balances{},
		},
		{
			name: "single expense paid by person1",
			expenses: []core.Expense{
				expense("e1", 100, alice, core.NewDate(2024, 1, 10), "Alimentos", "Mercado"),
			},
			want: Balances{Person1: 50, Person2: -50},
		},
		{
			name: "each pays once",
			expenses: []core.Expense{
				expense("e1", 100, alice, core.NewDate(2024, 1, 10), "Alimentos", "Mercado"),
				expense("e2", 50, bob, core.NewDate(2024, 1, 12), "Servicios", "Internet"),
			},
			want: Balances{Person1: 25, Person2: -25},
		},
		{
			name: "unknown payer counts as person2",
			expenses: []core.Expense{
				expense("e1", 40, core.Person{ID: "stranger"}, core.NewDate(2024, 1, 10), "Other", "Miscellaneous"),
			},
			want: Balances{Person1: -20, Person2: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeBalances(tt.expenses, alice.ID, bob.ID)
			assert.InDelta(t, tt.want.Person1, got.Person1, 1e-9)
			assert.InDelta(t, tt.want.Person2, got.Person2, 1e-9)
		})
	}
}

func randomExpenses(r *rand.Rand, n int) []core.Expense {
	out := make([]core.Expense, 0, n)
	for i := 0; i < n; i++ {
		payer := alice
		if r.Intn(2) == 1 {
			payer = bob
		}
		amount := float64(r.Intn(100000)+1) / 100
		date := core.NewDate(2024, r.Intn(12)+1, r.Intn(28)+1)
		out = append(out, expense("e", amount, payer, date, "Alimentos", "Mercado"))
	}
	return out
}

func TestComputeBalances_Antisymmetric(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		got := ComputeBalances(randomExpenses(r, r.Intn(40)), alice.ID, bob.ID)
		require.Equal(t, 0.0, got.Person1+got.Person2)
	}
}

func TestComputeBalances_AgreesWithSummary(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		expenses := randomExpenses(r, r.Intn(40))
		balances := ComputeBalances(expenses, alice.ID, bob.ID)
		summary := ComputeSummary(expenses, alice, bob, AllTime)
		require.InDelta(t, summary.Person1.Balance, balances.Person1, 1e-9)
		require.InDelta(t, summary.Person2.Balance, balances.Person2, 1e-9)
	}
}
