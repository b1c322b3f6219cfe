// Package calculator contains the pure engines that turn a group's expenses
// into balances, monthly summaries and CSV exports.
package calculator

import "household/internal/core"

// Balances is the net position of each person. Positive means the person is
// owed money, negative means the person owes.
type Balances struct {
	Person1 float64 `json:"person1Balance"`
	Person2 float64 `json:"person2Balance"`
}

// ComputeBalances splits every expense 50/50 between the two persons.
//
// Algorithm:
//   - payer contributed the full amount but owes half, so gains +amount/2
//   - the other person owes half, so loses amount/2
//
// Any payer other than person1ID is attributed to person2. The caller is
// responsible for checking the group shape.
func ComputeBalances(expenses []core.Expense, person1ID, person2ID string) Balances {
	var p1 float64
	for _, e := range expenses {
		half := e.Amount / 2
		if e.PaidBy == person1ID {
			p1 += half
		} else {
			p1 -= half
		}
	}
	return Balances{Person1: p1, Person2: -p1}
}
