package calculator

import "household/internal/core"

var (
	alice = core.Person{ID: "p1", Name: "Alice", GroupID: "g"}
	bob   = core.Person{ID: "p2", Name: "Bob", GroupID: "g"}
)

func category(main, sub string) *core.SubCategory {
	return &core.SubCategory{
		ID:           main + "/" + sub,
		Name:         sub,
		MainCategory: &core.MainCategory{ID: main, Name: main},
	}
}

func expense(id string, amount float64, payer core.Person, date core.Date, main, sub string) core.Expense {
	p := payer
	sc := category(main, sub)
	return core.Expense{
		ID:            id,
		Amount:        amount,
		PaidBy:        payer.ID,
		GroupID:       "g",
		Date:          date,
		SubCategoryID: sc.ID,
		SubCategory:   sc,
		Person:        &p,
	}
}
