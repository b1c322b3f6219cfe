package calculator

import (
	"sort"

	"household/internal/core"
)

type (
	PersonSummary struct {
		ID        string  `json:"id"`
		Name      string  `json:"name"`
		TotalPaid float64 `json:"totalPaid"`
		Balance   float64 `json:"balance"`
	}

	CategoryTotal struct {
		Name  string  `json:"name"`
		Total float64 `json:"total"`
	}

	SubCategoryTotal struct {
		Name         string  `json:"name"`
		MainCategory string  `json:"mainCategory"`
		Total        float64 `json:"total"`
	}

	Summary struct {
		Month              string             `json:"month"`
		TotalSpending      float64            `json:"totalSpending"`
		Person1            PersonSummary      `json:"person1"`
		Person2            PersonSummary      `json:"person2"`
		MainCategoryTotals []CategoryTotal    `json:"mainCategoryTotals"`
		SubCategoryTotals  []SubCategoryTotal `json:"subCategoryTotals"`
	}
)

// ComputeSummary aggregates already-filtered expenses into totals per person,
// per main category and per subcategory. Breakdowns are ordered by total
// descending, ties by name ascending.
func ComputeSummary(expenses []core.Expense, person1, person2 core.Person, periodLabel string) Summary {
	var total, paid1, paid2 float64

	mainIdx := map[string]int{}
	mains := make([]CategoryTotal, 0)
	subIdx := map[string]int{}
	subs := make([]SubCategoryTotal, 0)

	for _, e := range expenses {
		total += e.Amount
		if e.PaidBy == person1.ID {
			paid1 += e.Amount
		} else {
			paid2 += e.Amount
		}

		mainName := e.MainCategoryName()
		if i, ok := mainIdx[mainName]; ok {
			mains[i].Total += e.Amount
		} else {
			mainIdx[mainName] = len(mains)
			mains = append(mains, CategoryTotal{Name: mainName, Total: e.Amount})
		}

		subName := e.SubCategoryName()
		if i, ok := subIdx[subName]; ok {
			subs[i].Total += e.Amount
		} else {
			subIdx[subName] = len(subs)
			subs = append(subs, SubCategoryTotal{Name: subName, MainCategory: mainName, Total: e.Amount})
		}
	}

	sort.SliceStable(mains, func(i, j int) bool {
		if mains[i].Total != mains[j].Total {
			return mains[i].Total > mains[j].Total
		}
		return mains[i].Name < mains[j].Name
	})
	sort.SliceStable(subs, func(i, j int) bool {
		if subs[i].Total != subs[j].Total {
			return subs[i].Total > subs[j].Total
		}
		if subs[i].Name != subs[j].Name {
			return subs[i].Name < subs[j].Name
		}
		return subs[i].MainCategory < subs[j].MainCategory
	})

	half := total / 2
	return Summary{
		Month:         periodLabel,
		TotalSpending: total,
		Person1: PersonSummary{
			ID:        person1.ID,
			Name:      person1.Name,
			TotalPaid: paid1,
			Balance:   paid1 - half,
		},
		Person2: PersonSummary{
			ID:        person2.ID,
			Name:      person2.Name,
			TotalPaid: paid2,
			Balance:   paid2 - half,
		},
		MainCategoryTotals: mains,
		SubCategoryTotals:  subs,
	}
}
