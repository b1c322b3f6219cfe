package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"household/internal/calculator"
	"household/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "household.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func createGroup(t *testing.T, repo *SQLiteRepository, name string) core.Group {
	t.Helper()
	g, err := repo.CreateGroup(context.Background(), core.NewGroup{Name: name, Person1Name: "Ana", Person2Name: "Luis"})
	require.NoError(t, err)
	return g
}

func subCategoryByName(t *testing.T, repo *SQLiteRepository, groupID, name string) core.SubCategory {
	t.Helper()
	subs, err := repo.ListSubCategories(context.Background(), groupID)
	require.NoError(t, err)
	for _, s := range subs {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("subcategory %q not found", name)
	return core.SubCategory{}
}

func TestNewSQLiteRepository_Migrates(t *testing.T) {
	repo := newTestRepo(t)
	assert.Equal(t, uint(1), repo.SchemaVersion())
	require.NoError(t, repo.Ping(context.Background()))
}

func TestCreateGroup(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	g := createGroup(t, repo, "Home")

	assert.NotEmpty(t, g.ID)
	assert.Equal(t, "Home", g.Name)
	assert.False(t, g.IsDemo)
	require.Len(t, g.Persons, 2)
	assert.Equal(t, "Ana", g.Persons[0].Name)
	assert.Equal(t, "Luis", g.Persons[1].Name)

	mains, err := repo.ListMainCategories(ctx, g.ID)
	require.NoError(t, err)
	assert.Len(t, mains, len(core.DefaultTaxonomy))
	for i := 1; i < len(mains); i++ {
		assert.LessOrEqual(t, mains[i-1].Name, mains[i].Name)
	}
	for _, m := range mains {
		for i := 1; i < len(m.SubCategories); i++ {
			assert.LessOrEqual(t, m.SubCategories[i-1].Name, m.SubCategories[i].Name)
		}
	}

	t.Run("explicit id", func(t *testing.T) {
		id := "6f1c1a52-2f3b-4c59-9b8e-0d6f4c2b7a11"
		g, err := repo.CreateGroup(ctx, core.NewGroup{ID: id, Name: "Fixed", Person1Name: "A", Person2Name: "B"})
		require.NoError(t, err)
		assert.Equal(t, id, g.ID)

		_, err = repo.CreateGroup(ctx, core.NewGroup{ID: id, Name: "Again", Person1Name: "A", Person2Name: "B"})
		assert.ErrorIs(t, err, ErrConflict)
	})
}

func TestGetGroup_NotFound(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.GetGroup(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListGroups_ExcludesDemoNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	_, err := repo.EnsureDemoGroup(ctx)
	require.NoError(t, err)
	first := createGroup(t, repo, "First")
	second := createGroup(t, repo, "Second")

	groups, err := repo.ListGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, second.ID, groups[0].ID)
	assert.Equal(t, first.ID, groups[1].ID)
	assert.Len(t, groups[0].Persons, 2)

	all, err := repo.ListAllGroups(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, core.DemoGroupID, all[2].ID)
	assert.True(t, all[2].IsDemo)
	assert.Len(t, all[2].Persons, 2)
}

func TestDeleteGroup(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	g := createGroup(t, repo, "Home")
	sub := subCategoryByName(t, repo, g.ID, "Mercado")
	e, err := repo.CreateExpense(ctx, core.NewExpense{
		GroupID: g.ID, Amount: 10, SubCategoryID: sub.ID, PaidBy: g.Persons[0].ID, Date: core.NewDate(2024, 1, 1),
	})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteGroup(ctx, g.ID))

	_, err = repo.GetGroup(ctx, g.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetExpense(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	mains, err := repo.ListMainCategories(ctx, g.ID)
	require.NoError(t, err)
	assert.Empty(t, mains)

	assert.ErrorIs(t, repo.DeleteGroup(ctx, g.ID), ErrNotFound)

	demo, err := repo.EnsureDemoGroup(ctx)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.DeleteGroup(ctx, demo.ID), ErrDemoGroup)
}

func TestSeedCategories(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	g := createGroup(t, repo, "Home")

	before, err := repo.ListSubCategories(ctx, g.ID)
	require.NoError(t, err)

	seeded, err := repo.SeedCategories(ctx, g.ID, false)
	require.NoError(t, err)
	assert.False(t, seeded)

	seeded, err = repo.SeedCategories(ctx, g.ID, true)
	require.NoError(t, err)
	assert.True(t, seeded)

	after, err := repo.ListSubCategories(ctx, g.ID)
	require.NoError(t, err)
	assert.Len(t, after, len(before))
	assert.NotEqual(t, before[0].ID, after[0].ID)

	_, err = repo.CreateExpense(ctx, core.NewExpense{
		GroupID: g.ID, Amount: 5, SubCategoryID: after[0].ID, PaidBy: g.Persons[1].ID, Date: core.NewDate(2024, 1, 1),
	})
	require.NoError(t, err)
	_, err = repo.SeedCategories(ctx, g.ID, true)
	assert.ErrorIs(t, err, ErrInUse)

	_, err = repo.SeedCategories(ctx, "missing", false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEnsureDemoGroup_Idempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	g1, err := repo.EnsureDemoGroup(ctx)
	require.NoError(t, err)
	g2, err := repo.EnsureDemoGroup(ctx)
	require.NoError(t, err)

	assert.Equal(t, core.DemoGroupID, g1.ID)
	assert.Equal(t, g1.ID, g2.ID)
	assert.True(t, g2.IsDemo)
	assert.Equal(t, core.DemoPerson1, g2.Persons[0].Name)

	mains, err := repo.ListMainCategories(ctx, g1.ID)
	require.NoError(t, err)
	assert.Len(t, mains, len(core.DefaultTaxonomy))
}

func TestExpenseLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	g := createGroup(t, repo, "Home")
	other := createGroup(t, repo, "Other")
	mercado := subCategoryByName(t, repo, g.ID, "Mercado")
	internet := subCategoryByName(t, repo, g.ID, "Internet")
	note := "weekly"

	e, err := repo.CreateExpense(ctx, core.NewExpense{
		GroupID: g.ID, Amount: 42.5, SubCategoryID: mercado.ID, PaidBy: g.Persons[0].ID,
		Date: core.NewDate(2024, 2, 29), Note: &note,
	})
	require.NoError(t, err)
	assert.Equal(t, 42.5, e.Amount)
	assert.Equal(t, "2024-02-29", e.Date.String())
	assert.Equal(t, "Mercado", e.SubCategoryName())
	assert.Equal(t, "Alimentos", e.MainCategoryName())
	assert.Equal(t, "Ana", e.PayerName())
	assert.Equal(t, "weekly", e.NoteText())

	t.Run("rejects foreign references", func(t *testing.T) {
		_, err := repo.CreateExpense(ctx, core.NewExpense{
			GroupID: g.ID, Amount: 1, SubCategoryID: mercado.ID, PaidBy: other.Persons[0].ID, Date: core.NewDate(2024, 1, 1),
		})
		assert.ErrorIs(t, err, ErrForeignKey)

		foreignSub := subCategoryByName(t, repo, other.ID, "Mercado")
		_, err = repo.CreateExpense(ctx, core.NewExpense{
			GroupID: g.ID, Amount: 1, SubCategoryID: foreignSub.ID, PaidBy: g.Persons[0].ID, Date: core.NewDate(2024, 1, 1),
		})
		assert.ErrorIs(t, err, ErrForeignKey)

		_, err = repo.CreateExpense(ctx, core.NewExpense{
			GroupID: "missing", Amount: 1, SubCategoryID: mercado.ID, PaidBy: g.Persons[0].ID, Date: core.NewDate(2024, 1, 1),
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("partial update", func(t *testing.T) {
		amount := 60.0
		payer := g.Persons[1].ID
		updated, err := repo.UpdateExpense(ctx, e.ID, core.ExpenseUpdate{
			Amount: &amount, PaidBy: &payer, SubCategoryID: &internet.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, 60.0, updated.Amount)
		assert.Equal(t, "Luis", updated.PayerName())
		assert.Equal(t, "Servicios", updated.MainCategoryName())
		assert.Equal(t, "weekly", updated.NoteText())
		assert.Equal(t, e.Date, updated.Date)

		cleared, err := repo.UpdateExpense(ctx, e.ID, core.ExpenseUpdate{Note: core.OptionalString{Set: true}})
		require.NoError(t, err)
		assert.Nil(t, cleared.Note)

		_, err = repo.UpdateExpense(ctx, "missing", core.ExpenseUpdate{Amount: &amount})
		assert.ErrorIs(t, err, ErrNotFound)

		foreign := other.Persons[0].ID
		_, err = repo.UpdateExpense(ctx, e.ID, core.ExpenseUpdate{PaidBy: &foreign})
		assert.ErrorIs(t, err, ErrForeignKey)
	})

	t.Run("delete", func(t *testing.T) {
		deleted, err := repo.DeleteExpense(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, e.ID, deleted.ID)
		assert.Equal(t, g.ID, deleted.GroupID)

		_, err = repo.DeleteExpense(ctx, e.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListExpenses_RangeMatchesFilterByMonth(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	g := createGroup(t, repo, "Home")
	sub := subCategoryByName(t, repo, g.ID, "Mercado")

	for _, d := range []core.Date{
		core.NewDate(2024, 1, 31),
		core.NewDate(2024, 2, 1),
		core.NewDate(2024, 2, 15),
		core.NewDate(2024, 2, 29),
		core.NewDate(2024, 3, 1),
	} {
		_, err := repo.CreateExpense(ctx, core.NewExpense{
			GroupID: g.ID, Amount: 10, SubCategoryID: sub.ID, PaidBy: g.Persons[0].ID, Date: d,
		})
		require.NoError(t, err)
	}

	all, err := repo.ListExpenses(ctx, ExpenseFilter{GroupID: g.ID, Ascending: true})
	require.NoError(t, err)
	require.Len(t, all, 5)

	desc, err := repo.ListExpenses(ctx, ExpenseFilter{GroupID: g.ID})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", desc[0].Date.String())
	assert.Equal(t, "2024-01-31", desc[4].Date.String())

	p, err := calculator.ParsePeriod("2024-02")
	require.NoError(t, err)
	from, to, _ := p.Range()
	ranged, err := repo.ListExpenses(ctx, ExpenseFilter{GroupID: g.ID, From: from, To: to, Ascending: true})
	require.NoError(t, err)

	filtered, err := calculator.FilterByMonth(all, "2024-02")
	require.NoError(t, err)
	assert.Equal(t, filtered, ranged)
	assert.Len(t, ranged, 3)
}
