package commands

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"household/internal/core"
	"household/internal/storage"
)

func run(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--db", db, "--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func seedGroup(t *testing.T, db string) core.Group {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(db)
	require.NoError(t, err)
	defer repo.Close()
	g, err := repo.CreateGroup(context.Background(), core.NewGroup{Name: "Home", Person1Name: "Alice", Person2Name: "Bob"})
	require.NoError(t, err)
	return g
}

func TestMigrateAndSeedDemo(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	out, err := run(t, db, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "schema version 1")

	out, err = run(t, db, "seed-demo")
	require.NoError(t, err)
	assert.Contains(t, out, core.DemoGroupID)

	out, err = run(t, db, "groups", "list")
	require.NoError(t, err)
	assert.Equal(t, "no groups\n", out)
}

func TestExpenseAddAndReports(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")
	g := seedGroup(t, db)

	out, err := run(t, db, "groups", "list")
	require.NoError(t, err)
	assert.Contains(t, out, g.ID)
	assert.Contains(t, out, "Alice & Bob")

	out, err = run(t, db, "expense", "add", g.ID,
		"--amount", "100", "--category", "Mercdo", "--payer", "alise", "--date", "2024-02-10", "--note", "weekly")
	require.NoError(t, err)
	assert.Contains(t, out, "recorded 100.00 Alimentos / Mercado paid by Alice on 2024-02-10")

	_, err = run(t, db, "expense", "add", g.ID,
		"--amount", "50,00", "--category", "Entretenimiento/Cine", "--payer", "Bob", "--date", "2024-02-29")
	require.NoError(t, err)

	out, err = run(t, db, "summary", g.ID, "--month", "2024-02")
	require.NoError(t, err)
	assert.Contains(t, out, "Total spending: 150.00")
	assert.Contains(t, out, "Alimentos")
	assert.Regexp(t, `Alice\s+100\.00\s+25\.00`, out)

	out, err = run(t, db, "balances", g.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "25.00")
	assert.Contains(t, out, "-25.00")

	out, err = run(t, db, "export", g.ID, "--month", "2024-02", "-o", "-")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `"2024-02-10","Alimentos","Mercado","100.00","Alice","weekly"`, lines[1])

	target := filepath.Join(t.TempDir(), "out.csv")
	out, err = run(t, db, "export", g.ID, "--out", target)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 2 expenses")
	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "Date,Main Category"))
}

func TestExpenseAdd_Errors(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")
	g := seedGroup(t, db)

	_, err := run(t, db, "expense", "add", g.ID, "--amount", "10", "--category", "Actividades", "--payer", "Alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")
	assert.Contains(t, err.Error(), "Viajes/Actividades")

	_, err = run(t, db, "expense", "add", g.ID, "--amount", "10", "--category", "Mercado", "--payer", "Zed")
	assert.Error(t, err)

	_, err = run(t, db, "expense", "add", g.ID, "--amount", "-1", "--category", "Mercado", "--payer", "Alice")
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	_, err = run(t, db, "summary", g.ID)
	assert.Error(t, err, "month flag is required")

	_, err = run(t, db, "summary", "missing", "--month", "all")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
