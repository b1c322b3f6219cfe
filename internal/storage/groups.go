package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"household/internal/core"
)

// CreateGroup inserts the group and its two persons in one transaction and
// then seeds the default taxonomy.
func (r *SQLiteRepository) CreateGroup(ctx context.Context, in core.NewGroup) (core.Group, error) {
	id := in.ID
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := r.now()

	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM household_groups WHERE id = ?", id).Scan(&exists)
		if err == nil {
			return fmt.Errorf("group %s: %w", id, ErrConflict)
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check group: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT INTO household_groups (id, name, is_demo, created_at) VALUES (?, ?, ?, ?)",
			id, in.Name, boolToInt(in.IsDemo), toMillis(createdAt),
		); err != nil {
			return fmt.Errorf("insert group: %w", err)
		}

		for i, name := range []string{in.Person1Name, in.Person2Name} {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO persons (id, group_id, name, position) VALUES (?, ?, ?, ?)",
				uuid.NewString(), id, name, i+1,
			); err != nil {
				return fmt.Errorf("insert person: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return core.Group{}, err
	}

	if _, err := r.SeedCategories(ctx, id, false); err != nil {
		return core.Group{}, fmt.Errorf("seed categories: %w", err)
	}

	slog.InfoContext(ctx, "Group created", "group_id", id, "is_demo", in.IsDemo)
	return r.GetGroup(ctx, id)
}

// GetGroup returns the group with its persons in creation order.
func (r *SQLiteRepository) GetGroup(ctx context.Context, id string) (core.Group, error) {
	var (
		g         core.Group
		isDemo    int
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, is_demo, created_at FROM household_groups WHERE id = ?", id,
	).Scan(&g.ID, &g.Name, &isDemo, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Group{}, fmt.Errorf("group %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Group{}, fmt.Errorf("get group: %w", err)
	}
	g.IsDemo = isDemo == 1
	g.CreatedAt = fromMillis(createdAt)

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, group_id FROM persons WHERE group_id = ? ORDER BY position", id)
	if err != nil {
		return core.Group{}, fmt.Errorf("list persons: %w", err)
	}
	defer rows.Close()

	g.Persons = make([]core.Person, 0, 2)
	for rows.Next() {
		var p core.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.GroupID); err != nil {
			return core.Group{}, fmt.Errorf("scan person: %w", err)
		}
		g.Persons = append(g.Persons, p)
	}
	if err := rows.Err(); err != nil {
		return core.Group{}, fmt.Errorf("iterate persons: %w", err)
	}
	return g, nil
}

// ListGroups returns every non-demo group, newest first.
func (r *SQLiteRepository) ListGroups(ctx context.Context) ([]core.Group, error) {
	return r.listGroups(ctx, false)
}

// ListAllGroups is ListGroups including the demo household.
func (r *SQLiteRepository) ListAllGroups(ctx context.Context) ([]core.Group, error) {
	return r.listGroups(ctx, true)
}

func (r *SQLiteRepository) listGroups(ctx context.Context, includeDemo bool) ([]core.Group, error) {
	where := "WHERE g.is_demo = 0"
	if includeDemo {
		where = ""
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT g.id, g.name, g.is_demo, g.created_at, p.id, p.name
		FROM household_groups g
		LEFT JOIN persons p ON p.group_id = g.id
		`+where+`
		ORDER BY g.created_at DESC, g.rowid DESC, p.position`)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	groups := make([]core.Group, 0)
	for rows.Next() {
		var (
			id, name           string
			isDemo             int
			createdAt          int64
			personID, personNm sql.NullString
		)
		if err := rows.Scan(&id, &name, &isDemo, &createdAt, &personID, &personNm); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		if len(groups) == 0 || groups[len(groups)-1].ID != id {
			groups = append(groups, core.Group{
				ID:        id,
				Name:      name,
				IsDemo:    isDemo == 1,
				CreatedAt: fromMillis(createdAt),
				Persons:   make([]core.Person, 0, 2),
			})
		}
		if personID.Valid {
			g := &groups[len(groups)-1]
			g.Persons = append(g.Persons, core.Person{ID: personID.String, Name: personNm.String, GroupID: id})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate groups: %w", err)
	}
	return groups, nil
}

// DeleteGroup removes a group and, through cascading keys, everything it owns.
func (r *SQLiteRepository) DeleteGroup(ctx context.Context, id string) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		var isDemo int
		err := tx.QueryRowContext(ctx, "SELECT is_demo FROM household_groups WHERE id = ?", id).Scan(&isDemo)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("group %s: %w", id, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("get group: %w", err)
		}
		if isDemo == 1 {
			return ErrDemoGroup
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM household_groups WHERE id = ?", id); err != nil {
			return fmt.Errorf("delete group: %w", err)
		}
		return nil
	})
}

// EnsureDemoGroup creates the demo household when missing and re-seeds its
// taxonomy. An existing taxonomy referenced by expenses is kept as is.
func (r *SQLiteRepository) EnsureDemoGroup(ctx context.Context) (core.Group, error) {
	g, err := r.GetGroup(ctx, core.DemoGroupID)
	switch {
	case errors.Is(err, ErrNotFound):
		g, err = r.CreateGroup(ctx, core.DemoGroup())
		if err != nil {
			return core.Group{}, fmt.Errorf("create demo group: %w", err)
		}
	case err != nil:
		return core.Group{}, err
	}

	if _, err := r.SeedCategories(ctx, g.ID, true); err != nil {
		if !errors.Is(err, ErrInUse) {
			return core.Group{}, fmt.Errorf("seed demo categories: %w", err)
		}
		slog.WarnContext(ctx, "Demo taxonomy kept, expenses reference it", "group_id", g.ID)
	}
	return g, nil
}
