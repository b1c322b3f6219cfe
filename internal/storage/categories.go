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

// SeedCategories installs the default taxonomy for a group. Without force it
// is a no-op when the group already has categories; with force the existing
// taxonomy is replaced. It reports whether categories were written.
func (r *SQLiteRepository) SeedCategories(ctx context.Context, groupID string, force bool) (bool, error) {
	seeded := false
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if err := groupExists(ctx, tx, groupID); err != nil {
			return err
		}

		var count int
		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM main_categories WHERE group_id = ?", groupID,
		).Scan(&count); err != nil {
			return fmt.Errorf("count categories: %w", err)
		}

		if count > 0 {
			if !force {
				return nil
			}
			var used int
			if err := tx.QueryRowContext(ctx,
				"SELECT COUNT(*) FROM expenses WHERE group_id = ?", groupID,
			).Scan(&used); err != nil {
				return fmt.Errorf("count expenses: %w", err)
			}
			if used > 0 {
				return ErrInUse
			}
			if _, err := tx.ExecContext(ctx, "DELETE FROM main_categories WHERE group_id = ?", groupID); err != nil {
				return fmt.Errorf("delete categories: %w", err)
			}
		}

		for _, tmpl := range core.DefaultTaxonomy {
			mainID := uuid.NewString()
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO main_categories (id, group_id, name) VALUES (?, ?, ?)",
				mainID, groupID, tmpl.Main,
			); err != nil {
				return fmt.Errorf("insert main category %s: %w", tmpl.Main, err)
			}
			for _, sub := range tmpl.Subs {
				if _, err := tx.ExecContext(ctx,
					"INSERT INTO sub_categories (id, group_id, main_category_id, name) VALUES (?, ?, ?, ?)",
					uuid.NewString(), groupID, mainID, sub,
				); err != nil {
					return fmt.Errorf("insert subcategory %s: %w", sub, err)
				}
			}
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if seeded {
		slog.InfoContext(ctx, "Categories seeded", "group_id", groupID, "force", force)
	}
	return seeded, nil
}

// ListMainCategories returns the group's main categories with their
// subcategories, both ordered by name.
func (r *SQLiteRepository) ListMainCategories(ctx context.Context, groupID string) ([]core.MainCategory, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.id, m.name, s.id, s.name
		FROM main_categories m
		LEFT JOIN sub_categories s ON s.main_category_id = m.id
		WHERE m.group_id = ?
		ORDER BY m.name, m.id, s.name`, groupID)
	if err != nil {
		return nil, fmt.Errorf("list main categories: %w", err)
	}
	defer rows.Close()

	out := make([]core.MainCategory, 0)
	for rows.Next() {
		var (
			mainID, mainName string
			subID, subName   sql.NullString
		)
		if err := rows.Scan(&mainID, &mainName, &subID, &subName); err != nil {
			return nil, fmt.Errorf("scan main category: %w", err)
		}
		if len(out) == 0 || out[len(out)-1].ID != mainID {
			out = append(out, core.MainCategory{
				ID:            mainID,
				Name:          mainName,
				GroupID:       groupID,
				SubCategories: make([]core.SubCategory, 0),
			})
		}
		if subID.Valid {
			m := &out[len(out)-1]
			m.SubCategories = append(m.SubCategories, core.SubCategory{
				ID:             subID.String,
				Name:           subName.String,
				GroupID:        groupID,
				MainCategoryID: mainID,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate main categories: %w", err)
	}
	return out, nil
}

// ListSubCategories returns the group's subcategories ordered by name, each
// with its main category.
func (r *SQLiteRepository) ListSubCategories(ctx context.Context, groupID string) ([]core.SubCategory, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.name, s.main_category_id, m.name
		FROM sub_categories s
		JOIN main_categories m ON m.id = s.main_category_id
		WHERE s.group_id = ?
		ORDER BY s.name, m.name`, groupID)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()

	out := make([]core.SubCategory, 0)
	for rows.Next() {
		var s core.SubCategory
		var mainName string
		if err := rows.Scan(&s.ID, &s.Name, &s.MainCategoryID, &mainName); err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		s.GroupID = groupID
		s.MainCategory = &core.MainCategory{ID: s.MainCategoryID, Name: mainName, GroupID: groupID}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subcategories: %w", err)
	}
	return out, nil
}

func groupExists(ctx context.Context, tx *sql.Tx, groupID string) error {
	var one int
	err := tx.QueryRowContext(ctx, "SELECT 1 FROM household_groups WHERE id = ?", groupID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("group %s: %w", groupID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("check group: %w", err)
	}
	return nil
}
