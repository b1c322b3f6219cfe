package services

import (
	"context"
	"fmt"
	"log/slog"

	"household/internal/amqp"
	"household/internal/core"
	"household/internal/metrics"
	"household/internal/storage"
)

// GroupService manages groups and their category taxonomy.
type GroupService struct {
	repo     Repository
	taxonomy *TaxonomyCache
	events   eventEmitter
}

func NewGroupService(repo Repository) *GroupService {
	return &GroupService{repo: repo}
}

// WithPublisher announces an expense.deleted event for every expense removed
// together with a group. m may be nil.
func (s *GroupService) WithPublisher(publisher EventPublisher, m *metrics.Metrics) *GroupService {
	s.events = eventEmitter{publisher: publisher, metrics: m}
	return s
}

// WithTaxonomyCache serves category listings from c. A nil cache disables
// caching.
func (s *GroupService) WithTaxonomyCache(c *TaxonomyCache) *GroupService {
	s.taxonomy = c
	return s
}

func (s *GroupService) Create(ctx context.Context, in core.NewGroup) (core.Group, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return core.Group{}, err
	}
	g, err := s.repo.CreateGroup(ctx, in)
	if err != nil {
		return core.Group{}, fmt.Errorf("create group: %w", err)
	}
	return g, nil
}

func (s *GroupService) Get(ctx context.Context, id string) (core.Group, error) {
	return s.repo.GetGroup(ctx, id)
}

func (s *GroupService) List(ctx context.Context) ([]core.Group, error) {
	return s.repo.ListGroups(ctx)
}

func (s *GroupService) Delete(ctx context.Context, id string) error {
	var expenses []core.Expense
	if s.events.publisher != nil {
		var err error
		expenses, err = s.repo.ListExpenses(ctx, storage.ExpenseFilter{GroupID: id})
		if err != nil {
			return fmt.Errorf("list group expenses: %w", err)
		}
	}

	if err := s.repo.DeleteGroup(ctx, id); err != nil {
		return err
	}
	s.invalidate(id)
	for _, e := range expenses {
		s.events.publish(ctx, amqp.ExpenseDeleted, e.ID, id)
	}
	slog.InfoContext(ctx, "Group deleted", "group_id", id, "expenses", len(expenses))
	return nil
}

// EnsureDemo creates or refreshes the demo household.
func (s *GroupService) EnsureDemo(ctx context.Context) (core.Group, error) {
	g, err := s.repo.EnsureDemoGroup(ctx)
	if err != nil {
		return core.Group{}, err
	}
	s.invalidate(g.ID)
	return g, nil
}

func (s *GroupService) SeedCategories(ctx context.Context, groupID string, force bool) (bool, error) {
	seeded, err := s.repo.SeedCategories(ctx, groupID, force)
	if err != nil {
		return false, err
	}
	if seeded {
		s.invalidate(groupID)
	}
	return seeded, nil
}

func (s *GroupService) MainCategories(ctx context.Context, groupID string) ([]core.MainCategory, error) {
	if s.taxonomy != nil {
		if cats, ok := s.taxonomy.mainCategories(groupID); ok {
			return cats, nil
		}
	}
	if _, err := s.repo.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	cats, err := s.repo.ListMainCategories(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if s.taxonomy != nil {
		s.taxonomy.main.Set(groupID, cats)
	}
	return cats, nil
}

func (s *GroupService) SubCategories(ctx context.Context, groupID string) ([]core.SubCategory, error) {
	if s.taxonomy != nil {
		if subs, ok := s.taxonomy.subCategories(groupID); ok {
			return subs, nil
		}
	}
	if _, err := s.repo.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	subs, err := s.repo.ListSubCategories(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if s.taxonomy != nil {
		s.taxonomy.sub.Set(groupID, subs)
	}
	return subs, nil
}

func (s *GroupService) invalidate(groupID string) {
	if s.taxonomy != nil {
		s.taxonomy.invalidate(groupID)
	}
}
