package memrepo

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/repository/repoargs"
)

type GroupRepository struct {
	s store
}

func (g *GroupRepository) Create(_ context.Context, args repoargs.CreateGroup) (*domain.Group, error) {
	var group domain.Group
	err := g.s.write(func(st *state) error {
		for _, existing := range st.groups {
			if existing.ListingID == args.ListingID && existing.Status == domain.GroupStatusFunding {
				return duplicate("funding group for listing", args.ListingID)
			}
		}
		now := g.s.clock()
		group = domain.Group{
			ID:              st.nextID("groups"),
			CreatedAt:       now,
			UpdatedAt:       now,
			ListingID:       args.ListingID,
			SellerID:        args.SellerID,
			TargetQuantity:  args.TargetQuantity,
			Participants:    make(map[int64]int64),
			Status:          domain.GroupStatusFunding,
			LogisticsStatus: domain.LogisticsStatusNone,
		}
		st.groups[group.ID] = group
		return nil
	})
	if err != nil {
		return nil, err
	}
	return copyGroup(group), nil
}

func (g *GroupRepository) FindByID(_ context.Context, id int64) (*domain.Group, error) {
	var group domain.Group
	err := g.s.read(func(st *state) error {
		found, ok := st.groups[id]
		if !ok {
			return notFound("group", id)
		}
		group = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return copyGroup(group), nil
}

func (g *GroupRepository) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Group, error) {
	return g.FindByID(ctx, id)
}

func (g *GroupRepository) FindByListingForUpdate(
	_ context.Context,
	listingID int64,
	statuses []domain.GroupStatusType,
) (*domain.Group, error) {
	var group *domain.Group
	err := g.s.read(func(st *state) error {
		for _, candidate := range st.groups {
			if candidate.ListingID != listingID || !slices.Contains(statuses, candidate.Status) {
				continue
			}
			if group == nil || candidate.ID > group.ID {
				group = copyGroup(candidate)
			}
		}
		if group == nil {
			return notFound("group for listing", listingID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

func (g *GroupRepository) AddContribution(_ context.Context, args repoargs.AddContribution) (*domain.Group, error) {
	return g.update(args.GroupID, func(group *domain.Group) error {
		if group.QuantityFunded+args.Quantity > group.TargetQuantity {
			return fmt.Errorf("[memrepo/adding %d to group %d] %w",
				args.Quantity, args.GroupID, domain.ErrInsufficientQuantity)
		}
		group.QuantityFunded += args.Quantity
		group.Participants[args.BuyerID] += args.Quantity
		return nil
	})
}

func (g *GroupRepository) UpdateState(_ context.Context, args repoargs.UpdateGroupState) (*domain.Group, error) {
	return g.update(args.ID, func(group *domain.Group) error {
		group.Status = args.Status
		group.LogisticsStatus = args.LogisticsStatus
		return nil
	})
}

func (g *GroupRepository) update(id int64, fn func(*domain.Group) error) (*domain.Group, error) {
	var group domain.Group
	err := g.s.write(func(st *state) error {
		found, ok := st.groups[id]
		if !ok {
			return notFound("group", id)
		}
		// fn может вернуть ошибку после частичного изменения участников.
		found.Participants = maps.Clone(found.Participants)
		if err := fn(&found); err != nil {
			return err
		}
		found.UpdatedAt = g.s.clock()
		st.groups[id] = found
		group = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return copyGroup(group), nil
}

func copyGroup(g domain.Group) *domain.Group {
	g.Participants = maps.Clone(g.Participants)
	if g.Participants == nil {
		g.Participants = make(map[int64]int64)
	}
	return &g
}
