package pgrepo

import (
	"context"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/repository/repoargs"
	"github.com/fsdevblog/groupbuy/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const groupColumns = `id, created_at, updated_at, listing_id, seller_id, target_quantity, quantity_funded,
	status, logistics_status`

// GroupRepository хранит записи групп в group_buys, а доли участников в group_participants.
type GroupRepository struct {
	conn uow.DBTX
}

func NewGroupRepository(conn uow.DBTX) *GroupRepository {
	return &GroupRepository{conn: conn}
}

func (g *GroupRepository) Create(ctx context.Context, args repoargs.CreateGroup) (*domain.Group, error) {
	row := g.conn.QueryRow(ctx, `
		INSERT INTO group_buys (listing_id, seller_id, target_quantity, status, logistics_status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+groupColumns,
		args.ListingID, args.SellerID, args.TargetQuantity,
		string(domain.GroupStatusFunding), string(domain.LogisticsStatusNone),
	)
	group, err := scanGroup(row)
	if err != nil {
		return nil, convertErr(err, "creating group for listing %d", args.ListingID)
	}
	return group, nil
}

func (g *GroupRepository) FindByID(ctx context.Context, id int64) (*domain.Group, error) {
	return g.find(ctx, `SELECT `+groupColumns+` FROM group_buys WHERE id = $1`, id)
}

func (g *GroupRepository) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Group, error) {
	return g.find(ctx, `SELECT `+groupColumns+` FROM group_buys WHERE id = $1 FOR UPDATE`, id)
}

func (g *GroupRepository) FindByListingForUpdate(
	ctx context.Context,
	listingID int64,
	statuses []domain.GroupStatusType,
) (*domain.Group, error) {
	raw := make([]string, len(statuses))
	for i, s := range statuses {
		raw[i] = string(s)
	}
	return g.find(ctx, `
		SELECT `+groupColumns+` FROM group_buys
		WHERE listing_id = $1 AND status::text = ANY($2)
		ORDER BY id DESC
		LIMIT 1
		FOR UPDATE`,
		listingID, raw,
	)
}

// AddContribution увеличивает собранное количество группы и долю участника. CHECK ограничение
// quantity_funded <= target_quantity превращается в domain.ErrInsufficientQuantity.
func (g *GroupRepository) AddContribution(ctx context.Context, args repoargs.AddContribution) (*domain.Group, error) {
	group, err := scanGroup(g.conn.QueryRow(ctx, `
		UPDATE group_buys SET quantity_funded = quantity_funded + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+groupColumns,
		args.GroupID, args.Quantity,
	))
	if err != nil {
		return nil, convertErr(err, "adding %d to group %d", args.Quantity, args.GroupID)
	}

	if _, err = g.conn.Exec(ctx, `
		INSERT INTO group_participants (group_id, buyer_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (group_id, buyer_id) DO UPDATE SET quantity = group_participants.quantity + EXCLUDED.quantity`,
		args.GroupID, args.BuyerID, args.Quantity,
	); err != nil {
		return nil, convertErr(err, "upserting participant %d of group %d", args.BuyerID, args.GroupID)
	}

	if group.Participants, err = g.participants(ctx, group.ID); err != nil {
		return nil, err
	}
	return group, nil
}

func (g *GroupRepository) UpdateState(ctx context.Context, args repoargs.UpdateGroupState) (*domain.Group, error) {
	group, err := scanGroup(g.conn.QueryRow(ctx, `
		UPDATE group_buys SET status = $2, logistics_status = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING `+groupColumns,
		args.ID, string(args.Status), string(args.LogisticsStatus),
	))
	if err != nil {
		return nil, convertErr(err, "updating group %d state to `%s/%s`", args.ID, args.Status, args.LogisticsStatus)
	}
	if group.Participants, err = g.participants(ctx, group.ID); err != nil {
		return nil, err
	}
	return group, nil
}

func (g *GroupRepository) find(ctx context.Context, query string, args ...any) (*domain.Group, error) {
	group, err := scanGroup(g.conn.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, convertErr(err, "finding group by `%v`", args[0])
	}
	if group.Participants, err = g.participants(ctx, group.ID); err != nil {
		return nil, err
	}
	return group, nil
}

func (g *GroupRepository) participants(ctx context.Context, groupID int64) (map[int64]int64, error) {
	rows, err := g.conn.Query(ctx,
		`SELECT buyer_id, quantity FROM group_participants WHERE group_id = $1`, groupID)
	if err != nil {
		return nil, convertErr(err, "getting participants of group %d", groupID)
	}
	defer rows.Close()

	participants := make(map[int64]int64)
	for rows.Next() {
		var buyerID, quantity int64
		if err = rows.Scan(&buyerID, &quantity); err != nil {
			return nil, convertErr(err, "scanning participant of group %d", groupID)
		}
		participants[buyerID] = quantity
	}
	if err = rows.Err(); err != nil {
		return nil, convertErr(err, "reading participants of group %d", groupID)
	}
	return participants, nil
}

func scanGroup(row pgx.Row) (*domain.Group, error) {
	var group domain.Group
	var status, logistics string
	if err := row.Scan(
		&group.ID,
		&group.CreatedAt,
		&group.UpdatedAt,
		&group.ListingID,
		&group.SellerID,
		&group.TargetQuantity,
		&group.QuantityFunded,
		&status,
		&logistics,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	group.Status = domain.GroupStatusType(status)
	group.LogisticsStatus = domain.LogisticsStatusType(logistics)
	return &group, nil
}
