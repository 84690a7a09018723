package repoargs

import "github.com/fsdevblog/groupbuy/internal/domain"

type CreateGroup struct {
	ListingID      int64
	SellerID       int64
	TargetQuantity int64
}

type AddContribution struct {
	GroupID  int64
	BuyerID  int64
	Quantity int64
}

type UpdateGroupState struct {
	ID              int64
	Status          domain.GroupStatusType
	LogisticsStatus domain.LogisticsStatusType
}
