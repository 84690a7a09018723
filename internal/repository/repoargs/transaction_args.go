package repoargs

import "github.com/fsdevblog/groupbuy/internal/domain"

type CreateTransaction struct {
	GroupID       int64
	Type          domain.TransactionType
	BeneficiaryID int64
	Amount        int64
	Currency      string
}
