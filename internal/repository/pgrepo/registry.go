package pgrepo

import (
	"fmt"

	"github.com/fsdevblog/groupbuy/internal/repository/repoargs"
	"github.com/fsdevblog/groupbuy/pkg/uow"
)

// Register регистрирует все postgres репозитории в единице работы.
func Register(u *uow.UnitOfWork) error {
	factories := map[repoargs.RepositoryName]uow.RepositoryFactory{
		repoargs.ListingRepoName: func(conn uow.DBTX) uow.Repository {
			return NewListingRepository(conn)
		},
		repoargs.GroupRepoName: func(conn uow.DBTX) uow.Repository {
			return NewGroupRepository(conn)
		},
		repoargs.OrderRepoName: func(conn uow.DBTX) uow.Repository {
			return NewOrderRepository(conn)
		},
		repoargs.TransactionRepoName: func(conn uow.DBTX) uow.Repository {
			return NewTransactionRepository(conn)
		},
		repoargs.NotificationRepoName: func(conn uow.DBTX) uow.Repository {
			return NewNotificationRepository(conn)
		},
		repoargs.ReviewRepoName: func(conn uow.DBTX) uow.Repository {
			return NewReviewRepository(conn)
		},
		repoargs.PaymentEventRepoName: func(conn uow.DBTX) uow.Repository {
			return NewPaymentEventRepository(conn)
		},
	}
	for name, factory := range factories {
		if err := u.Register(uow.RepositoryName(name), factory); err != nil {
			return fmt.Errorf("register %s repository: %w", name, err)
		}
	}
	return nil
}
