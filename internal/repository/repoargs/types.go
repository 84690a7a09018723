package repoargs

type RepositoryName string

const (
	ListingRepoName      RepositoryName = "listing"
	GroupRepoName        RepositoryName = "group"
	OrderRepoName        RepositoryName = "order"
	TransactionRepoName  RepositoryName = "transaction"
	NotificationRepoName RepositoryName = "notification"
	ReviewRepoName       RepositoryName = "review"
	PaymentEventRepoName RepositoryName = "payment_event"
)
