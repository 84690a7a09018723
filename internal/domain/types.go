package domain

type ListingStatusType string

const (
	ListingStatusAvailable       ListingStatusType = "available"
	ListingStatusPendingDelivery ListingStatusType = "pending_delivery"
	ListingStatusDispatched      ListingStatusType = "dispatched"
	ListingStatusSuspended       ListingStatusType = "suspended"
	ListingStatusCompleted       ListingStatusType = "completed"
)

type GroupStatusType string

const (
	GroupStatusFunding         GroupStatusType = "funding"
	GroupStatusFullyFunded     GroupStatusType = "fully_funded"
	GroupStatusPendingDelivery GroupStatusType = "pending_delivery"
	GroupStatusCompleted       GroupStatusType = "completed"
	GroupStatusCancelled       GroupStatusType = "cancelled"
)

type LogisticsStatusType string

const (
	LogisticsStatusNone      LogisticsStatusType = "none"
	LogisticsStatusPacking   LogisticsStatusType = "packing"
	LogisticsStatusInTransit LogisticsStatusType = "in_transit"
	LogisticsStatusAtPickup  LogisticsStatusType = "at_pickup"
)

// IsSettable сообщает, может ли продавец выставить этот статус логистики. Порядок статусов не навязывается:
// любой из трех может быть выбран напрямую.
func (l LogisticsStatusType) IsSettable() bool {
	switch l {
	case LogisticsStatusPacking, LogisticsStatusInTransit, LogisticsStatusAtPickup:
		return true
	default:
		return false
	}
}

type OrderStatusType string

const (
	OrderStatusPendingPayment OrderStatusType = "pending_payment"
	OrderStatusPaid           OrderStatusType = "paid"
	OrderStatusCompleted      OrderStatusType = "completed"
	OrderStatusCancelled      OrderStatusType = "cancelled"
)

type TransactionType string

const (
	TransactionTypePayout     TransactionType = "payout"
	TransactionTypeCommission TransactionType = "commission"
)

type PaymentStatusType string

const (
	PaymentStatusSuccessful PaymentStatusType = "successful"
	PaymentStatusFailed     PaymentStatusType = "failed"
	PaymentStatusCancelled  PaymentStatusType = "cancelled"
	// PaymentStatusPending встречается только в ответах шлюза при сверке, в колбэках его не бывает.
	PaymentStatusPending PaymentStatusType = "pending"
)

// IsTerminal сообщает, является ли статус платежа окончательным.
func (p PaymentStatusType) IsTerminal() bool {
	return p == PaymentStatusSuccessful || p == PaymentStatusFailed || p == PaymentStatusCancelled
}

// IsDeclined платеж окончательно не прошел.
func (p PaymentStatusType) IsDeclined() bool {
	return p == PaymentStatusFailed || p == PaymentStatusCancelled
}

type NotificationKind string

const (
	NotificationThreshold90     NotificationKind = "threshold_90"
	NotificationFullyFunded     NotificationKind = "fully_funded"
	NotificationDispatched      NotificationKind = "dispatched"
	NotificationLogisticsUpdate NotificationKind = "logistics_update"
	NotificationFundsReleased   NotificationKind = "funds_released"
	NotificationGroupCancelled  NotificationKind = "group_cancelled"
)

type RoleType string

const (
	RoleBuyer  RoleType = "buyer"
	RoleSeller RoleType = "seller"
	RoleAdmin  RoleType = "admin"
)
