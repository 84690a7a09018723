package payment

import "errors"

var ErrNoOrders = errors.New("no orders")
