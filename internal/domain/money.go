package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// MinorUnitsExp показатель степени минимальной единицы валюты (центы).
const MinorUnitsExp int32 = -2

var (
	// DefaultCommissionRate доля платформы от суммы закупки.
	DefaultCommissionRate = decimal.RequireFromString("0.10")

	minMinor = decimal.NewFromInt(math.MinInt64)
	maxMinor = decimal.NewFromInt(math.MaxInt64)
)

// OrderTotal стоимость quantity единиц по цене unitPrice. Возвращает ErrInvalidArgument при переполнении.
func OrderTotal(quantity, unitPrice int64) (int64, error) {
	if quantity < 0 || unitPrice < 0 {
		return 0, fmt.Errorf("%w: negative amount", ErrInvalidArgument)
	}
	if unitPrice != 0 && quantity > math.MaxInt64/unitPrice {
		return 0, fmt.Errorf("%w: amount overflow", ErrInvalidArgument)
	}
	return quantity * unitPrice, nil
}

// SplitSettlement делит сумму total на комиссию платформы и выплату продавцу. Комиссия округляется вниз до целой
// минимальной единицы, выплата получает остаток, поэтому payout + commission == total всегда.
func SplitSettlement(total int64, commissionRate decimal.Decimal) (payout, commission int64, err error) {
	if total < 0 {
		return 0, 0, fmt.Errorf("%w: negative total", ErrInvalidArgument)
	}
	if commissionRate.IsNegative() || commissionRate.GreaterThan(decimal.NewFromInt(1)) {
		return 0, 0, fmt.Errorf("%w: commission rate %s out of [0, 1]", ErrInvalidArgument, commissionRate)
	}
	commission = decimal.NewFromInt(total).Mul(commissionRate).Floor().IntPart()
	return total - commission, commission, nil
}

// MinorToDecimal переводит сумму в минимальных единицах в десятичное представление (1050 -> 10.50).
func MinorToDecimal(amount int64) decimal.Decimal {
	return decimal.New(amount, MinorUnitsExp)
}

// DecimalToMinor переводит десятичную сумму в минимальные единицы. Дробные центы и суммы за пределами int64
// считаются ошибкой.
func DecimalToMinor(amount decimal.Decimal) (int64, error) {
	shifted := amount.Shift(-MinorUnitsExp)
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, fmt.Errorf("%w: amount %s has fractional minor units", ErrInvalidArgument, amount)
	}
	if shifted.LessThan(minMinor) || shifted.GreaterThan(maxMinor) {
		return 0, fmt.Errorf("%w: amount %s out of range", ErrInvalidArgument, amount)
	}
	return shifted.IntPart(), nil
}
