package domain

import (
	"math"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSettlement(t *testing.T) {
	cases := []struct {
		name           string
		total          int64
		rate           string
		wantPayout     int64
		wantCommission int64
		wantErr        error
	}{
		{name: "hundred units", total: 100000, rate: "0.10", wantPayout: 90000, wantCommission: 10000},
		{name: "commission floors", total: 999, rate: "0.10", wantPayout: 900, wantCommission: 99},
		{name: "odd rate", total: 12345, rate: "0.075", wantPayout: 11420, wantCommission: 925},
		{name: "zero rate", total: 500, rate: "0", wantPayout: 500, wantCommission: 0},
		{name: "zero total", total: 0, rate: "0.10", wantPayout: 0, wantCommission: 0},
		{name: "negative total", total: -1, rate: "0.10", wantErr: ErrInvalidArgument},
		{name: "rate above one", total: 100, rate: "1.5", wantErr: ErrInvalidArgument},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payout, commission, err := SplitSettlement(tc.total, decimal.RequireFromString(tc.rate))
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantPayout, payout)
			assert.Equal(t, tc.wantCommission, commission)
		})
	}
}

func TestSplitSettlementSumsToTotal(t *testing.T) {
	for range 200 {
		total := int64(gofakeit.IntRange(0, 1_000_000_000))
		rate := decimal.NewFromFloat(gofakeit.Float64Range(0, 1)).Round(4)
		payout, commission, err := SplitSettlement(total, rate)
		require.NoError(t, err)
		require.Equal(t, total, payout+commission)
		require.GreaterOrEqual(t, commission, int64(0))
	}
}

func TestOrderTotal(t *testing.T) {
	total, err := OrderTotal(100, 1000)
	require.NoError(t, err)
	assert.EqualValues(t, 100000, total)

	_, err = OrderTotal(math.MaxInt64/2, 3)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = OrderTotal(-1, 3)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, "10.50", MinorToDecimal(1050).StringFixed(2))

	minor, err := DecimalToMinor(decimal.RequireFromString("10.5"))
	require.NoError(t, err)
	assert.EqualValues(t, 1050, minor)

	_, err = DecimalToMinor(decimal.RequireFromString("10.505"))
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = DecimalToMinor(decimal.RequireFromString("1e30"))
	require.ErrorIs(t, err, ErrInvalidArgument)

	minor, err = DecimalToMinor(decimal.RequireFromString("92233720368547758.07"))
	require.NoError(t, err)
	assert.EqualValues(t, math.MaxInt64, minor)

	_, err = DecimalToMinor(decimal.RequireFromString("92233720368547758.08"))
	require.ErrorIs(t, err, ErrInvalidArgument)
}
