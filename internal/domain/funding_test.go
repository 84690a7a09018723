package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrossedThreshold(t *testing.T) {
	cases := []struct {
		name      string
		oldFunded int64
		newFunded int64
		target    int64
		want      bool
	}{
		{name: "crosses exactly at 90%", oldFunded: 60, newFunded: 90, target: 100, want: true},
		{name: "jumps over", oldFunded: 10, newFunded: 100, target: 100, want: true},
		{name: "below", oldFunded: 10, newFunded: 89, target: 100, want: false},
		{name: "already above", oldFunded: 90, newFunded: 95, target: 100, want: false},
		{name: "small target rounds up", oldFunded: 8, newFunded: 9, target: 10, want: true},
		{name: "odd target", oldFunded: 5, newFunded: 6, target: 7, want: false},
		{name: "odd target crosses", oldFunded: 6, newFunded: 7, target: 7, want: true},
		{name: "zero target", oldFunded: 0, newFunded: 0, target: 0, want: false},
		{name: "huge target crosses", oldFunded: 0, newFunded: math.MaxInt64 - math.MaxInt64/10, target: math.MaxInt64, want: true},
		{name: "huge target below", oldFunded: 0, newFunded: math.MaxInt64 / 2, target: math.MaxInt64, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CrossedThreshold(tc.oldFunded, tc.newFunded, tc.target))
		})
	}
}
