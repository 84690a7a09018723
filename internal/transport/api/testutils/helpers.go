package testutils

import "strings"

// OverByteLimit строка, которая укладывается в limit рун, но превышает limit байт.
func OverByteLimit(limit int) string {
	return strings.Repeat("😁", limit/4+1) //nolint:mnd // 4 байта на руну
}
