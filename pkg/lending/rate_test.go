package lending

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestUtilizationRate(t *testing.T) {
	assert.True(t, UtilizationRate(decimal.Zero, d("10")).IsZero())
	assert.True(t, UtilizationRate(d("100"), decimal.Zero).IsZero())
	assert.Equal(t, "0.25", UtilizationRate(d("100"), d("25")).String())
	assert.Equal(t, "1", UtilizationRate(d("100"), d("150")).String())
}

func TestLinearModel(t *testing.T) {
	m := NewLinearModel(d("0.02"), d("0.1"))

	for _, tc := range []struct {
		u    string
		rate string
	}{
		{"0", "0.02"},
		{"0.5", "0.07"},
		{"1", "0.12"},
		{"1.5", "0.12"},
		{"-1", "0.02"},
	} {
		assert.Equal(t, tc.rate, m.BorrowRate(d(tc.u)).String(), "utilization %s", tc.u)
	}

	// pure function of utilization
	assert.Equal(t, m.BorrowRate(d("0.3")).String(), m.BorrowRate(d("0.3")).String())
}

func TestLinearModelCapped(t *testing.T) {
	m := NewLinearModel(d("5"), d("100"))
	assert.True(t, m.BorrowRate(d("1")).Equal(MaxBorrowRate))
}

func TestJumpModel(t *testing.T) {
	m := NewJumpModel(d("0.02"), d("0.1"), d("1"), d("0.8"))

	assert.Equal(t, "0.07", m.BorrowRate(d("0.5")).String())
	assert.Equal(t, "0.1", m.BorrowRate(d("0.8")).String())
	assert.Equal(t, "0.2", m.BorrowRate(d("0.9")).String())

	// no kink behaves as the linear model
	flat := NewJumpModel(d("0.02"), d("0.1"), d("1"), decimal.Zero)
	assert.Equal(t, "0.11", flat.BorrowRate(d("0.9")).String())
}
