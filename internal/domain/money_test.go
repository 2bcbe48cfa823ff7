package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("defaults currency and rounds", func(t *testing.T) {
		m, err := NewMoney(decimal.RequireFromString("10.005"), "")
		require.NoError(t, err)
		assert.Equal(t, "SAR", m.Currency)
		assert.Equal(t, "10.01", m.Amount.StringFixed(2))
	})

	t.Run("upper-cases currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(5), " usd ")
		require.NoError(t, err)
		assert.Equal(t, "USD", m.Currency)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(-1), "SAR")
		assert.ErrorIs(t, err, ErrNegativeAmount)
	})

	t.Run("rejects bad currency", func(t *testing.T) {
		for _, code := range []string{"SA", "SARR", "S4R"} {
			_, err := NewMoney(decimal.NewFromInt(1), code)
			assert.ErrorIs(t, err, ErrInvalidCurrency, code)
		}
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	a := MustMoney("100.50", "SAR")
	b := MustMoney("0.50", "SAR")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Equal(MustMoney("101", "SAR")))

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.True(t, diff.Equal(MustMoney("100", "SAR")))

	_, err = b.Sub(a)
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = a.Add(MustMoney("1", "USD"))
	assert.ErrorIs(t, err, ErrCurrencyMismatch)

	tripled, err := b.Mul(decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.Equal(t, "1.50 SAR", tripled.String())

	_, err = b.Mul(decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestZeroMoney(t *testing.T) {
	assert.Equal(t, "SAR", ZeroMoney("").Currency)
	assert.Equal(t, "SAR", ZeroMoney("bogus").Currency)
	assert.True(t, ZeroMoney("usd").IsZero())
}
