package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.NewFromFloat(100.50), PEN)
	require.NoError(t, err)
	assert.Equal(t, PEN, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))

	_, err = NewMoney(decimal.Zero, "")
	assert.Error(t, err)
}

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("1234.56", USD)
	require.NoError(t, err)
	assert.Equal(t, "1234.56", m.StringFixed(2))

	_, err = NewMoneyFromString("not-a-number", USD)
	assert.Error(t, err)
}

func TestMoney_Add(t *testing.T) {
	a := NewMoneyPENFromFloat(100)
	b := NewMoneyPENFromFloat(25.5)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.NewFromFloat(125.5)))

	usd, _ := NewMoneyFromFloat(10, USD)
	_, err = a.Add(usd)
	assert.Error(t, err)
}

func TestMoney_Subtract(t *testing.T) {
	a := NewMoneyPENFromFloat(100)
	b := NewMoneyPENFromFloat(30)

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.NewFromInt(70)))
}

func TestMoney_Multiply(t *testing.T) {
	m := NewMoneyPENFromFloat(1000)
	result := m.Multiply(decimal.NewFromFloat(0.0005)).Multiply(decimal.NewFromInt(30))
	assert.True(t, result.Amount().Equal(decimal.NewFromInt(15)))
}

func TestMoney_Divide(t *testing.T) {
	m := NewMoneyPENFromFloat(90)
	result, err := m.Divide(decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.True(t, result.Amount().Equal(decimal.NewFromInt(30)))

	_, err = m.Divide(decimal.Zero)
	assert.Error(t, err)
}

func TestMoney_Comparisons(t *testing.T) {
	a := NewMoneyPENFromFloat(10)
	b := NewMoneyPENFromFloat(20)

	lt, err := a.LessThan(b)
	require.NoError(t, err)
	assert.True(t, lt)

	gt, err := b.GreaterThan(a)
	require.NoError(t, err)
	assert.True(t, gt)

	assert.True(t, a.Equals(NewMoneyPENFromFloat(10)))
	assert.False(t, a.Equals(b))
}

func TestMoney_ZeroAndSigns(t *testing.T) {
	z := ZeroPEN()
	assert.True(t, z.IsZero())
	assert.False(t, z.IsPositive())

	p := NewMoneyPENFromFloat(5)
	assert.True(t, p.IsPositive())
	assert.True(t, p.Negate().IsNegative())
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := NewMoneyPENFromFloat(1015.00)
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("150.75"))
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(150.75)))
	assert.Equal(t, DefaultCurrency, m.Currency())

	var nilMoney Money
	require.NoError(t, nilMoney.Scan(nil))
	assert.True(t, nilMoney.IsZero())
}

func TestMoney_String(t *testing.T) {
	m := NewMoneyPENFromFloat(1015)
	assert.Equal(t, "1015.00 PEN", m.String())
}
