package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Siparis-api/pkg/money"
)

func TestString(t *testing.T) {
	assert.Equal(t, "15.00", money.String(1500))
	assert.Equal(t, "-150.00", money.String(-15000))
	assert.Equal(t, "0.05", money.String(5))
	assert.Equal(t, "150.00 TRY", money.Format(15000, "try"))
}

func TestParseMinor(t *testing.T) {
	v, err := money.ParseMinor("12,5")
	require.NoError(t, err)
	assert.Equal(t, int64(1250), v)

	v, err = money.ParseMinor("0.10")
	require.NoError(t, err)
	assert.Equal(t, int64(10), v)

	_, err = money.ParseMinor("1.005")
	assert.Error(t, err)
	_, err = money.ParseMinor("abc")
	assert.Error(t, err)
}

func TestValidCurrency(t *testing.T) {
	assert.True(t, money.ValidCurrency("TRY"))
	assert.True(t, money.ValidCurrency("EUR"))
	assert.False(t, money.ValidCurrency("XXXX"))
	assert.False(t, money.ValidCurrency("ZZZ"))
}
