package utils_test

import (
	"testing"

	"github.com/MikeRez0/ypcheckout/internal/core/domain"
	"github.com/MikeRez0/ypcheckout/internal/core/utils"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		amount   string
		expMinor int64
		expError error
	}{
		{amount: "1500", expMinor: 150000},
		{amount: "1500.00", expMinor: 150000},
		{amount: "0.01", expMinor: 1},
		{amount: "10.005", expMinor: 1001},
		{amount: "10.004", expMinor: 1000},
		{amount: "0.125", expMinor: 13},
		{amount: "0", expMinor: 0},
		{amount: "-1", expError: domain.ErrInvalidAmount},
	}

	for _, test := range tests {
		t.Run(test.amount, func(t *testing.T) {
			minor, err := utils.ToMinorUnits(decimal.MustParse(test.amount))
			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expMinor, minor)
		})
	}
}

func TestReconcile(t *testing.T) {
	totals := []string{"1500", "12000.50", "0.99", "99999.99", "1.005"}

	for _, total := range totals {
		t.Run(total, func(t *testing.T) {
			d := decimal.MustParse(total)
			minor, err := utils.ToMinorUnits(d)
			require.NoError(t, err)

			assert.NoError(t, utils.Reconcile(d, minor))
			assert.ErrorIs(t, utils.Reconcile(d, minor+1), domain.ErrAmountMismatch)
			assert.ErrorIs(t, utils.Reconcile(d, minor-1), domain.ErrAmountMismatch)
		})
	}
}

func TestRoundMoney(t *testing.T) {
	r, err := utils.RoundMoney(decimal.MustParse("270.005"))
	require.NoError(t, err)
	assert.Equal(t, 0, r.Cmp(decimal.MustParse("270.01")))

	back, err := utils.FromMinorUnits(150001)
	require.NoError(t, err)
	assert.Equal(t, "1500.01", back.String())
}
