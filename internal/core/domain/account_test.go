package domain_test

import (
	"testing"

	"github.com/shokoko2010/Elhamd-sub014/internal/apperrors"
	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountType_NormalBalance(t *testing.T) {
	want := map[domain.AccountType]domain.NormalBalance{
		domain.Asset:     domain.NormalDebit,
		domain.Expense:   domain.NormalDebit,
		domain.Liability: domain.NormalCredit,
		domain.Equity:    domain.NormalCredit,
		domain.Revenue:   domain.NormalCredit,
	}
	for typ, nb := range want {
		assert.True(t, typ.IsValid(), typ)
		assert.Equal(t, nb, typ.NormalBalance(), typ)
	}
	assert.False(t, domain.AccountType("INCOME").IsValid())
}

func TestAccount_ResolveNormalBalance(t *testing.T) {
	t.Run("derived when empty", func(t *testing.T) {
		acc := domain.Account{AccountType: domain.Liability}
		require.NoError(t, acc.ResolveNormalBalance())
		assert.Equal(t, domain.NormalCredit, acc.NormalBalance)
	})

	t.Run("matching is accepted", func(t *testing.T) {
		acc := domain.Account{AccountType: domain.Asset, NormalBalance: domain.NormalDebit}
		assert.NoError(t, acc.ResolveNormalBalance())
	})

	t.Run("contradiction is rejected", func(t *testing.T) {
		acc := domain.Account{AccountType: domain.Revenue, NormalBalance: domain.NormalDebit}
		err := acc.ResolveNormalBalance()
		assert.ErrorIs(t, err, domain.ErrInvalidNormalBalance)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("unknown type", func(t *testing.T) {
		acc := domain.Account{AccountType: "INCOME"}
		err := acc.ResolveNormalBalance()
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.NotErrorIs(t, err, domain.ErrInvalidNormalBalance)
	})
}

func TestAccount_SignedBalance(t *testing.T) {
	asset := domain.Account{AccountType: domain.Asset, NormalBalance: domain.NormalDebit}
	revenue := domain.Account{AccountType: domain.Revenue, NormalBalance: domain.NormalCredit}

	assert.Equal(t, domain.Money(400), asset.SignedBalance(500, 100))
	assert.Equal(t, domain.Money(-400), revenue.SignedBalance(500, 100))
	assert.Equal(t, domain.Money(50000), revenue.SignedBalance(0, 50000))
}
