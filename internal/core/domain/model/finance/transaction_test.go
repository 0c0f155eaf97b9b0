package finance_test

import (
	"testing"
	"time"

	"workshop/internal/core/domain/model/finance"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderIncome(t *testing.T) {
	orderID, err := kernel.UUIDFromString("3f2a8c10-0000-4000-8000-000000000001")
	require.NoError(t, err)

	tx, err := finance.NewOrderIncome(orderID, kernel.MustMoney("450.00"))

	require.NoError(t, err)
	assert.Equal(t, finance.Income, tx.Type())
	assert.Equal(t, finance.Paid, tx.Status())
	assert.Equal(t, finance.CategoryServices, tx.Category())
	assert.Equal(t, "Recebimento OS #3f2a8c10", tx.Description())
	assert.Equal(t, "450.00", tx.Amount().String())
	require.NotNil(t, tx.OrderID())
	assert.True(t, tx.OrderID().IsEqual(orderID))
	assert.Nil(t, tx.VoidedAt())

	_, err = finance.NewOrderIncome(kernel.UUID{}, kernel.ZeroMoney())
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewTransaction(t *testing.T) {
	_, err := finance.NewTransaction("REFUND", kernel.ZeroMoney(), finance.Paid, nil, "", "")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = finance.NewTransaction(finance.Expense, kernel.ZeroMoney(), finance.Void, nil, "", "")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	tx, err := finance.NewTransaction(finance.Expense, kernel.MustMoney("12"), finance.Pending, nil, "Parts", "supplier")
	require.NoError(t, err)
	assert.Nil(t, tx.OrderID())
}

func TestTransaction_MarkVoid(t *testing.T) {
	tx, err := finance.NewOrderIncome(kernel.NewUUID(), kernel.MustMoney("10"))
	require.NoError(t, err)
	at := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, tx.MarkVoid(at))
	assert.True(t, tx.IsVoid())
	require.NotNil(t, tx.VoidedAt())
	assert.True(t, at.Equal(*tx.VoidedAt()))

	assert.False(t, tx.MarkVoid(at.Add(time.Hour)), "voiding twice is a no-op")
	assert.True(t, at.Equal(*tx.VoidedAt()))
}

func TestTypeFromString(t *testing.T) {
	typ, err := finance.TypeFromString("income")
	require.NoError(t, err)
	assert.Equal(t, finance.Income, typ)

	_, err = finance.TypeFromString("gift")
	require.Error(t, err)
}
