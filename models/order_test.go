package models_test

import (
	"encoding/json"
	"testing"

	"storefront/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusTransitions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from, to models.OrderStatus
		ok       bool
	}{
		{models.OrderStatusPending, models.OrderStatusProcessing, true},
		{models.OrderStatusPending, models.OrderStatusCancelled, true},
		{models.OrderStatusProcessing, models.OrderStatusCompleted, true},
		{models.OrderStatusProcessing, models.OrderStatusCancelled, true},
		{models.OrderStatusPending, models.OrderStatusCompleted, false},
		{models.OrderStatusCompleted, models.OrderStatusProcessing, false},
		{models.OrderStatusCancelled, models.OrderStatusPending, false},
		{models.OrderStatusProcessing, models.OrderStatusPending, false},
		{models.OrderStatusPending, "shipped", false},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	t.Parallel()

	assert.True(t, models.OrderStatusCompleted.Terminal())
	assert.True(t, models.OrderStatusCancelled.Terminal())
	assert.False(t, models.OrderStatusPending.Terminal())
	assert.False(t, models.OrderStatus("bogus").Terminal())
	assert.False(t, models.OrderStatus("bogus").Valid())
}

func TestPriceMarshalsAsNumber(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(models.OrderItem{Name: "Mug", Price: decimal.RequireFromString("129.99"), Quantity: 2})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"price":129.99`)
}

func TestUserPasswordNeverSerialized(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(models.User{Name: "Ada", Email: "ada@example.com", Password: "$2a$hash"})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "hash")
	assert.NotContains(t, string(b), "password")
}
