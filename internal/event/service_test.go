package event

import (
	"testing"

	"supplychain-backend/internal/models"
	"supplychain-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndList(t *testing.T) {
	db := testutil.OpenDB(t)

	require.NoError(t, Record(db, Options{
		ActorID:    1,
		EntityType: "order",
		EntityID:   10,
		Action:     models.EventActionCreated,
		Detail:     "Order placed",
		Payload:    map[string]int{"total": 50},
	}))
	require.NoError(t, Record(db, Options{
		ActorID:    2,
		EntityType: "shipment",
		EntityID:   3,
		Action:     models.EventActionStatusChanged,
		Detail:     "Shipment status preparing -> in_transit",
	}))

	all, err := List(db, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// newest first
	assert.Equal(t, "shipment", all[0].EntityType)
	assert.Equal(t, "order", all[1].EntityType)
	assert.JSONEq(t, `{"total":50}`, all[1].Payload)
	assert.Equal(t, "null", all[0].Payload)

	ordersOnly, err := List(db, "order", 0)
	require.NoError(t, err)
	require.Len(t, ordersOnly, 1)
	assert.Equal(t, models.EventActionCreated, ordersOnly[0].Action)
}

func TestListLimit(t *testing.T) {
	db := testutil.OpenDB(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, Record(db, Options{
			ActorID:    1,
			EntityType: "order",
			EntityID:   uint(i + 1),
			Action:     models.EventActionCreated,
		}))
	}

	limited, err := List(db, "", 3)
	require.NoError(t, err)
	assert.Len(t, limited, 3)
}
