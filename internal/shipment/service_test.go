package shipment

import (
	"testing"
	"time"

	"supplychain-backend/internal/domainerr"
	"supplychain-backend/internal/models"
	"supplychain-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateShipment(t *testing.T) {
	db := testutil.OpenDB(t)
	manufacturer := testutil.CreateUser(t, db, models.RoleManufacturer, "manufacturer")
	warehouse := testutil.CreateUser(t, db, models.RoleWarehouse, "warehouse")
	product := testutil.CreateProduct(t, db, manufacturer.ID, "Widget", 3.00, 7.50)

	sh, err := CreateShipment(db, CreateShipmentInput{
		ManufacturerID:       manufacturer.ID,
		WarehouseID:          warehouse.ID,
		ProductID:            product.ID,
		Quantity:             40,
		ShippingAddress:      "7 Depot Lane",
		ExpectedDeliveryDate: time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ShipmentStatusPreparing, sh.Status)
	assert.Nil(t, sh.ActualDeliveryDate)
}

func TestCreateShipmentValidation(t *testing.T) {
	db := testutil.OpenDB(t)
	manufacturer := testutil.CreateUser(t, db, models.RoleManufacturer, "manufacturer")
	warehouse := testutil.CreateUser(t, db, models.RoleWarehouse, "warehouse")
	retailer := testutil.CreateUser(t, db, models.RoleRetailer, "retailer")
	product := testutil.CreateProduct(t, db, manufacturer.ID, "Widget", 3.00, 7.50)

	var de *domainerr.Error

	// target must actually be a warehouse
	_, err := CreateShipment(db, CreateShipmentInput{
		ManufacturerID: manufacturer.ID,
		WarehouseID:    retailer.ID,
		ProductID:      product.ID,
		Quantity:       1,
	})
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domainerr.CodeValidationFailed, de.Code)

	// the product must belong to the shipping manufacturer
	other := testutil.CreateUser(t, db, models.RoleManufacturer, "other")
	_, err = CreateShipment(db, CreateShipmentInput{
		ManufacturerID: other.ID,
		WarehouseID:    warehouse.ID,
		ProductID:      product.ID,
		Quantity:       1,
	})
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domainerr.CodeNotFound, de.Code)
}

func TestDeliveryCreditsWarehouseOnce(t *testing.T) {
	db := testutil.OpenDB(t)
	manufacturer := testutil.CreateUser(t, db, models.RoleManufacturer, "manufacturer")
	warehouse := testutil.CreateUser(t, db, models.RoleWarehouse, "warehouse")
	product := testutil.CreateProduct(t, db, manufacturer.ID, "Widget", 3.00, 7.50)

	sh, err := CreateShipment(db, CreateShipmentInput{
		ManufacturerID: manufacturer.ID,
		WarehouseID:    warehouse.ID,
		ProductID:      product.ID,
		Quantity:       40,
	})
	require.NoError(t, err)

	_, err = AdvanceShipmentStatus(db, sh.ID, manufacturer.ID, models.ShipmentStatusInTransit)
	require.NoError(t, err)

	delivered, err := AdvanceShipmentStatus(db, sh.ID, warehouse.ID, models.ShipmentStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.ShipmentStatusDelivered, delivered.Status)
	require.NotNil(t, delivered.ActualDeliveryDate)

	var item models.InventoryItem
	require.NoError(t, db.Where("owner_id = ? AND product_id = ?", warehouse.ID, product.ID).
		First(&item).Error)
	assert.Equal(t, 40, item.QuantityAvailable)

	// a repeated delivery confirmation is a no-op, never a double credit
	again, err := AdvanceShipmentStatus(db, sh.ID, warehouse.ID, models.ShipmentStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.ShipmentStatusDelivered, again.Status)

	require.NoError(t, db.Where("owner_id = ? AND product_id = ?", warehouse.ID, product.ID).
		First(&item).Error)
	assert.Equal(t, 40, item.QuantityAvailable)
}

func TestDeliveredIsTerminal(t *testing.T) {
	db := testutil.OpenDB(t)
	manufacturer := testutil.CreateUser(t, db, models.RoleManufacturer, "manufacturer")
	warehouse := testutil.CreateUser(t, db, models.RoleWarehouse, "warehouse")
	product := testutil.CreateProduct(t, db, manufacturer.ID, "Widget", 3.00, 7.50)

	sh, err := CreateShipment(db, CreateShipmentInput{
		ManufacturerID: manufacturer.ID,
		WarehouseID:    warehouse.ID,
		ProductID:      product.ID,
		Quantity:       5,
	})
	require.NoError(t, err)

	_, err = AdvanceShipmentStatus(db, sh.ID, warehouse.ID, models.ShipmentStatusDelivered)
	require.NoError(t, err)

	_, err = AdvanceShipmentStatus(db, sh.ID, warehouse.ID, models.ShipmentStatusInTransit)
	var de *domainerr.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domainerr.CodeInvalidTransition, de.Code)
}

func TestAdvanceShipmentStrangerGetsNotFound(t *testing.T) {
	db := testutil.OpenDB(t)
	manufacturer := testutil.CreateUser(t, db, models.RoleManufacturer, "manufacturer")
	warehouse := testutil.CreateUser(t, db, models.RoleWarehouse, "warehouse")
	stranger := testutil.CreateUser(t, db, models.RoleWarehouse, "stranger")
	product := testutil.CreateProduct(t, db, manufacturer.ID, "Widget", 3.00, 7.50)

	sh, err := CreateShipment(db, CreateShipmentInput{
		ManufacturerID: manufacturer.ID,
		WarehouseID:    warehouse.ID,
		ProductID:      product.ID,
		Quantity:       5,
	})
	require.NoError(t, err)

	_, err = AdvanceShipmentStatus(db, sh.ID, stranger.ID, models.ShipmentStatusInTransit)
	var de *domainerr.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domainerr.CodeNotFound, de.Code)
}

func TestListShipmentsBothSides(t *testing.T) {
	db := testutil.OpenDB(t)
	manufacturer := testutil.CreateUser(t, db, models.RoleManufacturer, "manufacturer")
	warehouse := testutil.CreateUser(t, db, models.RoleWarehouse, "warehouse")
	other := testutil.CreateUser(t, db, models.RoleWarehouse, "other")
	product := testutil.CreateProduct(t, db, manufacturer.ID, "Widget", 3.00, 7.50)

	_, err := CreateShipment(db, CreateShipmentInput{
		ManufacturerID: manufacturer.ID,
		WarehouseID:    warehouse.ID,
		ProductID:      product.ID,
		Quantity:       5,
	})
	require.NoError(t, err)

	forManufacturer, err := ListShipments(db, manufacturer.ID)
	require.NoError(t, err)
	assert.Len(t, forManufacturer, 1)

	forWarehouse, err := ListShipments(db, warehouse.ID)
	require.NoError(t, err)
	assert.Len(t, forWarehouse, 1)

	forOther, err := ListShipments(db, other.ID)
	require.NoError(t, err)
	assert.Empty(t, forOther)
}
