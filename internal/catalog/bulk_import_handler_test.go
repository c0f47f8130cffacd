package catalog

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"supplychain-backend/internal/auth"
	"supplychain-backend/internal/config"
	"supplychain-backend/internal/database"
	"supplychain-backend/internal/models"
	"supplychain-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildXLSX(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestBulkImportMaterials(t *testing.T) {
	db := testutil.OpenDB(t)
	database.DB = db

	supplier := testutil.CreateUser(t, db, models.RoleSupplier, "supplier")
	cfg := &config.Config{JWTSecret: "import-test-secret-import-test-secret"}
	token, err := auth.GenerateToken(cfg.JWTSecret, supplier)
	require.NoError(t, err)

	app := fiber.New()
	app.Post("/api/materials/import", auth.JWTMiddleware(cfg), BulkImportMaterialsHandler())

	xlsx := buildXLSX(t, [][]any{
		{"name", "description", "unit_price", "quantity"},
		{"Steel", "cold rolled", "5.25", "100"},
		{"Copper", "", "8.00", ""},
		{"", "missing name", "1.00", "10"},
		{"Zinc", "bad price", "abc", "10"},
	})

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "materials.xlsx")
	require.NoError(t, err)
	_, err = part.Write(xlsx.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/materials/import", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result BulkImportResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 2, result.Skipped)
	assert.Len(t, result.Errors, 2)

	var materials []models.RawMaterial
	require.NoError(t, db.Where("supplier_id = ?", supplier.ID).
		Order("name asc").Find(&materials).Error)
	require.Len(t, materials, 2)
	assert.Equal(t, "Copper", materials[0].Name)
	assert.Equal(t, 0, materials[0].QuantityAvailable)
	assert.Equal(t, "Steel", materials[1].Name)
	assert.Equal(t, 100, materials[1].QuantityAvailable)
}

func TestBulkImportRejectsNonXLSX(t *testing.T) {
	db := testutil.OpenDB(t)
	database.DB = db

	supplier := testutil.CreateUser(t, db, models.RoleSupplier, "supplier")
	cfg := &config.Config{JWTSecret: "import-test-secret-import-test-secret"}
	token, err := auth.GenerateToken(cfg.JWTSecret, supplier)
	require.NoError(t, err)

	app := fiber.New()
	app.Post("/api/materials/import", auth.JWTMiddleware(cfg), BulkImportMaterialsHandler())

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "materials.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("name,price\nSteel,5"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/materials/import", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
