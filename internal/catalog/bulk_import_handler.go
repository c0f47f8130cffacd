package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"supplychain-backend/internal/auth"
	"supplychain-backend/internal/database"
	"supplychain-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type BulkImportResponse struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// POST /api/materials/import
// Uploads an .xlsx with columns: name | description | unit_price | quantity.
// The first row is treated as a header. Valid rows are inserted in a single
// transaction; rows that fail validation are reported and skipped.
func BulkImportMaterialsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "File upload failed: "+err.Error())
		}

		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Only .xlsx files are supported")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not open file")
		}
		defer file.Close()

		excelFile, err := excelize.OpenReader(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not read xlsx file")
		}
		defer excelFile.Close()

		sheetName := excelFile.GetSheetName(0)
		rows, err := excelFile.GetRows(sheetName)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not read sheet rows")
		}

		var materials []models.RawMaterial
		var rowErrors []string
		skipped := 0

		for i, row := range rows {
			if i == 0 {
				continue // header
			}
			rowNum := i + 1

			if len(row) < 3 || strings.TrimSpace(row[0]) == "" {
				skipped++
				rowErrors = append(rowErrors, fmt.Sprintf("Row %d: name and price columns are required", rowNum))
				continue
			}

			name := strings.TrimSpace(row[0])
			description := ""
			if len(row) > 1 {
				description = strings.TrimSpace(row[1])
			}

			price, err := decimal.NewFromString(strings.TrimSpace(row[2]))
			if err != nil || price.IsNegative() {
				skipped++
				rowErrors = append(rowErrors, fmt.Sprintf("Row %d: invalid unit price %q", rowNum, row[2]))
				continue
			}

			qty := 0
			if len(row) > 3 && strings.TrimSpace(row[3]) != "" {
				qty, err = strconv.Atoi(strings.TrimSpace(row[3]))
				if err != nil || qty < 0 {
					skipped++
					rowErrors = append(rowErrors, fmt.Sprintf("Row %d: invalid quantity %q", rowNum, row[3]))
					continue
				}
			}

			materials = append(materials, models.RawMaterial{
				SupplierID:        identity.UserID,
				Name:              name,
				Description:       description,
				UnitPrice:         price,
				QuantityAvailable: qty,
			})
		}

		if len(materials) > 0 {
			err = database.DB.Transaction(func(tx *gorm.DB) error {
				return tx.Create(&materials).Error
			})
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not import materials")
			}
		}

		return c.JSON(BulkImportResponse{
			Imported: len(materials),
			Skipped:  skipped,
			Errors:   rowErrors,
		})
	}
}
