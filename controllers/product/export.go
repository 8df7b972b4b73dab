package productController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/stitchcart/ecommerce-api/controllers/response"
	"github.com/stitchcart/ecommerce-api/models"
)

// GET /api/admin/products/export
// Streams the full catalog as an .xlsx workbook for operators.
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := models.ListAllProducts(db)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to fetch products")
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to create Excel sheet")
			return
		}

		headers := []string{
			"ID", "Title", "Slug", "Category", "Style", "Price", "DiscountPrice",
			"PercentageOff", "ShippingFee", "ShippingOutDays", "Inventory",
			"Featured", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Title)
			row.AddCell().SetValue(p.Slug)
			if p.Category != nil {
				row.AddCell().SetValue(p.Category.Name)
			} else {
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(p.Style)
			row.AddCell().SetValue(p.Price)
			row.AddCell().SetValue(p.DiscountPrice())
			row.AddCell().SetValue(p.PercentageOff)
			row.AddCell().SetValue(p.ShippingFee)
			row.AddCell().SetValue(p.ShippingOutDays)
			row.AddCell().SetValue(p.Inventory)
			row.AddCell().SetValue(p.FeaturedProduct)
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", `attachment; filename="products.xlsx"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := file.Write(c.Writer); err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to write Excel file")
		}
	}
}
