package productController

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stitchcart/ecommerce-api/controllers/response"
	"github.com/stitchcart/ecommerce-api/models"
)

func uploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}

func saveUpload(c *gin.Context, subdir string) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", err
	}

	dir := filepath.Join(uploadDir(), subdir)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	base := strings.TrimSuffix(filepath.Base(file.Filename), ext)
	base = strings.ReplaceAll(base, " ", "_")
	filename := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), base, ext)

	if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
		return "", err
	}
	return fmt.Sprintf("/uploads/%s/%s", subdir, filename), nil
}

// POST /api/products/:id/images
func UploadProductImage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			response.Fail(c, http.StatusNotFound, "Product not found")
			return
		}

		url, err := saveUpload(c, "products")
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "Image is required")
			return
		}

		image := models.ProductImage{ProductID: product.ID, Image: url}
		if err := db.Create(&image).Error; err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to save image")
			return
		}

		response.Success(c, http.StatusCreated, "Product image has been uploaded", image)
	}
}

// POST /api/reviews/:id/images
func UploadReviewImage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var review models.ProductReview
		if err := db.First(&review, "id = ?", c.Param("id")).Error; err != nil {
			response.Fail(c, http.StatusNotFound, "Review not found")
			return
		}

		url, err := saveUpload(c, "reviews")
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "Image is required")
			return
		}

		image := models.ProductReviewImage{ProductReviewID: review.ID, Image: url}
		if err := db.Create(&image).Error; err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to save image")
			return
		}

		response.Success(c, http.StatusCreated, "Review image has been uploaded", image)
	}
}
