package mockapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Jathol7/oz-baby-toys-store/models"
)

// GET /categories
func GetCategories(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		withProducts := c.Query("with_products") == "true"
		categories, err := repo.ListCategories(withProducts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		if categories == nil {
			categories = []models.Category{}
		}
		c.JSON(http.StatusOK, gin.H{"data": categories})
	}
}

type CategoryInput struct {
	Name     string `json:"name" binding:"required"`
	IsActive bool   `json:"is_active"`
}

// GET /admin/categories
func GetAdminCategories(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := repo.ListCategories(false)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		if categories == nil {
			categories = []models.Category{}
		}
		c.JSON(http.StatusOK, gin.H{"data": categories})
	}
}

// POST /admin/categories
func CreateCategory(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"message": "The given data was invalid.",
				"errors":  gin.H{"name": []string{"The name field is required."}},
			})
			return
		}

		cat := models.Category{
			Name:     input.Name,
			Slug:     slugify(input.Name),
			IsActive: input.IsActive,
			SubCategories: []models.SubCategory{
				{Name: input.Name, Slug: slugify(input.Name)},
			},
		}
		if err := repo.CreateCategory(&cat); err != nil {
			if errors.Is(err, ErrDuplicateSlug) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"message": "The given data was invalid.",
					"errors":  gin.H{"name": []string{"The name has already been taken."}},
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": cat})
	}
}

// DELETE /admin/categories/:id
func DeleteCategory(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}
		if err := repo.DeleteCategory(uint(id)); err != nil {
			if errors.Is(err, ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
	}
}

func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(s), "-")
}
