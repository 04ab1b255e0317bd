package mockapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/Jathol7/oz-baby-toys-store/models"
)

// GET /products
func GetProducts(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := ProductFilter{Search: c.Query("search")}

		if raw := c.Query("sub_category_id"); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sub_category_id"})
				return
			}
			filter.SubCategoryID = uint(id)
		}
		if raw := c.Query("per_page"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid per_page"})
				return
			}
			filter.PerPage = n
		}

		products, err := repo.ListProducts(filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		if products == nil {
			products = []models.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"data": products})
	}
}

// GET /products/:slug
func GetProductBySlug(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")
		product, err := repo.GetProductBySlug(slug)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": product})
	}
}

// productForm reads the admin create/update form. The admin console submits
// multipart (the image rides along as a file part), but JSON is accepted too
// for scripted use.
func productForm(c *gin.Context) (models.Product, bool) {
	var p models.Product

	if c.ContentType() == "application/json" {
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return p, false
		}
		return p, true
	}

	p.Name = c.PostForm("name")
	p.Slug = c.PostForm("slug")
	p.Description = c.PostForm("description")
	if raw := c.PostForm("price"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return p, false
		}
		p.Price = models.Amount(f)
	}
	if raw := c.PostForm("stock_quantity"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock_quantity"})
			return p, false
		}
		p.Stock = n
	}
	if raw := c.PostForm("sub_category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sub_category_id"})
			return p, false
		}
		p.SubCategoryID = uint(id)
	}
	// The mock server does not host uploads; an uploaded image is
	// acknowledged by name only.
	if file, err := c.FormFile("image"); err == nil {
		p.Image = "/uploads/" + file.Filename
	}
	return p, true
}

// GET /admin/products
func GetAdminProducts(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "0"))
		products, err := repo.ListProducts(ProductFilter{PerPage: perPage})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		if products == nil {
			products = []models.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"data": products})
	}
}

// POST /admin/products
func CreateProduct(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := productForm(c)
		if !ok {
			return
		}
		if p.Name == "" || p.Slug == "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"message": "The given data was invalid.",
				"errors":  gin.H{"name": []string{"The name and slug fields are required."}},
			})
			return
		}
		if err := repo.CreateProduct(&p); err != nil {
			if errors.Is(err, ErrDuplicateSlug) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"message": "The given data was invalid.",
					"errors":  gin.H{"slug": []string{"The slug has already been taken."}},
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": p})
	}
}

// PUT /admin/products/:id
func UpdateProduct(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		p, ok := productForm(c)
		if !ok {
			return
		}
		p.ID = uint(id)
		if err := repo.UpdateProduct(&p); err != nil {
			if errors.Is(err, ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": p})
	}
}

// DELETE /admin/products/:id
func DeleteProduct(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		if err := repo.DeleteProduct(uint(id)); err != nil {
			if errors.Is(err, ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}

// GET /admin/products/export
func ExportProductsToExcel(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := repo.ListProducts(ProductFilter{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{"ID", "Name", "Slug", "Price", "Stock", "SubCategoryID", "Description", "Image", "CreatedAt"}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Slug)
			row.AddCell().SetValue(p.Price.Float64())
			row.AddCell().SetValue(p.Stock)
			row.AddCell().SetValue(p.SubCategoryID)
			row.AddCell().SetValue(p.Description)
			row.AddCell().SetValue(p.Image)
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
		}
	}
}
