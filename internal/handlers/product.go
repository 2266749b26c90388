// internal/handlers/product.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/meridianmade/storefront/internal/services"
	"github.com/meridianmade/storefront/internal/utils"
)

type ProductHandler struct {
	catalog *services.CatalogService
	storage *services.StorageService
}

func NewProductHandler(catalog *services.CatalogService, storage *services.StorageService) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		storage: storage,
	}
}

// GET /v1/products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.catalog.ListActive(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Product")
		return
	}
	utils.SuccessResponse(c, gin.H{"products": products})
}

// GET /v1/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product id", nil)
		return
	}

	product, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Product")
		return
	}
	utils.SuccessResponse(c, product)
}

// GET /v1/admin/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	products, total, err := h.catalog.List(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Product")
		return
	}

	result := utils.CreatePaginationResult(products, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /v1/admin/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	product, err := h.catalog.Create(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Product")
		return
	}
	utils.CreatedResponse(c, product)
}

// PUT /v1/admin/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product id", nil)
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	product, err := h.catalog.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err, "Product")
		return
	}
	utils.SuccessResponse(c, product)
}

// DELETE /v1/admin/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product id", nil)
		return
	}

	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Product")
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// POST /v1/admin/products/upload-images
func (h *ProductHandler) UploadProductImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Invalid multipart form", nil)
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		utils.BadRequestResponse(c, "No images provided", nil)
		return
	}

	options := h.storage.GetDefaultUploadOptions("products")
	var results []services.UploadResult
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			utils.BadRequestResponse(c, "Unable to read uploaded file", nil)
			return
		}

		result, err := h.storage.UploadFile(file, header, options)
		file.Close()
		if err != nil {
			utils.BadRequestResponse(c, err.Error(), nil)
			return
		}
		results = append(results, *result)
	}

	utils.SuccessResponse(c, gin.H{"uploads": results})
}

// POST /v1/admin/products/upload-digital
func (h *ProductHandler) UploadDigitalFile(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "No file provided", nil)
		return
	}

	file, err := header.Open()
	if err != nil {
		utils.BadRequestResponse(c, "Unable to read uploaded file", nil)
		return
	}
	defer file.Close()

	// Digital goods stay private; buyers get presigned links after payment.
	result, err := h.storage.UploadFile(file, header, h.storage.GetDefaultUploadOptions("digital"))
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, result)
}
