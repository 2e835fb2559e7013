package handler

import (
	catalogapp "github.com/ecommerce/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	BaseHandler
	products *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products *catalogapp.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		BaseHandler: BaseHandler{logger: logger},
		products:    products,
	}
}

// Create godoc
// @ID           createProduct
// @Summary      Create a product
// @Description  SKU is stored uppercase and must be unique
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateProductRequest true "Product data"
// @Success      201 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}
	product, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Product created successfully", product)
}

// List godoc
// @ID           listProducts
// @Summary      List products
// @Description  Active products with optional category, price range and text search
// @Tags         products
// @Produce      json
// @Param        page      query int    false "Page number" default(1)
// @Param        limit     query int    false "Page size" default(10) maximum(100)
// @Param        category  query string false "Case-insensitive category match"
// @Param        minPrice  query number false "Inclusive lower price bound"
// @Param        maxPrice  query number false "Inclusive upper price bound"
// @Param        search    query string false "Full-text search on name, description and tags"
// @Param        sortBy    query string false "Sort field" Enums(createdAt, updatedAt, name, price, stock, sku, category, brand, ratings.average)
// @Param        sortOrder query string false "Sort direction" Enums(asc, desc) default(desc)
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response
// @Router       /api/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	page := pageRequest(c)
	q := catalogapp.ProductListQuery{
		Page:      page.Page,
		Limit:     page.Limit,
		Category:  c.Query("category"),
		MinPrice:  c.Query("minPrice"),
		MaxPrice:  c.Query("maxPrice"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
	result, err := h.products.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, result)
}

// GetFeatured godoc
// @ID           listFeaturedProducts
// @Summary      Featured products
// @Tags         products
// @Produce      json
// @Param        limit query int false "Maximum number of products" default(10) maximum(100)
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductResponse}
// @Router       /api/products/featured [get]
func (h *ProductHandler) GetFeatured(c *gin.Context) {
	products, err := h.products.GetFeatured(c.Request.Context(), queryInt(c, "limit"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// ListCategories godoc
// @ID           listProductCategories
// @Summary      Product categories
// @Description  Distinct categories of active products, sorted
// @Tags         products
// @Produce      json
// @Success      200 {object} dto.Response{data=[]string}
// @Router       /api/products/categories [get]
func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.products.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// GetByCategory godoc
// @ID           listProductsByCategory
// @Summary      Products in a category
// @Tags         products
// @Produce      json
// @Param        category path  string true  "Category"
// @Param        page     query int    false "Page number" default(1)
// @Param        limit    query int    false "Page size" default(10) maximum(100)
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductResponse}
// @Router       /api/products/category/{category} [get]
func (h *ProductHandler) GetByCategory(c *gin.Context) {
	result, err := h.products.GetByCategory(c.Request.Context(), c.Param("category"), pageRequest(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, result)
}

// GetBySKU godoc
// @ID           getProductBySku
// @Summary      Get a product by SKU
// @Description  SKU lookup is case-insensitive
// @Tags         products
// @Produce      json
// @Param        sku path string true "Stock keeping unit"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      404 {object} dto.Response
// @Router       /api/products/sku/{sku} [get]
func (h *ProductHandler) GetBySKU(c *gin.Context) {
	product, err := h.products.GetBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// GetByID godoc
// @ID           getProduct
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      404 {object} dto.Response
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	product, err := h.products.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Update godoc
// @ID           updateProduct
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id      path string                           true "Product ID"
// @Param        request body catalogapp.UpdateProductRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	var req catalogapp.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}
	product, err := h.products.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessMessage(c, "Product updated successfully", product)
}

// Delete godoc
// @ID           deleteProduct
// @Summary      Deactivate a product
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.products.SoftDelete(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessMessage(c, "Product deleted successfully", nil)
}

// AdjustStock godoc
// @ID           adjustProductStock
// @Summary      Adjust stock
// @Description  Adds to or subtracts from stock atomically. Subtracting more than is available fails and leaves stock unchanged.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id      path string                  true "Product ID"
// @Param        request body catalogapp.StockRequest true "Quantity and operation"
// @Success      200 {object} dto.Response{data=catalogapp.StockResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /api/products/{id}/stock [patch]
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	var req catalogapp.StockRequest
	if !h.BindJSON(c, &req) {
		return
	}
	stock, err := h.products.AdjustStock(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessMessage(c, "Stock updated successfully", stock)
}
