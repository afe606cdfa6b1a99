package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jcardenas/techstore/internal/dto"
	"github.com/jcardenas/techstore/internal/service"
	"github.com/sirupsen/logrus"
)

type ProductHandler struct {
	products *service.ProductService
	currency string
	logger   *logrus.Entry
}

func NewProductHandler(products *service.ProductService, defaultCurrency string, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		currency: defaultCurrency,
		logger:   logger.WithField("component", "product_handler"),
	}
}

func (h *ProductHandler) Register(r gin.IRouter) {
	r.POST("/products", h.create)
	r.GET("/products", h.list)
	r.GET("/products/active", h.listActive)
	r.GET("/products/search", h.search)
	r.GET("/products/category/:category", h.listByCategory)
	r.GET("/products/:id", h.get)
	r.PUT("/products/:id", h.update)
	r.DELETE("/products/:id", h.delete)
	r.POST("/products/:id/activate", h.activate)
	r.POST("/products/:id/deactivate", h.deactivate)
	r.POST("/products/:id/stock/reduce", h.reduceStock)
	r.POST("/products/:id/stock/increase", h.increaseStock)
}

func (h *ProductHandler) create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(c, h.logger, err)
		return
	}

	price, err := req.PriceMoney(h.currency)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	product, err := h.products.Create(c.Request.Context(), service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ProductFromDomain(product))
}

func (h *ProductHandler) list(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProductsFromDomain(products))
}

func (h *ProductHandler) listActive(c *gin.Context) {
	products, err := h.products.ListActive(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProductsFromDomain(products))
}

func (h *ProductHandler) search(c *gin.Context) {
	products, err := h.products.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProductsFromDomain(products))
}

func (h *ProductHandler) listByCategory(c *gin.Context) {
	products, err := h.products.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProductsFromDomain(products))
}

func (h *ProductHandler) get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	product, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProductFromDomain(product))
}

func (h *ProductHandler) update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(c, h.logger, err)
		return
	}

	product, err := req.ToDomain(id, h.currency)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	updated, err := h.products.Update(c.Request.Context(), product)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProductFromDomain(updated))
}

func (h *ProductHandler) delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.products.Delete(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) activate(c *gin.Context) {
	h.setActive(c, h.products.Activate)
}

func (h *ProductHandler) deactivate(c *gin.Context) {
	h.setActive(c, h.products.Deactivate)
}

func (h *ProductHandler) setActive(c *gin.Context, op func(ctx context.Context, id uuid.UUID) (bool, error)) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	found, err := op(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) reduceStock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.StockRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(c, h.logger, err)
		return
	}

	applied, err := h.products.ReduceStock(c.Request.Context(), id, req.Quantity)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if !applied {
		c.JSON(http.StatusConflict, gin.H{"error": "insufficient stock or inactive product"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) increaseStock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.StockRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(c, h.logger, err)
		return
	}

	applied, err := h.products.IncreaseStock(c.Request.Context(), id, req.Quantity)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if !applied {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found or inactive"})
		return
	}
	c.Status(http.StatusNoContent)
}
