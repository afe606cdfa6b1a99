package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jcardenas/techstore/internal/dto"
	"github.com/jcardenas/techstore/internal/service"
	"github.com/sirupsen/logrus"
)

type CartHandler struct {
	carts  *service.CartService
	logger *logrus.Entry
}

func NewCartHandler(carts *service.CartService, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		carts:  carts,
		logger: logger.WithField("component", "cart_handler"),
	}
}

func (h *CartHandler) Register(r gin.IRouter) {
	r.GET("/customers/:id/cart", h.get)
	r.POST("/customers/:id/cart/items", h.addItem)
	r.PUT("/customers/:id/cart/items/:productID", h.updateItem)
	r.DELETE("/customers/:id/cart/items/:productID", h.removeItem)
	r.DELETE("/customers/:id/cart", h.clear)
}

func (h *CartHandler) get(c *gin.Context) {
	customerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	cart, err := h.carts.GetCart(c.Request.Context(), customerID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.CartFromDetail(cart))
}

func (h *CartHandler) addItem(c *gin.Context) {
	customerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.AddCartItemRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(c, h.logger, err)
		return
	}

	if err := h.carts.AddItem(c.Request.Context(), customerID, req.ProductID, req.Quantity); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) updateItem(c *gin.Context) {
	customerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	productID, ok := pathID(c, "productID")
	if !ok {
		return
	}

	var req dto.UpdateCartItemRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.carts.UpdateQuantity(c.Request.Context(), customerID, productID, req.Quantity); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) removeItem(c *gin.Context) {
	customerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	productID, ok := pathID(c, "productID")
	if !ok {
		return
	}

	if err := h.carts.RemoveItem(c.Request.Context(), customerID, productID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) clear(c *gin.Context) {
	customerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.carts.Clear(c.Request.Context(), customerID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
