package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jcardenas/techstore/internal/dto"
	"github.com/jcardenas/techstore/internal/service"
	"github.com/sirupsen/logrus"
)

type OrderHandler struct {
	orders *service.OrderService
	logger *logrus.Entry
}

func NewOrderHandler(orders *service.OrderService, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		logger: logger.WithField("component", "order_handler"),
	}
}

func (h *OrderHandler) Register(r gin.IRouter) {
	r.POST("/customers/:id/orders", h.checkout)
	r.GET("/customers/:id/orders", h.listByCustomer)
	r.GET("/orders/:id", h.get)
	r.PUT("/orders/:id/status", h.updateStatus)
}

// checkout turns the customer's cart into an order. Stock failures surface
// as 409 so the client can adjust quantities and retry.
func (h *OrderHandler) checkout(c *gin.Context) {
	customerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(c, h.logger, err)
		return
	}

	order, err := h.orders.Checkout(c.Request.Context(), customerID, req.ShippingAddress)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OrderFromDomain(order))
}

func (h *OrderHandler) listByCustomer(c *gin.Context) {
	customerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	orders, err := h.orders.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrdersFromDomain(orders))
}

func (h *OrderHandler) get(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.orders.Get(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderFromDomain(order))
}

func (h *OrderHandler) updateStatus(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(c, h.logger, err)
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderFromDomain(order))
}
