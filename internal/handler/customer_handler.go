package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jcardenas/techstore/internal/dto"
	"github.com/jcardenas/techstore/internal/service"
	"github.com/sirupsen/logrus"
)

type CustomerHandler struct {
	customers *service.CustomerService
	logger    *logrus.Entry
}

func NewCustomerHandler(customers *service.CustomerService, logger *logrus.Logger) *CustomerHandler {
	return &CustomerHandler{
		customers: customers,
		logger:    logger.WithField("component", "customer_handler"),
	}
}

func (h *CustomerHandler) Register(r gin.IRouter) {
	r.POST("/customers", h.create)
	r.GET("/customers", h.list)
	r.GET("/customers/search", h.search)
	r.GET("/customers/count", h.count)
	r.GET("/customers/by-document/:document", h.getByDocument)
	r.GET("/customers/:id", h.get)
	r.PUT("/customers/:id", h.update)
	r.DELETE("/customers/:id", h.delete)
	r.POST("/customers/:id/password", h.changePassword)
	r.POST("/auth/login", h.login)
	r.POST("/auth/reset-password", h.resetPassword)
}

func (h *CustomerHandler) create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(c, h.logger, err)
		return
	}

	customer, err := h.customers.Create(c.Request.Context(), service.CreateCustomerInput{
		Document:  req.Document,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Address:   req.Address,
		Phone:     req.Phone,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CustomerFromDomain(customer))
}

func (h *CustomerHandler) list(c *gin.Context) {
	customers, err := h.customers.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.CustomersFromDomain(customers))
}

func (h *CustomerHandler) search(c *gin.Context) {
	customers, err := h.customers.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.CustomersFromDomain(customers))
}

func (h *CustomerHandler) count(c *gin.Context) {
	count, err := h.customers.Count(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *CustomerHandler) get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	customer, err := h.customers.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.CustomerFromDomain(customer))
}

func (h *CustomerHandler) getByDocument(c *gin.Context) {
	customer, err := h.customers.GetByDocument(c.Request.Context(), c.Param("document"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.CustomerFromDomain(customer))
}

func (h *CustomerHandler) update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(c, h.logger, err)
		return
	}

	customer, err := h.customers.Update(c.Request.Context(), id, req.ToDomain())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.CustomerFromDomain(customer))
}

func (h *CustomerHandler) delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.customers.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CustomerHandler) changePassword(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(c, h.logger, err)
		return
	}

	if err := h.customers.ChangePassword(c.Request.Context(), id, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CustomerHandler) login(c *gin.Context) {
	var req dto.CredentialsRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(c, h.logger, err)
		return
	}

	customer, ok, err := h.customers.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, dto.CustomerFromDomain(customer))
}

func (h *CustomerHandler) resetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(c, h.logger, err)
		return
	}

	if err := h.customers.ResetPassword(c.Request.Context(), req.Email, req.NewPassword); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
