package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jcardenas/techstore/internal/domain"
	"github.com/jcardenas/techstore/internal/dto"
	"github.com/jcardenas/techstore/internal/service"
	"github.com/sirupsen/logrus"
)

// StorefrontHandler serves the server-rendered shop: catalog, cart, checkout
// and account pages. It talks to the same services as the JSON API.
type StorefrontHandler struct {
	customers *service.CustomerService
	products  *service.ProductService
	carts     *service.CartService
	orders    *service.OrderService
	sessions  *Sessions
	logger    *logrus.Entry
}

func NewStorefrontHandler(
	customers *service.CustomerService,
	products *service.ProductService,
	carts *service.CartService,
	orders *service.OrderService,
	sessions *Sessions,
	logger *logrus.Logger,
) *StorefrontHandler {
	return &StorefrontHandler{
		customers: customers,
		products:  products,
		carts:     carts,
		orders:    orders,
		sessions:  sessions,
		logger:    logger.WithField("component", "storefront"),
	}
}

func (h *StorefrontHandler) Register(r gin.IRouter) {
	r.GET("/", h.home)
	r.GET("/catalog", h.catalog)
	r.GET("/products/:id", h.productPage)

	r.GET("/register", h.registerPage)
	r.POST("/register", h.register)
	r.GET("/login", h.loginPage)
	r.POST("/login", h.login)
	r.POST("/logout", h.logout)

	auth := r.Group("", h.requireLogin())
	auth.GET("/cart", h.cartPage)
	auth.POST("/cart/items", h.addToCart)
	auth.POST("/cart/items/:productID/update", h.updateCartItem)
	auth.POST("/cart/items/:productID/remove", h.removeCartItem)
	auth.POST("/cart/clear", h.clearCart)
	auth.GET("/checkout", h.checkoutPage)
	auth.POST("/checkout", h.checkout)
	auth.GET("/orders", h.ordersPage)
	auth.GET("/account", h.accountPage)
	auth.POST("/account", h.updateAccount)
	auth.POST("/account/password", h.changePassword)
}

// requireLogin redirects anonymous visitors to the login page.
func (h *StorefrontHandler) requireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := h.sessions.CustomerID(c); !ok {
			h.sessions.Flash(c, flashError, "Please sign in first.")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// view assembles the common template data: session state and drained flashes.
func (h *StorefrontHandler) view(c *gin.Context, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}

	_, loggedIn := h.sessions.CustomerID(c)
	success, errs := h.sessions.Flashes(c)
	data["IsLoggedIn"] = loggedIn
	data["CustomerName"] = h.sessions.CustomerName(c)
	data["FlashesSuccess"] = success
	data["FlashesError"] = errs
	return data
}

func (h *StorefrontHandler) renderError(c *gin.Context, err error) {
	if domain.IsNotFound(err) {
		c.HTML(http.StatusNotFound, "error.html", h.view(c, gin.H{
			"Title":   "Not found",
			"Message": err.Error(),
		}))
		return
	}

	h.logger.WithError(err).Error("storefront request failed")
	c.HTML(http.StatusInternalServerError, "error.html", h.view(c, gin.H{
		"Title":   "Something went wrong",
		"Message": "An internal error occurred. Please try again.",
	}))
}

func (h *StorefrontHandler) home(c *gin.Context) {
	products, err := h.products.ListActive(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "home.html", h.view(c, gin.H{
		"Title":    "TechStore",
		"Products": dto.ProductsFromDomain(products),
	}))
}

func (h *StorefrontHandler) catalog(c *gin.Context) {
	ctx := c.Request.Context()
	term := c.Query("q")
	category := c.Query("category")

	var (
		products []domain.Product
		err      error
	)
	switch {
	case term != "":
		products, err = h.products.Search(ctx, term)
	case category != "":
		products, err = h.products.ListByCategory(ctx, category)
	default:
		products, err = h.products.ListActive(ctx)
	}
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "catalog.html", h.view(c, gin.H{
		"Title":    "Catalog",
		"Products": dto.ProductsFromDomain(products),
		"Query":    term,
		"Category": category,
	}))
}

func (h *StorefrontHandler) productPage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.renderError(c, domain.ErrProductNotFound)
		return
	}

	product, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "product.html", h.view(c, gin.H{
		"Title":   product.Name,
		"Product": dto.ProductFromDomain(product),
	}))
}

func (h *StorefrontHandler) registerPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", h.view(c, gin.H{"Title": "Register"}))
}

func (h *StorefrontHandler) register(c *gin.Context) {
	req := dto.CreateCustomerRequest{
		Document:  c.PostForm("document"),
		FirstName: c.PostForm("first_name"),
		LastName:  c.PostForm("last_name"),
		Email:     c.PostForm("email"),
		Password:  c.PostForm("password"),
		Address:   c.PostForm("address"),
		Phone:     c.PostForm("phone"),
	}

	if c.PostForm("password") != c.PostForm("confirm_password") {
		h.sessions.Flash(c, flashError, "Passwords do not match.")
		c.Redirect(http.StatusFound, "/register")
		return
	}
	if err := req.Validate(); err != nil {
		h.sessions.Flash(c, flashError, err.Error())
		c.Redirect(http.StatusFound, "/register")
		return
	}

	_, err := h.customers.Create(c.Request.Context(), service.CreateCustomerInput{
		Document:  req.Document,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Address:   req.Address,
		Phone:     req.Phone,
	})
	if err != nil {
		if domain.IsConflict(err) {
			h.sessions.Flash(c, flashError, err.Error())
		} else {
			h.logger.WithError(err).Error("registration failed")
			h.sessions.Flash(c, flashError, "Could not create your account. Please try again.")
		}
		c.Redirect(http.StatusFound, "/register")
		return
	}

	h.sessions.Flash(c, flashSuccess, "Account created. Please sign in.")
	c.Redirect(http.StatusFound, "/login")
}

func (h *StorefrontHandler) loginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", h.view(c, gin.H{"Title": "Sign in"}))
}

func (h *StorefrontHandler) login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	customer, ok, err := h.customers.Authenticate(c.Request.Context(), email, password)
	if err != nil {
		h.logger.WithError(err).Error("login failed")
		h.sessions.Flash(c, flashError, "An internal error occurred. Please try again.")
		c.Redirect(http.StatusFound, "/login")
		return
	}
	if !ok {
		h.sessions.Flash(c, flashError, "Invalid email or password.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if err := h.sessions.SignIn(c, customer.ID, customer.FirstName); err != nil {
		h.logger.WithError(err).Error("session save failed")
		h.sessions.Flash(c, flashError, "Could not start your session. Please try again.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (h *StorefrontHandler) logout(c *gin.Context) {
	if err := h.sessions.SignOut(c); err != nil {
		h.logger.WithError(err).Error("session teardown failed")
	}
	c.Redirect(http.StatusFound, "/login")
}

func (h *StorefrontHandler) cartPage(c *gin.Context) {
	customerID, _ := h.sessions.CustomerID(c)

	cart, err := h.carts.GetCart(c.Request.Context(), customerID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "cart.html", h.view(c, gin.H{
		"Title": "Your cart",
		"Cart":  dto.CartFromDetail(cart),
	}))
}

func (h *StorefrontHandler) addToCart(c *gin.Context) {
	customerID, _ := h.sessions.CustomerID(c)

	productID, err := uuid.Parse(c.PostForm("product_id"))
	if err != nil {
		h.sessions.Flash(c, flashError, "Unknown product.")
		c.Redirect(http.StatusFound, "/catalog")
		return
	}
	quantity := formQuantity(c, 1)

	if err := h.carts.AddItem(c.Request.Context(), customerID, productID, quantity); err != nil {
		switch {
		case domain.IsNotFound(err), domain.IsConflict(err):
			h.sessions.Flash(c, flashError, err.Error())
		default:
			h.logger.WithError(err).Error("add to cart failed")
			h.sessions.Flash(c, flashError, "Could not add the item. Please try again.")
		}
		c.Redirect(http.StatusFound, "/catalog")
		return
	}

	h.sessions.Flash(c, flashSuccess, "Item added to your cart.")
	c.Redirect(http.StatusFound, "/cart")
}

func (h *StorefrontHandler) updateCartItem(c *gin.Context) {
	customerID, _ := h.sessions.CustomerID(c)

	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		c.Redirect(http.StatusFound, "/cart")
		return
	}
	quantity := formQuantity(c, 0)

	if err := h.carts.UpdateQuantity(c.Request.Context(), customerID, productID, quantity); err != nil {
		if domain.IsNotFound(err) {
			h.sessions.Flash(c, flashError, err.Error())
		} else {
			h.logger.WithError(err).Error("cart update failed")
			h.sessions.Flash(c, flashError, "Could not update the cart. Please try again.")
		}
	}
	c.Redirect(http.StatusFound, "/cart")
}

func (h *StorefrontHandler) removeCartItem(c *gin.Context) {
	customerID, _ := h.sessions.CustomerID(c)

	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		c.Redirect(http.StatusFound, "/cart")
		return
	}

	if err := h.carts.RemoveItem(c.Request.Context(), customerID, productID); err != nil && !domain.IsNotFound(err) {
		h.logger.WithError(err).Error("cart item removal failed")
		h.sessions.Flash(c, flashError, "Could not remove the item. Please try again.")
	}
	c.Redirect(http.StatusFound, "/cart")
}

func (h *StorefrontHandler) clearCart(c *gin.Context) {
	customerID, _ := h.sessions.CustomerID(c)

	if err := h.carts.Clear(c.Request.Context(), customerID); err != nil {
		h.logger.WithError(err).Error("cart clear failed")
		h.sessions.Flash(c, flashError, "Could not clear the cart. Please try again.")
	}
	c.Redirect(http.StatusFound, "/cart")
}

func (h *StorefrontHandler) checkoutPage(c *gin.Context) {
	customerID, _ := h.sessions.CustomerID(c)

	ctx := c.Request.Context()
	cart, err := h.carts.GetCart(ctx, customerID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if len(cart.Items) == 0 {
		h.sessions.Flash(c, flashError, "Your cart is empty.")
		c.Redirect(http.StatusFound, "/cart")
		return
	}

	customer, err := h.customers.Get(ctx, customerID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "checkout.html", h.view(c, gin.H{
		"Title":           "Checkout",
		"Cart":            dto.CartFromDetail(cart),
		"ShippingAddress": customer.Address,
	}))
}

func (h *StorefrontHandler) checkout(c *gin.Context) {
	customerID, _ := h.sessions.CustomerID(c)

	req := dto.CheckoutRequest{ShippingAddress: c.PostForm("shipping_address")}
	if err := req.Validate(); err != nil {
		h.sessions.Flash(c, flashError, "A shipping address is required.")
		c.Redirect(http.StatusFound, "/checkout")
		return
	}

	_, err := h.orders.Checkout(c.Request.Context(), customerID, req.ShippingAddress)
	if err != nil {
		if domain.IsConflict(err) {
			h.sessions.Flash(c, flashError, err.Error())
			c.Redirect(http.StatusFound, "/cart")
			return
		}
		h.logger.WithError(err).Error("checkout failed")
		h.sessions.Flash(c, flashError, "Could not place your order. Please try again.")
		c.Redirect(http.StatusFound, "/checkout")
		return
	}

	h.sessions.Flash(c, flashSuccess, "Order placed. Thank you!")
	c.Redirect(http.StatusFound, "/orders")
}

func (h *StorefrontHandler) ordersPage(c *gin.Context) {
	customerID, _ := h.sessions.CustomerID(c)

	orders, err := h.orders.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "orders.html", h.view(c, gin.H{
		"Title":  "Your orders",
		"Orders": dto.OrdersFromDomain(orders),
	}))
}

func (h *StorefrontHandler) accountPage(c *gin.Context) {
	customerID, _ := h.sessions.CustomerID(c)

	customer, err := h.customers.Get(c.Request.Context(), customerID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "account.html", h.view(c, gin.H{
		"Title":    "Your account",
		"Customer": dto.CustomerFromDomain(customer),
	}))
}

func (h *StorefrontHandler) updateAccount(c *gin.Context) {
	customerID, _ := h.sessions.CustomerID(c)

	req := dto.UpdateCustomerRequest{
		FirstName: c.PostForm("first_name"),
		LastName:  c.PostForm("last_name"),
		Address:   c.PostForm("address"),
		Phone:     c.PostForm("phone"),
	}
	if err := req.Validate(); err != nil {
		h.sessions.Flash(c, flashError, err.Error())
		c.Redirect(http.StatusFound, "/account")
		return
	}

	customer, err := h.customers.Update(c.Request.Context(), customerID, req.ToDomain())
	if err != nil {
		h.logger.WithError(err).Error("account update failed")
		h.sessions.Flash(c, flashError, "Could not update your details. Please try again.")
		c.Redirect(http.StatusFound, "/account")
		return
	}

	// refresh the displayed name
	_ = h.sessions.SignIn(c, customer.ID, customer.FirstName)
	h.sessions.Flash(c, flashSuccess, "Details updated.")
	c.Redirect(http.StatusFound, "/account")
}

func (h *StorefrontHandler) changePassword(c *gin.Context) {
	customerID, _ := h.sessions.CustomerID(c)

	req := dto.ChangePasswordRequest{
		CurrentPassword: c.PostForm("current_password"),
		NewPassword:     c.PostForm("new_password"),
	}
	if err := req.Validate(); err != nil {
		h.sessions.Flash(c, flashError, err.Error())
		c.Redirect(http.StatusFound, "/account")
		return
	}

	err := h.customers.ChangePassword(c.Request.Context(), customerID, req.CurrentPassword, req.NewPassword)
	switch {
	case err == nil:
		h.sessions.Flash(c, flashSuccess, "Password changed.")
	case errors.Is(err, domain.ErrCurrentPasswordMismatch):
		h.sessions.Flash(c, flashError, err.Error())
	default:
		h.logger.WithError(err).Error("password change failed")
		h.sessions.Flash(c, flashError, "Could not change your password. Please try again.")
	}
	c.Redirect(http.StatusFound, "/account")
}

func formQuantity(c *gin.Context, fallback int32) int32 {
	raw := c.PostForm("quantity")
	if raw == "" {
		return fallback
	}

	quantity, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return fallback
	}
	return int32(quantity)
}
