package order

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mserebryaakov/aggregator-pim/internal/auth"
	"github.com/mserebryaakov/aggregator-pim/internal/entity"
	"github.com/mserebryaakov/aggregator-pim/internal/resource"
)

type orderHandler struct {
	log          *logrus.Entry
	orderService OrderService
	orders       *resource.Resource[entity.Order]
}

func NewHandler(orderService OrderService, orders *resource.Resource[entity.Order], log *logrus.Entry) *orderHandler {
	return &orderHandler{
		log:          log,
		orderService: orderService,
		orders:       orders,
	}
}

// Register mounts the order endpoints. Orders are placed through POST only;
// PUT and PATCH are reserved for admins.
func (h *orderHandler) Register(group *gin.RouterGroup) {
	h.orders.RegisterRead(group)
	group.POST("/orders", h.create)
	group.DELETE("/orders/:id", h.orders.Delete)
	group.GET("/orders/cancel/:orderId", h.cancel)
	group.GET("/orders/updateAddress/:orderId/:addressId", h.updateAddress)

	admin := group.Group("", auth.RequireAuthority(entity.RoleAdmin))
	admin.PUT("/orders/:id", h.orders.Update)
	admin.PATCH("/orders/:id", h.orders.Patch)
}

func (h *orderHandler) create(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		resource.WriteError(c, http.StatusUnauthorized, resource.CodeUnauthorized, "not signed in")
		return
	}

	var order entity.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		resource.WriteError(c, http.StatusBadRequest, resource.CodeBadRequest, err.Error())
		return
	}

	created, err := h.orderService.CreateOrder(c.Request.Context(), user, order, auth.BearerToken(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Location", c.Request.URL.Path+"/"+itoa(created.ID))
	c.JSON(http.StatusCreated, created)
}

func (h *orderHandler) cancel(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		resource.WriteError(c, http.StatusUnauthorized, resource.CodeUnauthorized, "not signed in")
		return
	}
	orderID, ok := resource.ParseID(c, "orderId")
	if !ok {
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), user, orderID, auth.BearerToken(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *orderHandler) updateAddress(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		resource.WriteError(c, http.StatusUnauthorized, resource.CodeUnauthorized, "not signed in")
		return
	}
	orderID, ok := resource.ParseID(c, "orderId")
	if !ok {
		return
	}
	addressID, ok := resource.ParseID(c, "addressId")
	if !ok {
		return
	}

	order, err := h.orderService.UpdateAddress(c.Request.Context(), user, orderID, addressID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *orderHandler) fail(c *gin.Context, err error) {
	var omErr *Error
	switch {
	case errors.Is(err, errOrderHasID):
		resource.WriteError(c, http.StatusBadRequest, resource.CodeIDExists, err.Error())
	case errors.Is(err, errBasketRequired), errors.Is(err, errAddressRequired):
		resource.WriteError(c, http.StatusBadRequest, resource.CodeIDInvalid, err.Error())
	case errors.Is(err, errOrderNotFound), errors.Is(err, errBasketNotFound), errors.Is(err, errAddressNotFound):
		resource.WriteError(c, http.StatusNotFound, resource.CodeNotFound, err.Error())
	case errors.Is(err, errNoAccessToOrder), errors.Is(err, errNoAccessToBasket), errors.Is(err, errNoAccessToAddress):
		resource.WriteError(c, http.StatusForbidden, resource.CodeForbidden, err.Error())
	case errors.As(err, &omErr):
		h.log.Errorf("order management: %v", omErr)
		resource.WriteError(c, http.StatusBadGateway, resource.CodeInternal, omErr.Message)
	default:
		resource.Fail(c, h.log, err)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
