package basket

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mserebryaakov/aggregator-pim/internal/auth"
	"github.com/mserebryaakov/aggregator-pim/internal/entity"
	"github.com/mserebryaakov/aggregator-pim/internal/resource"
)

type basketHandler struct {
	log     *logrus.Entry
	service *Service
}

func NewHandler(service *Service, log *logrus.Entry) *basketHandler {
	return &basketHandler{
		log:     log,
		service: service,
	}
}

// Register mounts the basket operations of the signed-in user. The generic
// basket resource is mounted separately on the same path.
func (h *basketHandler) Register(group *gin.RouterGroup) {
	group.GET("/baskets/createOrGetActiveBasket", h.createOrGetActive)
	group.POST("/baskets/addItem/:productId", h.addItem)
	group.GET("/baskets/deleteItem/:basketItemId", h.deleteItem)
}

func (h *basketHandler) createOrGetActive(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		resource.WriteError(c, http.StatusUnauthorized, resource.CodeUnauthorized, "not signed in")
		return
	}

	basket, err := h.service.Active(c.Request.Context(), user)
	h.reply(c, basket, err)
}

func (h *basketHandler) addItem(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		resource.WriteError(c, http.StatusUnauthorized, resource.CodeUnauthorized, "not signed in")
		return
	}
	productID, ok := resource.ParseID(c, "productId")
	if !ok {
		return
	}

	basket, err := h.service.AddItem(c.Request.Context(), user, productID)
	h.reply(c, basket, err)
}

func (h *basketHandler) deleteItem(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		resource.WriteError(c, http.StatusUnauthorized, resource.CodeUnauthorized, "not signed in")
		return
	}
	itemID, ok := resource.ParseID(c, "basketItemId")
	if !ok {
		return
	}

	basket, err := h.service.DeleteItem(c.Request.Context(), user, itemID)
	h.reply(c, basket, err)
}

func (h *basketHandler) reply(c *gin.Context, basket *entity.Basket, err error) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, basket)
	case errors.Is(err, errProductNotFound), errors.Is(err, errItemNotInBasket):
		resource.WriteError(c, http.StatusNotFound, resource.CodeNotFound, err.Error())
	default:
		resource.Fail(c, h.log, err)
	}
}
