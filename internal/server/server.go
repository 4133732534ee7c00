// Package server assembles the PIM REST API.
package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mserebryaakov/aggregator-pim/internal/auth"
	"github.com/mserebryaakov/aggregator-pim/internal/basket"
	"github.com/mserebryaakov/aggregator-pim/internal/entity"
	"github.com/mserebryaakov/aggregator-pim/internal/order"
	"github.com/mserebryaakov/aggregator-pim/internal/resource"
	"github.com/mserebryaakov/aggregator-pim/internal/storage"
	"github.com/mserebryaakov/aggregator-pim/pkg/logger"
)

const headerRequestID = "X-Request-ID"

type ServerLogHook struct{}

func (h *ServerLogHook) Fire(entry *logrus.Entry) error {
	entry.Message = "Server: " + entry.Message
	return nil
}

func (h *ServerLogHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

type Config struct {
	LogLevel string
	// OmAppLink is the order-management base URL; empty disables the
	// integration.
	OmAppLink string
	OmTimeout time.Duration
}

// NewRouter wires every API endpoint onto a new gin engine. tokens may be
// shared with other routers; nil creates a private store.
func NewRouter(db *gorm.DB, tokens *auth.TokenStore, cfg Config) *gin.Engine {
	if tokens == nil {
		tokens = auth.NewTokenStore()
	}

	serverLog := logger.NewLogger(cfg.LogLevel, &ServerLogHook{})
	resourceLog := logger.NewLogger(cfg.LogLevel, &resource.ResourceLogHook{})
	authLog := logger.NewLogger(cfg.LogLevel, &auth.AuthLogHook{})
	basketLog := logger.NewLogger(cfg.LogLevel, &basket.BasketLogHook{})
	orderLog := logger.NewLogger(cfg.LogLevel, &order.OrderLogHook{})

	router := gin.New()
	router.Use(requestID(), requestLogger(serverLog), gin.Recovery())

	authHandler := auth.NewHandler(auth.NewService(auth.NewStorage(db), tokens, authLog), authLog)

	api := router.Group("/api")
	authHandler.Register(api)

	secured := api.Group("", authHandler.Middleware())
	authHandler.RegisterAccount(secured)

	resource.New("category", "categories",
		storage.NewRepository[entity.Category](db, map[string]string{"name": "name"}),
		resourceLog).Register(secured)
	resource.New("product", "products",
		storage.NewRepository[entity.Product](db, map[string]string{
			"name":        "name",
			"description": "description",
			"price":       "price",
			"stock":       "stock",
		}, "Category"),
		resourceLog).Register(secured)
	resource.New("address", "addresses",
		storage.NewRepository[entity.Address](db, map[string]string{
			"name":     "name",
			"city":     "city",
			"district": "district",
			"details":  "details",
		}, "User"),
		resourceLog).Register(secured)
	resource.New("basket", "baskets",
		storage.NewRepository[entity.Basket](db, map[string]string{
			"createDate": "create_date",
			"status":     "status",
			"totalCost":  "total_cost",
		}, "User"),
		resourceLog).Register(secured)
	resource.New("basketItem", "basket-items",
		storage.NewRepository[entity.BasketItem](db, map[string]string{
			"quantity":  "quantity",
			"totalCost": "total_cost",
		}, "Basket", "Product"),
		resourceLog).Register(secured)
	resource.New("user", "users",
		storage.NewRepository[entity.User](db, map[string]string{"login": "login"}),
		resourceLog).RegisterRead(secured)

	basket.NewHandler(basket.NewService(db, basketLog), basketLog).Register(secured)

	var notifier order.Notifier
	if cfg.OmAppLink != "" {
		omLog := logger.NewLogger(cfg.LogLevel, &order.OmAdapterLogHook{})
		notifier = order.NewOmAdapter(omLog, cfg.OmAppLink, cfg.OmTimeout)
	}
	orders := resource.New("order", "orders", order.NewRepository(db), resourceLog)
	order.NewHandler(order.NewService(order.NewStorage(db), notifier, orderLog), orders, orderLog).Register(secured)

	return router
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(headerRequestID, id)
		c.Set(headerRequestID, id)
		c.Next()
	}
}

func requestLogger(log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"status":    c.Writer.Status(),
			"latency":   time.Since(start).String(),
			"requestId": c.GetString(headerRequestID),
		})
		msg := c.Request.Method + " " + c.Request.URL.Path
		switch {
		case c.Writer.Status() >= 500:
			entry.Error(msg)
		case c.Writer.Status() >= 400:
			entry.Warn(msg)
		default:
			entry.Debug(msg)
		}
	}
}
