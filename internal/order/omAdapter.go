package order

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mserebryaakov/aggregator-pim/internal/entity"
)

type OmAdapterLogHook struct{}

func (h *OmAdapterLogHook) Fire(entry *logrus.Entry) error {
	entry.Message = "OmAdapter: " + entry.Message
	return nil
}

func (h *OmAdapterLogHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

type omAdapter struct {
	client http.Client
	log    *logrus.Entry
	link   string
}

// NewOmAdapter talks to the order-management application at link, e.g.
// http://om:8080.
func NewOmAdapter(log *logrus.Entry, link string, timeout time.Duration) *omAdapter {
	if timeout <= 0 {
		timeout = time.Second * 10
	}
	c := http.Client{
		Timeout: timeout,
	}

	return &omAdapter{
		client: c,
		log:    log,
		link:   strings.TrimRight(link, "/"),
	}
}

type createOrder struct {
	OrderID int64              `json:"orderId"`
	Status  entity.OrderStatus `json:"status"`
	Address *entity.Address    `json:"address"`
}

func (o *omAdapter) CreateOrder(ctx context.Context, order *entity.Order, authorization string) error {
	body, err := json.Marshal(createOrder{
		OrderID: order.ID,
		Status:  entity.OrderNew,
		Address: order.Address,
	})
	if err != nil {
		o.log.Errorf("CreateOrder: failed to marshal order %d - %v", order.ID, err)
		return NewError(JsonAppError, "failed to marshal order", 500, err)
	}

	url := fmt.Sprintf("%s%s", o.link, "/api/orders")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		o.log.Errorf("CreateOrder: failed create request - /api/orders - %v", err)
		return NewError(ServerAppError, "failed to create om request", 500, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return o.do(req, authorization, "CreateOrder")
}

func (o *omAdapter) CancelOrder(ctx context.Context, orderID int64, authorization string) error {
	url := fmt.Sprintf("%s/api/orders/cancel/%d", o.link, orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		o.log.Errorf("CancelOrder: failed create request - /api/orders/cancel - %v", err)
		return NewError(ServerAppError, "failed to create om request", 500, err)
	}

	return o.do(req, authorization, "CancelOrder")
}

func (o *omAdapter) do(req *http.Request, authorization, op string) error {
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		o.log.Errorf("%s: failed om request - %v", op, err)
		return NewError(ServerAppError, "failed om request", 502, err)
	}
	defer resp.Body.Close()

	bts, err := io.ReadAll(resp.Body)
	if err != nil {
		o.log.Debugf("%s: failed readAll body - %v", op, err)
		return NewError(ServerAppError, "failed read body", 502, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		o.log.Infof("%s: %s", op, string(bts))
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return NewError(HttpError, "om "+op+" Unauthorized", 401, nil)
	case resp.StatusCode == http.StatusForbidden:
		return NewError(HttpError, "om "+op+" Forbidden", 403, nil)
	default:
		o.log.Errorf("%s: unexpected om response - %d, body - %s", op, resp.StatusCode, string(bts))
		return NewError(HttpError, "om service call error", 502, fmt.Errorf("statuscode - %d, body - %s", resp.StatusCode, string(bts)))
	}
}
