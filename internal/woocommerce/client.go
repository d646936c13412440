package woocommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/5anyam/vyadhiharfoods-sub000/internal/config"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/domain"
	apperrors "github.com/5anyam/vyadhiharfoods-sub000/pkg/errors"
)

type Client struct {
	storeURL       string
	consumerKey    string
	consumerSecret string
	apiVersion     string
	httpClient     *http.Client
	logger         *zap.Logger
}

// NewClient creates a new WooCommerce REST client
func NewClient(cfg config.WooCommerceConfig, logger *zap.Logger) *Client {
	storeURL := cfg.StoreURL
	storeURL = strings.TrimSuffix(storeURL, "/")

	return &Client{
		storeURL:       storeURL,
		consumerKey:    cfg.ConsumerKey,
		consumerSecret: cfg.ConsumerSecret,
		apiVersion:     cfg.APIVersion,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// CreateOrder creates a pending order on the platform from the draft.
// Each call is a fresh create; idempotency is not guaranteed.
func (c *Client) CreateOrder(ctx context.Context, draft domain.OrderDraft) (*domain.PendingOrder, error) {
	req := buildCreateRequest(draft)

	var resp OrderResponse
	if err := c.do(ctx, http.MethodPost, "/orders", req, &resp); err != nil {
		return nil, err
	}

	total, err := decimal.NewFromString(resp.Total)
	if err != nil {
		total = decimal.Zero
	}

	c.logger.Info("Order created upstream",
		zap.Int64("order_id", resp.ID),
		zap.String("status", resp.Status),
		zap.String("total", resp.Total),
	)

	return &domain.PendingOrder{
		ID:     resp.ID,
		Status: domain.OrderStatus(resp.Status),
		Total:  total,
	}, nil
}

// UpdateOrderStatus moves an order to a new status, optionally attaching
// payment metadata.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus, meta map[string]string) error {
	req := OrderUpdateRequest{Status: string(status)}
	for k, v := range meta {
		req.MetaData = append(req.MetaData, MetaData{Key: k, Value: v})
	}

	var resp OrderResponse
	path := "/orders/" + strconv.FormatInt(orderID, 10)
	if err := c.do(ctx, http.MethodPut, path, req, &resp); err != nil {
		return err
	}

	c.logger.Info("Order status updated upstream",
		zap.Int64("order_id", orderID),
		zap.String("status", string(status)),
	)
	return nil
}

func buildCreateRequest(draft domain.OrderDraft) OrderCreateRequest {
	first, last := splitName(draft.Form.Name)
	addr := Address{
		FirstName: first,
		LastName:  last,
		Address1:  draft.Form.Address,
		City:      draft.Form.City,
		State:     draft.Form.State,
		Postcode:  draft.Form.Pincode,
		Country:   "IN",
		Email:     draft.Form.Email,
		Phone:     draft.Form.Phone,
	}

	req := OrderCreateRequest{
		SetPaid:      false,
		Billing:      addr,
		Shipping:     addr,
		CustomerNote: draft.Form.Notes,
	}

	switch draft.PaymentMethod {
	case domain.PaymentMethodCOD:
		req.PaymentMethod = "cod"
		req.PaymentMethodTitle = "Cash on Delivery"
	default:
		req.PaymentMethod = "razorpay"
		req.PaymentMethodTitle = "Online Payment"
	}

	for _, l := range draft.Lines {
		item := LineItem{ProductID: l.ProductID, Quantity: l.Quantity}
		if l.VariationID != nil {
			item.VariationID = *l.VariationID
		}
		req.LineItems = append(req.LineItems, item)
	}
	for _, f := range draft.FeeLines {
		req.FeeLines = append(req.FeeLines, FeeLine{Name: f.Name, Total: f.Amount.StringFixed(2)})
	}
	for _, cl := range draft.CouponLines {
		req.CouponLines = append(req.CouponLines, CouponRef{Code: strings.ToLower(cl.Code)})
	}
	for k, v := range draft.Metadata {
		req.MetaData = append(req.MetaData, MetaData{Key: k, Value: v})
	}

	return req
}

// splitName breaks a full name into WooCommerce first/last fields.
func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// do executes a REST request against the v3 API with basic auth.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	url := fmt.Sprintf("%s/wp-json/%s%s", c.storeURL, c.apiVersion, path)

	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.consumerKey, c.consumerSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &apperrors.ErrUpstream{Service: "WooCommerce", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return c.parseError(resp.StatusCode, respBody)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w, body: %s", err, string(respBody))
	}
	return nil
}

// parseError converts a WooCommerce error body to a typed error.
func (c *Client) parseError(statusCode int, body []byte) error {
	var wcErr ErrorResponse
	json.Unmarshal(body, &wcErr) // Best effort parse

	switch statusCode {
	case http.StatusNotFound:
		return &apperrors.ErrNotFound{Resource: "order", ID: wcErr.Code}
	default:
		msg := wcErr.Message
		if msg == "" {
			msg = string(body)
		}
		return &apperrors.ErrUpstream{
			Service: "WooCommerce",
			Err:     fmt.Errorf("status %d: %s - %s", statusCode, wcErr.Code, msg),
		}
	}
}
