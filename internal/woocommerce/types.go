// Package woocommerce implements the REST client for the commerce platform.
// The storefront only creates orders and moves them between statuses; all
// pricing, inventory and order lifecycle beyond that is owned upstream.
package woocommerce

// === Request types (REST API v3) ===

// OrderCreateRequest is the payload for POST /orders. Line items carry ids
// and quantities only; WooCommerce recomputes unit prices server-side.
type OrderCreateRequest struct {
	PaymentMethod      string      `json:"payment_method"`
	PaymentMethodTitle string      `json:"payment_method_title"`
	SetPaid            bool        `json:"set_paid"`
	Billing            Address     `json:"billing"`
	Shipping           Address     `json:"shipping"`
	LineItems          []LineItem  `json:"line_items"`
	FeeLines           []FeeLine   `json:"fee_lines,omitempty"`
	CouponLines        []CouponRef `json:"coupon_lines,omitempty"`
	CustomerNote       string      `json:"customer_note,omitempty"`
	MetaData           []MetaData  `json:"meta_data,omitempty"`
}

// OrderUpdateRequest is the payload for PUT /orders/{id}.
type OrderUpdateRequest struct {
	Status   string     `json:"status"`
	MetaData []MetaData `json:"meta_data,omitempty"`
}

// LineItem identifies a product (or variant) and quantity.
type LineItem struct {
	ProductID   int64 `json:"product_id"`
	VariationID int64 `json:"variation_id,omitempty"`
	Quantity    int   `json:"quantity"`
}

// FeeLine is an additional charge attached to the order.
type FeeLine struct {
	Name  string `json:"name"`
	Total string `json:"total"`
}

// CouponRef references a discount code applied to the order.
type CouponRef struct {
	Code string `json:"code"`
}

// Address is a WooCommerce billing or shipping address.
type Address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Address1  string `json:"address_1"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// MetaData is a key/value pair stored on the order.
type MetaData struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// === Response types ===

// OrderResponse is the subset of the order resource this client reads.
// Totals are decimal strings (e.g. "650.00").
type OrderResponse struct {
	ID       int64  `json:"id"`
	Status   string `json:"status"`
	Currency string `json:"currency"`
	Total    string `json:"total"`
	OrderKey string `json:"order_key"`
}

// ErrorResponse is a WooCommerce API error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Status int `json:"status"`
	} `json:"data"`
}
