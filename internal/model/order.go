package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending              OrderStatus = "pending"
	OrderStatusAwaitingConfirmation OrderStatus = "awaiting_confirmation"
	OrderStatusCompleted            OrderStatus = "completed"
	OrderStatusCancelled            OrderStatus = "cancelled"
)

// PaymentMethod is how the customer pays for an order.
type PaymentMethod string

const (
	PaymentMethodCOD          PaymentMethod = "cod"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// Order represents a placed customer order.
// Items and TotalAmount are fixed at creation; only Status changes afterwards.
type Order struct {
	ID              uuid.UUID     `json:"id" db:"id"`
	UserID          string        `json:"userId" db:"user_id"`
	OrderCode       string        `json:"orderCode" db:"order_code"`
	Subtotal        int64         `json:"subtotal" db:"subtotal"`
	ShippingFee     int64         `json:"shippingFee" db:"shipping_fee"`
	TotalAmount     int64         `json:"totalAmount" db:"total_amount"`
	PaymentMethod   PaymentMethod `json:"paymentMethod" db:"payment_method"`
	Status          OrderStatus   `json:"status" db:"status"`
	CustomerName    string        `json:"customerName" db:"customer_name"`
	CustomerPhone   string        `json:"customerPhone" db:"customer_phone"`
	ShippingAddress string        `json:"shippingAddress" db:"shipping_address"`
	CreatedAt       time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time     `json:"updatedAt" db:"updated_at"`
}

// OrderItem is a line item copied from the cart when the order was placed.
type OrderItem struct {
	ID                   uuid.UUID `json:"id" db:"id"`
	OrderID              uuid.UUID `json:"-" db:"order_id"`
	ProductID            string    `json:"productId" db:"product_id"`
	ProductName          string    `json:"productName" db:"product_name"`
	ImageURL             string    `json:"imageUrl,omitempty" db:"image_url"`
	UnitPrice            int64     `json:"unitPrice" db:"unit_price"`
	Quantity             int       `json:"quantity" db:"quantity"`
	LineTotal            int64     `json:"lineTotal" db:"line_total"`
	SelectionDescription string    `json:"selectionDescription" db:"selection_description"`
}

// CheckoutRequest represents the request payload for placing an order from the cart.
type CheckoutRequest struct {
	PaymentMethod PaymentMethod `json:"paymentMethod" validate:"required,oneof=cod bank_transfer"`
}

// UpdateOrderStatusRequest is the payload used by fulfilment to move an order along.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending completed cancelled"`
}

// OrderResponse represents the response payload for an order.
type OrderResponse struct {
	Order
	Items      []OrderItem `json:"items"`
	PaymentURL string      `json:"paymentUrl,omitempty"`
}
