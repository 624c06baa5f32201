package model

import (
	"time"

	"github.com/google/uuid"
)

// LineItemSelection is the customer's choice for one product before it is priced.
type LineItemSelection struct {
	Product    Product
	Size       SizeOption
	ToppingIDs []string
	Sugar      string
	Ice        string
	Quantity   int
}

// CartLineItem is a priced selection stored in a user's cart.
// UnitPrice is captured when the item is added and is not refreshed from the catalogue.
type CartLineItem struct {
	ID                   uuid.UUID `json:"id" db:"id"`
	UserID               string    `json:"userId" db:"user_id"`
	ProductID            string    `json:"productId" db:"product_id"`
	ProductName          string    `json:"productName" db:"product_name"`
	ImageURL             string    `json:"imageUrl,omitempty" db:"image_url"`
	UnitPrice            int64     `json:"unitPrice" db:"unit_price"`
	Quantity             int       `json:"quantity" db:"quantity"`
	LineTotal            int64     `json:"lineTotal" db:"line_total"`
	SelectionDescription string    `json:"selectionDescription" db:"selection_description"`
	CreatedAt            time.Time `json:"createdAt" db:"created_at"`
}

// Cart is the set of line items owned by a single user.
type Cart struct {
	UserID string         `json:"userId"`
	Items  []CartLineItem `json:"items"`
}

// AddToCartRequest is the payload for adding a customised product to the cart.
type AddToCartRequest struct {
	ProductID  string   `json:"productId" validate:"required,max=64"`
	SizeID     string   `json:"sizeId" validate:"required,max=16"`
	ToppingIDs []string `json:"toppingIds" validate:"max=16,dive,required,max=16"`
	Sugar      string   `json:"sugar,omitempty" validate:"omitempty,oneof=0% 30% 50% 70% 100%"`
	Ice        string   `json:"ice,omitempty" validate:"omitempty,oneof=0% 50% 100% hot"`
	Quantity   int      `json:"quantity" validate:"required,gte=1,lte=99"`
}

// UpdateQuantityRequest is the payload for changing a line item's quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1,lte=99"`
}

// CartResponse is a cart together with its derived total.
type CartResponse struct {
	UserID string         `json:"userId"`
	Items  []CartLineItem `json:"items"`
	Total  int64          `json:"total"`
}
