// Package cart folds priced line items into a user's cart and computes totals.
// Every function returns a new Cart value and leaves its input untouched.
package cart

import (
	"time"

	"coffee-kart/internal/model"
	"coffee-kart/internal/pricing"

	"github.com/google/uuid"
)

// NewLineItem prices a selection and snapshots the product fields it needs.
func NewLineItem(userID string, sel model.LineItemSelection, opts pricing.Options, now time.Time) (model.CartLineItem, error) {
	unitPrice, err := pricing.ComputeUnitPrice(sel, opts)
	if err != nil {
		return model.CartLineItem{}, err
	}

	lineTotal, err := pricing.ComputeLineTotal(unitPrice, sel.Quantity)
	if err != nil {
		return model.CartLineItem{}, err
	}

	description, err := pricing.DescribeSelection(sel, opts)
	if err != nil {
		return model.CartLineItem{}, err
	}

	return model.CartLineItem{
		ID:                   uuid.New(),
		UserID:               userID,
		ProductID:            sel.Product.ID,
		ProductName:          sel.Product.Name,
		ImageURL:             sel.Product.ImageURL,
		UnitPrice:            unitPrice,
		Quantity:             sel.Quantity,
		LineTotal:            lineTotal,
		SelectionDescription: description,
		CreatedAt:            now,
	}, nil
}

// AddItem appends a new line for the selection. Identical selections are kept as separate lines.
func AddItem(c model.Cart, sel model.LineItemSelection, opts pricing.Options, now time.Time) (model.Cart, model.CartLineItem, error) {
	item, err := NewLineItem(c.UserID, sel, opts, now)
	if err != nil {
		return c, model.CartLineItem{}, err
	}

	items := make([]model.CartLineItem, 0, len(c.Items)+1)
	items = append(items, c.Items...)
	items = append(items, item)

	return model.Cart{UserID: c.UserID, Items: items}, item, nil
}

// RemoveItem drops the line with the given ID. Removing an absent ID is a no-op.
func RemoveItem(c model.Cart, itemID uuid.UUID) model.Cart {
	items := make([]model.CartLineItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.ID != itemID {
			items = append(items, item)
		}
	}
	return model.Cart{UserID: c.UserID, Items: items}
}

// UpdateQuantity changes a line's quantity and recomputes its line total from the stored unit price.
func UpdateQuantity(c model.Cart, itemID uuid.UUID, quantity int) (model.Cart, error) {
	items := make([]model.CartLineItem, len(c.Items))
	copy(items, c.Items)

	for i := range items {
		if items[i].ID != itemID {
			continue
		}

		lineTotal, err := pricing.ComputeLineTotal(items[i].UnitPrice, quantity)
		if err != nil {
			return c, err
		}
		items[i].Quantity = quantity
		items[i].LineTotal = lineTotal

		return model.Cart{UserID: c.UserID, Items: items}, nil
	}

	return c, model.ErrCartItemNotFound
}

// Total sums the current line totals. An empty cart totals zero.
func Total(c model.Cart) int64 {
	var total int64
	for _, item := range c.Items {
		total += item.LineTotal
	}
	return total
}

// CheckoutTotal adds the flat shipping fee to the cart total.
func CheckoutTotal(cartTotal, shippingFee int64) (int64, error) {
	if shippingFee < 0 {
		return 0, model.ErrInvalidShippingFee
	}
	return cartTotal + shippingFee, nil
}
