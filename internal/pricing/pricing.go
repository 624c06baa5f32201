// Package pricing computes line item prices from a product and its customisation.
package pricing

import (
	"fmt"
	"sort"
	"strings"

	"coffee-kart/internal/model"
)

// Options is the set of sizes and toppings a selection may reference.
type Options struct {
	sizes    map[string]model.SizeOption
	toppings map[string]model.ToppingOption
}

// NewOptions indexes the given sizes and toppings by ID.
// Negative surcharges are rejected so that computed prices never drop below the base price.
func NewOptions(sizes []model.SizeOption, toppings []model.ToppingOption) (Options, error) {
	opts := Options{
		sizes:    make(map[string]model.SizeOption, len(sizes)),
		toppings: make(map[string]model.ToppingOption, len(toppings)),
	}

	for _, s := range sizes {
		if s.Surcharge < 0 {
			return Options{}, fmt.Errorf("size %s has negative surcharge %d", s.ID, s.Surcharge)
		}
		opts.sizes[s.ID] = s
	}

	for _, t := range toppings {
		if t.Surcharge < 0 {
			return Options{}, fmt.Errorf("topping %s has negative surcharge %d", t.ID, t.Surcharge)
		}
		opts.toppings[t.ID] = t
	}

	return opts, nil
}

// Size looks up a size option by ID.
func (o Options) Size(id string) (model.SizeOption, bool) {
	s, ok := o.sizes[id]
	return s, ok
}

// Topping looks up a topping option by ID.
func (o Options) Topping(id string) (model.ToppingOption, bool) {
	t, ok := o.toppings[id]
	return t, ok
}

// ComputeUnitPrice returns base price + size surcharge + the surcharge of every distinct topping.
// The size is resolved by ID against opts, so a caller cannot smuggle in its own surcharge.
func ComputeUnitPrice(sel model.LineItemSelection, opts Options) (int64, error) {
	if sel.Product.BasePrice < 0 {
		return 0, model.ErrInvalidSelection
	}

	size, ok := opts.Size(sel.Size.ID)
	if !ok {
		return 0, model.ErrInvalidSelection
	}

	toppings, err := resolveToppings(sel.ToppingIDs, opts)
	if err != nil {
		return 0, err
	}

	price := sel.Product.BasePrice + size.Surcharge
	for _, t := range toppings {
		price += t.Surcharge
	}

	return price, nil
}

// ComputeLineTotal multiplies the unit price by quantity.
// Non-positive quantities are rejected, never clamped.
func ComputeLineTotal(unitPrice int64, quantity int) (int64, error) {
	if quantity <= 0 {
		return 0, model.ErrInvalidQuantity
	}
	return unitPrice * int64(quantity), nil
}

// DescribeSelection renders the human readable summary stored on a cart line.
func DescribeSelection(sel model.LineItemSelection, opts Options) (string, error) {
	size, ok := opts.Size(sel.Size.ID)
	if !ok {
		return "", model.ErrInvalidSelection
	}

	toppings, err := resolveToppings(sel.ToppingIDs, opts)
	if err != nil {
		return "", err
	}

	names := make([]string, 0, len(toppings))
	for _, t := range toppings {
		names = append(names, t.Label)
	}
	toppingText := "None"
	if len(names) > 0 {
		toppingText = strings.Join(names, ", ")
	}

	sugar := sel.Sugar
	if sugar == "" {
		sugar = model.DefaultSugarLevel
	}
	ice := sel.Ice
	if ice == "" {
		ice = model.DefaultIceLevel
	}

	return fmt.Sprintf("Size %s • %s sugar • %s ice • Toppings: %s", size.Label, sugar, ice, toppingText), nil
}

// resolveToppings deduplicates ids and returns the matching options sorted by ID.
func resolveToppings(ids []string, opts Options) ([]model.ToppingOption, error) {
	seen := make(map[string]struct{}, len(ids))
	resolved := make([]model.ToppingOption, 0, len(ids))

	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		t, ok := opts.Topping(id)
		if !ok {
			return nil, model.ErrInvalidSelection
		}
		resolved = append(resolved, t)
	}

	sort.Slice(resolved, func(i, j int) bool { return resolved[i].ID < resolved[j].ID })

	return resolved, nil
}
