package pricing

import (
	"testing"

	"coffee-kart/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testSizes = []model.SizeOption{
		{ID: "S", Label: "Small", Surcharge: 0},
		{ID: "M", Label: "Medium", Surcharge: 5000},
		{ID: "L", Label: "Large", Surcharge: 10000},
	}
	testToppings = []model.ToppingOption{
		{ID: "1", Label: "Black pearls", Surcharge: 5000},
		{ID: "2", Label: "Lychee jelly", Surcharge: 5000},
		{ID: "3", Label: "Cheese foam", Surcharge: 10000},
		{ID: "4", Label: "Egg pudding", Surcharge: 8000},
	}
)

func testOptions(t *testing.T) Options {
	t.Helper()
	opts, err := NewOptions(testSizes, testToppings)
	require.NoError(t, err)
	return opts
}

func selection(basePrice int64, sizeID string, toppings ...string) model.LineItemSelection {
	return model.LineItemSelection{
		Product:    model.Product{ID: "P001", Name: "Milk coffee", BasePrice: basePrice},
		Size:       model.SizeOption{ID: sizeID},
		ToppingIDs: toppings,
		Quantity:   1,
	}
}

func TestNewOptions_RejectsNegativeSurcharge(t *testing.T) {
	_, err := NewOptions([]model.SizeOption{{ID: "S", Surcharge: -1}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative surcharge")

	_, err = NewOptions(nil, []model.ToppingOption{{ID: "1", Surcharge: -5}})
	require.Error(t, err)
}

func TestComputeUnitPrice(t *testing.T) {
	opts := testOptions(t)

	tests := []struct {
		name        string
		sel         model.LineItemSelection
		expected    int64
		expectedErr error
	}{
		{
			name:     "Base price with free size",
			sel:      selection(25000, "S"),
			expected: 25000,
		},
		{
			name:     "Size and two toppings",
			sel:      selection(25000, "M", "1", "3"),
			expected: 45000,
		},
		{
			name:     "Duplicate topping counted once",
			sel:      selection(25000, "M", "1", "1", "3", "3"),
			expected: 45000,
		},
		{
			name:     "Zero base price",
			sel:      selection(0, "L", "4"),
			expected: 18000,
		},
		{
			name:        "Unknown size",
			sel:         selection(25000, "XL"),
			expectedErr: model.ErrInvalidSelection,
		},
		{
			name:        "Unknown topping",
			sel:         selection(25000, "S", "1", "99"),
			expectedErr: model.ErrInvalidSelection,
		},
		{
			name:        "Negative base price",
			sel:         selection(-1, "S"),
			expectedErr: model.ErrInvalidSelection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := ComputeUnitPrice(tt.sel, opts)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, price)
		})
	}
}

func TestComputeUnitPrice_UsesCatalogueSurcharge(t *testing.T) {
	opts := testOptions(t)

	sel := selection(25000, "M")
	sel.Size.Surcharge = 999999

	price, err := ComputeUnitPrice(sel, opts)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), price)
}

func TestComputeUnitPrice_OrderInvariant(t *testing.T) {
	opts := testOptions(t)

	permutations := [][]string{
		{"1", "2", "3", "4"},
		{"4", "3", "2", "1"},
		{"2", "4", "1", "3"},
		{"3", "1", "4", "2", "1"},
	}

	var first int64
	for i, toppings := range permutations {
		price, err := ComputeUnitPrice(selection(20000, "L", toppings...), opts)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, price, int64(20000))
		if i == 0 {
			first = price
			continue
		}
		assert.Equal(t, first, price, "permutation %v", toppings)
	}
	assert.Equal(t, int64(20000+10000+5000+5000+10000+8000), first)
}

func TestComputeUnitPrice_Repeatable(t *testing.T) {
	opts := testOptions(t)
	sel := selection(25000, "M", "2", "4")

	a, err := ComputeUnitPrice(sel, opts)
	require.NoError(t, err)
	b, err := ComputeUnitPrice(sel, opts)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, []string{"2", "4"}, sel.ToppingIDs, "input must not be reordered")
}

func TestComputeLineTotal(t *testing.T) {
	tests := []struct {
		name        string
		unitPrice   int64
		quantity    int
		expected    int64
		expectedErr error
	}{
		{name: "Single", unitPrice: 45000, quantity: 1, expected: 45000},
		{name: "Multiple", unitPrice: 45000, quantity: 2, expected: 90000},
		{name: "Zero quantity", unitPrice: 45000, quantity: 0, expectedErr: model.ErrInvalidQuantity},
		{name: "Negative quantity", unitPrice: 45000, quantity: -1, expectedErr: model.ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, err := ComputeLineTotal(tt.unitPrice, tt.quantity)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Zero(t, total)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, total)
		})
	}
}

func TestEndToEnd_UnitAndLineTotal(t *testing.T) {
	opts, err := NewOptions(
		[]model.SizeOption{{ID: "M", Label: "Medium", Surcharge: 5000}},
		[]model.ToppingOption{
			{ID: "a", Label: "A", Surcharge: 5000},
			{ID: "b", Label: "B", Surcharge: 10000},
		},
	)
	require.NoError(t, err)

	unit, err := ComputeUnitPrice(selection(25000, "M", "a", "b"), opts)
	require.NoError(t, err)
	assert.Equal(t, int64(45000), unit)

	line, err := ComputeLineTotal(unit, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(90000), line)
}

func TestDescribeSelection(t *testing.T) {
	opts := testOptions(t)

	t.Run("With toppings and defaults", func(t *testing.T) {
		desc, err := DescribeSelection(selection(25000, "M", "3", "1"), opts)
		require.NoError(t, err)
		assert.Equal(t, "Size Medium • 100% sugar • 100% ice • Toppings: Black pearls, Cheese foam", desc)
	})

	t.Run("Without toppings", func(t *testing.T) {
		sel := selection(25000, "S")
		sel.Sugar = "50%"
		sel.Ice = "hot"
		desc, err := DescribeSelection(sel, opts)
		require.NoError(t, err)
		assert.Equal(t, "Size Small • 50% sugar • hot ice • Toppings: None", desc)
	})

	t.Run("Unknown topping", func(t *testing.T) {
		_, err := DescribeSelection(selection(25000, "S", "nope"), opts)
		assert.ErrorIs(t, err, model.ErrInvalidSelection)
	})
}
