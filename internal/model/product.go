package model

import "time"

// Product represents a drink or food item in the catalogue.
// Prices are expressed in the smallest currency unit.
type Product struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	BasePrice   int64     `json:"basePrice" db:"base_price"`
	CategoryID  string    `json:"categoryId" db:"category_id"`
	ImageURL    string    `json:"imageUrl,omitempty" db:"image_url"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// Category groups products on the menu.
type Category struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Position int    `json:"position" db:"position"`
}

// SizeOption is a cup size with its surcharge.
type SizeOption struct {
	ID        string `json:"id" db:"id"`
	Label     string `json:"label" db:"label"`
	Surcharge int64  `json:"surcharge" db:"surcharge"`
}

// ToppingOption is an extra that can be added to a drink.
type ToppingOption struct {
	ID        string `json:"id" db:"id"`
	Label     string `json:"label" db:"label"`
	Surcharge int64  `json:"surcharge" db:"surcharge"`
}

// Catalog is the full read-only reference data served to clients.
type Catalog struct {
	Products    []Product       `json:"products"`
	Categories  []Category      `json:"categories"`
	Sizes       []SizeOption    `json:"sizes"`
	Toppings    []ToppingOption `json:"toppings"`
	SugarLevels []string        `json:"sugarLevels"`
	IceLevels   []string        `json:"iceLevels"`
}

// SugarLevels lists the accepted sugar levels.
var SugarLevels = []string{"0%", "30%", "50%", "70%", "100%"}

// IceLevels lists the accepted ice levels.
var IceLevels = []string{"0%", "50%", "100%", "hot"}

// Default sugar and ice levels used when a selection leaves them empty.
const (
	DefaultSugarLevel = "100%"
	DefaultIceLevel   = "100%"
)
