package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"coffee-kart/internal/catalog"
	"coffee-kart/internal/model"
)

// main writes a sample menu to data/catalog/menu.json.gz, the default CATALOG_SEED_PATH.
// Load it with: coffee-kart seed
func main() {
	path := filepath.Join("data", "catalog", "menu.json.gz")
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	menu := sampleMenu()
	if err := catalog.Validate(menu); err != nil {
		log.Fatalf("Sample menu is invalid: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	if err := writeCatalog(path, menu); err != nil {
		log.Fatalf("Failed to create %s: %v", path, err)
	}

	fmt.Printf("Created %s with %d products in %d categories\n", path, len(menu.Products), len(menu.Categories))
}

func sampleMenu() *model.Catalog {
	return &model.Catalog{
		Categories: []model.Category{
			{ID: "coffee", Name: "Cà phê", Position: 1},
			{ID: "tea", Name: "Trà trái cây", Position: 2},
			{ID: "milk-tea", Name: "Trà sữa", Position: 3},
			{ID: "freeze", Name: "Đá xay", Position: 4},
			{ID: "cake", Name: "Bánh ngọt", Position: 5},
		},
		Products: []model.Product{
			{ID: "cf-den-da", Name: "Cà phê đen đá", Description: "Robusta Buôn Ma Thuột pha phin", BasePrice: 25000, CategoryID: "coffee"},
			{ID: "cf-sua-da", Name: "Cà phê sữa đá", Description: "Cà phê phin với sữa đặc", BasePrice: 29000, CategoryID: "coffee"},
			{ID: "bac-xiu", Name: "Bạc xỉu", Description: "Nhiều sữa, ít cà phê", BasePrice: 32000, CategoryID: "coffee"},
			{ID: "cf-muoi", Name: "Cà phê muối", Description: "Kem muối Huế trên nền cà phê đậm", BasePrice: 35000, CategoryID: "coffee"},
			{ID: "tra-dao", Name: "Trà đào cam sả", Description: "Trà đen, đào miếng, cam và sả", BasePrice: 45000, CategoryID: "tea"},
			{ID: "tra-vai", Name: "Trà vải", Description: "Trà lài với vải thiều", BasePrice: 45000, CategoryID: "tea"},
			{ID: "tra-sen", Name: "Trà sen vàng", Description: "Trà ô long, hạt sen, kem sữa", BasePrice: 49000, CategoryID: "tea"},
			{ID: "ts-truyen-thong", Name: "Trà sữa truyền thống", BasePrice: 39000, CategoryID: "milk-tea"},
			{ID: "ts-olong", Name: "Trà sữa ô long nướng", BasePrice: 45000, CategoryID: "milk-tea"},
			{ID: "freeze-tra-xanh", Name: "Freeze trà xanh", Description: "Matcha đá xay, kem tươi", BasePrice: 55000, CategoryID: "freeze"},
			{ID: "freeze-socola", Name: "Freeze sô-cô-la", BasePrice: 55000, CategoryID: "freeze"},
			{ID: "banh-tiramisu", Name: "Bánh tiramisu", BasePrice: 35000, CategoryID: "cake"},
			{ID: "banh-chuoi", Name: "Bánh chuối nướng", BasePrice: 29000, CategoryID: "cake"},
		},
		Sizes: []model.SizeOption{
			{ID: "S", Label: "S", Surcharge: 0},
			{ID: "M", Label: "M", Surcharge: 6000},
			{ID: "L", Label: "L", Surcharge: 10000},
		},
		Toppings: []model.ToppingOption{
			{ID: "pearl", Label: "Trân châu trắng", Surcharge: 10000},
			{ID: "black-pearl", Label: "Trân châu đen", Surcharge: 8000},
			{ID: "jelly", Label: "Thạch đào", Surcharge: 8000},
			{ID: "cheese", Label: "Kem phô mai", Surcharge: 12000},
			{ID: "pudding", Label: "Pudding trứng", Surcharge: 10000},
		},
		SugarLevels: model.SugarLevels,
		IceLevels:   model.IceLevels,
	}
}

// writeCatalog creates a gzipped JSON catalog file.
func writeCatalog(path string, menu *model.Catalog) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)

	enc := json.NewEncoder(gzipWriter)
	enc.SetIndent("", "  ")
	if err := enc.Encode(menu); err != nil {
		gzipWriter.Close()
		return fmt.Errorf("failed to write catalog: %w", err)
	}

	if err := gzipWriter.Close(); err != nil {
		return fmt.Errorf("failed to flush gzip stream: %w", err)
	}

	return nil
}
