package models

// AllModels returns all model structs for auto-migration
// IMPORTANT: Order matters! Parent tables must be created before child tables
func AllModels() []interface{} {
	return []interface{}{
		// 1. Independent tables (no foreign keys)
		&User{},
		&ProductCategory{},
		&Brand{},

		// 2. Tables with single dependencies
		&Product{}, // depends on: ProductCategory, Brand

		// 3. Transaction headers and lots
		&ProductBatch{}, // depends on: Product
		&Purchase{},
		&Sale{},

		// 4. Detail/ledger tables
		&PurchaseItem{},  // depends on: Purchase, Product, ProductBatch
		&SaleItem{},      // depends on: Sale, Product, ProductBatch
		&StockMovement{}, // depends on: Product, ProductBatch
	}
}
