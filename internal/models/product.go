package models

// Product mirrors the products table. The column names keep the
// capitalisation of the imported inventory spreadsheet the table was
// loaded from, and the table declares no uniqueness on Barcode, so a
// barcode lookup can return more than one row.
type Product struct {
	Barcode              string   `db:"Barcode" json:"Barcode"`
	ItemName             string   `db:"Item_name" json:"Item_name"`
	Category             string   `db:"Category" json:"Category"`
	Unit                 string   `db:"Unit" json:"Unit"`
	BulkUnit             *string  `db:"Bulk_unit" json:"Bulk_unit"`
	BulkCode             *string  `db:"Bulk_code" json:"Bulk_code"`
	BulkSingleConversion *float64 `db:"Bulk_single_conversion" json:"Bulk_single_conversion"`
	RetailPrice          *float64 `db:"Retail_price" json:"Retail_price"`
	BulkPrice            *float64 `db:"Bulk_price" json:"Bulk_price"`
	Cost                 *float64 `db:"Cost" json:"Cost"`
}
