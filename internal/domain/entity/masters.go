package entity

import "time"

// Department master record
type Department struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Location master record
type Location struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Vendor master record
type Vendor struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// InventoryItem is a stock record used to pre-fill line-item stock snapshots
type InventoryItem struct {
	ID            int64     `json:"id"`
	ItemName      string    `json:"item_name"`
	UnitOfMeasure string    `json:"unit_of_measure"`
	StockOnHand   int       `json:"stock_on_hand"`
	UpdatedAt     time.Time `json:"updated_at"`
}
