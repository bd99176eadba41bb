package model

// Stok holds the per-product quantity on hand. Only the purchase workflow
// mutates it, always inside a transaction with the row locked.
type Stok struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ProdukID uint `gorm:"uniqueIndex;not null" json:"produk_id"`
	Jumlah   int  `gorm:"not null;default:0" json:"jumlah"`
}

func (Stok) TableName() string {
	return "stok"
}
