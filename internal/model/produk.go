package model

type Produk struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	NamaProduk string `gorm:"column:nama_produk;type:varchar(255);not null" json:"nama_produk" validate:"required"`
	Harga      int64  `gorm:"not null;default:0" json:"harga" validate:"gte=0"`

	// Relasi
	Stok *Stok `gorm:"foreignKey:ProdukID" json:"stok,omitempty"`
}

func (Produk) TableName() string {
	return "produk"
}
