package model

import "time"

type StatusPembelian string

const (
	StatusAktif  StatusPembelian = "AKTIF"
	StatusCancel StatusPembelian = "CANCEL"
)

// Pembelian is a purchase ledger row. It is created once with status AKTIF
// and its status flips exactly once to CANCEL; rows are never deleted.
type Pembelian struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	ProdukID   uint            `gorm:"not null" json:"produk_id" validate:"required"`
	Produk     Produk          `json:"produk" validate:"-"` // Relasi - skip validation
	Jumlah     int             `gorm:"not null" json:"jumlah" validate:"required,gt=0"`
	TotalHarga int64           `gorm:"column:total_harga;not null" json:"total_harga"`
	Status     StatusPembelian `gorm:"type:varchar(10);not null;default:'AKTIF'" json:"status"`
	Tanggal    time.Time       `gorm:"autoCreateTime" json:"tanggal"`
}

func (Pembelian) TableName() string {
	return "pembelian"
}
