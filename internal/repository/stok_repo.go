package repository

import (
	"go-toko-admin/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StokRepository interface {
	Create(stok *model.Stok) error
	// FindByProdukIDForUpdate locks the stock row for the rest of the
	// transaction so concurrent purchases against the same product
	// serialize instead of racing on a stale quantity.
	FindByProdukIDForUpdate(tx *gorm.DB, produkID uint) (*model.Stok, error)
	UpdateJumlah(tx *gorm.DB, produkID uint, jumlah int) error
}

type stokRepo struct {
	db *gorm.DB
}

func NewStokRepo(db *gorm.DB) StokRepository {
	return &stokRepo{db}
}

func (r *stokRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *stokRepo) Create(stok *model.Stok) error {
	return errors.Wrap(r.db.Create(stok).Error, "create stok")
}

func (r *stokRepo) FindByProdukIDForUpdate(tx *gorm.DB, produkID uint) (*model.Stok, error) {
	var stok model.Stok
	err := r.conn(tx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&stok, "produk_id = ?", produkID).Error
	if err != nil {
		return nil, err
	}
	return &stok, nil
}

func (r *stokRepo) UpdateJumlah(tx *gorm.DB, produkID uint, jumlah int) error {
	err := r.conn(tx).Model(&model.Stok{}).
		Where("produk_id = ?", produkID).
		Update("jumlah", jumlah).Error
	return errors.Wrap(err, "update stok jumlah")
}
