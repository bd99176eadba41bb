package repository

import (
	"go-toko-admin/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ProdukRepository interface {
	Create(produk *model.Produk) error
	FindAll() ([]model.Produk, error)
	FindByID(tx *gorm.DB, id uint) (*model.Produk, error)
	Count() (int64, error)
}

type produkRepo struct {
	db *gorm.DB
}

func NewProdukRepo(db *gorm.DB) ProdukRepository {
	return &produkRepo{db}
}

// conn returns the transaction handle when one is supplied, otherwise the
// base connection. Repos never open transactions themselves.
func (r *produkRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *produkRepo) Create(produk *model.Produk) error {
	return errors.Wrap(r.db.Create(produk).Error, "create produk")
}

func (r *produkRepo) FindAll() ([]model.Produk, error) {
	var produk []model.Produk
	err := r.db.Preload("Stok").Order("nama_produk ASC").Find(&produk).Error
	return produk, errors.Wrap(err, "find all produk")
}

func (r *produkRepo) FindByID(tx *gorm.DB, id uint) (*model.Produk, error) {
	var produk model.Produk
	if err := r.conn(tx).First(&produk, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &produk, nil
}

func (r *produkRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Produk{}).Count(&count).Error
	return count, errors.Wrap(err, "count produk")
}
