package repository

import (
	"time"

	"go-toko-admin/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PembelianDetail is a ledger row joined with its product name, used by the
// list view, the receipt export and the chatbot reports.
type PembelianDetail struct {
	ID         uint                  `json:"id"`
	NamaProduk string                `json:"nama_produk"`
	Jumlah     int                   `json:"jumlah"`
	TotalHarga int64                 `json:"total_harga"`
	Status     model.StatusPembelian `json:"status"`
	Tanggal    time.Time             `json:"tanggal"`
}

// ProdukTerjual is the per-product sold aggregate for the chatbot report.
type ProdukTerjual struct {
	NamaProduk string `json:"nama_produk"`
	Total      int    `json:"total"`
}

type PembelianRepository interface {
	Create(tx *gorm.DB, pembelian *model.Pembelian) error
	FindByID(tx *gorm.DB, id uint) (*model.Pembelian, error)
	UpdateStatus(tx *gorm.DB, id uint, status model.StatusPembelian) error

	FindDetail(id uint) (*PembelianDetail, error)
	FindAllDetail() ([]PembelianDetail, error)
	TotalAktif() (int64, error)
	CountToday() (int64, error)
	SoldPerProduk() ([]ProdukTerjual, error)
}

type pembelianRepo struct {
	db *gorm.DB
}

func NewPembelianRepo(db *gorm.DB) PembelianRepository {
	return &pembelianRepo{db}
}

func (r *pembelianRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *pembelianRepo) Create(tx *gorm.DB, pembelian *model.Pembelian) error {
	return errors.Wrap(r.conn(tx).Create(pembelian).Error, "create pembelian")
}

func (r *pembelianRepo) FindByID(tx *gorm.DB, id uint) (*model.Pembelian, error) {
	var pembelian model.Pembelian
	if err := r.conn(tx).First(&pembelian, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pembelian, nil
}

func (r *pembelianRepo) UpdateStatus(tx *gorm.DB, id uint, status model.StatusPembelian) error {
	err := r.conn(tx).Model(&model.Pembelian{}).
		Where("id = ?", id).
		Update("status", status).Error
	return errors.Wrap(err, "update pembelian status")
}

func (r *pembelianRepo) FindDetail(id uint) (*PembelianDetail, error) {
	var detail PembelianDetail
	err := r.db.Model(&model.Pembelian{}).
		Select("pembelian.id, produk.nama_produk, pembelian.jumlah, pembelian.total_harga, pembelian.status, pembelian.tanggal").
		Joins("JOIN produk ON pembelian.produk_id = produk.id").
		Where("pembelian.id = ?", id).
		Take(&detail).Error
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *pembelianRepo) FindAllDetail() ([]PembelianDetail, error) {
	var details []PembelianDetail
	err := r.db.Model(&model.Pembelian{}).
		Select("pembelian.id, produk.nama_produk, pembelian.jumlah, pembelian.total_harga, pembelian.status, pembelian.tanggal").
		Joins("JOIN produk ON pembelian.produk_id = produk.id").
		Order("pembelian.tanggal DESC").
		Find(&details).Error
	return details, errors.Wrap(err, "find all pembelian detail")
}

func (r *pembelianRepo) TotalAktif() (int64, error) {
	var total int64
	err := r.db.Model(&model.Pembelian{}).
		Where("status = ?", model.StatusAktif).
		Select("COALESCE(SUM(total_harga), 0)").
		Scan(&total).Error
	return total, errors.Wrap(err, "sum pembelian aktif")
}

func (r *pembelianRepo) CountToday() (int64, error) {
	var count int64
	err := r.db.Model(&model.Pembelian{}).
		Where("DATE(tanggal) = CURRENT_DATE").
		Count(&count).Error
	return count, errors.Wrap(err, "count pembelian hari ini")
}

func (r *pembelianRepo) SoldPerProduk() ([]ProdukTerjual, error) {
	var results []ProdukTerjual
	err := r.db.Model(&model.Pembelian{}).
		Select("produk.nama_produk, SUM(pembelian.jumlah) as total").
		Joins("JOIN produk ON pembelian.produk_id = produk.id").
		Group("pembelian.produk_id, produk.nama_produk").
		Order("total DESC").
		Find(&results).Error
	return results, errors.Wrap(err, "sum terjual per produk")
}
