package service

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go-toko-admin/internal/model"
	"go-toko-admin/internal/repository"
	"go-toko-admin/internal/ws"
	"go-toko-admin/pkg/validator"

	"gorm.io/gorm"
)

var (
	ErrProdukNotFound    = errors.New("product not found")
	ErrPembelianNotFound = errors.New("purchase not found")
	ErrStokKurang        = errors.New("insufficient stock remaining")
	ErrSudahCancel       = errors.New("purchase already cancelled")
)

// TxRunner abstracts gorm's transaction entry point so the workflow can be
// tested against in-memory repositories. *gorm.DB satisfies it.
type TxRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

// StockBroadcaster pushes live stock updates to connected dashboards.
// *ws.Hub satisfies it.
type StockBroadcaster interface {
	BroadcastStockEvent(event ws.StockEvent)
}

// DashboardStats is the overview block on the dashboard page.
type DashboardStats struct {
	TotalProduk      int64 `json:"total_produk"`
	PembelianHariIni int64 `json:"pembelian_hari_ini"`
	TotalAktif       int64 `json:"total_aktif"`
}

type PembelianService interface {
	CreatePembelian(produkID uint, jumlah int) (*model.Pembelian, error)
	CancelPembelian(id uint) (*model.Pembelian, error)
	GetReceipt(id uint) (*repository.PembelianDetail, error)
	ListPembelian() ([]repository.PembelianDetail, error)
	ListProduk() ([]model.Produk, error)
	GetDashboardStats() (*DashboardStats, error)
}

type pembelianService struct {
	produkRepo    repository.ProdukRepository
	stokRepo      repository.StokRepository
	pembelianRepo repository.PembelianRepository
	tx            TxRunner
	hub           StockBroadcaster
}

func NewPembelianService(
	produkRepo repository.ProdukRepository,
	stokRepo repository.StokRepository,
	pembelianRepo repository.PembelianRepository,
	tx TxRunner,
	hub StockBroadcaster,
) PembelianService {
	return &pembelianService{
		produkRepo:    produkRepo,
		stokRepo:      stokRepo,
		pembelianRepo: pembelianRepo,
		tx:            tx,
		hub:           hub,
	}
}

// CreatePembelian records a purchase: price lookup, ledger insert with
// status AKTIF, stock decrement. The three steps run in one transaction with
// the stock row locked, so the quantity on hand can never go negative and
// concurrent purchases of the same product serialize.
func (s *pembelianService) CreatePembelian(produkID uint, jumlah int) (*model.Pembelian, error) {
	req := &model.Pembelian{ProdukID: produkID, Jumlah: jumlah}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	var pembelian *model.Pembelian
	var produk *model.Produk
	var stokBaru int

	err := s.tx.Transaction(func(tx *gorm.DB) error {
		var err error
		produk, err = s.produkRepo.FindByID(tx, produkID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProdukNotFound
			}
			return err
		}

		stok, err := s.stokRepo.FindByProdukIDForUpdate(tx, produkID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProdukNotFound
			}
			return err
		}

		if stok.Jumlah < jumlah {
			return ErrStokKurang
		}

		pembelian = &model.Pembelian{
			ProdukID:   produkID,
			Jumlah:     jumlah,
			TotalHarga: produk.Harga * int64(jumlah),
			Status:     model.StatusAktif,
			Tanggal:    time.Now(),
		}
		if err := s.pembelianRepo.Create(tx, pembelian); err != nil {
			return err
		}

		stokBaru = stok.Jumlah - jumlah
		return s.stokRepo.UpdateJumlah(tx, produkID, stokBaru)
	})
	if err != nil {
		return nil, err
	}

	pembelian.Produk = *produk

	if s.hub != nil {
		s.hub.BroadcastStockEvent(ws.StockEvent{
			Type:       "pembelian_created",
			ProdukID:   produkID,
			NamaProduk: produk.NamaProduk,
			Jumlah:     jumlah,
			StokBaru:   stokBaru,
			Tanggal:    pembelian.Tanggal,
		})
	}

	return pembelian, nil
}

// CancelPembelian restores the purchased quantity to stock and flips the
// ledger row to CANCEL. A row that is already cancelled is rejected so a
// double cancel cannot restock twice.
func (s *pembelianService) CancelPembelian(id uint) (*model.Pembelian, error) {
	var pembelian *model.Pembelian
	var stokBaru int

	err := s.tx.Transaction(func(tx *gorm.DB) error {
		var err error
		pembelian, err = s.pembelianRepo.FindByID(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPembelianNotFound
			}
			return err
		}

		if pembelian.Status != model.StatusAktif {
			return ErrSudahCancel
		}

		stok, err := s.stokRepo.FindByProdukIDForUpdate(tx, pembelian.ProdukID)
		if err != nil {
			return err
		}

		stokBaru = stok.Jumlah + pembelian.Jumlah
		if err := s.stokRepo.UpdateJumlah(tx, pembelian.ProdukID, stokBaru); err != nil {
			return err
		}

		if err := s.pembelianRepo.UpdateStatus(tx, id, model.StatusCancel); err != nil {
			return err
		}
		pembelian.Status = model.StatusCancel
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastStockEvent(ws.StockEvent{
			Type:     "pembelian_cancelled",
			ProdukID: pembelian.ProdukID,
			Jumlah:   pembelian.Jumlah,
			StokBaru: stokBaru,
			Tanggal:  time.Now(),
		})
	}

	return pembelian, nil
}

func (s *pembelianService) GetReceipt(id uint) (*repository.PembelianDetail, error) {
	detail, err := s.pembelianRepo.FindDetail(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPembelianNotFound
		}
		return nil, err
	}
	return detail, nil
}

func (s *pembelianService) ListPembelian() ([]repository.PembelianDetail, error) {
	return s.pembelianRepo.FindAllDetail()
}

func (s *pembelianService) ListProduk() ([]model.Produk, error) {
	return s.produkRepo.FindAll()
}

func (s *pembelianService) GetDashboardStats() (*DashboardStats, error) {
	totalProduk, err := s.produkRepo.Count()
	if err != nil {
		return nil, err
	}
	hariIni, err := s.pembelianRepo.CountToday()
	if err != nil {
		return nil, err
	}
	totalAktif, err := s.pembelianRepo.TotalAktif()
	if err != nil {
		return nil, err
	}
	return &DashboardStats{
		TotalProduk:      totalProduk,
		PembelianHariIni: hariIni,
		TotalAktif:       totalAktif,
	}, nil
}
