package service

import (
	"testing"

	"go-toko-admin/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pembelianFixture struct {
	produkRepo    *memProdukRepo
	stokRepo      *memStokRepo
	pembelianRepo *memPembelianRepo
	hub           *fakeBroadcaster
	svc           PembelianService
}

func newPembelianFixture() *pembelianFixture {
	produkRepo := newMemProdukRepo()
	stokRepo := newMemStokRepo()
	pembelianRepo := newMemPembelianRepo(produkRepo)
	hub := &fakeBroadcaster{}

	_ = produkRepo.Create(&model.Produk{ID: 1, NamaProduk: "Beras 5kg", Harga: 10000})
	_ = stokRepo.Create(&model.Stok{ID: 1, ProdukID: 1, Jumlah: 10})

	return &pembelianFixture{
		produkRepo:    produkRepo,
		stokRepo:      stokRepo,
		pembelianRepo: pembelianRepo,
		hub:           hub,
		svc:           NewPembelianService(produkRepo, stokRepo, pembelianRepo, fakeTx{}, hub),
	}
}

func TestCreatePembelian(t *testing.T) {
	f := newPembelianFixture()

	pembelian, err := f.svc.CreatePembelian(1, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, pembelian.Jumlah)
	assert.Equal(t, int64(30000), pembelian.TotalHarga)
	assert.Equal(t, model.StatusAktif, pembelian.Status)
	assert.Equal(t, "Beras 5kg", pembelian.Produk.NamaProduk)

	assert.Equal(t, 7, f.stokRepo.stok[1].Jumlah)

	require.Len(t, f.hub.events, 1)
	assert.Equal(t, "pembelian_created", f.hub.events[0].Type)
	assert.Equal(t, 7, f.hub.events[0].StokBaru)
}

func TestCreatePembelianProdukNotFound(t *testing.T) {
	f := newPembelianFixture()

	_, err := f.svc.CreatePembelian(99, 1)
	assert.ErrorIs(t, err, ErrProdukNotFound)
	assert.Empty(t, f.pembelianRepo.rows)
}

func TestCreatePembelianInsufficientStock(t *testing.T) {
	f := newPembelianFixture()

	_, err := f.svc.CreatePembelian(1, 11)
	assert.ErrorIs(t, err, ErrStokKurang)
	assert.Equal(t, 10, f.stokRepo.stok[1].Jumlah)
	assert.Empty(t, f.pembelianRepo.rows)
}

func TestCreatePembelianRejectsNonPositiveJumlah(t *testing.T) {
	f := newPembelianFixture()

	for _, jumlah := range []int{0, -3} {
		_, err := f.svc.CreatePembelian(1, jumlah)
		assert.Error(t, err, "jumlah %d must be rejected", jumlah)
	}
	assert.Equal(t, 10, f.stokRepo.stok[1].Jumlah)
}

func TestCancelPembelianRestoresStock(t *testing.T) {
	f := newPembelianFixture()

	created, err := f.svc.CreatePembelian(1, 3)
	require.NoError(t, err)
	require.Equal(t, 7, f.stokRepo.stok[1].Jumlah)

	cancelled, err := f.svc.CancelPembelian(created.ID)
	require.NoError(t, err)

	assert.Equal(t, model.StatusCancel, cancelled.Status)
	assert.Equal(t, 10, f.stokRepo.stok[1].Jumlah)
	assert.Equal(t, model.StatusCancel, f.pembelianRepo.rows[created.ID].Status)
}

func TestCancelPembelianTwiceIsRejected(t *testing.T) {
	f := newPembelianFixture()

	created, err := f.svc.CreatePembelian(1, 3)
	require.NoError(t, err)

	_, err = f.svc.CancelPembelian(created.ID)
	require.NoError(t, err)

	_, err = f.svc.CancelPembelian(created.ID)
	assert.ErrorIs(t, err, ErrSudahCancel)

	// the double cancel must not restock twice
	assert.Equal(t, 10, f.stokRepo.stok[1].Jumlah)
}

func TestCancelPembelianNotFound(t *testing.T) {
	f := newPembelianFixture()

	_, err := f.svc.CancelPembelian(42)
	assert.ErrorIs(t, err, ErrPembelianNotFound)
}

func TestGetReceipt(t *testing.T) {
	f := newPembelianFixture()

	created, err := f.svc.CreatePembelian(1, 2)
	require.NoError(t, err)

	detail, err := f.svc.GetReceipt(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Beras 5kg", detail.NamaProduk)
	assert.Equal(t, int64(20000), detail.TotalHarga)
	assert.Equal(t, model.StatusAktif, detail.Status)

	_, err = f.svc.GetReceipt(999)
	assert.ErrorIs(t, err, ErrPembelianNotFound)
}

func TestGetDashboardStats(t *testing.T) {
	f := newPembelianFixture()

	_, err := f.svc.CreatePembelian(1, 2)
	require.NoError(t, err)
	created, err := f.svc.CreatePembelian(1, 1)
	require.NoError(t, err)
	_, err = f.svc.CancelPembelian(created.ID)
	require.NoError(t, err)

	stats, err := f.svc.GetDashboardStats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalProduk)
	assert.Equal(t, int64(2), stats.PembelianHariIni)
	assert.Equal(t, int64(20000), stats.TotalAktif) // cancelled row excluded
}
