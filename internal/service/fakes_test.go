package service

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"go-toko-admin/internal/model"
	"go-toko-admin/internal/repository"
	"go-toko-admin/internal/ws"

	"gorm.io/gorm"
)

// fakeTx runs the callback without a database; the in-memory repos below
// ignore the tx handle.
type fakeTx struct{}

func (fakeTx) Transaction(fc func(tx *gorm.DB) error, _ ...*sql.TxOptions) error {
	return fc(nil)
}

type memProdukRepo struct {
	produk map[uint]*model.Produk
}

func newMemProdukRepo() *memProdukRepo {
	return &memProdukRepo{produk: make(map[uint]*model.Produk)}
}

func (r *memProdukRepo) Create(p *model.Produk) error {
	if p.ID == 0 {
		p.ID = uint(len(r.produk) + 1)
	}
	r.produk[p.ID] = p
	return nil
}

func (r *memProdukRepo) FindAll() ([]model.Produk, error) {
	var out []model.Produk
	for _, p := range r.produk {
		out = append(out, *p)
	}
	return out, nil
}

func (r *memProdukRepo) FindByID(_ *gorm.DB, id uint) (*model.Produk, error) {
	p, ok := r.produk[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memProdukRepo) Count() (int64, error) {
	return int64(len(r.produk)), nil
}

type memStokRepo struct {
	stok map[uint]*model.Stok // keyed by produk id
}

func newMemStokRepo() *memStokRepo {
	return &memStokRepo{stok: make(map[uint]*model.Stok)}
}

func (r *memStokRepo) Create(s *model.Stok) error {
	r.stok[s.ProdukID] = s
	return nil
}

func (r *memStokRepo) FindByProdukIDForUpdate(_ *gorm.DB, produkID uint) (*model.Stok, error) {
	s, ok := r.stok[produkID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memStokRepo) UpdateJumlah(_ *gorm.DB, produkID uint, jumlah int) error {
	s, ok := r.stok[produkID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Jumlah = jumlah
	return nil
}

type memPembelianRepo struct {
	rows   map[uint]*model.Pembelian
	produk *memProdukRepo
	nextID uint
}

func newMemPembelianRepo(produk *memProdukRepo) *memPembelianRepo {
	return &memPembelianRepo{rows: make(map[uint]*model.Pembelian), produk: produk, nextID: 1}
}

func (r *memPembelianRepo) Create(_ *gorm.DB, p *model.Pembelian) error {
	p.ID = r.nextID
	r.nextID++
	cp := *p
	r.rows[p.ID] = &cp
	return nil
}

func (r *memPembelianRepo) FindByID(_ *gorm.DB, id uint) (*model.Pembelian, error) {
	p, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memPembelianRepo) UpdateStatus(_ *gorm.DB, id uint, status model.StatusPembelian) error {
	p, ok := r.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = status
	return nil
}

func (r *memPembelianRepo) detail(p *model.Pembelian) repository.PembelianDetail {
	nama := ""
	if produk, ok := r.produk.produk[p.ProdukID]; ok {
		nama = produk.NamaProduk
	}
	return repository.PembelianDetail{
		ID:         p.ID,
		NamaProduk: nama,
		Jumlah:     p.Jumlah,
		TotalHarga: p.TotalHarga,
		Status:     p.Status,
		Tanggal:    p.Tanggal,
	}
}

func (r *memPembelianRepo) FindDetail(id uint) (*repository.PembelianDetail, error) {
	p, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	d := r.detail(p)
	return &d, nil
}

func (r *memPembelianRepo) FindAllDetail() ([]repository.PembelianDetail, error) {
	var out []repository.PembelianDetail
	for _, p := range r.rows {
		out = append(out, r.detail(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tanggal.After(out[j].Tanggal) })
	return out, nil
}

func (r *memPembelianRepo) TotalAktif() (int64, error) {
	var total int64
	for _, p := range r.rows {
		if p.Status == model.StatusAktif {
			total += p.TotalHarga
		}
	}
	return total, nil
}

func (r *memPembelianRepo) CountToday() (int64, error) {
	var count int64
	now := time.Now()
	for _, p := range r.rows {
		y1, m1, d1 := p.Tanggal.Date()
		y2, m2, d2 := now.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			count++
		}
	}
	return count, nil
}

func (r *memPembelianRepo) SoldPerProduk() ([]repository.ProdukTerjual, error) {
	totals := make(map[uint]int)
	for _, p := range r.rows {
		totals[p.ProdukID] += p.Jumlah
	}
	var out []repository.ProdukTerjual
	for produkID, total := range totals {
		nama := ""
		if produk, ok := r.produk.produk[produkID]; ok {
			nama = produk.NamaProduk
		}
		out = append(out, repository.ProdukTerjual{NamaProduk: nama, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out, nil
}

type fakeBroadcaster struct {
	events []ws.StockEvent
}

func (b *fakeBroadcaster) BroadcastStockEvent(event ws.StockEvent) {
	b.events = append(b.events, event)
}

type completerCall struct {
	system string
	user   string
}

type fakeCompleter struct {
	reply string
	err   error
	calls []completerCall
}

func (c *fakeCompleter) Complete(_ context.Context, systemPrompt, userText string) (string, error) {
	c.calls = append(c.calls, completerCall{system: systemPrompt, user: userText})
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

type memAdminRepo struct {
	admins map[uint]*model.Admin
}

func newMemAdminRepo() *memAdminRepo {
	return &memAdminRepo{admins: make(map[uint]*model.Admin)}
}

func (r *memAdminRepo) Create(a *model.Admin) error {
	if a.ID == 0 {
		a.ID = uint(len(r.admins) + 1)
	}
	r.admins[a.ID] = a
	return nil
}

func (r *memAdminRepo) FindByUsername(username string) (*model.Admin, error) {
	for _, a := range r.admins {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memAdminRepo) FindByID(id uint) (*model.Admin, error) {
	a, ok := r.admins[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memAdminRepo) UpdateTokenVersion(id uint, version string) error {
	a, ok := r.admins[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.TokenVersion = version
	return nil
}
