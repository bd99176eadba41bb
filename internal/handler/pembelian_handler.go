package handler

import (
	"errors"
	"strconv"

	"go-toko-admin/internal/pdf"
	"go-toko-admin/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type PembelianHandler struct {
	service service.PembelianService
	log     *logrus.Logger
}

func NewPembelianHandler(s service.PembelianService, log *logrus.Logger) *PembelianHandler {
	return &PembelianHandler{service: s, log: log}
}

// ShowForm renders the purchase form with the product list
// GET /pembelian
func (h *PembelianHandler) ShowForm(c *fiber.Ctx) error {
	produk, err := h.service.ListProduk()
	if err != nil {
		h.log.WithError(err).Error("fetch produk list")
		return c.Status(500).Render("pembelian", fiber.Map{"Error": "db"})
	}

	return c.Render("pembelian", fiber.Map{
		"Produk": produk,
		"Error":  c.Query("error"),
	})
}

// Create records a purchase and redirects to the list view
// POST /pembelian
func (h *PembelianHandler) Create(c *fiber.Ctx) error {
	produkID, err := strconv.ParseUint(c.FormValue("produk_id"), 10, 32)
	if err != nil {
		return c.Redirect("/pembelian?error=produk")
	}
	jumlah, err := strconv.Atoi(c.FormValue("jumlah"))
	if err != nil {
		return c.Redirect("/pembelian?error=jumlah")
	}

	_, err = h.service.CreatePembelian(uint(produkID), jumlah)
	switch {
	case err == nil:
		return c.Redirect("/list-pembelian")
	case errors.Is(err, service.ErrProdukNotFound):
		return c.Redirect("/pembelian?error=produk")
	case errors.Is(err, service.ErrStokKurang):
		return c.Redirect("/pembelian?error=stok")
	default:
		h.log.WithError(err).Error("create pembelian")
		return c.Redirect("/pembelian?error=gagal")
	}
}

// List renders the purchase list, newest first
// GET /list-pembelian
func (h *PembelianHandler) List(c *fiber.Ctx) error {
	data, err := h.service.ListPembelian()
	if err != nil {
		h.log.WithError(err).Error("fetch pembelian list")
	}

	return c.Render("list-pembelian", fiber.Map{
		"Data": data,
	})
}

// Cancel flips a purchase to CANCEL and restores its stock. Unknown or
// already-cancelled ids redirect silently, matching the list-view flow.
// GET /cancel/:id
func (h *PembelianHandler) Cancel(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Redirect("/list-pembelian")
	}

	if _, err := h.service.CancelPembelian(uint(id)); err != nil {
		if !errors.Is(err, service.ErrPembelianNotFound) && !errors.Is(err, service.ErrSudahCancel) {
			h.log.WithError(err).Error("cancel pembelian")
		}
	}

	return c.Redirect("/list-pembelian")
}

// Export streams the purchase receipt as a PDF attachment. An unknown id
// still yields a valid, contentless document.
// GET /export/:id
func (h *PembelianHandler) Export(c *fiber.Ctx) error {
	var receipt *pdf.Receipt

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err == nil {
		detail, err := h.service.GetReceipt(uint(id))
		if err == nil {
			receipt = &pdf.Receipt{
				NamaProduk: detail.NamaProduk,
				Jumlah:     detail.Jumlah,
				TotalHarga: detail.TotalHarga,
				Status:     string(detail.Status),
			}
		} else if !errors.Is(err, service.ErrPembelianNotFound) {
			h.log.WithError(err).Error("fetch receipt")
		}
	}

	stream, err := pdf.RenderReceipt(receipt)
	if err != nil {
		h.log.WithError(err).Error("render receipt")
		return c.SendStatus(500)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=struk.pdf`)
	return c.Send(stream)
}
