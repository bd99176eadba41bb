package service

import (
	"context"
	"fmt"
	"strings"

	"go-toko-admin/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Fixed replies. These exact strings are part of the chatbot contract.
const (
	ReplyNoPembelian = "Belum ada data pembelian."
	ReplyNoTerjual   = "Belum ada produk terjual."
	ReplyAIDown      = "AI sedang tidak tersedia"
)

const (
	promptRapikanList    = "Rapikan daftar pembelian berikut agar mudah dibaca"
	promptRingkasTerjual = "Buat ringkasan produk terjual"
	promptAsistenToko    = "Kamu adalah asisten admin toko"
)

// Completer is the external text-completion collaborator.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userText string) (string, error)
}

type ChatbotService interface {
	// Answer never fails: external or database errors degrade to a fixed
	// fallback reply.
	Answer(ctx context.Context, msg string) string
}

type chatbotService struct {
	pembelianRepo repository.PembelianRepository
	completer     Completer
	log           *logrus.Logger
	printer       *message.Printer
	intents       []intent
}

// intent pairs a keyword predicate with its handler. The slice is evaluated
// top to bottom and the first match wins, so the order below is load-bearing:
// list > total > hari ini > terjual > default.
type intent struct {
	match  func(q string) bool
	handle func(ctx context.Context, q string) (string, error)
}

func NewChatbotService(pembelianRepo repository.PembelianRepository, completer Completer, log *logrus.Logger) ChatbotService {
	s := &chatbotService{
		pembelianRepo: pembelianRepo,
		completer:     completer,
		log:           log,
		printer:       message.NewPrinter(language.Indonesian),
	}
	s.intents = []intent{
		{match: matchAll("list", "pembelian"), handle: s.listPembelian},
		{match: matchAll("total", "pembelian"), handle: s.totalPembelian},
		{match: matchAll("hari ini"), handle: s.pembelianHariIni},
		{match: matchAll("produk", "terjual"), handle: s.produkTerjual},
		{match: func(string) bool { return true }, handle: s.freeChat},
	}
	return s
}

func matchAll(keywords ...string) func(q string) bool {
	return func(q string) bool {
		for _, kw := range keywords {
			if !strings.Contains(q, kw) {
				return false
			}
		}
		return true
	}
}

func (s *chatbotService) Answer(ctx context.Context, msg string) string {
	q := strings.ToLower(msg)
	for _, it := range s.intents {
		if !it.match(q) {
			continue
		}
		reply, err := it.handle(ctx, msg)
		if err != nil {
			s.log.WithError(err).Warn("chatbot reply failed")
			return ReplyAIDown
		}
		return reply
	}
	return ReplyAIDown // unreachable, the default intent always matches
}

func (s *chatbotService) listPembelian(ctx context.Context, _ string) (string, error) {
	rows, err := s.pembelianRepo.FindAllDetail()
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return ReplyNoPembelian, nil
	}

	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = fmt.Sprintf("ID %d | %s | Qty %d | Rp %d | %s | %s",
			r.ID, r.NamaProduk, r.Jumlah, r.TotalHarga, r.Status,
			r.Tanggal.Format("2006-01-02 15:04:05"))
	}

	return s.completer.Complete(ctx, promptRapikanList, strings.Join(lines, "\n"))
}

func (s *chatbotService) totalPembelian(_ context.Context, _ string) (string, error) {
	total, err := s.pembelianRepo.TotalAktif()
	if err != nil {
		return "", err
	}
	return s.printer.Sprintf("Total pembelian saat ini adalah Rp %d", total), nil
}

func (s *chatbotService) pembelianHariIni(_ context.Context, _ string) (string, error) {
	count, err := s.pembelianRepo.CountToday()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Jumlah transaksi hari ini: %d", count), nil
}

func (s *chatbotService) produkTerjual(ctx context.Context, _ string) (string, error) {
	rows, err := s.pembelianRepo.SoldPerProduk()
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return ReplyNoTerjual, nil
	}

	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = fmt.Sprintf("%s: %d pcs", r.NamaProduk, r.Total)
	}

	return s.completer.Complete(ctx, promptRingkasTerjual, strings.Join(lines, "\n"))
}

func (s *chatbotService) freeChat(ctx context.Context, msg string) (string, error) {
	return s.completer.Complete(ctx, promptAsistenToko, msg)
}
