package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-toko-admin/internal/config"
	"go-toko-admin/internal/groq"
	"go-toko-admin/internal/handler"
	"go-toko-admin/internal/middleware"
	"go-toko-admin/internal/model"
	"go-toko-admin/internal/repository"
	"go-toko-admin/internal/service"
	"go-toko-admin/internal/ws"
	"go-toko-admin/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// 1. Load Config
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("load config")
	}

	// 2. Setup Database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("connect database")
	}
	if err := db.AutoMigrate(&model.Admin{}, &model.Produk{}, &model.Stok{}, &model.Pembelian{}); err != nil {
		log.WithError(err).Fatal("migrate schema")
	}

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub(log)
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	adminRepo := repository.NewAdminRepo(db)
	produkRepo := repository.NewProdukRepo(db)
	stokRepo := repository.NewStokRepo(db)
	pembelianRepo := repository.NewPembelianRepo(db)

	seed(log, cfg, adminRepo, produkRepo, stokRepo)

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	secret := []byte(cfg.JWTSecret)

	authService := service.NewAuthService(adminRepo, secret, sessionTTL)
	pembelianService := service.NewPembelianService(produkRepo, stokRepo, pembelianRepo, db, wsHub)
	groqClient := groq.NewClient(cfg.GroqAPIKey, cfg.GroqModel)
	chatbotService := service.NewChatbotService(pembelianRepo, groqClient, log)

	authHandler := handler.NewAuthHandler(authService, sessionTTL)
	dashHandler := handler.NewDashboardHandler(pembelianService, log)
	pembelianHandler := handler.NewPembelianHandler(pembelianService, log)
	chatbotHandler := handler.NewChatbotHandler(chatbotService)

	// 5. Setup Fiber
	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		AppName: "Toko Admin v1.0",
		Views:   engine,
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 6. Routes
	// ============ PUBLIC ROUTES ============
	app.Get("/login", authHandler.ShowLogin)
	app.Post("/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	guard := middleware.RequireAdmin(secret, adminRepo)

	app.Get("/logout", guard, authHandler.Logout)
	app.Get("/", guard, dashHandler.Dashboard)
	app.Get("/pembelian", guard, pembelianHandler.ShowForm)
	app.Post("/pembelian", guard, pembelianHandler.Create)
	app.Get("/list-pembelian", guard, pembelianHandler.List)
	app.Get("/cancel/:id", guard, pembelianHandler.Cancel)
	app.Get("/export/:id", guard, pembelianHandler.Export)
	app.Post("/chatbot", guard, chatbotHandler.Chat)

	// WebSocket Route
	app.Use("/ws", guard, func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		if err := app.Listen(cfg.Address()); err != nil {
			log.WithError(err).Panic("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}

	log.Info("Server exited")
}

// seed creates the default admin and, when the product table is empty, a few
// demo products with opening stock.
func seed(log *logrus.Logger, cfg *config.Config, adminRepo repository.AdminRepository, produkRepo repository.ProdukRepository, stokRepo repository.StokRepository) {
	if _, err := adminRepo.FindByUsername(cfg.AdminUsername); err != nil {
		admin := &model.Admin{Username: cfg.AdminUsername}
		if err := admin.SetPassword(cfg.AdminPassword); err != nil {
			log.WithError(err).Warn("hash admin password")
			return
		}
		if err := adminRepo.Create(admin); err != nil {
			log.WithError(err).Warn("seed admin")
		} else {
			log.WithField("username", cfg.AdminUsername).Info("Admin user created")
		}
	}

	count, err := produkRepo.Count()
	if err != nil || count > 0 {
		return
	}

	demo := []struct {
		nama  string
		harga int64
		stok  int
	}{
		{"Beras 5kg", 65000, 40},
		{"Minyak Goreng 1L", 18000, 60},
		{"Gula Pasir 1kg", 14000, 50},
	}
	for _, d := range demo {
		produk := &model.Produk{NamaProduk: d.nama, Harga: d.harga}
		if err := produkRepo.Create(produk); err != nil {
			log.WithError(err).Warn("seed produk")
			continue
		}
		if err := stokRepo.Create(&model.Stok{ProdukID: produk.ID, Jumlah: d.stok}); err != nil {
			log.WithError(err).Warn("seed stok")
		}
	}
	log.Info("Demo produk and stok seeded")
}
