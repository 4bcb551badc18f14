package main

import (
	"log"
	"strings"

	"github.com/ozgunabanoz/shopping-site-project/internal/config"
	"github.com/ozgunabanoz/shopping-site-project/internal/domain/model"
	"github.com/ozgunabanoz/shopping-site-project/internal/handler"
	"github.com/ozgunabanoz/shopping-site-project/internal/infra/db"
	"github.com/ozgunabanoz/shopping-site-project/internal/infra/mail"
	"github.com/ozgunabanoz/shopping-site-project/internal/infra/payment"
	infraRepo "github.com/ozgunabanoz/shopping-site-project/internal/infra/repository"
	"github.com/ozgunabanoz/shopping-site-project/internal/infra/storage"
	"github.com/ozgunabanoz/shopping-site-project/internal/infra/token"
	"github.com/ozgunabanoz/shopping-site-project/internal/invoice"
	"github.com/ozgunabanoz/shopping-site-project/internal/server"
	"github.com/ozgunabanoz/shopping-site-project/internal/usecase"
	"github.com/ozgunabanoz/shopping-site-project/internal/validator"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	//.envはローカル開発用（無くてもよい）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.CheckoutSession{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		log.Fatal(err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	sessionRepo := infraRepo.NewCheckoutSessionGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//外部サービスの部品
	gateway := payment.NewStripeGateway(cfg.StripeSecretKey)
	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	resetStore := token.NewRedisResetTokenStore(redisClient)
	renderer := invoice.NewRenderer()

	artifactStore, err := storage.NewDiskArtifactStore(cfg.InvoiceDir)
	if err != nil {
		log.Fatal(err)
	}

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo, resetStore, mailer, validator.NewAuthValidator(userRepo))
	productUC := usecase.NewProductUsecase(productRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartRepo, productRepo)
	checkoutUC := usecase.NewCheckoutUsecase(txManager, cartRepo, cartRepo, productRepo, sessionRepo, userRepo, gateway, cfg.Currency, cfg.BaseURL)
	orderUC := usecase.NewOrderUsecase(orderRepo, orderItemRepo)
	invoiceUC := usecase.NewInvoiceUsecase(orderRepo, orderItemRepo, renderer, artifactStore)

	//Handler生成
	handlers := server.Handlers{
		Auth:     handler.NewAuthHandler(authUC, strings.HasPrefix(cfg.BaseURL, "https://")),
		Product:  handler.NewProductHandler(productUC),
		Cart:     handler.NewCartHandler(cartUC),
		Checkout: handler.NewCheckoutHandler(checkoutUC),
		Order:    handler.NewOrderHandler(orderUC),
		Invoice:  handler.NewInvoiceHandler(invoiceUC),
	}

	//Server起動
	if err := server.Start(":"+cfg.Port, cfg, handlers); err != nil {
		log.Fatal(err)
	}
}
