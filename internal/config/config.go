package config

import (
	"fmt"
	"os"
	"strconv"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	JWTSecret string // JWT署名シークレット

	BaseURL  string // 決済の戻りURLやリセットリンクに使う
	Currency string // 決済通貨（usdなど）

	StripeSecretKey string // Stripe APIキー

	RedisAddr     string // リセットトークン置き場
	RedisPassword string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	InvoiceDir string // 請求書PDFの保存先
}

// Loadは環境変数
func Load() (Config, error) {
	smtpPort := 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("SMTP_PORT must be number: %w", err)
		}
		smtpPort = p
	}

	cfg := Config{
		Port: getenv("PORT", "8080"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		BaseURL:  getenv("BASE_URL", "http://localhost:8080"),
		Currency: getenv("CURRENCY", "usd"),

		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		SMTPHost: getenv("SMTP_HOST", "localhost"),
		SMTPPort: smtpPort,
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		SMTPFrom: getenv("SMTP_FROM", "shop@example.com"),

		InvoiceDir: getenv("INVOICE_DIR", "data/invoices"),
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.StripeSecretKey == "" {
		return Config{}, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
