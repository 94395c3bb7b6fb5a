package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config アプリケーション全体の設定
type Config struct {
	Server        ServerConfig
	Stripe        StripeConfig
	CORS          CORSConfig
	Payment       PaymentConfig
	GRPC          GRPCConfig
	OpenTelemetry OpenTelemetryConfig
	Environment   string
}

// ServerConfig サーバー設定
type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// StripeConfig Stripe設定
type StripeConfig struct {
	SecretKey        string
	WebhookSecret    string
	APITimeout       time.Duration
	APIURL           string // 空の場合はStripeのデフォルトを使用
	WebhookTolerance time.Duration
}

// CORSConfig CORS設定
type CORSConfig struct {
	AllowedOrigins []string
}

// PaymentConfig 決済設定
type PaymentConfig struct {
	DefaultCurrency string
}

// GRPCConfig gRPCヘルスチェックサーバー設定
type GRPCConfig struct {
	Enabled bool
	Port    int
}

// OpenTelemetryConfig OpenTelemetry設定
type OpenTelemetryConfig struct {
	Enabled         bool
	ServiceName     string
	ServiceVersion  string
	OTLPEndpoint    string
	OTLPInsecure    bool
	TraceExporter   string // "otlp", "stdout"
	MetricsExporter string // "otlp", "stdout"
}

var defaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://localhost:3000",
}

// Load 設定を読み込む
func Load() (*Config, error) {
	// .envファイルを読み込む（存在しない場合は無視）
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnvAsInt("PORT", 5000),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Stripe: StripeConfig{
			SecretKey:        getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret:    getEnv("STRIPE_WEBHOOK_SECRET", ""),
			APITimeout:       getEnvAsDuration("STRIPE_API_TIMEOUT", 30*time.Second),
			APIURL:           getEnv("STRIPE_API_URL", ""),
			WebhookTolerance: getEnvAsDuration("STRIPE_WEBHOOK_TOLERANCE", 300*time.Second),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", defaultAllowedOrigins),
		},
		Payment: PaymentConfig{
			DefaultCurrency: strings.ToLower(getEnv("DEFAULT_CURRENCY", "usd")),
		},
		GRPC: GRPCConfig{
			Enabled: getEnvAsBool("GRPC_ENABLED", true),
			Port:    getEnvAsInt("GRPC_PORT", 9090),
		},
		OpenTelemetry: OpenTelemetryConfig{
			Enabled:         getEnvAsBool("OTEL_ENABLED", false),
			ServiceName:     getEnv("OTEL_SERVICE_NAME", "payment-gateway"),
			ServiceVersion:  getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			OTLPEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			OTLPInsecure:    getEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			TraceExporter:   getEnv("OTEL_TRACES_EXPORTER", "otlp"),
			MetricsExporter: getEnv("OTEL_METRICS_EXPORTER", "otlp"),
		},
	}

	// 必須設定の検証
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate 設定の検証
func (c *Config) validate() error {
	if c.Stripe.SecretKey == "" {
		return fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	if c.Stripe.WebhookSecret == "" {
		return fmt.Errorf("STRIPE_WEBHOOK_SECRET is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.GRPC.Enabled && c.GRPC.Port == c.Server.Port {
		return fmt.Errorf("GRPC_PORT must differ from PORT")
	}
	return nil
}

// IsDevelopment 開発環境かどうか
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Address HTTPサーバーのリッスンアドレスを返す
func (c *ServerConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Address gRPCサーバーのリッスンアドレスを返す
func (c *GRPCConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// getEnv 環境変数を取得（デフォルト値付き）
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt 環境変数を整数として取得
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool 環境変数を真偽値として取得
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration 環境変数を時間として取得
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList カンマ区切りの環境変数をスライスとして取得
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
