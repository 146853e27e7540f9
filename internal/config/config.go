package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var (
	AppEnv       string
	IsProduction bool
	ServerPort   string
	AppURL       string

	DbHost     string
	DbPort     string
	DbUser     string
	DbPassword string
	DbName     string
	DbSSLMode  string

	JwtSecret string
	Issuer    string

	SigningTokenTTL    time.Duration
	SignReservationTTL time.Duration
	SignRateLimit      float64
	SignRateBurst      int

	StorageDriver    string
	MinioEndpoint    string
	MinioAccessKey   string
	MinioSecretKey   string
	MinioUseSSL      bool
	SignatureBucket  string
	StoragePublicURL string
	S3Region         string
	S3Endpoint       string

	ResendAPIKey      string
	EmailFrom         string
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string

	PDFRenderTimeout time.Duration
	PDFFontPath      string

	AuditRetentionDays int
	TokenRetentionDays int
	CleanupInterval    time.Duration
	CleanupInAPI       bool

	EnableSwagger bool

	CORSAllowedOrigins []string
)

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		zap.L().Info("no .env file found, using environment variables")
	}

	AppEnv = getEnv("APP_ENV", "development")
	IsProduction = AppEnv == "production"
	ServerPort = getEnv("SERVER_PORT", "8080")
	AppURL = strings.TrimRight(getEnv("APP_URL", "http://localhost:3000"), "/")

	DbHost = getEnv("DB_HOST", "localhost")
	DbPort = getEnv("DB_PORT", "5432")
	DbUser = getEnv("DB_USER", "postgres")
	DbPassword = getEnv("DB_PASSWORD", "password")
	DbName = getEnv("DB_NAME", "projectsign")
	DbSSLMode = getEnv("DB_SSLMODE", "disable")

	JwtSecret = getEnv("JWT_SECRET", "defaultsecret")
	Issuer = getEnv("JWT_ISSUER", "projectsign")

	SigningTokenTTL = getDuration("SIGNING_TOKEN_TTL", 48*time.Hour)
	SignReservationTTL = getDuration("SIGN_RESERVATION_TTL", 2*time.Minute)
	SignRateLimit = getFloat("SIGN_RATE_LIMIT", 2)
	SignRateBurst = getInt("SIGN_RATE_BURST", 10)

	StorageDriver = getEnv("STORAGE_DRIVER", "minio")
	MinioEndpoint = getEnv("MINIO_ENDPOINT", "localhost:9000")
	MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minioadmin")
	MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minioadmin")
	MinioUseSSL, _ = strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))
	SignatureBucket = getEnv("SIGNATURE_BUCKET", "signatures")
	StoragePublicURL = strings.TrimRight(getEnv("STORAGE_PUBLIC_URL", "http://localhost:9000"), "/")
	S3Region = getEnv("S3_REGION", "us-east-1")
	S3Endpoint = getEnv("S3_ENDPOINT", "")

	ResendAPIKey = getEnv("RESEND_API_KEY", "")
	EmailFrom = getEnv("EMAIL_FROM", "ProjectSign <noreply@projectsign.co.il>")
	TwilioAccountSID = getEnv("TWILIO_ACCOUNT_SID", "")
	TwilioAuthToken = getEnv("TWILIO_AUTH_TOKEN", "")
	TwilioPhoneNumber = getEnv("TWILIO_PHONE_NUMBER", "")

	PDFRenderTimeout = getDuration("PDF_RENDER_TIMEOUT", 60*time.Second)
	PDFFontPath = getEnv("PDF_FONT_PATH", "")

	AuditRetentionDays = getInt("AUDIT_RETENTION_DAYS", 30)
	TokenRetentionDays = getInt("TOKEN_RETENTION_DAYS", 30)
	CleanupInterval = getDuration("CLEANUP_INTERVAL", 24*time.Hour)
	CleanupInAPI, _ = strconv.ParseBool(getEnv("CLEANUP_IN_API", "true"))

	EnableSwagger, _ = strconv.ParseBool(getEnv("ENABLE_SWAGGER", strconv.FormatBool(!IsProduction)))

	CORSAllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"))
}

// SigningURL builds the public link an external signer opens.
func SigningURL(token string) string {
	return AppURL + "/sign/" + token
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, "")); err == nil && d > 0 {
		return d
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if n, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return n
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if f, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return f
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
