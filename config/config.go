package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort     string
	Environment    string
	AllowedOrigins []string

	// Data sources
	DataSource       string
	PGMDataURL       string
	UnimedDataURL    string
	DBPath           string
	TursoDatabaseURL string
	TursoAuthToken   string

	// Normalization
	StrictNormalization bool
	RandomSeed          int64 // 0 means unseeded
	FetchTimeoutSeconds int
	GenerationDelayMS   int

	// Document drafts
	OfficeName      string
	OfficeCity      string
	OfficeSignature string

	// Drafts per client IP per minute, 0 disables the limit
	DocumentRateLimit int

	// Export storage
	UploadDir string
	// Cloudflare R2 Storage
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string

	// Email (Resend)
	ResendAPIKey         string
	EmailFrom            string
	EmailFromName        string
	EmailTestMode        bool // When true, emails are logged instead of sent
	EscalationRecipients []string
	DigestLanguage       string

	// Scheduler, empty cron spec disables the job
	ReloadCron   string
	DigestCron   string
	CronTimezone string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		Environment:          getEnv("ENVIRONMENT", "development"),
		AllowedOrigins:       splitList(getEnv("ALLOWED_ORIGINS", "*")),
		DataSource:           getEnv("DATA_SOURCE", "unimed"),
		PGMDataURL:           getEnv("PGM_DATA_URL", "data-samples/processo_sample.json"),
		UnimedDataURL:        getEnv("UNIMED_DATA_URL", "data/unimed-data.json"),
		DBPath:               getEnv("DB_PATH", "db/processos.db"),
		TursoDatabaseURL:     getEnv("TURSO_DATABASE_URL", ""),
		TursoAuthToken:       getEnv("TURSO_AUTH_TOKEN", ""),
		StrictNormalization:  getEnvBool("STRICT_NORMALIZATION", false),
		RandomSeed:           getEnvInt64("RANDOM_SEED", 0),
		FetchTimeoutSeconds:  getEnvInt("FETCH_TIMEOUT_SECONDS", 15),
		GenerationDelayMS:    getEnvInt("GENERATION_DELAY_MS", 2000),
		OfficeName:           getEnv("OFFICE_NAME", "MUNICÍPIO DE NATAL"),
		OfficeCity:           getEnv("OFFICE_CITY", "Natal/RN"),
		OfficeSignature:      getEnv("OFFICE_SIGNATURE", "Procuradoria Geral do Município"),
		DocumentRateLimit:    getEnvInt("DOCUMENT_RATE_LIMIT", 10),
		UploadDir:            getEnv("UPLOAD_DIR", "exports"),
		R2AccountID:          getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:        getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey:    getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:         getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:          getEnv("R2_PUBLIC_URL", ""),
		ResendAPIKey:         getEnv("RESEND_API_KEY", ""),
		EmailFrom:            getEnv("EMAIL_FROM", "alertas@juris-dashboard.local"),
		EmailFromName:        getEnv("EMAIL_FROM_NAME", "Painel Jurídico"),
		EmailTestMode:        getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		EscalationRecipients: splitList(getEnv("ESCALATION_RECIPIENTS", "")),
		DigestLanguage:       getEnv("DIGEST_LANG", "pt"),
		ReloadCron:           getEnv("RELOAD_CRON", ""),
		DigestCron:           getEnv("DIGEST_CRON", ""),
		CronTimezone:         getEnv("CRON_TIMEZONE", "America/Sao_Paulo"),
	}
}

// SourceURL returns the configured location of a JSON source
func (c *Config) SourceURL(source string) string {
	switch source {
	case "pgm":
		return c.PGMDataURL
	case "unimed":
		return c.UnimedDataURL
	}
	return ""
}

// UsesTurso reports whether the SQLite source is a remote libSQL database
func (c *Config) UsesTurso() bool {
	return c.TursoDatabaseURL != ""
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
