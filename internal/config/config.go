package config

import (
	"flag"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration loaded once at startup.
type Config struct {
	Port string
	Env  string

	// GeminiAPIKey may be empty at startup; synthesis fails with a
	// configuration error when it is missing, nothing else does.
	GeminiAPIKey string
	Model        string

	// SynthesisTimeout bounds one model call. Zero disables the deadline.
	SynthesisTimeout time.Duration

	HistoryPath  string
	HistoryDSN   string
	SettingsPath string

	Document DocumentConfig
}

// DocumentConfig selects the raw-upload blob store. When the S3 settings
// are incomplete the in-memory store is used.
type DocumentConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// CanUseS3 reports whether the S3 settings are complete enough to build a client.
func (d DocumentConfig) CanUseS3() bool {
	return strings.TrimSpace(d.Endpoint) != "" &&
		strings.TrimSpace(d.AccessKey) != "" &&
		strings.TrimSpace(d.SecretKey) != ""
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8084", "server port")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	dataDir := firstNonEmpty(strings.TrimSpace(os.Getenv("MEDISYNTH_DATA_DIR")), "tmp")

	return &Config{
		Port:             *port,
		Env:              env,
		GeminiAPIKey:     strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		Model:            firstNonEmpty(strings.TrimSpace(os.Getenv("MEDISYNTH_MODEL")), "gemini-3-pro-preview"),
		SynthesisTimeout: resolveTimeout(),
		HistoryPath:      firstNonEmpty(strings.TrimSpace(os.Getenv("HISTORY_PATH")), filepath.Join(dataDir, "history.json")),
		HistoryDSN:       strings.TrimSpace(os.Getenv("HISTORY_PG_DSN")),
		SettingsPath:     firstNonEmpty(strings.TrimSpace(os.Getenv("SETTINGS_PATH")), filepath.Join(dataDir, "settings.json")),
		Document:         loadDocumentConfig(),
	}, nil
}

func resolveTimeout() time.Duration {
	raw := strings.TrimSpace(os.Getenv("SYNTHESIS_TIMEOUT_SECONDS"))
	if raw == "" {
		return 120 * time.Second
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs < 0 {
		return 120 * time.Second
	}
	return time.Duration(secs) * time.Second
}

func loadDocumentConfig() DocumentConfig {
	return DocumentConfig{
		Endpoint:  strings.TrimSpace(os.Getenv("DOCUMENT_S3_ENDPOINT")),
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("DOCUMENT_S3_REGION")), "us-east-1"),
		AccessKey: firstNonEmpty(strings.TrimSpace(os.Getenv("DOCUMENT_S3_ACCESS_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_USER"))),
		SecretKey: firstNonEmpty(strings.TrimSpace(os.Getenv("DOCUMENT_S3_SECRET_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_PASSWORD"))),
		Bucket:    firstNonEmpty(strings.TrimSpace(os.Getenv("DOCUMENT_S3_BUCKET")), "medisynth-uploads"),
		UseSSL:    resolveUseSSL(),
	}
}

func resolveUseSSL() bool {
	raw := strings.TrimSpace(os.Getenv("DOCUMENT_S3_USE_SSL"))
	if raw == "" {
		return false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
