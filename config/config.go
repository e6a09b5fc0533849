package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreSQLite   = "sqlite"
	StoreSupabase = "supabase"
)

// Defaults.
const (
	DefaultPort          = 8000
	DefaultLogLevel      = "info"
	DefaultUploadsDir    = "uploads"
	DefaultOutputsDir    = "outputs"
	DefaultDataDir       = "data"
	DefaultChatModel     = "gpt-4-turbo-preview"
	DefaultWhisperModel  = "whisper-1"
	DefaultOpenAIBaseURL = "https://api.openai.com"
	DefaultExportWorkers = 2
	DefaultCORSOrigins   = "http://localhost:5173,http://localhost:3000"
)

// Config holds all runtime settings, read from environment variables
// with a .env file as an optional source.
type Config struct {
	Port     int
	LogLevel string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	ChatModel     string
	WhisperModel  string

	UploadsDir string
	OutputsDir string
	DataDir    string

	StoreBackend       string
	SupabaseURL        string
	SupabaseServiceKey string

	CORSOrigins   string
	ExportWorkers int

	FFmpegPath  string
	FFprobePath string
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	// Missing .env is fine; real env vars win either way.
	_ = godotenv.Load()

	cfg := &Config{
		Port:               DefaultPort,
		LogLevel:           getEnv("LOG_LEVEL", DefaultLogLevel),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:      getEnv("OPENAI_BASE_URL", DefaultOpenAIBaseURL),
		ChatModel:          getEnv("CHAT_MODEL", DefaultChatModel),
		WhisperModel:       getEnv("WHISPER_MODEL", DefaultWhisperModel),
		UploadsDir:         getEnv("UPLOADS_DIR", DefaultUploadsDir),
		OutputsDir:         getEnv("OUTPUTS_DIR", DefaultOutputsDir),
		DataDir:            getEnv("DATA_DIR", DefaultDataDir),
		StoreBackend:       getEnv("STORE_BACKEND", StoreSQLite),
		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseServiceKey: os.Getenv("SUPABASE_SERVICE_KEY"),
		CORSOrigins:        getEnv("CORS_ORIGINS", DefaultCORSOrigins),
		ExportWorkers:      DefaultExportWorkers,
		FFmpegPath:         getEnv("FFMPEG_PATH", "ffmpeg"),
		FFprobePath:        getEnv("FFPROBE_PATH", "ffprobe"),
	}

	if p := os.Getenv("PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
		if port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid PORT: must be between 1 and 65535")
		}
		cfg.Port = port
	}

	if w := os.Getenv("EXPORT_WORKERS"); w != "" {
		n, err := strconv.Atoi(w)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid EXPORT_WORKERS: %q", w)
		}
		cfg.ExportWorkers = n
	}

	switch cfg.StoreBackend {
	case StoreSQLite:
	case StoreSupabase:
		if cfg.SupabaseURL == "" || cfg.SupabaseServiceKey == "" {
			return nil, fmt.Errorf("STORE_BACKEND=supabase requires SUPABASE_URL and SUPABASE_SERVICE_KEY")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND: %q", cfg.StoreBackend)
	}

	return cfg, nil
}

// EnsureDirectories creates the uploads, outputs and data directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.UploadsDir, c.OutputsDir, c.DataDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
