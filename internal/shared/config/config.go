package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	// Upload provider selection and per-provider settings.
	UploadProvider string

	GoogleServiceAccountKey string
	DriveFolderID           string
	DriveSharedDriveID      string

	DropboxRefreshToken string
	DropboxClientID     string
	DropboxClientSecret string
	DropboxFolder       string

	CloudinaryCloudName    string
	CloudinaryUploadPreset string

	LocalStoreDir string

	// Spreadsheet target.
	SheetID    string
	SheetRange string

	// File policy.
	MaxResumeBytes int64

	// Notification (optional).
	NotifyEmail  string
	SMTPAddr     string
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
}

const defaultMaxResumeBytes = 5 << 20 // 5 MiB

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load(".env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	sheetID := os.Getenv("SHEET_ID")

	if env == "production" && sheetID == "" {
		log.Printf("SHEET_ID is required in production")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),

		UploadProvider: normalizeProvider(getEnv("UPLOAD_PROVIDER", "local")),

		GoogleServiceAccountKey: getEnv("GOOGLE_SERVICE_ACCOUNT_KEY", ""),
		DriveFolderID:           getEnv("DRIVE_FOLDER_ID", ""),
		DriveSharedDriveID:      getEnv("DRIVE_SHARED_DRIVE_ID", ""),

		DropboxRefreshToken: getEnv("DROPBOX_REFRESH_TOKEN", ""),
		DropboxClientID:     getEnv("DROPBOX_CLIENT_ID", ""),
		DropboxClientSecret: getEnv("DROPBOX_CLIENT_SECRET", ""),
		DropboxFolder:       getEnv("DROPBOX_FOLDER", "/curriculos"),

		CloudinaryCloudName:    getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryUploadPreset: getEnv("CLOUDINARY_UPLOAD_PRESET", ""),

		LocalStoreDir: getEnv("LOCAL_STORE_DIR", "./data"),

		SheetID:    sheetID,
		SheetRange: getEnv("SHEET_RANGE", "Candidatos!A2:J"),

		MaxResumeBytes: getEnvInt64("MAX_RESUME_BYTES", defaultMaxResumeBytes),

		NotifyEmail:  getEnv("NOTIFY_EMAIL", ""),
		SMTPAddr:     getEnv("SMTP_ADDR", ""),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "drive", "google_drive":
		return "drive"
	case "dropbox":
		return "dropbox"
	case "cloudinary":
		return "cloudinary"
	default:
		return "local"
	}
}
