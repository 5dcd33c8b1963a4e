package bootstrap

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"recruitment-backend/internal/candidates"
	"recruitment-backend/internal/filepolicy"
	"recruitment-backend/internal/notify"
	"recruitment-backend/internal/shared/config"
	"recruitment-backend/internal/shared/server"
	"recruitment-backend/internal/storage/sheets"
	"recruitment-backend/internal/storage/upload"
	"recruitment-backend/internal/storage/upload/cloudinary"
	"recruitment-backend/internal/storage/upload/drive"
	"recruitment-backend/internal/storage/upload/dropbox"
	localstore "recruitment-backend/internal/storage/upload/local"
)

// App holds shared dependencies.
type App struct {
	Config   config.Config
	Router   *gin.Engine
	Provider upload.Provider
	Sheet    sheets.Appender
	Notifier notify.Notifier
	Service  *candidates.Service
	Handler  *candidates.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	provider, err := buildProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sheet, err := buildSheet(ctx, cfg)
	if err != nil {
		return nil, err
	}

	svc := &candidates.Service{
		Policy:   filepolicy.New(cfg.MaxResumeBytes),
		Provider: provider,
		Sheet:    sheet,
		Notifier: buildNotifier(cfg),
	}

	app := &App{
		Config:   cfg,
		Provider: provider,
		Sheet:    sheet,
		Notifier: svc.Notifier,
		Service:  svc,
		Handler:  candidates.NewHandler(svc),
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           cfg,
		CandidateHandler: app.Handler,
	})

	return app, nil
}

func buildProvider(ctx context.Context, cfg config.Config) (upload.Provider, error) {
	switch cfg.UploadProvider {
	case "drive":
		if cfg.GoogleServiceAccountKey == "" || (cfg.DriveFolderID == "" && cfg.DriveSharedDriveID == "") {
			return devFallbackProvider(cfg, "drive credentials missing")
		}
		return drive.New(ctx, cfg.GoogleServiceAccountKey, cfg.DriveFolderID, cfg.DriveSharedDriveID)
	case "dropbox":
		if cfg.DropboxRefreshToken == "" || cfg.DropboxClientID == "" || cfg.DropboxClientSecret == "" {
			return devFallbackProvider(cfg, "dropbox credentials missing")
		}
		return dropbox.New(cfg.DropboxClientID, cfg.DropboxClientSecret, cfg.DropboxRefreshToken, cfg.DropboxFolder)
	case "cloudinary":
		if cfg.CloudinaryCloudName == "" || cfg.CloudinaryUploadPreset == "" {
			return devFallbackProvider(cfg, "cloudinary credentials missing")
		}
		return cloudinary.New(cfg.CloudinaryCloudName, cfg.CloudinaryUploadPreset)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// devFallbackProvider keeps local runs working without provider credentials.
// Production deployments fail loudly instead.
func devFallbackProvider(cfg config.Config, reason string) (upload.Provider, error) {
	if isDevLike(cfg.Env) {
		log.Printf("bootstrap: %s; falling back to local upload store", reason)
		return localstore.New(cfg.LocalStoreDir), nil
	}
	return nil, fmt.Errorf("UPLOAD_PROVIDER=%s: %s", cfg.UploadProvider, reason)
}

func buildSheet(ctx context.Context, cfg config.Config) (sheets.Appender, error) {
	if strings.TrimSpace(cfg.SheetID) == "" || cfg.GoogleServiceAccountKey == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: SHEET_ID empty; using in-memory sheet")
			return sheets.NewMemory(), nil
		}
		return nil, fmt.Errorf("SHEET_ID and GOOGLE_SERVICE_ACCOUNT_KEY are required")
	}
	return sheets.NewGoogleSheets(ctx, cfg.GoogleServiceAccountKey, cfg.SheetID, cfg.SheetRange)
}

func buildNotifier(cfg config.Config) notify.Notifier {
	if cfg.SMTPAddr == "" || cfg.NotifyEmail == "" {
		return notify.Noop{}
	}
	return notify.NewSMTP(cfg.SMTPAddr, cfg.SMTPFrom, cfg.NotifyEmail, cfg.SMTPUser, cfg.SMTPPassword)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
