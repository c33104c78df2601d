package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-match/internal/analyses"
	"resume-match/internal/analyzer"
	"resume-match/internal/documents"
	"resume-match/internal/feedback"
	"resume-match/internal/llm"
	"resume-match/internal/llm/groq"
	"resume-match/internal/positions"
	"resume-match/internal/shared/auth"
	"resume-match/internal/shared/config"
	"resume-match/internal/shared/server"
	"resume-match/internal/shared/storage/db"
	"resume-match/internal/shared/storage/object"
	localstore "resume-match/internal/shared/storage/object/local"
	s3store "resume-match/internal/shared/storage/object/s3"
	"resume-match/internal/users"
	"resume-match/internal/versions"
)

// App holds shared dependencies wired once at startup.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Signer *auth.Signer

	UsersRepo     users.Repo
	DocumentsRepo documents.Repo
	PositionsRepo positions.Repo
	AnalysesRepo  analyses.Repo
	VersionsRepo  versions.Repo
	FeedbackRepo  feedback.Repo

	UsersService     *users.Service
	DocumentsService *documents.Service
	PositionsService *positions.Service
	AnalysesService  *analyses.Service
	VersionsService  *versions.Service
	FeedbackService  *feedback.Service
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		if !isDevLike(cfg.Env) {
			return nil, fmt.Errorf("JWT_SECRET is required")
		}
		log.Printf("bootstrap: JWT_SECRET empty; using dev default")
		cfg.JWTSecret = "dev-secret-do-not-use"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Signer: auth.NewSigner(cfg.JWTSecret),
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		Signer:          app.Signer,
		UserHandler:     users.NewHandler(app.UsersService),
		PositionHandler: positions.NewHandler(app.PositionsService),
		AnalysisHandler: analyses.NewHandler(app.AnalysesService),
		VersionHandler:  versions.NewHandler(app.VersionsService),
		FeedbackHandler: feedback.NewHandler(app.FeedbackService),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) error {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.DocumentsRepo = &documents.PGRepo{DB: app.DB}
		app.PositionsRepo = &positions.PGRepo{DB: app.DB}
		app.AnalysesRepo = &analyses.PGRepo{DB: app.DB}
		app.VersionsRepo = &versions.PGRepo{DB: app.DB}
		app.FeedbackRepo = &feedback.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.DocumentsRepo = documents.NewMemoryRepo()
		app.PositionsRepo = positions.NewMemoryRepo()
		app.AnalysesRepo = analyses.NewMemoryRepo()
		app.VersionsRepo = versions.NewMemoryRepo()
		app.FeedbackRepo = feedback.NewMemoryRepo()
	}

	oracleClient := llm.Client(llm.PlaceholderClient{})
	if strings.TrimSpace(app.Config.OracleAPIKey) != "" {
		client, err := groq.NewClient(app.Config.OracleAPIKey, app.Config.OracleModel, app.Config.OracleBaseURL)
		if err != nil {
			return err
		}
		oracleClient = client
	} else {
		log.Printf("bootstrap: oracle API key empty; analysis calls will fail until configured")
	}

	app.UsersService = users.NewService(app.UsersRepo, app.Signer)
	app.DocumentsService = &documents.Service{
		Store:          app.Store,
		Repo:           app.DocumentsRepo,
		MaxUploadBytes: app.Config.MaxUploadBytes,
	}
	app.PositionsService = positions.NewService(app.PositionsRepo)

	app.AnalysesService = &analyses.Service{
		Repo:      app.AnalysesRepo,
		Docs:      app.DocumentsService,
		DocRepo:   app.DocumentsRepo,
		Positions: app.PositionsRepo,
		Oracle:    analyzer.New(oracleClient),
		Store:     app.Store,
	}
	app.VersionsService = &versions.Service{
		Repo:     app.VersionsRepo,
		Analyses: analysisSource{svc: app.AnalysesService},
		Store:    app.Store,
	}
	// Wired after both services exist to close the improve -> version loop.
	app.AnalysesService.Versions = app.VersionsService
	app.FeedbackService = feedback.NewService(app.FeedbackRepo)

	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "development":
		return true
	default:
		return false
	}
}

// analysisSource adapts the analyses service to the narrow lookup the
// versions service needs, translating its not-found sentinel.
type analysisSource struct {
	svc *analyses.Service
}

func (a analysisSource) ImprovedLatex(ctx context.Context, userID, analysisID string) (string, string, error) {
	analysis, err := a.svc.Get(ctx, userID, analysisID)
	if err != nil {
		if errors.Is(err, analyses.ErrNotFound) {
			return "", "", versions.ErrNotFound
		}
		return "", "", err
	}
	return analysis.ImprovedLatex, analysis.LatexStorageKey, nil
}
