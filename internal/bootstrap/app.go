package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"hireup-backend/internal/accounts"
	"hireup-backend/internal/analysis"
	"hireup-backend/internal/applicants"
	"hireup-backend/internal/applications"
	googleauth "hireup-backend/internal/auth"
	"hireup-backend/internal/companies"
	"hireup-backend/internal/jobs"
	"hireup-backend/internal/quizzes"
	"hireup-backend/internal/shared/config"
	"hireup-backend/internal/shared/server"
	"hireup-backend/internal/shared/storage/db"
	"hireup-backend/internal/topics"
)

// App holds the wired dependency graph.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	AccountsService     *accounts.Service
	ApplicantsService   *applicants.Service
	CompaniesService    *companies.Service
	JobsService         *jobs.Service
	QuizzesService      *quizzes.Service
	TopicsService       *topics.Service
	ApplicationsService *applications.Service
	AnalysisService     *analysis.Service
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:              cfg,
		AccountsHandler:     accounts.NewHandler(app.AccountsService),
		ApplicantsHandler:   applicants.NewHandler(app.ApplicantsService),
		CompaniesHandler:    companies.NewHandler(app.CompaniesService),
		JobsHandler:         jobs.NewHandler(app.JobsService),
		QuizzesHandler:      quizzes.NewHandler(app.QuizzesService),
		TopicsHandler:       topics.NewHandler(app.TopicsService),
		ApplicationsHandler: applications.NewHandler(app.ApplicationsService, cfg.AnalysisCallbackToken),
		AnalysisHandler:     analysis.NewHandler(app.AnalysisService),
		GoogleAuth: googleauth.NewGoogleService(
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.GoogleRedirectURL,
			cfg.UIRedirectURL,
			app.AccountsService,
		),
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
		return nil, err
	}
	return sqlDB, nil
}

func buildServices(app *App) {
	var (
		accountRepo     accounts.Repo
		applicantRepo   applicants.Repo
		companyRepo     companies.Repo
		jobRepo         jobs.Repo
		quizRepo        quizzes.Repo
		topicRepo       topics.Repo
		applicationRepo applications.Repo
	)
	if app.DB != nil {
		accountRepo = &accounts.PGRepo{DB: app.DB}
		applicantRepo = &applicants.PGRepo{DB: app.DB}
		companyRepo = &companies.PGRepo{DB: app.DB}
		jobRepo = &jobs.PGRepo{DB: app.DB}
		quizRepo = &quizzes.PGRepo{DB: app.DB}
		topicRepo = &topics.PGRepo{DB: app.DB}
		applicationRepo = &applications.PGRepo{DB: app.DB}
	} else {
		accountRepo = accounts.NewMemoryRepo()
		applicantRepo = applicants.NewMemoryRepo()
		companyRepo = companies.NewMemoryRepo()
		jobRepo = jobs.NewMemoryRepo()
		quizRepo = quizzes.NewMemoryRepo()
		topicRepo = topics.NewMemoryRepo()
		applicationRepo = applications.NewMemoryRepo()
	}

	app.ApplicantsService = applicants.NewService(applicantRepo)
	app.CompaniesService = companies.NewService(companyRepo)
	app.AccountsService = accounts.NewService(accountRepo, profileCreator{
		applicants: app.ApplicantsService,
		companies:  app.CompaniesService,
	})
	app.JobsService = jobs.NewService(jobRepo, app.CompaniesService)
	app.QuizzesService = quizzes.NewService(quizRepo, app.JobsService)
	app.TopicsService = topics.NewService(topicRepo)
	app.ApplicationsService = applications.NewService(
		applicationRepo,
		jobsAdapter{repo: jobRepo},
		quizzesAdapter{repo: quizRepo},
		app.ApplicantsService,
		app.CompaniesService,
	)

	client := analysis.NewClient(app.Config.AnalysisBaseURL, time.Duration(app.Config.AnalysisTimeoutSeconds)*time.Second)
	app.AnalysisService = analysis.NewService(client, app.ApplicationsService, jobsAdapter{repo: jobRepo})
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

type profileCreator struct {
	applicants *applicants.Service
	companies  *companies.Service
}

func (p profileCreator) CreateApplicant(ctx context.Context, accountID, email, name string) error {
	_, err := p.applicants.Register(ctx, accountID, email, name)
	return err
}

func (p profileCreator) CreateCompany(ctx context.Context, accountID, email, name string) error {
	_, err := p.companies.Register(ctx, accountID, email, name)
	return err
}

type jobsAdapter struct {
	repo jobs.Repo
}

func (a jobsAdapter) GetByID(ctx context.Context, jobID string) (jobs.Job, error) {
	return a.repo.GetByID(ctx, jobID)
}

type quizzesAdapter struct {
	repo quizzes.Repo
}

func (a quizzesAdapter) GetByJob(ctx context.Context, jobID string) (quizzes.Quiz, error) {
	return a.repo.GetByJob(ctx, jobID)
}
