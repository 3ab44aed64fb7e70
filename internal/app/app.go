package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"guidesphere_backend/internal/config"
	"guidesphere_backend/internal/controller"
	"guidesphere_backend/internal/repository"
	"guidesphere_backend/internal/service"
	"guidesphere_backend/pkg/database"
	"guidesphere_backend/pkg/logger"
	"guidesphere_backend/pkg/monitoring"
	"guidesphere_backend/pkg/security"
	"guidesphere_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	Caps            service.Capabilities
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user        *repository.UserRepository
	content     *repository.ContentRepository
	bank        *repository.QuestionBankRepository
	exam        *repository.ExamRepository
	quiz        *repository.QuizRepository
	certificate *repository.CertificateRepository
	rating      *repository.RatingRepository
}

type services struct {
	storage     service.StorageProvider
	transcriber *service.Transcriber
	exam        *service.ExamService
	certificate *service.CertificateService
	quiz        *service.QuizService
	generation  *service.GenerationService
	evaluation  *service.EvaluationService
	rating      *service.RatingService
	stats       *service.StatsService
}

type controllers struct {
	exam        *controller.ExamController
	quiz        *controller.QuizController
	generation  *controller.GenerationController
	certificate *controller.CertificateController
	evaluation  *controller.EvaluationController
	rating      *controller.RatingController
	stats       *controller.StatsController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig is the hot-reload entry point used by the config watcher.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		content:     repository.NewContentRepository(db),
		bank:        repository.NewQuestionBankRepository(db),
		exam:        repository.NewExamRepository(db),
		quiz:        repository.NewQuizRepository(db),
		certificate: repository.NewCertificateRepository(db),
		rating:      repository.NewRatingRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageProvider(&cfg.Storage)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	s.transcriber = service.NewTranscriber(
		service.NewWhisperClient(cfg.STT),
		storage,
		rdb,
		cfg.Eval.VideosDir,
	)

	s.exam = service.NewExamService(repos.bank, repos.exam, cfg.Eval.PassThreshold)
	s.certificate = service.NewCertificateService(repos.certificate, repos.content)
	s.quiz = service.NewQuizService(db, repos.quiz, repos.content, s.certificate, a.Caps, cfg.Eval.PassThreshold)
	s.generation = service.NewGenerationService(
		service.NewAIGenerator(cfg.AI),
		service.NewHeuristicGenerator(),
		s.quiz,
		repos.content,
		storage,
		s.transcriber,
	)
	s.evaluation = service.NewEvaluationService(repos.quiz, a.Caps)
	s.rating = service.NewRatingService(repos.rating, repos.content)
	s.stats = service.NewStatsService(db, repos.user, repos.content, repos.exam, repos.certificate, repos.rating, a.Caps)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		exam:        controller.NewExamController(s.exam),
		quiz:        controller.NewQuizController(s.quiz),
		generation:  controller.NewGenerationController(s.generation),
		certificate: controller.NewCertificateController(s.certificate),
		evaluation:  controller.NewEvaluationController(s.evaluation),
		rating:      controller.NewRatingController(s.rating),
		stats:       controller.NewStatsController(s.stats),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
			log.Fatalf("Failed to migrate database: %v", err)
		}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, transcript caching degraded to files only", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Caps:   service.DetectCapabilities(db),
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, db, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
		log.Fatalf("Failed to initialize services: %v", err)
	}
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("guidesphere-eval", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" || cfg.Storage.Type == "" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
