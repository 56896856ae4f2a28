package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/studytrack/studytrack-backend/internal/config"
	"github.com/studytrack/studytrack-backend/internal/delivery/httpd"
	"github.com/studytrack/studytrack-backend/internal/events"
	"github.com/studytrack/studytrack-backend/internal/models"
	"github.com/studytrack/studytrack-backend/internal/repository"
	"github.com/studytrack/studytrack-backend/internal/service"
	"github.com/studytrack/studytrack-backend/internal/service/assist"
	"github.com/studytrack/studytrack-backend/internal/watch"
)

type App struct {
	server      *http.Server
	logger      zerolog.Logger
	config      *config.Config
	db          *sql.DB
	bus         events.Bus
	broadcaster *events.Broadcaster
	stopEvents  context.CancelFunc
}

func New(cfg *config.Config, log zerolog.Logger, db *sql.DB) (*App, error) {
	// Repositories
	userRepo := repository.NewUserRepository(db, log)
	subjectRepo := repository.NewSubjectRepository(db, log)
	assignmentRepo := repository.NewAssignmentRepository(db, log)
	materialRepo := repository.NewMaterialRepository(db, log)
	timetableRepo := repository.NewTimetableRepository(db, log)
	statsRepo := repository.NewStatsRepository(db, log)
	planRepo := repository.NewPlanRepository(db, log)
	feedbackRepo := repository.NewFeedbackRepository(db, log)

	avatarRepo, err := repository.NewAvatarRepository(cfg.Storage, log)
	if err != nil {
		return nil, err
	}

	// Live updates: local hub plus a cross-instance bus
	hub := watch.NewHub(log)

	var bus events.Bus
	if cfg.Events.Enabled {
		bus, err = events.NewBus(cfg.Events.URL, cfg.Events.Exchange, log)
		if err != nil {
			log.Error().Err(err).Msg("Event bus unavailable, running single-instance")
			bus = events.NewNoopBus()
		}
	} else {
		bus = events.NewNoopBus()
	}
	broadcaster := events.NewBroadcaster(hub, bus, log)

	emailService, err := service.NewEmailService(context.Background(), cfg.Email, log)
	if err != nil {
		return nil, err
	}

	validate := validator.New()

	// Services
	authService := service.NewAuthService(userRepo, emailService, cfg.Auth, cfg.Email.AppBaseURL, log)
	profileService := service.NewProfileService(userRepo, avatarRepo, broadcaster, log)
	subjectService := service.NewSubjectService(subjectRepo, broadcaster, log)
	assignmentService := service.NewAssignmentService(assignmentRepo, subjectRepo, broadcaster, log)
	materialService := service.NewMaterialService(materialRepo, subjectRepo, userRepo, broadcaster, cfg.Search, log)
	timetableService := service.NewTimetableService(timetableRepo, broadcaster, log)
	statsService := service.NewStatsService(statsRepo, subjectRepo, assignmentRepo, broadcaster, cfg.Stats, log)
	planService := service.NewPlanService(planRepo, subjectRepo, log)
	feedbackService := service.NewFeedbackService(feedbackRepo, log)

	assistClient := assist.NewClient(cfg.Assist, log)
	assistService := assist.NewService(assistClient, validate, log)

	registerLoaders(hub, profileService, subjectService, assignmentService, materialService, timetableService, statsService)

	handler := httpd.NewHandler(
		authService,
		profileService,
		subjectService,
		assignmentService,
		materialService,
		timetableService,
		statsService,
		planService,
		feedbackService,
		assistService,
		hub,
		validate,
		log,
	)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:        cfg.Server.Address,
		Handler:     router,
		ReadTimeout: cfg.Server.ReadTimeout,
		// Watch streams outlive any write timeout; the idle timeout still
		// reaps dead connections.
		WriteTimeout: 0,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server:      server,
		logger:      log,
		config:      cfg,
		db:          db,
		bus:         bus,
		broadcaster: broadcaster,
	}, nil
}

// registerLoaders binds each watchable collection to the read it snapshots.
func registerLoaders(
	hub *watch.Hub,
	profileService service.ProfileService,
	subjectService service.SubjectService,
	assignmentService service.AssignmentService,
	materialService service.MaterialService,
	timetableService service.TimetableService,
	statsService service.StatsService,
) {
	hub.RegisterLoader(watch.CollectionProfiles, func(ctx context.Context, key watch.Key) (interface{}, error) {
		return profileService.GetProfile(ctx, key.UserID)
	})
	hub.RegisterLoader(watch.CollectionSubjects, func(ctx context.Context, key watch.Key) (interface{}, error) {
		return subjectService.ListSubjects(ctx, key.UserID)
	})
	hub.RegisterLoader(watch.CollectionAssignments, func(ctx context.Context, key watch.Key) (interface{}, error) {
		return assignmentService.ListAssignments(ctx, key.UserID, key.Filter)
	})
	hub.RegisterLoader(watch.CollectionStudyMaterials, func(ctx context.Context, key watch.Key) (interface{}, error) {
		return materialService.ListMaterials(ctx, key.UserID, key.Filter)
	})
	hub.RegisterLoader(watch.CollectionTimetableEntries, func(ctx context.Context, key watch.Key) (interface{}, error) {
		return timetableService.ListEntries(ctx, key.UserID, models.TimetableType(key.Filter))
	})
	hub.RegisterLoader(watch.CollectionTimetableSettings, func(ctx context.Context, key watch.Key) (interface{}, error) {
		return timetableService.GetSettings(ctx, key.UserID)
	})
	hub.RegisterLoader(watch.CollectionUserStats, func(ctx context.Context, key watch.Key) (interface{}, error) {
		return statsService.GetDashboard(ctx, key.UserID)
	})
}

func (a *App) Run() error {
	eventsCtx, cancel := context.WithCancel(context.Background())
	a.stopEvents = cancel
	if err := a.broadcaster.Start(eventsCtx); err != nil {
		a.logger.Error().Err(err).Msg("Failed to start event consumer")
	}

	a.logger.Info().Msgf("Starting studytrack backend on %s", a.config.Server.Address)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down studytrack backend...")

	if a.stopEvents != nil {
		a.stopEvents()
	}
	if err := a.bus.Close(); err != nil {
		a.logger.Error().Err(err).Msg("Failed to close event bus")
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close database connection")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return a.server.Shutdown(shutdownCtx)
}
