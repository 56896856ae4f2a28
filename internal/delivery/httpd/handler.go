package httpd

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/studytrack/studytrack-backend/internal/service"
	"github.com/studytrack/studytrack-backend/internal/service/assist"
	"github.com/studytrack/studytrack-backend/internal/watch"
	"github.com/studytrack/studytrack-backend/pkg/utils"
)

type Handler struct {
	authService      service.AuthService
	profileService   service.ProfileService
	subjectService   service.SubjectService
	assignmentSvc    service.AssignmentService
	materialService  service.MaterialService
	timetableService service.TimetableService
	statsService     service.StatsService
	planService      service.PlanService
	feedbackService  service.FeedbackService
	assistService    assist.Service
	hub              *watch.Hub
	validate         *validator.Validate
	logger           zerolog.Logger
}

func NewHandler(
	authService service.AuthService,
	profileService service.ProfileService,
	subjectService service.SubjectService,
	assignmentSvc service.AssignmentService,
	materialService service.MaterialService,
	timetableService service.TimetableService,
	statsService service.StatsService,
	planService service.PlanService,
	feedbackService service.FeedbackService,
	assistService assist.Service,
	hub *watch.Hub,
	validate *validator.Validate,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		authService:      authService,
		profileService:   profileService,
		subjectService:   subjectService,
		assignmentSvc:    assignmentSvc,
		materialService:  materialService,
		timetableService: timetableService,
		statsService:     statsService,
		planService:      planService,
		feedbackService:  feedbackService,
		assistService:    assistService,
		hub:              hub,
		validate:         validate,
		logger:           logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Route("/api/v1", func(api chi.Router) {
		api.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.Signup)
			r.Post("/login", h.Login)
			r.Post("/logout", h.Logout)
			r.Post("/password-reset", h.RequestPasswordReset)
			r.Post("/password-reset/confirm", h.ConfirmPasswordReset)
		})

		api.Post("/feedback", h.SubmitFeedback)
		api.Get("/feedback", h.ListFeedback)

		// Shared materials are searchable from the logged-out landing page.
		api.Route("/materials", func(r chi.Router) {
			r.Get("/public", h.SearchPublicMaterials)

			r.Group(func(r chi.Router) {
				r.Use(h.Authenticate)
				r.Post("/", h.CreateMaterial)
				r.Get("/", h.ListMaterials)
				r.Delete("/{id}", h.DeleteMaterial)
			})
		})

		api.Group(func(r chi.Router) {
			r.Use(h.Authenticate)

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", h.GetProfile)
				r.Patch("/", h.UpdateProfile)
				r.Post("/avatar", h.UploadAvatar)
			})

			r.Route("/subjects", func(r chi.Router) {
				r.Post("/", h.CreateSubject)
				r.Get("/", h.ListSubjects)
				r.Get("/{id}", h.GetSubject)
				r.Put("/{id}", h.UpdateSubject)
				r.Delete("/{id}", h.DeleteSubject)
			})

			r.Route("/assignments", func(r chi.Router) {
				r.Post("/", h.CreateAssignment)
				r.Get("/", h.ListAssignments)
				r.Patch("/{id}", h.UpdateAssignment)
				r.Delete("/{id}", h.DeleteAssignment)
			})

			r.Route("/timetable", func(r chi.Router) {
				r.Route("/entries", func(r chi.Router) {
					r.Post("/", h.CreateTimetableEntry)
					r.Get("/", h.ListTimetableEntries)
					r.Patch("/{id}", h.UpdateTimetableEntry)
					r.Delete("/{id}", h.DeleteTimetableEntry)
				})
				r.Route("/settings", func(r chi.Router) {
					r.Get("/", h.GetTimetableSettings)
					r.Post("/slots", h.AddTimeSlot)
					r.Delete("/slots", h.RemoveTimeSlot)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/stats", h.GetDashboardStats)
				r.Post("/visit", h.RecordVisit)
			})

			r.Route("/plan", func(r chi.Router) {
				r.Post("/", h.SavePlanEvent)
				r.Get("/", h.ListPlanEvents)
				r.Delete("/{id}", h.DeletePlanEvent)
			})

			r.Route("/assist", func(r chi.Router) {
				r.Post("/tutor", h.AssistTutor)
				r.Post("/summarize", h.AssistSummarize)
				r.Post("/quiz", h.AssistQuiz)
				r.Post("/study-plan", h.AssistStudyPlan)
			})

			r.Get("/watch", h.Watch)
		})
	})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":      "healthy",
		"service":     "studytrack-backend",
		"subscribers": h.hub.SubscriberCount(),
		"timestamp":   time.Now().UTC(),
	}

	writeJSON(w, http.StatusOK, response)
}

// decodeAndValidate parses the JSON body into dst and runs struct
// validation, writing the error response itself. Returns false when the
// request was rejected.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := utils.ReadJSON(r, dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}

	return true
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrInvalidResetToken),
		errors.Is(err, service.ErrLectureNeedsDay),
		errors.Is(err, service.ErrExamNeedsDate):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, assist.ErrUnavailable):
		writeError(w, http.StatusBadGateway, "Generation failed, please try again")
	default:
		h.logger.Error().Err(err).Msg("Service error")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func getIntQueryParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	_ = utils.WriteJSON(w, status, data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	utils.ErrorResponse(w, status, message)
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	utils.SuccessResponse(w, http.StatusOK, data)
}

func writeCreated(w http.ResponseWriter, data interface{}) {
	utils.SuccessResponse(w, http.StatusCreated, data)
}
