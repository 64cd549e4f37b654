package habit

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dstasiak/habitflow/internal/config"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	service HabitService
}

func NewHandler(service HabitService) *Handler {
	return &Handler{service: service}
}

// writeServiceError maps domain errors onto HTTP statuses. Ownership failures
// surface as plain not-found.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidID):
		http.Error(w, "validation error", http.StatusBadRequest)
	case errors.Is(err, ErrHabitNotFound):
		http.Error(w, "habit not found", http.StatusNotFound)
	case errors.Is(err, ErrEntryNotFound):
		http.Error(w, "entry not found or already unchecked", http.StatusNotFound)
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// logServiceError logs unexpected failures; expected domain errors were
// already logged where they occurred.
func logServiceError(log logrus.FieldLogger, err error, msg string) {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrHabitNotFound),
		errors.Is(err, ErrEntryNotFound),
		errors.Is(err, ErrUnauthorized):
	default:
		log.WithError(err).Error(msg)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto CreateHabitDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	habit, err := h.service.CreateHabit(r.Context(), dto)
	if err != nil {
		logServiceError(log, err, "Failed to create habit")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusCreated, habit)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	habits, err := h.service.FindAllByUser(r.Context())
	if err != nil {
		logServiceError(log, err, "Failed to list habits")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, habits)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	detail, err := h.service.GetHabit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		logServiceError(log, err, "Failed to get habit")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, detail)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto UpdateHabitDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	habit, err := h.service.UpdateHabit(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		logServiceError(log, err, "Failed to update habit")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, habit)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if err := h.service.DeleteByID(r.Context(), chi.URLParam(r, "id")); err != nil {
		logServiceError(log, err, "Failed to delete habit")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{"message": "habit deleted"})
}

func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto CheckInDTO
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			log.WithError(err).Error("Invalid request body")
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}

	entry, created, err := h.service.CheckIn(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		logServiceError(log, err, "Failed to check habit")
		writeServiceError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	config.JSON(w, status, entry)
}

func (h *Handler) Uncheck(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto UncheckDTO
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			log.WithError(err).Error("Invalid request body")
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}

	if err := h.service.Uncheck(r.Context(), chi.URLParam(r, "id"), dto); err != nil {
		logServiceError(log, err, "Failed to uncheck habit")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{"message": "habit unchecked"})
}

func (h *Handler) SaveNote(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto NoteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	note, err := h.service.SaveNote(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		logServiceError(log, err, "Failed to save note")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, note)
}

func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	now := time.Now().UTC()
	year := queryInt(r, "year", now.Year())
	month := queryInt(r, "month", int(now.Month()))
	if month < 1 || month > 12 {
		http.Error(w, "validation error", http.StatusBadRequest)
		return
	}

	calendar, err := h.service.Calendar(r.Context(), chi.URLParam(r, "id"), year, time.Month(month))
	if err != nil {
		logServiceError(log, err, "Failed to render calendar")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, calendar)
}

func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	metrics, err := h.service.Overview(r.Context())
	if err != nil {
		logServiceError(log, err, "Failed to compute overview")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, metrics)
}

func (h *Handler) Popular(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	templates, err := h.service.PopularTemplates(r.Context())
	if err != nil {
		logServiceError(log, err, "Failed to list popular habits")
		writeServiceError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, templates)
}

func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
