package habit

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/dstasiak/habitflow/internal/auth"
	"github.com/dstasiak/habitflow/internal/config"
	"github.com/dstasiak/habitflow/internal/dateutil"
	"github.com/dstasiak/habitflow/internal/streak"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrEntryNotFound = errors.New("entry not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInvalidID     = errors.New("invalid id format")
	ErrValidation    = errors.New("validation error")
)

const popularLimit = 5

type HabitService interface {
	CreateHabit(ctx context.Context, dto CreateHabitDTO) (*Habit, error)
	FindAllByUser(ctx context.Context) ([]*HabitResponse, error)
	GetHabit(ctx context.Context, id string) (*HabitDetailResponse, error)
	UpdateHabit(ctx context.Context, id string, dto UpdateHabitDTO) (*Habit, error)
	DeleteByID(ctx context.Context, id string) error

	CheckIn(ctx context.Context, id string, dto CheckInDTO) (*HabitEntry, bool, error)
	Uncheck(ctx context.Context, id string, dto UncheckDTO) error
	SaveNote(ctx context.Context, id string, dto NoteDTO) (*Note, error)

	Calendar(ctx context.Context, id string, year int, month time.Month) (*CalendarResponse, error)
	Overview(ctx context.Context) (*streak.OverviewMetrics, error)
	PopularTemplates(ctx context.Context) ([]*PopularHabitResponse, error)
}

type habitService struct {
	repo HabitRepository
	now  func() time.Time
}

func NewService(repo HabitRepository) HabitService {
	return &habitService{repo: repo, now: time.Now}
}

// NewServiceWithClock pins "today" for tests.
func NewServiceWithClock(repo HabitRepository, now func() time.Time) HabitService {
	return &habitService{repo: repo, now: now}
}

func getUserIDFromContext(ctx context.Context, log logrus.FieldLogger, action string) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		log.WithError(err).Warnf("Attempt to %s without authentication", action)
		return uuid.Nil, ErrUnauthorized
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}
	return id, nil
}

// ownedHabit resolves a habit the caller owns. Missing and not-owned are
// deliberately the same error so existence is never leaked.
func (s *habitService) ownedHabit(ctx context.Context, log logrus.FieldLogger, id string, userID uuid.UUID) (*Habit, error) {
	habitID, err := uuid.Parse(id)
	if err != nil {
		log.WithError(err).Warn("Invalid habit ID")
		return nil, ErrInvalidID
	}

	h, err := s.repo.FindByID(habitID)
	if err != nil {
		log.WithError(err).Error("Error finding habit by ID")
		return nil, err
	}
	if h == nil || h.CreatedBy != userID {
		log.WithFields(logrus.Fields{
			"habit_id": id,
			"user_id":  userID,
		}).Warn("Habit not found or does not belong to user")
		return nil, ErrHabitNotFound
	}
	return h, nil
}

func validateCreate(dto *CreateHabitDTO) error {
	dto.Name = strings.TrimSpace(dto.Name)
	if dto.Name == "" {
		return ErrValidation
	}
	if dto.Frequency == "" {
		dto.Frequency = FrequencyDaily
	}
	if !dto.Frequency.IsValid() {
		return ErrValidation
	}
	return nil
}

func (s *habitService) CreateHabit(ctx context.Context, dto CreateHabitDTO) (*Habit, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "create habit")
	if err != nil {
		return nil, err
	}

	if err := validateCreate(&dto); err != nil {
		return nil, err
	}

	h := Habit{
		ID:          uuid.New(),
		Name:        dto.Name,
		Description: strings.TrimSpace(dto.Description),
		Frequency:   dto.Frequency,
		IsPrivate:   true,
		CreatedBy:   userID,
		CreatedAt:   s.now(),
		UpdatedAt:   s.now(),
	}
	if err := s.repo.Create(&h); err != nil {
		log.WithError(err).Error("Failed to create habit")
		return nil, err
	}

	log.WithField("habit_id", h.ID).Info("Habit created")
	return &h, nil
}

func (s *habitService) FindAllByUser(ctx context.Context) ([]*HabitResponse, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "list habits")
	if err != nil {
		return nil, err
	}

	habits, err := s.repo.FindAllByOwner(userID)
	if err != nil {
		log.WithError(err).Error("Failed to list habits by user")
		return nil, err
	}

	today := s.now()
	responses := make([]*HabitResponse, 0, len(habits))
	for _, h := range habits {
		responses = append(responses, &HabitResponse{
			Habit:  h,
			Streak: streak.Compute(toStreakEntries(h.Entries), today),
		})
	}
	return responses, nil
}

func (s *habitService) GetHabit(ctx context.Context, id string) (*HabitDetailResponse, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "get habit")
	if err != nil {
		return nil, err
	}

	if _, err := s.ownedHabit(ctx, log, id, userID); err != nil {
		return nil, err
	}

	h, err := s.repo.FindWithEntries(uuid.MustParse(id))
	if err != nil {
		log.WithError(err).Error("Failed to load habit with entries")
		return nil, err
	}
	if h == nil {
		return nil, ErrHabitNotFound
	}

	entries := toStreakEntries(h.Entries)
	return &HabitDetailResponse{
		Habit:       h,
		Streak:      streak.Compute(entries, s.now()),
		StatusByDay: streak.StatusIndex(entries),
	}, nil
}

func (s *habitService) UpdateHabit(ctx context.Context, id string, dto UpdateHabitDTO) (*Habit, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "update habit")
	if err != nil {
		return nil, err
	}

	h, err := s.ownedHabit(ctx, log, id, userID)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		name := strings.TrimSpace(*dto.Name)
		if name == "" {
			return nil, ErrValidation
		}
		h.Name = name
	}
	if dto.Description != nil {
		h.Description = strings.TrimSpace(*dto.Description)
	}
	if dto.Frequency != nil {
		if !dto.Frequency.IsValid() {
			return nil, ErrValidation
		}
		h.Frequency = *dto.Frequency
	}
	h.UpdatedAt = s.now()

	if err := s.repo.Update(h); err != nil {
		log.WithError(err).Error("Failed to update habit")
		return nil, err
	}

	log.WithField("habit_id", h.ID).Info("Habit updated")
	return h, nil
}

func (s *habitService) DeleteByID(ctx context.Context, id string) error {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "delete habit")
	if err != nil {
		return err
	}

	h, err := s.ownedHabit(ctx, log, id, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(h.ID); err != nil {
		log.WithError(err).Error("Failed to delete habit")
		return err
	}

	log.WithField("habit_id", id).Info("Habit deleted")
	return nil
}

// resolveDay parses an optional caller-supplied date, defaulting to today.
func (s *habitService) resolveDay(raw string) (time.Time, error) {
	if raw == "" {
		return dateutil.DayStart(s.now()), nil
	}
	day, err := dateutil.ParseDay(raw)
	if err != nil {
		return time.Time{}, ErrValidation
	}
	return day, nil
}

// CheckIn upserts the single entry for the day. The boolean reports whether a
// new entry was created rather than an existing one overwritten.
func (s *habitService) CheckIn(ctx context.Context, id string, dto CheckInDTO) (*HabitEntry, bool, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "check habit")
	if err != nil {
		return nil, false, err
	}

	h, err := s.ownedHabit(ctx, log, id, userID)
	if err != nil {
		return nil, false, err
	}

	if dto.Status == "" {
		dto.Status = streak.StatusDone
	}
	if dto.Status != streak.StatusDone && dto.Status != streak.StatusSkipped {
		return nil, false, ErrValidation
	}

	day, err := s.resolveDay(dto.Date)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.repo.FindEntry(h.ID, userID, day)
	if err != nil {
		log.WithError(err).Error("Failed to look up entry before upsert")
		return nil, false, err
	}

	entry := HabitEntry{
		ID:      uuid.New(),
		HabitID: h.ID,
		UserID:  userID,
		Day:     day,
		Status:  dto.Status,
	}
	if existing != nil {
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
	}

	if err := s.repo.UpsertEntry(&entry); err != nil {
		log.WithError(err).Error("Failed to upsert habit entry")
		return nil, false, err
	}

	log.WithFields(logrus.Fields{
		"habit_id": h.ID,
		"day":      dateutil.DayKey(day),
		"status":   entry.Status,
	}).Info("Habit checked")
	return &entry, existing == nil, nil
}

func (s *habitService) Uncheck(ctx context.Context, id string, dto UncheckDTO) error {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "uncheck habit")
	if err != nil {
		return err
	}

	h, err := s.ownedHabit(ctx, log, id, userID)
	if err != nil {
		return err
	}

	day, err := s.resolveDay(dto.Date)
	if err != nil {
		return err
	}

	affected, err := s.repo.DeleteEntry(h.ID, userID, day)
	if err != nil {
		log.WithError(err).Error("Failed to delete habit entry")
		return err
	}
	if affected == 0 {
		return ErrEntryNotFound
	}

	log.WithFields(logrus.Fields{
		"habit_id": h.ID,
		"day":      dateutil.DayKey(day),
	}).Info("Habit unchecked")
	return nil
}

func (s *habitService) SaveNote(ctx context.Context, id string, dto NoteDTO) (*Note, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "save note")
	if err != nil {
		return nil, err
	}

	h, err := s.ownedHabit(ctx, log, id, userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindNote(h.ID, userID)
	if err != nil {
		log.WithError(err).Error("Failed to look up note")
		return nil, err
	}

	note := Note{
		ID:      uuid.New(),
		HabitID: h.ID,
		UserID:  userID,
		Content: dto.Content,
	}
	if existing != nil {
		note.ID = existing.ID
		note.CreatedAt = existing.CreatedAt
	}

	if err := s.repo.UpsertNote(&note); err != nil {
		log.WithError(err).Error("Failed to upsert note")
		return nil, err
	}
	return &note, nil
}

func (s *habitService) Calendar(ctx context.Context, id string, year int, month time.Month) (*CalendarResponse, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "render calendar")
	if err != nil {
		return nil, err
	}

	if _, err := s.ownedHabit(ctx, log, id, userID); err != nil {
		return nil, err
	}

	h, err := s.repo.FindWithEntries(uuid.MustParse(id))
	if err != nil {
		log.WithError(err).Error("Failed to load habit entries for calendar")
		return nil, err
	}
	if h == nil {
		return nil, ErrHabitNotFound
	}

	index := streak.StatusIndex(toStreakEntries(h.Entries))
	return &CalendarResponse{
		Year:  year,
		Month: int(month),
		Cells: streak.MonthGrid(index, year, month, s.now(), h.CreatedAt),
	}, nil
}

func (s *habitService) Overview(ctx context.Context) (*streak.OverviewMetrics, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "compute overview")
	if err != nil {
		return nil, err
	}

	habits, err := s.repo.FindAllByOwner(userID)
	if err != nil {
		log.WithError(err).Error("Failed to load habits for overview")
		return nil, err
	}

	perHabit := make([][]streak.Entry, 0, len(habits))
	for _, h := range habits {
		perHabit = append(perHabit, toStreakEntries(h.Entries))
	}
	metrics := streak.ComputeOverview(perHabit, s.now())
	return &metrics, nil
}

// PopularTemplates ranks suggestion templates by how many users track a
// private habit with the same name.
func (s *habitService) PopularTemplates(ctx context.Context) ([]*PopularHabitResponse, error) {
	log := config.WithContext(ctx)

	templates, err := s.repo.ListTemplates()
	if err != nil {
		log.WithError(err).Error("Failed to list habit templates")
		return nil, err
	}

	responses := make([]*PopularHabitResponse, 0, len(templates))
	for _, tpl := range templates {
		count, err := s.repo.CountByNameAndPrivate(tpl.Name, true)
		if err != nil {
			log.WithError(err).Error("Failed to count habits by name")
			return nil, err
		}
		responses = append(responses, &PopularHabitResponse{
			Habit:      tpl,
			UsersCount: int(count),
		})
	}

	sort.SliceStable(responses, func(i, j int) bool {
		return responses[i].UsersCount > responses[j].UsersCount
	})
	if len(responses) > popularLimit {
		responses = responses[:popularLimit]
	}
	return responses, nil
}

func toStreakEntries(entries []HabitEntry) []streak.Entry {
	out := make([]streak.Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, streak.Entry{Day: e.Day, Status: e.Status})
	}
	return out
}
