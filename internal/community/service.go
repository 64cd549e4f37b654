package community

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/dstasiak/habitflow/internal/config"
	"github.com/dstasiak/habitflow/internal/dateutil"
	"github.com/google/uuid"
)

const topHabitsLimit = 3

type TopHabit struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type StatsResponse struct {
	ActiveUsers int        `json:"activeUsers"`
	NewHabits   int        `json:"newHabits"`
	TopHabits   []TopHabit `json:"topHabits"`
}

type CommunityService interface {
	Stats(ctx context.Context) (*StatsResponse, error)
}

type communityService struct {
	repo CommunityRepository
	now  func() time.Time
}

func NewService(repo CommunityRepository) CommunityService {
	return &communityService{repo: repo, now: time.Now}
}

func NewServiceWithClock(repo CommunityRepository, now func() time.Time) CommunityService {
	return &communityService{repo: repo, now: now}
}

// Stats aggregates community activity: users with any entry today, habits
// created in the trailing week, and the week's most shared habit names.
func (s *communityService) Stats(ctx context.Context) (*StatsResponse, error) {
	log := config.WithContext(ctx)

	today := dateutil.DayStart(s.now())
	weekAgo := today.AddDate(0, 0, -7)

	activeUsers, err := s.repo.CountActiveUsersSince(today)
	if err != nil {
		log.WithError(err).Error("Failed to count active users")
		return nil, err
	}

	newHabits, err := s.repo.CountHabitsCreatedSince(weekAgo)
	if err != nil {
		log.WithError(err).Error("Failed to count new habits")
		return nil, err
	}

	rows, err := s.repo.DoneEntriesSince(weekAgo)
	if err != nil {
		log.WithError(err).Error("Failed to load entries for top habits")
		return nil, err
	}

	return &StatsResponse{
		ActiveUsers: int(activeUsers),
		NewHabits:   int(newHabits),
		TopHabits:   topHabits(rows, topHabitsLimit),
	}, nil
}

// topHabits ranks habit names by how many distinct users logged a done entry,
// so one very active user counts once. Ties keep first-encountered order.
func topHabits(rows []EntryRow, limit int) []TopHabit {
	var order []string
	users := make(map[string]map[uuid.UUID]struct{})

	for _, row := range rows {
		name := strings.TrimSpace(row.HabitName)
		if _, ok := users[name]; !ok {
			users[name] = make(map[uuid.UUID]struct{})
			order = append(order, name)
		}
		users[name][row.UserID] = struct{}{}
	}

	top := make([]TopHabit, 0, len(order))
	for _, name := range order {
		top = append(top, TopHabit{Name: name, Count: len(users[name])})
	}

	sort.SliceStable(top, func(i, j int) bool { return top[i].Count > top[j].Count })
	if len(top) > limit {
		top = top[:limit]
	}
	return top
}
