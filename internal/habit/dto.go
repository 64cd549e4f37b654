package habit

import "github.com/dstasiak/habitflow/internal/streak"

type CreateHabitDTO struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Frequency   Frequency `json:"frequency"`
}

type UpdateHabitDTO struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Frequency   *Frequency `json:"frequency"`
}

// CheckInDTO marks one day. Date is optional (defaults to today), status
// defaults to done.
type CheckInDTO struct {
	Date   string             `json:"date"`
	Status streak.EntryStatus `json:"status"`
}

type UncheckDTO struct {
	Date string `json:"date"`
}

type NoteDTO struct {
	Content string `json:"content"`
}

type HabitResponse struct {
	*Habit
	Streak streak.Summary `json:"streak"`
}

// HabitDetailResponse adds the prebuilt day-key index used by calendar views.
type HabitDetailResponse struct {
	*Habit
	Streak      streak.Summary                `json:"streak"`
	StatusByDay map[string]streak.EntryStatus `json:"status_by_day"`
}

type PopularHabitResponse struct {
	*Habit
	UsersCount int `json:"usersCount"`
}

type CalendarResponse struct {
	Year  int                `json:"year"`
	Month int                `json:"month"`
	Cells []streak.MonthCell `json:"cells"`
}
