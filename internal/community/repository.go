package community

import (
	"time"

	"github.com/dstasiak/habitflow/internal/streak"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EntryRow is one done check-in joined with its habit's name, the only data
// the aggregation needs.
type EntryRow struct {
	UserID    uuid.UUID
	HabitName string
}

type CommunityRepository interface {
	CountActiveUsersSince(day time.Time) (int64, error)
	CountHabitsCreatedSince(t time.Time) (int64, error)
	DoneEntriesSince(day time.Time) ([]EntryRow, error)
}

type communityRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) CommunityRepository {
	return &communityRepository{db: db}
}

func (r *communityRepository) CountActiveUsersSince(day time.Time) (int64, error) {
	var count int64
	err := r.db.Table("habit_entries").
		Where("day >= ?", day).
		Distinct("user_id").
		Count(&count).Error
	return count, err
}

func (r *communityRepository) CountHabitsCreatedSince(t time.Time) (int64, error) {
	var count int64
	err := r.db.Table("habits").
		Where("created_at >= ?", t).
		Count(&count).Error
	return count, err
}

func (r *communityRepository) DoneEntriesSince(day time.Time) ([]EntryRow, error) {
	var rows []EntryRow
	err := r.db.Table("habit_entries").
		Select("habit_entries.user_id AS user_id, habits.name AS habit_name").
		Joins("JOIN habits ON habits.id = habit_entries.habit_id").
		Where("habit_entries.day >= ? AND habit_entries.status = ?", day, streak.StatusDone).
		Order("habit_entries.created_at ASC").
		Scan(&rows).Error
	return rows, err
}
