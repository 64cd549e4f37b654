package habit

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HabitRepository interface {
	Create(h *Habit) error
	FindByID(id uuid.UUID) (*Habit, error)
	FindWithEntries(id uuid.UUID) (*Habit, error)
	FindAllByOwner(userID uuid.UUID) ([]*Habit, error)
	Update(h *Habit) error
	Delete(id uuid.UUID) error

	FindEntry(habitID, userID uuid.UUID, day time.Time) (*HabitEntry, error)
	UpsertEntry(e *HabitEntry) error
	DeleteEntry(habitID, userID uuid.UUID, day time.Time) (int64, error)

	FindNote(habitID, userID uuid.UUID) (*Note, error)
	UpsertNote(n *Note) error

	ListTemplates() ([]*Habit, error)
	CountByNameAndPrivate(name string, private bool) (int64, error)
}

type habitRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) HabitRepository {
	return &habitRepository{db: db}
}

func (r *habitRepository) Create(h *Habit) error {
	return r.db.Create(h).Error
}

func (r *habitRepository) FindByID(id uuid.UUID) (*Habit, error) {
	var h Habit
	if err := r.db.First(&h, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &h, nil
}

func (r *habitRepository) FindWithEntries(id uuid.UUID) (*Habit, error) {
	var h Habit
	err := r.db.
		Preload("Entries").
		Preload("Note").
		First(&h, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &h, nil
}

func (r *habitRepository) FindAllByOwner(userID uuid.UUID) ([]*Habit, error) {
	var habits []*Habit
	err := r.db.
		Preload("Entries").
		Preload("Note").
		Where("created_by = ?", userID).
		Order("created_at DESC").
		Find(&habits).Error
	if err != nil {
		return nil, err
	}
	return habits, nil
}

func (r *habitRepository) Update(h *Habit) error {
	return r.db.Save(h).Error
}

// Delete removes the habit with its entries and note in one transaction,
// mirroring the cascade the schema declares.
func (r *habitRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&HabitEntry{}, "habit_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&Note{}, "habit_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&Habit{}, "id = ?", id).Error
	})
}

func (r *habitRepository) FindEntry(habitID, userID uuid.UUID, day time.Time) (*HabitEntry, error) {
	var e HabitEntry
	err := r.db.First(&e, "habit_id = ? AND user_id = ? AND day = ?", habitID, userID, day).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// UpsertEntry writes the day's status as a single ON CONFLICT statement so a
// double-submit can never produce two rows for the same (habit, user, day).
func (r *habitRepository) UpsertEntry(e *HabitEntry) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "habit_id"},
			{Name: "user_id"},
			{Name: "day"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(e).Error
}

// DeleteEntry reports how many rows were removed; zero is not an error.
func (r *habitRepository) DeleteEntry(habitID, userID uuid.UUID, day time.Time) (int64, error) {
	result := r.db.Delete(&HabitEntry{}, "habit_id = ? AND user_id = ? AND day = ?", habitID, userID, day)
	return result.RowsAffected, result.Error
}

func (r *habitRepository) FindNote(habitID, userID uuid.UUID) (*Note, error) {
	var n Note
	err := r.db.First(&n, "habit_id = ? AND user_id = ?", habitID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

func (r *habitRepository) UpsertNote(n *Note) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "habit_id"},
			{Name: "user_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
	}).Create(n).Error
}

func (r *habitRepository) ListTemplates() ([]*Habit, error) {
	var habits []*Habit
	if err := r.db.Where("is_private = ?", false).Find(&habits).Error; err != nil {
		return nil, err
	}
	return habits, nil
}

func (r *habitRepository) CountByNameAndPrivate(name string, private bool) (int64, error) {
	var count int64
	err := r.db.Model(&Habit{}).
		Where("name = ? AND is_private = ?", name, private).
		Count(&count).Error
	return count, err
}
