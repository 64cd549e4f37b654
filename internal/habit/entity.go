package habit

import (
	"time"

	"github.com/dstasiak/habitflow/internal/streak"
	"github.com/dstasiak/habitflow/internal/user"
	"github.com/google/uuid"
)

// Habit is a tracked routine owned by one user. Non-private habits are
// suggestion templates, not personally tracked routines.
type Habit struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Frequency   Frequency `gorm:"type:text;not null;default:'Daily'" json:"frequency"`
	IsPrivate   bool      `gorm:"not null;default:true" json:"is_private"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null;index" json:"created_by"`
	Creator     user.User `gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Entries []HabitEntry `gorm:"foreignKey:HabitID;constraint:OnDelete:CASCADE" json:"entries,omitempty"`
	Note    *Note        `gorm:"foreignKey:HabitID;constraint:OnDelete:CASCADE" json:"note,omitempty"`
}

// HabitEntry records the outcome for one habit on one calendar day. The
// composite unique index is the ledger invariant: at most one row per
// (habit, user, day), enforced by upsert.
type HabitEntry struct {
	ID        uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	HabitID   uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_habit_user_day" json:"habit_id"`
	UserID    uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_habit_user_day" json:"user_id"`
	Day       time.Time          `gorm:"type:date;not null;uniqueIndex:idx_habit_user_day" json:"date"`
	Status    streak.EntryStatus `gorm:"type:text;not null" json:"status"`
	CreatedAt time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

// Note is the single free-text reflection a user keeps per habit.
type Note struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	HabitID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_note_habit_user" json:"habit_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_note_habit_user" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
