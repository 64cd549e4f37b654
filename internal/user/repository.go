package user

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(u *User) error
	FindByID(id uuid.UUID) (*User, error)
	FindByEmail(email string) (*User, error)
	FindByUsername(username string) (*User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(u *User) error {
	return r.db.Create(u).Error
}

func (r *userRepository) FindByID(id uuid.UUID) (*User, error) {
	return r.findOne("id = ?", id)
}

func (r *userRepository) FindByEmail(email string) (*User, error) {
	return r.findOne("email = ?", email)
}

func (r *userRepository) FindByUsername(username string) (*User, error) {
	return r.findOne("username = ?", username)
}

func (r *userRepository) findOne(query string, arg interface{}) (*User, error) {
	var u User
	if err := r.db.First(&u, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
