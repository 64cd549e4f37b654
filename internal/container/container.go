package container

import (
	"context"
	"log"
	"os"

	"github.com/dstasiak/habitflow/internal/auth"
	"github.com/dstasiak/habitflow/internal/community"
	"github.com/dstasiak/habitflow/internal/config"
	"github.com/dstasiak/habitflow/internal/habit"
	"github.com/dstasiak/habitflow/internal/user"
)

type Container struct {
	UserContainer      *user.UserContainer
	HabitContainer     *habit.HabitContainer
	CommunityContainer *community.Container
}

func New() *Container {
	config.Init()
	auth.Init()

	dsn := os.Getenv("DATABASE_DSN")
	if err := config.Connect(context.Background(), dsn); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	if err := config.DB.AutoMigrate(
		&user.User{},
		&habit.Habit{},
		&habit.HabitEntry{},
		&habit.Note{},
	); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	return &Container{
		UserContainer:      user.NewUserContainer(config.DB),
		HabitContainer:     habit.NewHabitContainer(config.DB),
		CommunityContainer: community.NewContainer(config.DB),
	}
}
