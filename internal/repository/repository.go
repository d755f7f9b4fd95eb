package repository

import (
	"context"
	"database/sql"
	"time"

	"dlccontrol/internal/models"
)

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type SnapshotRepo interface {
	Save(ctx context.Context, s models.Snapshot) error
	Latest(ctx context.Context) (models.Snapshot, error)
	List(ctx context.Context, from, to time.Time, limit int) ([]models.Snapshot, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.SettingEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.SettingEvent, error)
}

type Repository struct {
	Snapshots SnapshotRepo
	EventRepo EventRepo
	Auth      Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Snapshots: NewSnapshotSQLite(db),
		EventRepo: NewEventSQLite(db),
		Auth:      NewUserRepository(db),
	}
}
