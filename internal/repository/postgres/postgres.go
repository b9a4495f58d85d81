package postgres

import (
	"database/sql"

	"invare-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ProjectRepository
	repository.PaymentRepository
	repository.ModificationRepository
	repository.ProjectFileRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		ProjectRepository:      NewProjectRepository(db),
		PaymentRepository:      NewPaymentRepository(db),
		ModificationRepository: NewModificationRepository(db),
		ProjectFileRepository:  NewProjectFileRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
