package repository

import (
	"context"

	"github.com/udanya23/job-portal/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type JobRepository interface {
	Insert(ctx context.Context, j *domain.Job) error

	// FindByID returns domain.ErrJobNotFound if absent.
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Job, error)

	// List returns all jobs, newest first.
	List(ctx context.Context) ([]domain.Job, error)
}
