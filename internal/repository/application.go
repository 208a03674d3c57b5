package repository

import (
	"context"

	"github.com/udanya23/job-portal/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ApplicationRepository interface {
	// Insert creates the application. The unique (job, applicant) index is
	// the only duplicate guard; violations come back as
	// domain.ErrDuplicateApplication.
	Insert(ctx context.Context, a *domain.Application) error

	// ListByApplicant returns the job seeker's applications, newest first.
	ListByApplicant(ctx context.Context, applicant primitive.ObjectID) ([]domain.Application, error)

	// ListByJob returns every application submitted for the job.
	ListByJob(ctx context.Context, job primitive.ObjectID) ([]domain.Application, error)
}
