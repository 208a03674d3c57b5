package usecase

import (
	"context"
	"errors"

	"github.com/udanya23/job-portal/internal/domain"
	"github.com/udanya23/job-portal/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ApplicationUsecase struct {
	apps  repository.ApplicationRepository
	jobs  repository.JobRepository
	users repository.UserRepository
}

func NewApplicationUsecase(apps repository.ApplicationRepository, jobs repository.JobRepository, users repository.UserRepository) *ApplicationUsecase {
	return &ApplicationUsecase{apps: apps, jobs: jobs, users: users}
}

// Apply submits an application for the job seeker. The unique
// (job, applicant) index rejects a second application for the same job.
func (u *ApplicationUsecase) Apply(ctx context.Context, jobID string, applicant primitive.ObjectID) (*domain.Application, error) {
	oid, err := primitive.ObjectIDFromHex(jobID)
	if err != nil {
		return nil, domain.ErrJobNotFound
	}
	if _, err := u.jobs.FindByID(ctx, oid); err != nil {
		return nil, err
	}

	app := &domain.Application{
		Job:       oid,
		Applicant: applicant,
		Status:    domain.ApplicationApplied,
	}
	if err := u.apps.Insert(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

type ApplicationWithJob struct {
	domain.Application
	JobInfo *domain.Job `json:"jobInfo,omitempty"`
}

// MyApplications lists the job seeker's applications with each job
// embedded, newest first.
func (u *ApplicationUsecase) MyApplications(ctx context.Context, applicant primitive.ObjectID) ([]ApplicationWithJob, error) {
	apps, err := u.apps.ListByApplicant(ctx, applicant)
	if err != nil {
		return nil, err
	}

	out := make([]ApplicationWithJob, 0, len(apps))
	for _, app := range apps {
		job, err := u.jobs.FindByID(ctx, app.Job)
		if err != nil && !errors.Is(err, domain.ErrJobNotFound) {
			return nil, err
		}
		out = append(out, ApplicationWithJob{Application: app, JobInfo: job})
	}
	return out, nil
}

// ApplicantSummary is the projection a recruiter sees of an applicant.
type ApplicantSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
}

type ApplicationWithApplicant struct {
	domain.Application
	ApplicantInfo *ApplicantSummary `json:"applicantInfo,omitempty"`
}

// ApplicantsForJob lists applications for a job the recruiter owns. A
// missing job and a job owned by someone else both fail with
// domain.ErrNotJobOwner so callers cannot probe other recruiters' postings.
func (u *ApplicationUsecase) ApplicantsForJob(ctx context.Context, jobID string, recruiter primitive.ObjectID) ([]ApplicationWithApplicant, error) {
	oid, err := primitive.ObjectIDFromHex(jobID)
	if err != nil {
		return nil, domain.ErrNotJobOwner
	}
	job, err := u.jobs.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return nil, domain.ErrNotJobOwner
		}
		return nil, err
	}
	if job.Recruiter != recruiter {
		return nil, domain.ErrNotJobOwner
	}

	apps, err := u.apps.ListByJob(ctx, oid)
	if err != nil {
		return nil, err
	}

	out := make([]ApplicationWithApplicant, 0, len(apps))
	for _, app := range apps {
		var summary *ApplicantSummary
		if seeker, err := u.users.FindByID(ctx, domain.RoleJobSeeker, app.Applicant); err == nil {
			summary = &ApplicantSummary{
				ID:           seeker.ID.Hex(),
				Name:         seeker.Name,
				Email:        seeker.Email,
				MobileNumber: seeker.MobileNumber,
			}
		}
		out = append(out, ApplicationWithApplicant{Application: app, ApplicantInfo: summary})
	}
	return out, nil
}
