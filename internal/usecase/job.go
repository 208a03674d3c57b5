package usecase

import (
	"context"

	"github.com/udanya23/job-portal/internal/domain"
	"github.com/udanya23/job-portal/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type JobUsecase struct {
	jobs  repository.JobRepository
	users repository.UserRepository
}

func NewJobUsecase(jobs repository.JobRepository, users repository.UserRepository) *JobUsecase {
	return &JobUsecase{jobs: jobs, users: users}
}

type CreateJobInput struct {
	Title        string
	Description  string
	CompanyName  string
	Location     string
	Salary       string
	Requirements []string
	Recruiter    primitive.ObjectID
}

func (u *JobUsecase) CreateJob(ctx context.Context, in CreateJobInput) (*domain.Job, error) {
	job := &domain.Job{
		Title:        in.Title,
		Description:  in.Description,
		CompanyName:  in.CompanyName,
		Location:     in.Location,
		Salary:       in.Salary,
		Requirements: in.Requirements,
		Recruiter:    in.Recruiter,
	}
	if err := u.jobs.Insert(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// RecruiterSummary is the owner projection embedded in job reads.
type RecruiterSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CompanyName string `json:"companyName"`
}

type JobWithRecruiter struct {
	domain.Job
	RecruiterInfo *RecruiterSummary `json:"recruiterInfo,omitempty"`
}

func (u *JobUsecase) List(ctx context.Context) ([]JobWithRecruiter, error) {
	jobs, err := u.jobs.List(ctx)
	if err != nil {
		return nil, err
	}

	// Owners repeat across postings, so resolve each recruiter once.
	owners := make(map[primitive.ObjectID]*RecruiterSummary)
	out := make([]JobWithRecruiter, 0, len(jobs))
	for _, job := range jobs {
		summary, ok := owners[job.Recruiter]
		if !ok {
			summary = u.recruiterSummary(ctx, job.Recruiter)
			owners[job.Recruiter] = summary
		}
		out = append(out, JobWithRecruiter{Job: job, RecruiterInfo: summary})
	}
	return out, nil
}

func (u *JobUsecase) GetByID(ctx context.Context, id string) (*JobWithRecruiter, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrJobNotFound
	}

	job, err := u.jobs.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	return &JobWithRecruiter{Job: *job, RecruiterInfo: u.recruiterSummary(ctx, job.Recruiter)}, nil
}

// recruiterSummary resolves the owner projection; a missing owner record
// (e.g. seeded data) degrades to nil rather than failing the read.
func (u *JobUsecase) recruiterSummary(ctx context.Context, id primitive.ObjectID) *RecruiterSummary {
	owner, err := u.users.FindByID(ctx, domain.RoleRecruiter, id)
	if err != nil {
		return nil
	}
	return &RecruiterSummary{
		ID:          owner.ID.Hex(),
		Name:        owner.Name,
		CompanyName: owner.CompanyName,
	}
}
