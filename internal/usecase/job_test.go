package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/udanya23/job-portal/internal/domain"
	"github.com/udanya23/job-portal/internal/usecase"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeJobRepo struct {
	insert   func(ctx context.Context, j *domain.Job) error
	findByID func(ctx context.Context, id primitive.ObjectID) (*domain.Job, error)
	list     func(ctx context.Context) ([]domain.Job, error)
}

func (r *fakeJobRepo) Insert(ctx context.Context, j *domain.Job) error { return r.insert(ctx, j) }

func (r *fakeJobRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Job, error) {
	return r.findByID(ctx, id)
}

func (r *fakeJobRepo) List(ctx context.Context) ([]domain.Job, error) { return r.list(ctx) }

func recruiterByID(recruiters map[primitive.ObjectID]*domain.User) *fakeUserRepo {
	return &fakeUserRepo{
		findByID: func(_ context.Context, role domain.Role, id primitive.ObjectID) (*domain.User, error) {
			if role != domain.RoleRecruiter {
				return nil, domain.ErrUserNotFound
			}
			u, ok := recruiters[id]
			if !ok {
				return nil, domain.ErrUserNotFound
			}
			return u, nil
		},
	}
}

func TestCreateJob_StoresOwner(t *testing.T) {
	recruiterID := primitive.NewObjectID()
	var inserted *domain.Job
	jobs := &fakeJobRepo{insert: func(_ context.Context, j *domain.Job) error {
		inserted = j
		return nil
	}}

	job, err := usecase.NewJobUsecase(jobs, recruiterByID(nil)).CreateJob(context.Background(), usecase.CreateJobInput{
		Title:       "Go Developer",
		Description: "Backend work",
		CompanyName: "Acme",
		Location:    "Remote",
		Recruiter:   recruiterID,
	})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if inserted == nil || inserted.Recruiter != recruiterID {
		t.Errorf("stored job = %+v, want recruiter %s", inserted, recruiterID.Hex())
	}
	if job.Title != "Go Developer" {
		t.Errorf("title = %q", job.Title)
	}
}

func TestListJobs_ResolvesEachOwnerOnce(t *testing.T) {
	recruiterID := primitive.NewObjectID()
	recruiter := &domain.User{ID: recruiterID, Name: "R", CompanyName: "Acme"}

	lookups := 0
	users := &fakeUserRepo{
		findByID: func(_ context.Context, _ domain.Role, id primitive.ObjectID) (*domain.User, error) {
			lookups++
			if id == recruiterID {
				return recruiter, nil
			}
			return nil, domain.ErrUserNotFound
		},
	}
	jobs := &fakeJobRepo{list: func(_ context.Context) ([]domain.Job, error) {
		return []domain.Job{
			{ID: primitive.NewObjectID(), Title: "A", Recruiter: recruiterID},
			{ID: primitive.NewObjectID(), Title: "B", Recruiter: recruiterID},
			{ID: primitive.NewObjectID(), Title: "C", Recruiter: recruiterID},
		}, nil
	}}

	out, err := usecase.NewJobUsecase(jobs, users).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	if lookups != 1 {
		t.Errorf("owner lookups = %d, want 1", lookups)
	}
	for _, j := range out {
		if j.RecruiterInfo == nil || j.RecruiterInfo.CompanyName != "Acme" {
			t.Errorf("job %q missing recruiter info", j.Title)
		}
	}
}

func TestGetJob_BadHexIsNotFound(t *testing.T) {
	jobs := &fakeJobRepo{}
	_, err := usecase.NewJobUsecase(jobs, recruiterByID(nil)).GetByID(context.Background(), "not-an-object-id")
	if !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("err = %v, want ErrJobNotFound", err)
	}
}

func TestGetJob_MissingOwnerDegradesToNil(t *testing.T) {
	jobID := primitive.NewObjectID()
	jobs := &fakeJobRepo{findByID: func(_ context.Context, id primitive.ObjectID) (*domain.Job, error) {
		return &domain.Job{ID: id, Title: "A", Recruiter: primitive.NewObjectID()}, nil
	}}

	out, err := usecase.NewJobUsecase(jobs, recruiterByID(nil)).GetByID(context.Background(), jobID.Hex())
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if out.RecruiterInfo != nil {
		t.Errorf("recruiter info = %+v, want nil for a missing owner", out.RecruiterInfo)
	}
}
