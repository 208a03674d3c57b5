package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/udanya23/job-portal/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ApplicationRepository struct {
	c *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{c: db.Collection(CollApplications)}
}

func (r *ApplicationRepository) Insert(ctx context.Context, a *domain.Application) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if a.Status == "" {
		a.Status = domain.ApplicationApplied
	}
	if a.AppliedDate.IsZero() {
		a.AppliedDate = time.Now().UTC()
	}

	if _, err := r.c.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateApplication
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicant primitive.ObjectID) ([]domain.Application, error) {
	return r.list(ctx, bson.M{"applicant": applicant})
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, job primitive.ObjectID) ([]domain.Application, error) {
	return r.list(ctx, bson.M{"job": job})
}

func (r *ApplicationRepository) list(ctx context.Context, filter bson.M) ([]domain.Application, error) {
	opts := options.Find().SetSort(bson.D{{Key: "appliedDate", Value: -1}})
	cur, err := r.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer cur.Close(ctx)

	var apps []domain.Application
	if err := cur.All(ctx, &apps); err != nil {
		return nil, fmt.Errorf("decode applications: %w", err)
	}
	return apps, nil
}
