package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/udanya23/job-portal/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository stores principals across the two role collections.
type UserRepository struct {
	jobSeekers *mongo.Collection
	recruiters *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		jobSeekers: db.Collection(CollJobSeekers),
		recruiters: db.Collection(CollRecruiters),
	}
}

func (r *UserRepository) collection(role domain.Role) *mongo.Collection {
	if role == domain.RoleRecruiter {
		return r.recruiters
	}
	return r.jobSeekers
}

func (r *UserRepository) FindByEmail(ctx context.Context, role domain.Role, email string) (*domain.User, error) {
	var u domain.User
	err := r.collection(role).FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	u.Role = role
	return &u, nil
}

func (r *UserRepository) FindByEmailAnyRole(ctx context.Context, email string) (*domain.User, error) {
	for _, role := range []domain.Role{domain.RoleJobSeeker, domain.RoleRecruiter} {
		u, err := r.FindByEmail(ctx, role, email)
		if err == nil {
			return u, nil
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
	}
	return nil, domain.ErrEmailNotFound
}

func (r *UserRepository) FindByID(ctx context.Context, role domain.Role, id primitive.ObjectID) (*domain.User, error) {
	var u domain.User
	err := r.collection(role).FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	u.Role = role
	return &u, nil
}

func (r *UserRepository) Insert(ctx context.Context, u *domain.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.Email = normalizeEmail(u.Email)
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	if _, err := r.collection(u.Role).InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	u.Email = normalizeEmail(u.Email)

	// ReplaceOne so that nil OTP pointers drop their keys from the document.
	res, err := r.collection(u.Role).ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) DeleteExpiredPending(ctx context.Context, cutoff time.Time) (int64, error) {
	filter := bson.M{
		"status":     domain.StatusPending,
		"otpExpires": bson.M{"$lt": cutoff},
	}

	var removed int64
	for _, coll := range []*mongo.Collection{r.jobSeekers, r.recruiters} {
		res, err := coll.DeleteMany(ctx, filter)
		if err != nil {
			return removed, fmt.Errorf("delete expired pending users: %w", err)
		}
		removed += res.DeletedCount
	}
	return removed, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
