package repository

import (
	"context"
	"time"

	"github.com/udanya23/job-portal/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	// FindByEmail looks up a user in the collection for role by
	// case-insensitive email. Returns domain.ErrUserNotFound if absent.
	FindByEmail(ctx context.Context, role domain.Role, email string) (*domain.User, error)

	// FindByEmailAnyRole searches job seekers first, then recruiters.
	// Returns domain.ErrEmailNotFound if the email matches neither.
	FindByEmailAnyRole(ctx context.Context, email string) (*domain.User, error)

	FindByID(ctx context.Context, role domain.Role, id primitive.ObjectID) (*domain.User, error)

	// Insert creates the user in the collection for u.Role. Returns
	// domain.ErrDuplicateEmail when the unique email index rejects it.
	Insert(ctx context.Context, u *domain.User) error

	// Update replaces the stored document for u.ID. Fields that are nil
	// pointers are removed from the document, not nulled.
	Update(ctx context.Context, u *domain.User) error

	// DeleteExpiredPending removes users still in StatusPending whose
	// verification OTP expired before cutoff. Returns the number removed.
	DeleteExpiredPending(ctx context.Context, cutoff time.Time) (int64, error)
}
