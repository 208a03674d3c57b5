package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrDuplicateApplication = errors.New("already applied for this job")
	ErrNotJobOwner          = errors.New("job does not belong to this recruiter")
)

type ApplicationStatus string

const (
	ApplicationApplied      ApplicationStatus = "Applied"
	ApplicationInterviewing ApplicationStatus = "Interviewing"
	ApplicationAccepted     ApplicationStatus = "Accepted"
	ApplicationRejected     ApplicationStatus = "Rejected"
	ApplicationPending      ApplicationStatus = "Pending"
)

// Application links one job seeker to one job. The (job, applicant) pair is
// unique; the compound index in the store is the authority.
type Application struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Job         primitive.ObjectID `bson:"job" json:"job"`
	Applicant   primitive.ObjectID `bson:"applicant" json:"applicant"`
	Status      ApplicationStatus  `bson:"status" json:"status"`
	AppliedDate time.Time          `bson:"appliedDate" json:"appliedDate"`
}
