package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrJobNotFound = errors.New("job not found")

// Job is a posting owned by exactly one recruiter. The owner is set at
// creation and never changes.
type Job struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	CompanyName  string             `bson:"companyName" json:"companyName"`
	Location     string             `bson:"location" json:"location"`
	Salary       string             `bson:"salary,omitempty" json:"salary,omitempty"`
	Requirements []string           `bson:"requirements" json:"requirements"`
	Recruiter    primitive.ObjectID `bson:"recruiter" json:"recruiter"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
