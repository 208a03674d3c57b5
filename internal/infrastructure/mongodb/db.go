package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	CollJobSeekers   = "jobseekers"
	CollRecruiters   = "recruiters"
	CollJobs         = "jobs"
	CollApplications = "applications"
)

// Connect opens a client, verifies the server is reachable, and returns the
// named database handle.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client, client.Database(dbName), nil
}

// EnsureIndexes creates the indexes the store's invariants depend on:
// unique email per role collection and a unique (job, applicant) pair on
// applications. Safe to call on every startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	emailIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	}
	for _, coll := range []string{CollJobSeekers, CollRecruiters} {
		if _, err := db.Collection(coll).Indexes().CreateOne(ctx, emailIdx); err != nil {
			return fmt.Errorf("create email index on %s: %w", coll, err)
		}
	}

	appIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "job", Value: 1}, {Key: "applicant", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("job_applicant_unique"),
	}
	if _, err := db.Collection(CollApplications).Indexes().CreateOne(ctx, appIdx); err != nil {
		return fmt.Errorf("create application index: %w", err)
	}

	recruiterIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "recruiter", Value: 1}},
		Options: options.Index().SetName("recruiter_idx"),
	}
	if _, err := db.Collection(CollJobs).Indexes().CreateOne(ctx, recruiterIdx); err != nil {
		return fmt.Errorf("create job recruiter index: %w", err)
	}

	return nil
}

// Pinger adapts a mongo client to the health checker's Pinger interface.
type Pinger struct {
	Client *mongo.Client
}

func (p Pinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx, readpref.Primary())
}
