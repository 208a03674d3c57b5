// seed inserts a verified demo recruiter and job seeker plus a batch of
// jobs into the local dev database. Run: go run ./cmd/seed
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/udanya23/job-portal/internal/domain"
	"github.com/udanya23/job-portal/internal/infrastructure/mongodb"
	"golang.org/x/crypto/bcrypt"
)

const (
	recruiterEmail = "recruiter@seed.local"
	jobSeekerEmail = "jobseeker@seed.local"
	seedPassword   = "password123"
)

type jobSpec struct {
	title    string
	location string
	salary   string
	reqs     []string
}

var jobs = []jobSpec{
	{"Backend Engineer", "Berlin", "€70k-€85k", []string{"Go", "MongoDB", "3+ years"}},
	{"Frontend Engineer", "Remote", "€60k-€75k", []string{"React", "TypeScript"}},
	{"Platform Engineer", "Amsterdam", "€80k-€95k", []string{"Kubernetes", "Terraform"}},
	{"Data Engineer", "Berlin", "€75k-€90k", []string{"Python", "Airflow", "SQL"}},
	{"QA Engineer", "Remote", "€50k-€65k", []string{"Cypress", "API testing"}},
	{"Engineering Manager", "Munich", "€100k+", []string{"5+ years leadership"}},
	{"SRE", "Remote", "€85k-€100k", []string{"On-call", "Prometheus", "Go"}},
	{"Mobile Engineer", "Hamburg", "€65k-€80k", []string{"Kotlin", "Swift"}},
	{"Security Engineer", "Berlin", "€90k-€105k", []string{"AppSec", "Threat modeling"}},
	{"Tech Writer", "Remote", "€45k-€55k", []string{"API docs", "English C2"}},
}

func main() {
	ctx := context.Background()

	mongoURL := os.Getenv("MONGO_URL")
	if mongoURL == "" {
		log.Fatal("MONGO_URL is not set")
	}
	dbName := os.Getenv("MONGO_DATABASE")
	if dbName == "" {
		dbName = "jobportal"
	}

	client, db, err := mongodb.Connect(ctx, mongoURL, dbName)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer client.Disconnect(ctx)

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("indexes: %v", err)
	}

	users := mongodb.NewUserRepository(db)
	jobStore := mongodb.NewJobRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 10)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	recruiter := &domain.User{
		Role:           domain.RoleRecruiter,
		Name:           "Seed Recruiter",
		Email:          recruiterEmail,
		PasswordHash:   string(hash),
		MobileNumber:   "+4915100000001",
		CompanyName:    "Seed GmbH",
		CompanyAddress: "Alexanderplatz 1, Berlin",
		IsVerified:     true,
		Status:         domain.StatusRegistered,
	}
	if existing, err := users.FindByEmail(ctx, domain.RoleRecruiter, recruiterEmail); err == nil {
		recruiter = existing
		log.Printf("recruiter exists: %s", recruiter.ID.Hex())
	} else if err := users.Insert(ctx, recruiter); err != nil {
		log.Fatalf("insert recruiter: %v", err)
	} else {
		log.Printf("recruiter created: %s (password %q)", recruiter.ID.Hex(), seedPassword)
	}

	jobSeeker := &domain.User{
		Role:         domain.RoleJobSeeker,
		Name:         "Seed Job Seeker",
		Email:        jobSeekerEmail,
		PasswordHash: string(hash),
		MobileNumber: "+4915100000002",
		Address:      "Torstrasse 99, Berlin",
		Gender:       "Other",
		IsVerified:   true,
		Status:       domain.StatusRegistered,
	}
	if existing, err := users.FindByEmail(ctx, domain.RoleJobSeeker, jobSeekerEmail); err == nil {
		log.Printf("job seeker exists: %s", existing.ID.Hex())
	} else if err := users.Insert(ctx, jobSeeker); err != nil {
		log.Fatalf("insert job seeker: %v", err)
	} else {
		log.Printf("job seeker created: %s (password %q)", jobSeeker.ID.Hex(), seedPassword)
	}

	// Skip job inserts on re-runs: any seeded posting means we ran before.
	existing, err := jobStore.List(ctx)
	if err != nil {
		log.Fatalf("list jobs: %v", err)
	}
	for _, j := range existing {
		if j.Recruiter == recruiter.ID {
			log.Printf("jobs already seeded (%d present), nothing to do", len(existing))
			return
		}
	}

	var inserted int
	for _, spec := range jobs {
		job := &domain.Job{
			Title:        spec.title,
			Description:  "Demo posting seeded for local development.",
			CompanyName:  recruiter.CompanyName,
			Location:     spec.location,
			Salary:       spec.salary,
			Requirements: spec.reqs,
			Recruiter:    recruiter.ID,
			CreatedAt:    time.Now().UTC(),
		}
		if err := jobStore.Insert(ctx, job); err != nil {
			log.Fatalf("insert job %q: %v", spec.title, err)
		}
		inserted++
	}
	log.Printf("seeded %d jobs", inserted)
}
