// Package repository declares the per-entity storage contracts the handlers
// depend on. The sqlx implementation lives in package db.
//
// Get, Update and Delete return *apperror.NotFoundError when the row is
// absent; writes that hit a unique constraint return *apperror.ConflictError.
package repository

import (
	"context"

	"quickbids/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id int64) error
}

type ContractorRepository interface {
	CreateContractor(ctx context.Context, c *models.Contractor) error
	GetContractor(ctx context.Context, id int64) (*models.Contractor, error)
	GetContractorByUser(ctx context.Context, userID int64) (*models.Contractor, error)
	ListContractors(ctx context.Context, f models.ContractorFilter) ([]models.Contractor, error)
	UpdateContractor(ctx context.Context, c *models.Contractor) error
	// DeleteContractor removes the contractor, its jobs and every bid it is
	// party to. The backing user is left to the caller.
	DeleteContractor(ctx context.Context, id int64) error
}

type FieldRepository interface {
	CreateField(ctx context.Context, f *models.Field) error
	GetField(ctx context.Context, id int64) (*models.Field, error)
	ListFields(ctx context.Context) ([]models.Field, error)
	// FindFields returns the fields matching ids, silently skipping unknown
	// ids and duplicates.
	FindFields(ctx context.Context, ids []int64) ([]models.Field, error)
	UpdateField(ctx context.Context, f *models.Field) error
	DeleteField(ctx context.Context, id int64) error
}

type JobRepository interface {
	// CreateJob inserts the job and one job_fields row per entry in j.Fields.
	CreateJob(ctx context.Context, j *models.Job) error
	GetJob(ctx context.Context, id int64) (*models.Job, error)
	ListJobs(ctx context.Context, f models.JobFilter) ([]models.Job, error)
	// UpdateJob replaces every column and the field set.
	UpdateJob(ctx context.Context, j *models.Job) error
	DeleteJob(ctx context.Context, id int64) error
}

type BidRepository interface {
	CreateBid(ctx context.Context, b *models.Bid) error
	GetBid(ctx context.Context, id int64) (*models.Bid, error)
	ListBids(ctx context.Context, f models.BidFilter) ([]models.Bid, error)
	UpdateBid(ctx context.Context, b *models.Bid) error
	DeleteBid(ctx context.Context, id int64) error
}

// Repository is the union of the entity repositories bound to one
// connection or transaction.
type Repository interface {
	UserRepository
	ContractorRepository
	FieldRepository
	JobRepository
	BidRepository
}

// Store is a Repository that can open transactions. WithTx commits when fn
// returns nil and rolls back otherwise.
type Store interface {
	Repository
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
