package models

import "time"

// User is the identity record behind every Contractor.
type User struct {
	ID         int64     `db:"id"`
	Username   string    `db:"username"`
	Password   string    `db:"password"`
	FirstName  string    `db:"first_name"`
	LastName   string    `db:"last_name"`
	Email      string    `db:"email"`
	IsStaff    bool      `db:"is_staff"`
	IsActive   bool      `db:"is_active"`
	DateJoined time.Time `db:"date_joined"`
}

// Contractor is either a primary (general) contractor posting jobs or a
// subcontractor submitting bids. User is loaded with every read.
type Contractor struct {
	ID                int64  `db:"id"`
	UserID            int64  `db:"user_id"`
	CompanyName       string `db:"company_name"`
	PhoneNumber       string `db:"phone_number"`
	PrimaryContractor bool   `db:"primary_contractor"`
	User              User   `db:"user"`
}

// FullName joins the backing user's first and last name.
func (c *Contractor) FullName() string {
	return c.User.FirstName + " " + c.User.LastName
}

// ContractorRef is the short form of a contractor embedded in jobs and bids.
type ContractorRef struct {
	ID          int64  `db:"id"`
	CompanyName string `db:"company_name"`
}

// Field is a trade category such as "Painting".
type Field struct {
	ID       int64  `db:"id"`
	JobTitle string `db:"job_title"`
}

type Job struct {
	ID            int64         `db:"id"`
	ContractorID  int64         `db:"contractor_id"`
	Name          string        `db:"name"`
	Address       string        `db:"address"`
	Blueprint     *string       `db:"blueprint"`
	SquareFootage *float64      `db:"square_footage"`
	Open          *bool         `db:"open"`
	Complete      *bool         `db:"complete"`
	Contractor    ContractorRef `db:"contractor"`

	// Fields is resolved through job_fields, ordered by field id.
	Fields []Field `db:"-"`
}

// JobRef is the short form of a job embedded in bids.
type JobRef struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	ContractorID int64  `db:"contractor_id"`
	Complete     *bool  `db:"complete"`
	Open         *bool  `db:"open"`
}

type Bid struct {
	ID                  int64         `db:"id"`
	JobID               int64         `db:"job_id"`
	PrimaryContractorID int64         `db:"primary_contractor_id"`
	SubContractorID     int64         `db:"sub_contractor_id"`
	Rate                *float64      `db:"rate"`
	Accepted            bool          `db:"accepted"`
	IsRequest           bool          `db:"is_request"`
	Job                 JobRef        `db:"job"`
	PrimaryContractor   ContractorRef `db:"primary_contractor"`
	SubContractor       ContractorRef `db:"sub_contractor"`
}

// Page limits a list query. A zero Limit means no limit.
type Page struct {
	Limit  int
	Offset int
}

// ContractorFilter narrows ListContractors. Nil fields are not applied.
type ContractorFilter struct {
	Primary *bool
	UserID  *int64
	Page
}

type JobFilter struct {
	ContractorID *int64
	Open         *bool
	Page
}

type BidFilter struct {
	SubContractorID     *int64
	PrimaryContractorID *int64
	JobID               *int64
	Accepted            *bool
	IsRequest           *bool
	Page
}
