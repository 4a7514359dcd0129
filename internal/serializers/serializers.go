// Package serializers renders entities into the JSON shapes the API
// returns, choosing per view which relations are nested and which are
// flattened.
package serializers

import "quickbids/models"

// Contractor is the flat contractor view with user fields inlined.
type Contractor struct {
	ID                int64  `json:"id"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	CompanyName       string `json:"company_name"`
	PhoneNumber       string `json:"phone_number"`
	PrimaryContractor bool   `json:"primary_contractor"`
	FullName          string `json:"full_name"`
}

type ContractorRef struct {
	ID          int64  `json:"id"`
	CompanyName string `json:"company_name"`
}

type Field struct {
	ID       int64  `json:"id"`
	JobTitle string `json:"job_title"`
}

type Job struct {
	ID            int64         `json:"id"`
	Contractor    ContractorRef `json:"contractor"`
	Fields        []Field       `json:"fields"`
	Name          string        `json:"name"`
	Address       string        `json:"address"`
	Blueprint     *string       `json:"blueprint"`
	SquareFootage *float64      `json:"square_footage"`
	Open          *bool         `json:"open"`
	Complete      *bool         `json:"complete"`
}

// JobRef is the job summary nested in a bid.
type JobRef struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	ContractorID int64  `json:"contractor_id"`
	Complete     *bool  `json:"complete"`
	Open         *bool  `json:"open"`
}

type Bid struct {
	ID                int64         `json:"id"`
	Rate              *float64      `json:"rate"`
	Job               JobRef        `json:"job"`
	PrimaryContractor ContractorRef `json:"primary_contractor"`
	SubContractor     ContractorRef `json:"sub_contractor"`
	Accepted          bool          `json:"accepted"`
	IsRequest         bool          `json:"is_request"`
}

// Session is the body returned by register and a successful login.
type Session struct {
	Valid   bool   `json:"valid"`
	Token   string `json:"token"`
	Staff   bool   `json:"staff"`
	Primary bool   `json:"primary"`
}

func NewContractor(c models.Contractor) Contractor {
	return Contractor{
		ID:                c.ID,
		FirstName:         c.User.FirstName,
		LastName:          c.User.LastName,
		Username:          c.User.Username,
		Email:             c.User.Email,
		CompanyName:       c.CompanyName,
		PhoneNumber:       c.PhoneNumber,
		PrimaryContractor: c.PrimaryContractor,
		FullName:          c.FullName(),
	}
}

func NewContractors(cs []models.Contractor) []Contractor {
	out := make([]Contractor, 0, len(cs))
	for _, c := range cs {
		out = append(out, NewContractor(c))
	}
	return out
}

func NewContractorRef(c models.ContractorRef) ContractorRef {
	return ContractorRef{ID: c.ID, CompanyName: c.CompanyName}
}

func NewField(f models.Field) Field {
	return Field{ID: f.ID, JobTitle: f.JobTitle}
}

func NewFields(fs []models.Field) []Field {
	out := make([]Field, 0, len(fs))
	for _, f := range fs {
		out = append(out, NewField(f))
	}
	return out
}

func NewJob(j models.Job) Job {
	return Job{
		ID:            j.ID,
		Contractor:    NewContractorRef(j.Contractor),
		Fields:        NewFields(j.Fields),
		Name:          j.Name,
		Address:       j.Address,
		Blueprint:     j.Blueprint,
		SquareFootage: j.SquareFootage,
		Open:          j.Open,
		Complete:      j.Complete,
	}
}

func NewJobs(js []models.Job) []Job {
	out := make([]Job, 0, len(js))
	for _, j := range js {
		out = append(out, NewJob(j))
	}
	return out
}

func NewBid(b models.Bid) Bid {
	return Bid{
		ID:   b.ID,
		Rate: b.Rate,
		Job: JobRef{
			ID:           b.Job.ID,
			Name:         b.Job.Name,
			ContractorID: b.Job.ContractorID,
			Complete:     b.Job.Complete,
			Open:         b.Job.Open,
		},
		PrimaryContractor: NewContractorRef(b.PrimaryContractor),
		SubContractor:     NewContractorRef(b.SubContractor),
		Accepted:          b.Accepted,
		IsRequest:         b.IsRequest,
	}
}

func NewBids(bs []models.Bid) []Bid {
	out := make([]Bid, 0, len(bs))
	for _, b := range bs {
		out = append(out, NewBid(b))
	}
	return out
}

func NewSession(token string, u models.User, c models.Contractor) Session {
	return Session{Valid: true, Token: token, Staff: u.IsStaff, Primary: c.PrimaryContractor}
}
