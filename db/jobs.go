package db

import (
	"context"
	"errors"

	"quickbids/models"

	"github.com/jmoiron/sqlx"
)

const jobSelect = `
        SELECT j.id, j.contractor_id, j.name, j.address, j.blueprint, j.square_footage,
               j.open, j.complete,
               c.id AS "contractor.id", c.company_name AS "contractor.company_name"
        FROM jobs j
        JOIN contractors c ON c.id = j.contractor_id`

func (s *Storage) CreateJob(ctx context.Context, j *models.Job) error {
	if j == nil {
		return errors.New("job is nil")
	}
	query := `
        INSERT INTO jobs
            (contractor_id, name, address, blueprint, square_footage, open, complete)
        VALUES
            (?, ?, ?, ?, ?, ?, ?)
        RETURNING id`
	id, err := s.insert(ctx, query,
		j.ContractorID, j.Name, j.Address, j.Blueprint, j.SquareFootage, j.Open, j.Complete)
	if err != nil {
		return translate(err, "job", j.ContractorID)
	}
	j.ID = id
	return s.setJobFields(ctx, id, j.Fields)
}

func (s *Storage) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	j := models.Job{}
	if err := s.get(ctx, &j, jobSelect+` WHERE j.id = ?`, id); err != nil {
		return nil, translate(err, "job", id)
	}
	jobs := []models.Job{j}
	if err := s.loadJobFields(ctx, jobs); err != nil {
		return nil, err
	}
	return &jobs[0], nil
}

func (s *Storage) ListJobs(ctx context.Context, f models.JobFilter) ([]models.Job, error) {
	var where conditions
	if f.ContractorID != nil {
		where.add("j.contractor_id = ?", *f.ContractorID)
	}
	if f.Open != nil {
		where.add("j.open = ?", *f.Open)
	}
	page, pageArgs := s.paginate(f.Page)

	jobs := []models.Job{}
	query := jobSelect + where.String() + " ORDER BY j.id ASC" + page
	if err := s.selectAll(ctx, &jobs, query, append(where.args, pageArgs...)...); err != nil {
		return nil, translate(err, "jobs", nil)
	}
	if err := s.loadJobFields(ctx, jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *Storage) UpdateJob(ctx context.Context, j *models.Job) error {
	if j == nil {
		return errors.New("job is nil")
	}
	query := `
        UPDATE jobs
        SET contractor_id = ?, name = ?, address = ?, blueprint = ?, square_footage = ?,
            open = ?, complete = ?
        WHERE id = ?`
	err := s.execOne(ctx, "job", j.ID, query,
		j.ContractorID, j.Name, j.Address, j.Blueprint, j.SquareFootage, j.Open, j.Complete, j.ID)
	if err != nil {
		return err
	}
	return s.setJobFields(ctx, j.ID, j.Fields)
}

func (s *Storage) DeleteJob(ctx context.Context, id int64) error {
	for _, query := range []string{
		`DELETE FROM bids WHERE job_id = ?`,
		`DELETE FROM job_fields WHERE job_id = ?`,
	} {
		if _, err := s.exec(ctx, query, id); err != nil {
			return translate(err, "job", id)
		}
	}
	return s.execOne(ctx, "job", id, `DELETE FROM jobs WHERE id = ?`, id)
}

// setJobFields replaces the job_fields rows of jobID with fields.
func (s *Storage) setJobFields(ctx context.Context, jobID int64, fields []models.Field) error {
	if _, err := s.exec(ctx, `DELETE FROM job_fields WHERE job_id = ?`, jobID); err != nil {
		return translate(err, "job fields", jobID)
	}
	seen := make(map[int64]bool, len(fields))
	for _, f := range fields {
		if seen[f.ID] {
			continue
		}
		seen[f.ID] = true
		if _, err := s.exec(ctx, `INSERT INTO job_fields (job_id, field_id) VALUES (?, ?)`, jobID, f.ID); err != nil {
			return translate(err, "job field", f.ID)
		}
	}
	return nil
}

type jobFieldRow struct {
	JobID int64 `db:"job_id"`
	models.Field
}

// loadJobFields fills Fields on every job with one query.
func (s *Storage) loadJobFields(ctx context.Context, jobs []models.Job) error {
	if len(jobs) == 0 {
		return nil
	}
	ids := make([]int64, len(jobs))
	index := make(map[int64]int, len(jobs))
	for i := range jobs {
		ids[i] = jobs[i].ID
		index[jobs[i].ID] = i
		jobs[i].Fields = []models.Field{}
	}

	query, args, err := sqlx.In(`
        SELECT jf.job_id, f.id, f.job_title
        FROM job_fields jf
        JOIN fields f ON f.id = jf.field_id
        WHERE jf.job_id IN (?)
        ORDER BY jf.job_id ASC, f.id ASC`, ids)
	if err != nil {
		return err
	}

	var rows []jobFieldRow
	if err := s.selectAll(ctx, &rows, query, args...); err != nil {
		return translate(err, "job fields", nil)
	}
	for _, r := range rows {
		i := index[r.JobID]
		jobs[i].Fields = append(jobs[i].Fields, r.Field)
	}
	return nil
}
