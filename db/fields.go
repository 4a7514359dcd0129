package db

import (
	"context"
	"errors"

	"quickbids/models"

	"github.com/jmoiron/sqlx"
)

func (s *Storage) CreateField(ctx context.Context, f *models.Field) error {
	if f == nil {
		return errors.New("field is nil")
	}
	id, err := s.insert(ctx, `INSERT INTO fields (job_title) VALUES (?) RETURNING id`, f.JobTitle)
	if err != nil {
		return translate(err, "field", f.JobTitle)
	}
	f.ID = id
	return nil
}

func (s *Storage) GetField(ctx context.Context, id int64) (*models.Field, error) {
	f := &models.Field{}
	if err := s.get(ctx, f, `SELECT id, job_title FROM fields WHERE id = ?`, id); err != nil {
		return nil, translate(err, "field", id)
	}
	return f, nil
}

func (s *Storage) ListFields(ctx context.Context) ([]models.Field, error) {
	fields := []models.Field{}
	if err := s.selectAll(ctx, &fields, `SELECT id, job_title FROM fields ORDER BY id ASC`); err != nil {
		return nil, translate(err, "fields", nil)
	}
	return fields, nil
}

func (s *Storage) FindFields(ctx context.Context, ids []int64) ([]models.Field, error) {
	fields := []models.Field{}
	if len(ids) == 0 {
		return fields, nil
	}
	query, args, err := sqlx.In(`SELECT id, job_title FROM fields WHERE id IN (?) ORDER BY id ASC`, ids)
	if err != nil {
		return nil, err
	}
	if err := s.selectAll(ctx, &fields, query, args...); err != nil {
		return nil, translate(err, "fields", nil)
	}
	return fields, nil
}

func (s *Storage) UpdateField(ctx context.Context, f *models.Field) error {
	if f == nil {
		return errors.New("field is nil")
	}
	return s.execOne(ctx, "field", f.ID, `UPDATE fields SET job_title = ? WHERE id = ?`, f.JobTitle, f.ID)
}

func (s *Storage) DeleteField(ctx context.Context, id int64) error {
	if _, err := s.exec(ctx, `DELETE FROM job_fields WHERE field_id = ?`, id); err != nil {
		return translate(err, "field", id)
	}
	return s.execOne(ctx, "field", id, `DELETE FROM fields WHERE id = ?`, id)
}
