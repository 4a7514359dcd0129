package db

import (
	"context"
	"errors"

	"quickbids/models"
)

const contractorSelect = `
        SELECT c.id, c.user_id, c.company_name, c.phone_number, c.primary_contractor,
               u.id AS "user.id", u.username AS "user.username",
               u.first_name AS "user.first_name", u.last_name AS "user.last_name",
               u.email AS "user.email", u.is_staff AS "user.is_staff",
               u.is_active AS "user.is_active"
        FROM contractors c
        JOIN users u ON u.id = c.user_id`

func (s *Storage) CreateContractor(ctx context.Context, c *models.Contractor) error {
	if c == nil {
		return errors.New("contractor is nil")
	}
	query := `
        INSERT INTO contractors (user_id, company_name, phone_number, primary_contractor)
        VALUES (?, ?, ?, ?)
        RETURNING id`
	id, err := s.insert(ctx, query, c.UserID, c.CompanyName, c.PhoneNumber, c.PrimaryContractor)
	if err != nil {
		return translate(err, "contractor", c.UserID)
	}
	c.ID = id
	return nil
}

func (s *Storage) GetContractor(ctx context.Context, id int64) (*models.Contractor, error) {
	c := &models.Contractor{}
	if err := s.get(ctx, c, contractorSelect+` WHERE c.id = ?`, id); err != nil {
		return nil, translate(err, "contractor", id)
	}
	return c, nil
}

func (s *Storage) GetContractorByUser(ctx context.Context, userID int64) (*models.Contractor, error) {
	c := &models.Contractor{}
	if err := s.get(ctx, c, contractorSelect+` WHERE c.user_id = ?`, userID); err != nil {
		return nil, translate(err, "contractor for user", userID)
	}
	return c, nil
}

func (s *Storage) ListContractors(ctx context.Context, f models.ContractorFilter) ([]models.Contractor, error) {
	var where conditions
	if f.Primary != nil {
		where.add("c.primary_contractor = ?", *f.Primary)
	}
	if f.UserID != nil {
		where.add("c.user_id = ?", *f.UserID)
	}
	page, pageArgs := s.paginate(f.Page)

	contractors := []models.Contractor{}
	query := contractorSelect + where.String() + " ORDER BY c.id ASC" + page
	if err := s.selectAll(ctx, &contractors, query, append(where.args, pageArgs...)...); err != nil {
		return nil, translate(err, "contractors", nil)
	}
	return contractors, nil
}

func (s *Storage) UpdateContractor(ctx context.Context, c *models.Contractor) error {
	if c == nil {
		return errors.New("contractor is nil")
	}
	query := `
        UPDATE contractors
        SET company_name = ?, phone_number = ?, primary_contractor = ?
        WHERE id = ?`
	return s.execOne(ctx, "contractor", c.ID, query, c.CompanyName, c.PhoneNumber, c.PrimaryContractor, c.ID)
}

func (s *Storage) DeleteContractor(ctx context.Context, id int64) error {
	cascade := []string{
		`DELETE FROM bids
         WHERE primary_contractor_id = ? OR sub_contractor_id = ?
            OR job_id IN (SELECT id FROM jobs WHERE contractor_id = ?)`,
		`DELETE FROM job_fields WHERE job_id IN (SELECT id FROM jobs WHERE contractor_id = ?)`,
		`DELETE FROM jobs WHERE contractor_id = ?`,
	}
	args := [][]any{{id, id, id}, {id}, {id}}
	for i, query := range cascade {
		if _, err := s.exec(ctx, query, args[i]...); err != nil {
			return translate(err, "contractor", id)
		}
	}
	return s.execOne(ctx, "contractor", id, `DELETE FROM contractors WHERE id = ?`, id)
}
