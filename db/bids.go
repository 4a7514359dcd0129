package db

import (
	"context"
	"errors"

	"quickbids/models"
)

const bidSelect = `
        SELECT b.id, b.job_id, b.primary_contractor_id, b.sub_contractor_id, b.rate,
               b.accepted, b.is_request,
               j.id AS "job.id", j.name AS "job.name", j.contractor_id AS "job.contractor_id",
               j.complete AS "job.complete", j.open AS "job.open",
               pc.id AS "primary_contractor.id", pc.company_name AS "primary_contractor.company_name",
               sc.id AS "sub_contractor.id", sc.company_name AS "sub_contractor.company_name"
        FROM bids b
        JOIN jobs j ON j.id = b.job_id
        JOIN contractors pc ON pc.id = b.primary_contractor_id
        JOIN contractors sc ON sc.id = b.sub_contractor_id`

func (s *Storage) CreateBid(ctx context.Context, b *models.Bid) error {
	if b == nil {
		return errors.New("bid is nil")
	}
	query := `
        INSERT INTO bids
            (job_id, primary_contractor_id, sub_contractor_id, rate, accepted, is_request)
        VALUES
            (?, ?, ?, ?, ?, ?)
        RETURNING id`
	id, err := s.insert(ctx, query,
		b.JobID, b.PrimaryContractorID, b.SubContractorID, b.Rate, b.Accepted, b.IsRequest)
	if err != nil {
		return translate(err, "bid", b.JobID)
	}
	b.ID = id
	return nil
}

func (s *Storage) GetBid(ctx context.Context, id int64) (*models.Bid, error) {
	b := &models.Bid{}
	if err := s.get(ctx, b, bidSelect+` WHERE b.id = ?`, id); err != nil {
		return nil, translate(err, "bid", id)
	}
	return b, nil
}

func (s *Storage) ListBids(ctx context.Context, f models.BidFilter) ([]models.Bid, error) {
	var where conditions
	if f.SubContractorID != nil {
		where.add("b.sub_contractor_id = ?", *f.SubContractorID)
	}
	if f.PrimaryContractorID != nil {
		where.add("b.primary_contractor_id = ?", *f.PrimaryContractorID)
	}
	if f.JobID != nil {
		where.add("b.job_id = ?", *f.JobID)
	}
	if f.Accepted != nil {
		where.add("b.accepted = ?", *f.Accepted)
	}
	if f.IsRequest != nil {
		where.add("b.is_request = ?", *f.IsRequest)
	}
	page, pageArgs := s.paginate(f.Page)

	bids := []models.Bid{}
	query := bidSelect + where.String() + " ORDER BY b.id ASC" + page
	if err := s.selectAll(ctx, &bids, query, append(where.args, pageArgs...)...); err != nil {
		return nil, translate(err, "bids", nil)
	}
	return bids, nil
}

func (s *Storage) UpdateBid(ctx context.Context, b *models.Bid) error {
	if b == nil {
		return errors.New("bid is nil")
	}
	query := `
        UPDATE bids
        SET job_id = ?, primary_contractor_id = ?, sub_contractor_id = ?, rate = ?,
            accepted = ?, is_request = ?
        WHERE id = ?`
	return s.execOne(ctx, "bid", b.ID, query,
		b.JobID, b.PrimaryContractorID, b.SubContractorID, b.Rate, b.Accepted, b.IsRequest, b.ID)
}

func (s *Storage) DeleteBid(ctx context.Context, id int64) error {
	return s.execOne(ctx, "bid", id, `DELETE FROM bids WHERE id = ?`, id)
}
