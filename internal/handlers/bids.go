package handlers

import (
	"net/http"

	"quickbids/internal/repository"
	"quickbids/internal/serializers"
	"quickbids/models"
)

func (h *Handler) ListBidsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := models.BidFilter{
		SubContractorID:     idParam(q, "sub"),
		PrimaryContractorID: idParam(q, "primary"),
		JobID:               idParam(q, "job"),
		Accepted:            boolParam(q, "accepted"),
		IsRequest:           boolParam(q, "request", "is_request"),
		Page:                parsePaginationParams(r),
	}

	bids, err := h.Store.ListBids(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, serializers.NewBids(bids))
}

func (h *Handler) GetBidHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "bidId", "bid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	bid, err := h.Store.GetBid(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, serializers.NewBid(*bid))
}

// CreateBidHandler opens a bid between two contractors named by their user
// ids. New bids are never accepted.
func (h *Handler) CreateBidHandler(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var in bidCreateRequest
	if err := decodePayload(r.Context(), body, bidCreateSchema, "You must provide sub, primary, job, rate, and is_request", &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	var created *models.Bid
	err = h.Store.WithTx(r.Context(), func(tx repository.Repository) error {
		sub, err := tx.GetContractorByUser(r.Context(), in.Sub)
		if err != nil {
			return err
		}
		primary, err := tx.GetContractorByUser(r.Context(), in.Primary)
		if err != nil {
			return err
		}
		job, err := tx.GetJob(r.Context(), in.Job)
		if err != nil {
			return err
		}

		bid := models.Bid{
			JobID:               job.ID,
			PrimaryContractorID: primary.ID,
			SubContractorID:     sub.ID,
			Rate:                in.Rate,
			IsRequest:           in.IsRequest,
		}
		if err := tx.CreateBid(r.Context(), &bid); err != nil {
			return err
		}

		created, err = tx.GetBid(r.Context(), bid.ID)
		return err
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, serializers.NewBid(*created))
}

// UpdateBidHandler replaces the bid. Unlike create, sub and primary are
// contractor ids here.
func (h *Handler) UpdateBidHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "bidId", "bid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var in bidUpdateRequest
	if err := decodePayload(r.Context(), body, bidUpdateSchema, "Missing or invalid bid fields", &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	err = h.Store.WithTx(r.Context(), func(tx repository.Repository) error {
		bid, err := tx.GetBid(r.Context(), id)
		if err != nil {
			return err
		}
		job, err := tx.GetJob(r.Context(), in.Job)
		if err != nil {
			return err
		}
		sub, err := tx.GetContractor(r.Context(), in.Sub)
		if err != nil {
			return err
		}
		primary, err := tx.GetContractor(r.Context(), in.Primary)
		if err != nil {
			return err
		}

		bid.JobID = job.ID
		bid.SubContractorID = sub.ID
		bid.PrimaryContractorID = primary.ID
		bid.Rate = in.Rate
		bid.Accepted = in.Accepted
		bid.IsRequest = in.IsRequest
		return tx.UpdateBid(r.Context(), bid)
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteBidHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "bidId", "bid")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	err = h.Store.WithTx(r.Context(), func(tx repository.Repository) error {
		return tx.DeleteBid(r.Context(), id)
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
