package handlers

import (
	"net/http"

	"quickbids/internal/repository"
	"quickbids/internal/serializers"
	"quickbids/models"
)

func (h *Handler) ListJobsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.JobFilter{
		ContractorID: idParam(q, "contractor"),
		Open:         exactBoolParam(q, "open"),
		Page:         parsePaginationParams(r),
	}

	jobs, err := h.Store.ListJobs(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, serializers.NewJobs(jobs))
}

func (h *Handler) GetJobHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "jobId", "job")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	job, err := h.Store.GetJob(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, serializers.NewJob(*job))
}

// CreateJobHandler posts a new open job owned by the caller.
func (h *Handler) CreateJobHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var in jobCreateRequest
	if err := decodePayload(r.Context(), body, jobCreateSchema, "You must provide name, address, and square_footage", &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	var created *models.Job
	err = h.Store.WithTx(r.Context(), func(tx repository.Repository) error {
		fields, err := tx.FindFields(r.Context(), in.Fields)
		if err != nil {
			return err
		}

		job := models.Job{
			ContractorID:  p.Contractor.ID,
			Name:          in.Name,
			Address:       in.Address,
			Blueprint:     in.Blueprint,
			SquareFootage: in.SquareFootage,
			Open:          ptr(true),
			Complete:      ptr(false),
			Fields:        fields,
		}
		if err := tx.CreateJob(r.Context(), &job); err != nil {
			return err
		}

		created, err = tx.GetJob(r.Context(), job.ID)
		return err
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, serializers.NewJob(*created))
}

// UpdateJobHandler replaces every column of the job and its field set.
func (h *Handler) UpdateJobHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "jobId", "job")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var in jobUpdateRequest
	if err := decodePayload(r.Context(), body, jobUpdateSchema, "Missing or invalid job fields", &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	err = h.Store.WithTx(r.Context(), func(tx repository.Repository) error {
		job, err := tx.GetJob(r.Context(), id)
		if err != nil {
			return err
		}
		contractor, err := tx.GetContractor(r.Context(), in.Contractor)
		if err != nil {
			return err
		}
		fields, err := tx.FindFields(r.Context(), in.Fields)
		if err != nil {
			return err
		}

		job.ContractorID = contractor.ID
		job.Name = in.Name
		job.Address = in.Address
		job.Blueprint = in.Blueprint
		job.SquareFootage = in.SquareFootage
		job.Open = in.Open
		job.Complete = in.Complete
		job.Fields = fields
		return tx.UpdateJob(r.Context(), job)
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteJobHandler removes the job along with its bids and field links.
func (h *Handler) DeleteJobHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "jobId", "job")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	err = h.Store.WithTx(r.Context(), func(tx repository.Repository) error {
		return tx.DeleteJob(r.Context(), id)
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
