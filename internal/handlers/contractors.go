package handlers

import (
	"net/http"

	"quickbids/internal/apperror"
	"quickbids/internal/repository"
	"quickbids/internal/serializers"
	"quickbids/models"
)

func (h *Handler) ListContractorsHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := models.ContractorFilter{
		Primary: exactBoolParam(q, "primary_contractor"),
		Page:    parsePaginationParams(r),
	}
	if q.Has("current") {
		filter.UserID = &p.User.ID
	}

	contractors, err := h.Store.ListContractors(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, serializers.NewContractors(contractors))
}

func (h *Handler) GetContractorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "contractorId", "contractor")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	contractor, err := h.Store.GetContractor(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, serializers.NewContractor(*contractor))
}

// UpdateContractorHandler replaces the contractor profile and the user
// fields shown with it.
func (h *Handler) UpdateContractorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "contractorId", "contractor")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var in contractorUpdateRequest
	if err := decodePayload(r.Context(), body, contractorUpdateSchema, "Missing or invalid contractor fields", &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	err = h.Store.WithTx(r.Context(), func(tx repository.Repository) error {
		contractor, err := tx.GetContractor(r.Context(), id)
		if err != nil {
			return err
		}
		user, err := tx.GetUser(r.Context(), contractor.UserID)
		if err != nil {
			return err
		}

		user.FirstName = in.FirstName
		user.LastName = in.LastName
		user.Username = in.Username
		user.Email = in.Email
		if err := tx.UpdateUser(r.Context(), user); err != nil {
			if apperror.IsConflict(err) {
				return apperror.Conflict(accountExistsMessage)
			}
			return err
		}

		contractor.CompanyName = in.CompanyName
		contractor.PhoneNumber = in.PhoneNumber
		contractor.PrimaryContractor = in.PrimaryContractor
		return tx.UpdateContractor(r.Context(), contractor)
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteContractorHandler removes the contractor together with its user.
func (h *Handler) DeleteContractorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "contractorId", "contractor")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	err = h.Store.WithTx(r.Context(), func(tx repository.Repository) error {
		contractor, err := tx.GetContractor(r.Context(), id)
		if err != nil {
			return err
		}
		if err := tx.DeleteContractor(r.Context(), id); err != nil {
			return err
		}
		return tx.DeleteUser(r.Context(), contractor.UserID)
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
