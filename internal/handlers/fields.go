package handlers

import (
	"net/http"

	"quickbids/internal/repository"
	"quickbids/internal/serializers"
)

func (h *Handler) ListFieldsHandler(w http.ResponseWriter, r *http.Request) {
	fields, err := h.Store.ListFields(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, serializers.NewFields(fields))
}

func (h *Handler) GetFieldHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "fieldId", "field")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	field, err := h.Store.GetField(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, serializers.NewField(*field))
}

func (h *Handler) UpdateFieldHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "fieldId", "field")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var in fieldUpdateRequest
	if err := decodePayload(r.Context(), body, fieldUpdateSchema, "You must provide job_title", &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	err = h.Store.WithTx(r.Context(), func(tx repository.Repository) error {
		field, err := tx.GetField(r.Context(), id)
		if err != nil {
			return err
		}
		field.JobTitle = in.JobTitle
		return tx.UpdateField(r.Context(), field)
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteFieldHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "fieldId", "field")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	err = h.Store.WithTx(r.Context(), func(tx repository.Repository) error {
		return tx.DeleteField(r.Context(), id)
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
