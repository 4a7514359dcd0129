package handlers

import (
	"encoding/json"
	"net/http"

	"quickbids/internal/apperror"
	"quickbids/internal/repository"
	"quickbids/internal/serializers"
	"quickbids/models"
)

const accountExistsMessage = "An account with that username or email address already exists"

type invalidSession struct {
	Valid bool `json:"valid"`
}

// RegisterHandler creates a user and its contractor profile, then answers
// with a session token for the new account.
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var in registerRequest
	if err := decodePayload(r.Context(), body, registerSchema,
		"You must provide email, password, first_name, last_name, and username", &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	hash, err := h.Hasher.Hash(in.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	user := models.User{
		Username:  in.Username,
		Password:  hash,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		IsActive:  true,
	}
	contractor := models.Contractor{
		CompanyName:       in.CompanyName,
		PhoneNumber:       in.PhoneNumber,
		PrimaryContractor: in.PrimaryContractor,
	}

	err = h.Store.WithTx(r.Context(), func(tx repository.Repository) error {
		if err := tx.CreateUser(r.Context(), &user); err != nil {
			return err
		}
		contractor.UserID = user.ID
		return tx.CreateContractor(r.Context(), &contractor)
	})
	if apperror.IsConflict(err) {
		err = apperror.Conflict(accountExistsMessage)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, serializers.NewSession(token, user, contractor))
}

// LoginHandler exchanges credentials for a token. Every credential failure
// is answered with 200 {"valid": false}.
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var in loginRequest
	if err := json.Unmarshal(body, &in); err != nil || in.Username == "" || in.Password == "" {
		writeJSON(w, http.StatusOK, invalidSession{})
		return
	}

	user, err := h.Store.GetUserByUsername(r.Context(), in.Username)
	if apperror.IsNotFound(err) {
		writeJSON(w, http.StatusOK, invalidSession{})
		return
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if !user.IsActive || h.Hasher.Compare(user.Password, in.Password) != nil {
		writeJSON(w, http.StatusOK, invalidSession{})
		return
	}

	contractor, err := h.Store.GetContractorByUser(r.Context(), user.ID)
	if apperror.IsNotFound(err) {
		writeJSON(w, http.StatusOK, invalidSession{})
		return
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, serializers.NewSession(token, *user, *contractor))
}
