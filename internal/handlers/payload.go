package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"quickbids/internal/apperror"

	"github.com/qri-io/jsonschema"
)

// Every write payload is checked against a JSON Schema before it is decoded,
// so a bad request reports all of its problems at once.

var registerSchema = mustSchema(`{
	"type": "object",
	"required": ["email", "first_name", "last_name", "username", "password",
		"company_name", "phone_number", "primary_contractor"],
	"properties": {
		"email":              {"type": "string", "minLength": 1, "maxLength": 254},
		"first_name":         {"type": "string", "maxLength": 150},
		"last_name":          {"type": "string", "maxLength": 150},
		"username":           {"type": "string", "minLength": 1, "maxLength": 150},
		"password":           {"type": "string", "minLength": 1, "maxLength": 72},
		"company_name":       {"type": "string", "maxLength": 200},
		"phone_number":       {"type": "string", "maxLength": 10},
		"primary_contractor": {"type": "boolean"}
	}
}`)

var contractorUpdateSchema = mustSchema(`{
	"type": "object",
	"required": ["first_name", "last_name", "username", "email",
		"company_name", "phone_number", "primary_contractor"],
	"properties": {
		"first_name":         {"type": "string", "maxLength": 150},
		"last_name":          {"type": "string", "maxLength": 150},
		"username":           {"type": "string", "minLength": 1, "maxLength": 150},
		"email":              {"type": "string", "minLength": 1, "maxLength": 254},
		"company_name":       {"type": "string", "maxLength": 200},
		"phone_number":       {"type": "string", "maxLength": 10},
		"primary_contractor": {"type": "boolean"}
	}
}`)

var fieldUpdateSchema = mustSchema(`{
	"type": "object",
	"required": ["job_title"],
	"properties": {
		"job_title": {"type": "string", "minLength": 1, "maxLength": 50}
	}
}`)

var jobCreateSchema = mustSchema(`{
	"type": "object",
	"required": ["name", "address", "square_footage"],
	"properties": {
		"name":           {"type": "string", "maxLength": 50},
		"address":        {"type": "string", "maxLength": 100},
		"blueprint":      {"type": ["string", "null"], "maxLength": 255},
		"square_footage": {"type": ["number", "null"]},
		"fields":         {"type": "array", "items": {"type": "integer"}}
	}
}`)

var jobUpdateSchema = mustSchema(`{
	"type": "object",
	"required": ["contractor", "name", "address", "blueprint", "square_footage",
		"open", "complete", "fields"],
	"properties": {
		"contractor":     {"type": "integer"},
		"name":           {"type": "string", "maxLength": 50},
		"address":        {"type": "string", "maxLength": 100},
		"blueprint":      {"type": ["string", "null"], "maxLength": 255},
		"square_footage": {"type": ["number", "null"]},
		"open":           {"type": ["boolean", "null"]},
		"complete":       {"type": ["boolean", "null"]},
		"fields":         {"type": "array", "items": {"type": "integer"}}
	}
}`)

var bidCreateSchema = mustSchema(`{
	"type": "object",
	"required": ["sub", "primary", "job", "rate", "is_request"],
	"properties": {
		"sub":        {"type": "integer"},
		"primary":    {"type": "integer"},
		"job":        {"type": "integer"},
		"rate":       {"type": ["number", "null"]},
		"is_request": {"type": "boolean"}
	}
}`)

var bidUpdateSchema = mustSchema(`{
	"type": "object",
	"required": ["job", "sub", "primary", "rate", "accepted", "is_request"],
	"properties": {
		"job":        {"type": "integer"},
		"sub":        {"type": "integer"},
		"primary":    {"type": "integer"},
		"rate":       {"type": ["number", "null"]},
		"accepted":   {"type": "boolean"},
		"is_request": {"type": "boolean"}
	}
}`)

type registerRequest struct {
	Email             string `json:"email"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Username          string `json:"username"`
	Password          string `json:"password"`
	CompanyName       string `json:"company_name"`
	PhoneNumber       string `json:"phone_number"`
	PrimaryContractor bool   `json:"primary_contractor"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type contractorUpdateRequest struct {
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	CompanyName       string `json:"company_name"`
	PhoneNumber       string `json:"phone_number"`
	PrimaryContractor bool   `json:"primary_contractor"`
}

type fieldUpdateRequest struct {
	JobTitle string `json:"job_title"`
}

type jobCreateRequest struct {
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	Blueprint     *string  `json:"blueprint"`
	SquareFootage *float64 `json:"square_footage"`
	Fields        []int64  `json:"fields"`
}

type jobUpdateRequest struct {
	Contractor    int64    `json:"contractor"`
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	Blueprint     *string  `json:"blueprint"`
	SquareFootage *float64 `json:"square_footage"`
	Open          *bool    `json:"open"`
	Complete      *bool    `json:"complete"`
	Fields        []int64  `json:"fields"`
}

// bidCreateRequest names both contractors by USER id.
type bidCreateRequest struct {
	Sub       int64    `json:"sub"`
	Primary   int64    `json:"primary"`
	Job       int64    `json:"job"`
	Rate      *float64 `json:"rate"`
	IsRequest bool     `json:"is_request"`
}

// bidUpdateRequest names both contractors by CONTRACTOR id.
type bidUpdateRequest struct {
	Job       int64    `json:"job"`
	Sub       int64    `json:"sub"`
	Primary   int64    `json:"primary"`
	Rate      *float64 `json:"rate"`
	Accepted  bool     `json:"accepted"`
	IsRequest bool     `json:"is_request"`
}

func mustSchema(src string) *jsonschema.Schema {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(src), rs); err != nil {
		panic(fmt.Sprintf("compile schema: %v", err))
	}
	return rs
}

// decodePayload validates body against schema and decodes it into dst.
// Schema violations become one ValidationError carrying message.
func decodePayload(ctx context.Context, body []byte, schema *jsonschema.Schema, message string, dst any) error {
	if !json.Valid(body) {
		return apperror.Validation("Invalid JSON format")
	}

	keyErrs, err := schema.ValidateBytes(ctx, body)
	if err != nil {
		return apperror.Validation("Invalid JSON format", err.Error())
	}
	if len(keyErrs) > 0 {
		problems := make([]string, 0, len(keyErrs))
		for _, ke := range keyErrs {
			problems = append(problems, describeKeyError(ke))
		}
		return apperror.Validation(message, problems...)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return apperror.Validation(message, err.Error())
	}
	return nil
}

func describeKeyError(ke jsonschema.KeyError) string {
	path := strings.TrimPrefix(ke.PropertyPath, "/")
	if path == "" {
		return ke.Message
	}
	return path + ": " + ke.Message
}
