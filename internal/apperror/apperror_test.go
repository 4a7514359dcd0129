package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"quickbids/internal/apperror"

	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", apperror.Validation("bad", "name is required"), http.StatusBadRequest},
		{"conflict", apperror.Conflict("taken"), http.StatusBadRequest},
		{"not found", apperror.NotFound("job", 4), http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get bid: %w", apperror.NotFound("bid", 1)), http.StatusNotFound},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, apperror.StatusCode(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	require.Equal(t, "job 4 not found", apperror.NotFound("job", 4).Error())
	require.Equal(t, "contractor not found", apperror.NotFound("contractor", nil).Error())
	require.Equal(t, "missing: a; b", apperror.Validation("missing", "a", "b").Error())
	require.Equal(t, "missing", apperror.Validation("missing").Error())

	require.True(t, apperror.IsNotFound(fmt.Errorf("x: %w", apperror.NotFound("field", 2))))
	require.False(t, apperror.IsNotFound(apperror.Conflict("dup")))
	require.True(t, apperror.IsConflict(apperror.Conflict("dup")))
}
