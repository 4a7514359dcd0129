package handlers

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"quickbids/models"

	"github.com/stretchr/testify/require"
)

func TestParsePaginationParams(t *testing.T) {
	cases := map[string]models.Page{
		"/jobs":                    {},
		"/jobs?limit=10&offset=5":  {Limit: 10, Offset: 5},
		"/jobs?limit=0&offset=-1":  {},
		"/jobs?limit=101":          {},
		"/jobs?limit=abc&offset=3": {Offset: 3},
	}
	for target, want := range cases {
		r := httptest.NewRequest("GET", target, nil)
		require.Equal(t, want, parsePaginationParams(r), target)
	}
}

func TestIDParam(t *testing.T) {
	q := url.Values{"job": {"7"}, "sub": {"x"}}

	require.Equal(t, int64(7), *idParam(q, "job"))
	require.Nil(t, idParam(q, "primary"))
	require.Nil(t, idParam(q, "sub"))
}

func TestBoolParams(t *testing.T) {
	q := url.Values{"open": {"True"}, "accepted": {"1"}, "request": {"nah"}, "is_request": {"false"}}

	require.Nil(t, exactBoolParam(q, "open"))
	require.True(t, *exactBoolParam(url.Values{"open": {"true"}}, "open"))
	require.False(t, *exactBoolParam(url.Values{"open": {"false"}}, "open"))

	require.True(t, *boolParam(q, "accepted"))
	require.False(t, *boolParam(q, "request", "is_request"))
	require.Nil(t, boolParam(q, "missing"))
}

func TestBearerToken(t *testing.T) {
	for header, want := range map[string]string{
		"Bearer abc":  "abc",
		"token  abc ": "abc",
		"Basic abc":   "",
		"abc":         "",
		"Bearer ":     "",
	} {
		got, ok := bearerToken(header)
		require.Equal(t, want, got, header)
		require.Equal(t, want != "", ok, header)
	}
}
