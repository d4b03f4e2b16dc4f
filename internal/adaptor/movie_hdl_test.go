package adaptor

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBodyKeys(t *testing.T) {
	keys, err := bodyKeys([]byte(`{"title":"Dune","duration":155}`))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"title", "duration"}, keys)

	_, err = bodyKeys([]byte(`[1,2]`))
	assert.Error(t, err)
}

func TestParseStringArray(t *testing.T) {
	values, err := parseStringArray(`["Sci-Fi","Drama"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sci-Fi", "Drama"}, values)

	// Single-quoted form some clients send in form fields
	values, err = parseStringArray(`['Sci-Fi','Drama']`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sci-Fi", "Drama"}, values)

	values, err = parseStringArray("Drama")
	require.NoError(t, err)
	assert.Equal(t, []string{"Drama"}, values)

	values, err = parseStringArray("")
	require.NoError(t, err)
	assert.Nil(t, values)

	_, err = parseStringArray(`[broken`)
	assert.Error(t, err)
}

func TestHandleServiceErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{errors.New("movie abc not found"), 404},
		{errors.New("validation failed: title is required"), 400},
		{errors.New("seats already booked: row 1 seat 1"), 400},
		{errors.New("invalid request: show time conflicts with an existing show"), 400},
		{errors.New("invalid updates: field \"rating\" is not allowed"), 400},
		{errors.New("connection refused"), 500},
	}

	for _, tc := range tests {
		recorder := httptest.NewRecorder()
		handleServiceError(zap.NewNop(), recorder, tc.err, "test")
		assert.Equal(t, tc.code, recorder.Code, "error %q", tc.err)
	}
}

func TestHandleServiceErrorBody(t *testing.T) {
	recorder := httptest.NewRecorder()
	handleServiceError(zap.NewNop(), recorder, errors.New("show abc not found"), "test")

	assert.Contains(t, recorder.Body.String(), "show abc not found")
	assert.Contains(t, recorder.Header().Get("Content-Type"), "application/json")
}
