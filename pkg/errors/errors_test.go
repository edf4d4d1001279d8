package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorWrapping(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Connection(cause, "Erro ao conectar com o servidor.")

	assert.True(t, Is(err, CodeConnection))
	assert.False(t, Is(err, CodeValidation))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "CONNECTION_ERROR")

	wrapped := fmt.Errorf("submit: %w", err)
	assert.True(t, Is(wrapped, CodeConnection))
	assert.Equal(t, "Erro ao conectar com o servidor.", MessageOf(wrapped, "fallback"))
}

func TestMessageOfFallback(t *testing.T) {
	assert.Equal(t, "fallback", MessageOf(errors.New("raw"), "fallback"))
	assert.Equal(t, "fallback", MessageOf(Business(""), "fallback"))
	assert.Equal(t, "fallback", MessageOf(nil, "fallback"))
}

func TestAsAppError(t *testing.T) {
	assert.Nil(t, AsAppError(nil))

	appErr := AsAppError(errors.New("boom"))
	assert.Equal(t, CodeInternal, appErr.Code)

	original := Validation("campo obrigatório")
	assert.Same(t, original, AsAppError(original))
}

func TestHTTPStatusCode(t *testing.T) {
	cases := map[ErrorCode]int{
		CodeValidation:     http.StatusBadRequest,
		CodeUnauthorized:   http.StatusUnauthorized,
		CodeOrderNotFound:  http.StatusNotFound,
		CodeUnknownProduct: http.StatusUnprocessableEntity,
		CodeTooManyRequest: http.StatusTooManyRequests,
		CodeInternal:       http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, New(code, "x").HTTPStatusCode(), string(code))
	}
}
