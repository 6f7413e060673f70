package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Constructors(t *testing.T) {
	err := NewAppError(http.StatusBadRequest, CodeBadRequest, "bad", ErrInvalidInput)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, CodeBadRequest, err.Code)
	assert.Equal(t, "bad", err.Message)
	assert.Equal(t, ErrInvalidInput.Error(), err.Error())
	assert.ErrorIs(t, err, ErrInvalidInput)

	notFound := NotFound("missing")
	assert.Equal(t, http.StatusNotFound, notFound.Status)
	assert.Equal(t, CodeNotFound, notFound.Code)

	conflict := Conflict("exists")
	assert.Equal(t, http.StatusConflict, conflict.Status)
	assert.Equal(t, CodeConflict, conflict.Code)

	internal := InternalError(stderrors.New("db down"))
	assert.Equal(t, http.StatusInternalServerError, internal.Status)
	assert.Equal(t, CodeInternalError, internal.Code)

	unauth := Unauthorized("login required")
	assert.Equal(t, http.StatusUnauthorized, unauth.Status)
	assert.Equal(t, CodeUnauthenticated, unauth.Code)

	forbidden := Forbidden("owner only")
	assert.Equal(t, http.StatusForbidden, forbidden.Status)
	assert.Equal(t, CodeForbidden, forbidden.Code)

	noErr := &AppError{Message: "plain"}
	assert.Equal(t, "plain", noErr.Error())
}

func TestFromDomain(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{ErrNotFound, http.StatusNotFound, CodeNotFound},
		{ErrAlreadyExists, http.StatusConflict, CodeConflict},
		{ErrUnauthorized, http.StatusForbidden, CodeForbidden},
		{ErrUnauthenticated, http.StatusUnauthorized, CodeUnauthenticated},
		{ErrInvalidSignature, http.StatusUnauthorized, CodeInvalidSignature},
		{ErrVersionMismatch, http.StatusGone, CodeKycVersionMismatch},
		{ErrExpired, http.StatusGone, CodeExpired},
		{ErrInsufficientFee, http.StatusPaymentRequired, CodeInsufficientFee},
		{ErrInvalidInput, http.StatusBadRequest, CodeBadRequest},
		{fmt.Errorf("get kyc: %w", ErrExpired), http.StatusGone, CodeExpired},
		{stderrors.New("boom"), http.StatusInternalServerError, CodeInternalError},
	}

	for _, tc := range cases {
		got := FromDomain(tc.err)
		assert.Equal(t, tc.status, got.Status, tc.err.Error())
		assert.Equal(t, tc.code, got.Code, tc.err.Error())
	}

	existing := NotFound("kyc member not found")
	assert.Same(t, existing, FromDomain(existing))
}

func TestReason(t *testing.T) {
	assert.Equal(t, "invalid_signature", Reason(ErrInvalidSignature))
	assert.Equal(t, "version_mismatch", Reason(fmt.Errorf("wrap: %w", ErrVersionMismatch)))
	assert.Equal(t, "insufficient_fee", Reason(ErrInsufficientFee))
	assert.Equal(t, "internal", Reason(stderrors.New("x")))
}
