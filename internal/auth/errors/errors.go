package autherrors

import (
	"net/http"

	"paymaster/internal/shared/apperror"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// responses do not reveal which accounts exist.
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"invalid email or password",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"invalid or malformed token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"token has expired",
		http.StatusUnauthorized,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"you do not have permission to perform this action",
		http.StatusForbidden,
	)
	ErrAccountInactive = apperror.New(
		apperror.CodeForbidden,
		"account is deactivated",
		http.StatusForbidden,
	)
	ErrSetPasswordTokenInvalid = apperror.New(
		apperror.CodeInvalidInput,
		"set-password token is invalid or already used",
		http.StatusBadRequest,
	)
	ErrSetPasswordTokenExpired = apperror.New(
		apperror.CodeInvalidInput,
		"set-password token has expired",
		http.StatusBadRequest,
	)
)
