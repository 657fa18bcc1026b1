package companyerrors

import (
	"net/http"

	"paymaster/internal/shared/apperror"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found",
		http.StatusNotFound,
	)

	ErrCompanyAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Company with this email already exists",
		http.StatusConflict,
	)

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)
)
