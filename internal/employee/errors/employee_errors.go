package employeeerrors

import (
	"net/http"

	"paymaster/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)

	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with this email already exists",
		http.StatusConflict,
	)

	ErrEmpCodeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee code already exists for this company",
		http.StatusConflict,
	)

	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)

	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
