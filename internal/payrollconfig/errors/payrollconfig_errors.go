package payrollconfigerrors

import (
	"net/http"

	"paymaster/internal/shared/apperror"
)

var (
	ErrActiveConfigNotFound = apperror.New(
		apperror.CodeNotFound,
		"No active payroll configuration for this company",
		http.StatusNotFound,
	)

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)

	ErrInvalidSlabOrder = apperror.New(
		apperror.CodeInvalidInput,
		"slab2_limit must be greater than slab1_limit",
		http.StatusBadRequest,
	)
)
