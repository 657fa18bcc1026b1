package salarystructureerrors

import (
	"net/http"

	"paymaster/internal/shared/apperror"
)

var (
	ErrStructureNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary structure not found",
		http.StatusNotFound,
	)

	ErrStructureAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Salary structure already exists for this employee",
		http.StatusConflict,
	)

	ErrInvalidBasicSalary = apperror.New(
		apperror.CodeInvalidInput,
		"basic_salary must be greater than zero",
		http.StatusBadRequest,
	)

	ErrInvalidID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee or company ID",
		http.StatusBadRequest,
	)
)
