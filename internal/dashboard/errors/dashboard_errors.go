package dashboarderrors

import (
	"net/http"

	"transparency/internal/shared/apperror"
)

var (
	ErrTreasurerNotFound = apperror.New(
		apperror.CodeNotFound,
		"class treasurer account not found",
		http.StatusNotFound,
	)
	ErrNoClassIdentity = apperror.New(
		apperror.CodeInvalidState,
		"treasurer account has no linked student or program",
		http.StatusUnprocessableEntity,
	)
)
