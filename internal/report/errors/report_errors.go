package reporterrors

import (
	"net/http"

	"transparency/internal/shared/apperror"
)

var (
	ErrFeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"fee not found",
		http.StatusNotFound,
	)
	ErrInvalidFeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid fee id",
		http.StatusBadRequest,
	)
)
