package remittanceerrors

import (
	"net/http"

	"transparency/internal/shared/apperror"
)

var (
	ErrRemittanceNotFound  = apperror.New(apperror.CodeNotFound, "remittance not found", http.StatusNotFound)
	ErrFeeNotFound         = apperror.New(apperror.CodeNotFound, "fee not found", http.StatusNotFound)
	ErrInvalidRemittanceID = apperror.New(apperror.CodeInvalidInput, "invalid remittance id", http.StatusBadRequest)
	ErrInvalidAccountID    = apperror.New(apperror.CodeInvalidInput, "invalid account id", http.StatusBadRequest)
	ErrInvalidAmount       = apperror.New(apperror.CodeInvalidInput, "amount remitted must be a non-negative decimal", http.StatusBadRequest)
	ErrInvalidDateFormat   = apperror.New(apperror.CodeInvalidInput, "remittance date must be in YYYY-MM-DD format", http.StatusBadRequest)
	ErrAlreadyReviewed     = apperror.New(apperror.CodeInvalidState, "remittance has already been reviewed", http.StatusUnprocessableEntity)
)
