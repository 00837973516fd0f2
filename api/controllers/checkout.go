package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/retailcore/pos-register-backend/api/responses"
	"github.com/retailcore/pos-register-backend/api/validators"
	checkoutsvc "github.com/retailcore/pos-register-backend/internal/checkout"
	"github.com/retailcore/pos-register-backend/pkg/enums"
	pkgerrors "github.com/retailcore/pos-register-backend/pkg/errors"
	"github.com/retailcore/pos-register-backend/pkg/logger"
)

type commitRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cash card transfer"`
	Tendered      string `json:"tendered"`
}

func (r commitRequest) toInput() (checkoutsvc.CommitInput, error) {
	method, err := enums.ParsePaymentMethod(r.PaymentMethod)
	if err != nil {
		return checkoutsvc.CommitInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method")
	}

	tendered := decimal.Zero
	if raw := strings.TrimSpace(r.Tendered); raw != "" {
		tendered, err = decimal.NewFromString(raw)
		if err != nil {
			return checkoutsvc.CommitInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "tendered must be a decimal amount")
		}
		if tendered.IsNegative() {
			return checkoutsvc.CommitInput{}, pkgerrors.New(pkgerrors.CodeValidation, "tendered must not be negative")
		}
	}

	return checkoutsvc.CommitInput{PaymentMethod: method, Tendered: tendered}, nil
}

// CheckoutCommit finalizes the open cart into a completed sale.
func CheckoutCommit(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload commitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tx, err := svc.Commit(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, tx)
	}
}
