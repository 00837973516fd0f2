package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/retailcore/pos-register-backend/api/responses"
	"github.com/retailcore/pos-register-backend/api/validators"
	checkoutsvc "github.com/retailcore/pos-register-backend/internal/checkout"
	ledgersvc "github.com/retailcore/pos-register-backend/internal/ledger"
	"github.com/retailcore/pos-register-backend/pkg/enums"
	pkgerrors "github.com/retailcore/pos-register-backend/pkg/errors"
	"github.com/retailcore/pos-register-backend/pkg/logger"
)

// SalesList returns the transaction log newest first, optionally filtered
// by ?status= or a ?from=/?to= window.
func SalesList(svc ledgersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger service unavailable"))
			return
		}

		rawStatus := strings.TrimSpace(r.URL.Query().Get("status"))
		from, err := validators.ParseQueryTime(r, "from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		to, err := validators.ParseQueryTime(r, "to")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var transactions []ledgersvc.Transaction
		switch {
		case rawStatus != "":
			status, parseErr := enums.ParseTransactionStatus(rawStatus)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid status filter"))
				return
			}
			transactions, err = svc.FilterByStatus(r.Context(), status)
		case from != nil || to != nil:
			var fromTS, toTS time.Time
			if from != nil {
				fromTS = *from
			}
			if to != nil {
				toTS = *to
			}
			transactions, err = svc.FilterByDate(r.Context(), fromTS, toTS)
		default:
			transactions, err = svc.List(r.Context())
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, transactions)
	}
}

// SaleFetch returns one transaction by id.
func SaleFetch(svc ledgersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger service unavailable"))
			return
		}

		txID, err := validators.ParsePathUUID(chi.URLParam(r, "transactionId"), "transactionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tx, err := svc.GetByID(r.Context(), txID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tx)
	}
}

// SaleRefund restocks a completed sale and marks it refunded.
func SaleRefund(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		txID, err := validators.ParsePathUUID(chi.URLParam(r, "transactionId"), "transactionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tx, err := svc.Refund(r.Context(), txID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tx)
	}
}
