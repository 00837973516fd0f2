package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/retailcore/pos-register-backend/api/responses"
	"github.com/retailcore/pos-register-backend/api/validators"
	catalogsvc "github.com/retailcore/pos-register-backend/internal/catalog"
	pkgerrors "github.com/retailcore/pos-register-backend/pkg/errors"
	"github.com/retailcore/pos-register-backend/pkg/logger"
)

// CatalogList returns every catalog item, active or not.
func CatalogList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// CatalogFetch returns one item by id.
func CatalogFetch(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		itemID, err := validators.ParsePathUUID(chi.URLParam(r, "itemId"), "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Lookup(r.Context(), itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// CatalogFetchByCode returns one item by its register code.
func CatalogFetchByCode(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		code := strings.TrimSpace(chi.URLParam(r, "code"))
		if code == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item code is required"))
			return
		}

		item, err := svc.LookupByCode(r.Context(), code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

type upsertItemRequest struct {
	ID        *uuid.UUID `json:"id"`
	Code      string     `json:"code" validate:"required"`
	Name      string     `json:"name" validate:"required"`
	Category  string     `json:"category"`
	UnitPrice string     `json:"unit_price" validate:"required"`
	Stock     int        `json:"stock" validate:"min=0"`
	IsActive  bool       `json:"is_active"`
}

// CatalogUpsert creates an item or replaces an existing one by id.
func CatalogUpsert(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload upsertItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Upsert(r.Context(), catalogsvc.UpsertItemInput{
			ID:        payload.ID,
			Code:      strings.TrimSpace(payload.Code),
			Name:      strings.TrimSpace(payload.Name),
			Category:  strings.TrimSpace(payload.Category),
			UnitPrice: payload.UnitPrice,
			Stock:     payload.Stock,
			IsActive:  payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := http.StatusOK
		if payload.ID == nil {
			status = http.StatusCreated
		}
		responses.WriteSuccessStatus(w, status, item)
	}
}
