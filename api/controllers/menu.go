package controllers

import (
	"net/http"

	"github.com/lucaferrante/fornello-backend/api/responses"
	"github.com/lucaferrante/fornello-backend/api/validators"
	"github.com/lucaferrante/fornello-backend/internal/catalog"
	"github.com/lucaferrante/fornello-backend/pkg/logger"
)

// MenuList returns the full active menu with specialty presets.
func MenuList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		menu, err := svc.ListMenu(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, menu)
	}
}

// MenuItemDetail returns one menu item with its customization groups.
func MenuItemDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.GetItem(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// PresetDetail returns one specialty preset.
func PresetDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "presetId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		preset, err := svc.GetPreset(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, preset)
	}
}
