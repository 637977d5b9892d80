package server

import (
	"errors"
	"net/http"

	"github.com/dvillanueva/cartera/internal/models"
)

// handleAssets dispatches GET /api/assets (list) and POST /api/assets (create).
func (s *Server) handleAssets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleAssetList(w, r)
	case http.MethodPost:
		s.handleAssetCreate(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// routeAssets dispatches /api/assets/{id} to the appropriate handler.
func (s *Server) routeAssets(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/assets/")
	if id == "" {
		s.handleAssets(w, r)
		return
	}

	switch r.Method {
	case http.MethodPut:
		s.handleAssetUpdate(w, r, id)
	case http.MethodDelete:
		s.handleAssetDelete(w, r, id)
	default:
		w.Header().Set("Allow", "PUT, DELETE")
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleAssetCreate handles POST /api/assets.
func (s *Server) handleAssetCreate(w http.ResponseWriter, r *http.Request) {
	var in models.AssetInput
	if !DecodeJSON(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	asset := models.NewAsset(in)

	if err := s.app.Storage.AssetStore().Insert(r.Context(), asset); err != nil {
		s.logger.Error().Err(err).Msg("Failed to insert asset")
		WriteError(w, http.StatusInternalServerError, "Failed to store asset")
		return
	}

	WriteJSON(w, http.StatusOK, asset)
}

// handleAssetList handles GET /api/assets.
func (s *Server) handleAssetList(w http.ResponseWriter, r *http.Request) {
	assets, err := s.app.Storage.AssetStore().List(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list assets")
		WriteError(w, http.StatusInternalServerError, "Failed to list assets")
		return
	}

	WriteJSON(w, http.StatusOK, assets)
}

// handleAssetUpdate handles PUT /api/assets/{id}.
func (s *Server) handleAssetUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var in models.AssetInput
	if !DecodeJSON(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.app.Storage.AssetStore().Update(r.Context(), id, in)
	if err != nil {
		if errors.Is(err, models.ErrAssetNotFound) {
			WriteError(w, http.StatusNotFound, "Activo no encontrado")
			return
		}
		s.logger.Error().Err(err).Str("id", id).Msg("Failed to update asset")
		WriteError(w, http.StatusInternalServerError, "Failed to update asset")
		return
	}

	WriteJSON(w, http.StatusOK, updated)
}

// handleAssetDelete handles DELETE /api/assets/{id}.
func (s *Server) handleAssetDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.app.Storage.AssetStore().Delete(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrAssetNotFound) {
			WriteError(w, http.StatusNotFound, "No existe el activo.")
			return
		}
		s.logger.Error().Err(err).Str("id", id).Msg("Failed to delete asset")
		WriteError(w, http.StatusInternalServerError, "Failed to delete asset")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"msg": "Activo borrado"})
}
