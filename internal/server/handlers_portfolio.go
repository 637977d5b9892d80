package server

import (
	"net/http"

	"github.com/dvillanueva/cartera/internal/services/export"
)

// handlePortfolioSummary handles GET /api/portfolio/summary.
func (s *Server) handlePortfolioSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	assets, err := s.app.Storage.AssetStore().List(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load assets for summary")
		WriteError(w, http.StatusInternalServerError, "Failed to load assets")
		return
	}

	snapshot := s.app.PortfolioService.Snapshot(r.Context(), assets)

	WriteJSON(w, http.StatusOK, snapshot)
}

// handlePortfolioHistory handles GET /api/portfolio/history?periodo={dia,semana,año,mes}.
func (s *Server) handlePortfolioHistory(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	period := r.URL.Query().Get("periodo")

	assets, err := s.app.Storage.AssetStore().List(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load assets for history")
		WriteError(w, http.StatusInternalServerError, "Failed to load assets")
		return
	}

	history := s.app.PortfolioService.History(r.Context(), period, assets)

	WriteJSON(w, http.StatusOK, history)
}

// handleExportExcel handles GET /api/export/excel, streaming the asset list
// as an xlsx attachment.
func (s *Server) handleExportExcel(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	assets, err := s.app.Storage.AssetStore().List(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load assets for export")
		WriteError(w, http.StatusInternalServerError, "Failed to load assets")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename=cartera.xlsx`)

	if err := export.WriteAssetsXLSX(assets, w); err != nil {
		// Headers are already out; log and abandon the stream.
		s.logger.Error().Err(err).Msg("Failed to write xlsx export")
	}
}
