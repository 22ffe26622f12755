package handler

import (
	"log/slog"
	"net/http"

	"kindred/internal/delivery/http/response"
	"kindred/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// TaxonomyHandlerParams holds dependencies for TaxonomyHandler, injected by Fx.
type TaxonomyHandlerParams struct {
	fx.In

	TaxonomyUC usecase.TaxonomyUsecase
	Logger     *slog.Logger
}

// TaxonomyHandler holds dependencies for taxonomy administration handlers
type TaxonomyHandler struct {
	taxonomyUC usecase.TaxonomyUsecase
	logger     *slog.Logger
}

// NewTaxonomyHandler is the constructor for TaxonomyHandler
func NewTaxonomyHandler(params TaxonomyHandlerParams) *TaxonomyHandler {
	return &TaxonomyHandler{
		taxonomyUC: params.TaxonomyUC,
		logger:     params.Logger,
	}
}

// GetTaxonomy handles GET /admin/taxonomy: the active snapshot's metadata
func (h *TaxonomyHandler) GetTaxonomy(c echo.Context) error {
	info, err := h.taxonomyUC.Info(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, info, "Taxonomy retrieved successfully")
}

// ReloadTaxonomy handles POST /admin/taxonomy/reload
func (h *TaxonomyHandler) ReloadTaxonomy(c echo.Context) error {
	info, err := h.taxonomyUC.Reload(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, info, "Taxonomy reloaded successfully")
}
