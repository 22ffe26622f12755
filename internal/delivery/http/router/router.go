// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"kindred/config"
	"kindred/internal/delivery/http/middleware"
	"kindred/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	Config             *config.Config
	MatchHandler       *handler.MatchHandler
	DeviceHandler      *handler.DeviceHandler
	TaxonomyHandler    *handler.TaxonomyHandler
	TestHandler        *handler.TestHandler
	IdentityMiddleware *middleware.IdentityMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	config             *config.Config
	matchHandler       *handler.MatchHandler
	deviceHandler      *handler.DeviceHandler
	taxonomyHandler    *handler.TaxonomyHandler
	testHandler        *handler.TestHandler
	identityMiddleware *middleware.IdentityMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		config:             params.Config,
		matchHandler:       params.MatchHandler,
		deviceHandler:      params.DeviceHandler,
		taxonomyHandler:    params.TaxonomyHandler,
		testHandler:        params.TestHandler,
		identityMiddleware: params.IdentityMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Match routes require a resolved user identity
	matchGroup := e.Group("/matches")
	matchGroup.Use(r.identityMiddleware.Resolve)
	{
		matchGroup.GET("", r.matchHandler.ListMatches)
		matchGroup.GET("/:candidate_id", r.matchHandler.GetMatch)
		matchGroup.POST("/:candidate_id/dismiss", r.matchHandler.DismissMatch)
		matchGroup.POST("/invalidate", r.matchHandler.InvalidateMatches)
	}

	// Device routes for push notification registration
	deviceGroup := e.Group("/devices")
	deviceGroup.Use(r.identityMiddleware.Resolve)
	{
		deviceGroup.POST("", r.deviceHandler.RegisterDevice)
		deviceGroup.DELETE("/:id", r.deviceHandler.DeactivateDevice)
	}

	// Taxonomy administration; exposed to operators only via network policy
	adminGroup := e.Group("/admin")
	{
		adminGroup.GET("/taxonomy", r.taxonomyHandler.GetTaxonomy)
		adminGroup.POST("/taxonomy/reload", r.taxonomyHandler.ReloadTaxonomy)
	}
}

func (r *router) RegisterTestRoutes(e *echo.Echo) {
	// Test routes - only enabled when configured
	if r.config.TestRoutes != nil && r.config.TestRoutes.Enabled {
		testGroup := e.Group("/test")
		testGroup.GET("/public", r.testHandler.TestPublicEndpoint)

		testGroup.Use(r.identityMiddleware.Resolve)
		{
			testGroup.GET("/identity", r.testHandler.TestIdentityEndpoint)
		}
	}
}
