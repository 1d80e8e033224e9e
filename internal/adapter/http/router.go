package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Router wires the handlers onto an echo instance. Auth runs in front of
// every route except /health and /metrics; Protected runs after it on the
// routes that change state.
type Router struct {
	Health       *Handler
	Applications *ApplicationHandler
	Receipts     *ReceiptHandler
	Metrics      http.Handler
	Auth         echo.MiddlewareFunc
	Protected    []echo.MiddlewareFunc
}

func (r Router) Register(e *echo.Echo) {
	e.GET("/health", r.Health.Health)
	if r.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(r.Metrics))
	}

	var authOnly []echo.MiddlewareFunc
	if r.Auth != nil {
		authOnly = append(authOnly, r.Auth)
	}
	guarded := append(append([]echo.MiddlewareFunc{}, authOnly...), r.Protected...)

	apps := e.Group("/applications", guarded...)
	apps.POST("", r.Applications.Create)
	apps.GET("", r.Applications.List)
	apps.GET("/:application_id", r.Applications.Get)
	apps.PUT("/:application_id/steps/:step", r.Applications.SaveStep)
	apps.POST("/:application_id/submit", r.Applications.Submit)
	apps.POST("/:application_id/transitions", r.Applications.Transition)
	apps.GET("/:application_id/audit", r.Applications.AuditTrail)

	// stateless; nothing to deduplicate
	e.Group("/wizard", authOnly...).POST("/steps/:step/validate", r.Applications.ValidateStep)
	e.Group("/dashboard", guarded...).GET("/stats", r.Applications.Stats)

	receipts := e.Group("/receipts", guarded...)
	receipts.POST("", r.Receipts.Issue)
	receipts.GET("", r.Receipts.List)
	receipts.GET("/:receipt_id", r.Receipts.Get)
	receipts.POST("/:receipt_id/void", r.Receipts.Void)
}
