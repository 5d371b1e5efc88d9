package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterOptions struct {
	CORSMaxAge time.Duration
	Mode       string
}

// NewRouter wires every endpoint with its preflight and method guard.
func NewRouter(h *Handler, log *zap.Logger, opts RouterOptions) *gin.Engine {
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}
	maxAge := opts.CORSMaxAge
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(RequestIDMiddleware(), LoggerMiddleware(log), gin.Recovery(), AllowAnyOrigin())

	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed"})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorBody{Error: "Not found"})
	})

	endpoints := []struct {
		method  string
		path    string
		handler gin.HandlerFunc
	}{
		{http.MethodPost, "/check-promo", h.CheckPromo},
		{http.MethodGet, "/download-game", h.DownloadGame},
		{http.MethodPost, "/payment-webhook", h.PaymentWebhook},
		{http.MethodPost, "/payment", h.Payment},
	}
	for _, e := range endpoints {
		mw := corsFor(e.method, maxAge)
		r.Handle(e.method, e.path, mw, e.handler)
		r.OPTIONS(e.path, mw, preflight(e.method, maxAge))
	}

	r.GET("/health", h.Health)
	return r
}
