package api

import (
	"dedupbot/dedup"

	"github.com/gin-gonic/gin"
)

// NewRouter constructs a Gin engine with all routes registered against a
// shared deduplication service. The service is process-wide state: every
// request sees the same fingerprint store.
func NewRouter(svc *dedup.Service) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	RegisterDedupRoutes(r, svc)
	RegisterHealthRoutes(r)
	return r
}
