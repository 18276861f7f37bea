package api

import (
	"net/http"

	"dedupbot/dedup"

	"github.com/gin-gonic/gin"
)

// RegisterDedupRoutes registers deduplication service endpoints.
func RegisterDedupRoutes(r *gin.Engine, svc *dedup.Service) {
	ctrl := &dedupController{svc: svc}

	g := r.Group("/api/dedup")
	g.POST("/check", ctrl.handleCheck)
	g.POST("/batch", ctrl.handleBatchCheck)
	g.POST("/export", ctrl.handleExport)
	g.GET("/stats", ctrl.handleStats)
	g.GET("/count", ctrl.handleCount)
	g.DELETE("/clear", ctrl.handleClear)
}

type dedupController struct {
	svc *dedup.Service
}

// CheckRequest represents the request to check a single content item.
type CheckRequest struct {
	ContentID string         `json:"content_id" binding:"required"`
	Content   string         `json:"content" binding:"required"`
	Metadata  dedup.Metadata `json:"metadata"`
}

// BatchCheckRequest represents the request to check multiple items.
type BatchCheckRequest struct {
	Items []dedup.ContentItem `json:"items" binding:"required"`
}

// BatchCheckResponse wraps the per-item results with summary counts.
type BatchCheckResponse struct {
	Results    []*dedup.Result `json:"results"`
	NewCount   int             `json:"new_count"`
	DupCount   int             `json:"duplicate_count"`
	TotalCount int             `json:"total_count"`
}

// ExportRequest names the file the fingerprint snapshot is written to.
type ExportRequest struct {
	Path string `json:"path" binding:"required"`
}

// handleCheck checks a single content item for duplicates.
func (ctrl *dedupController) handleCheck(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := ctrl.svc.CheckDuplicate(req.ContentID, req.Content, req.Metadata)
	c.JSON(http.StatusOK, result)
}

// handleBatchCheck checks a batch of content items sequentially.
func (ctrl *dedupController) handleBatchCheck(c *gin.Context) {
	var req BatchCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results := ctrl.svc.BatchCheckDuplicates(req.Items)

	resp := BatchCheckResponse{
		Results:    results,
		TotalCount: len(results),
	}
	for _, result := range results {
		if result.IsDuplicate {
			resp.DupCount++
		} else {
			resp.NewCount++
		}
	}

	c.JSON(http.StatusOK, resp)
}

// handleExport writes the fingerprint snapshot to the requested path.
func (ctrl *dedupController) handleExport(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if ok := ctrl.svc.ExportFingerprints(req.Path); !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "failed to write export file",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"path":    req.Path,
	})
}

// handleStats returns the running deduplication counters.
func (ctrl *dedupController) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.svc.Stats())
}

// handleCount returns the number of stored fingerprints.
func (ctrl *dedupController) handleCount(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": ctrl.svc.Count()})
}

// handleClear removes all stored fingerprints.
func (ctrl *dedupController) handleClear(c *gin.Context) {
	ctrl.svc.Clear()
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
