package api

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finsightlab/finsight/internal/config"
)

var startTime = time.Now()

// Root handler
func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "finsight API",
		"version": config.Version,
		"status":  "running",
		"time":    time.Now().UTC(),
		"endpoints": []string{
			"/api/v1/analyze",
			"/api/v1/status",
			"/api/v1/health",
		},
	})
}

// handleGetStatus returns system status; the service has no external
// collaborators so this is process health only.
func (s *Server) handleGetStatus(c *gin.Context) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(startTime).Seconds(),
		"version":   config.Version,
		"engine": gin.H{
			"risk_free_rate": s.engine.Params().RiskFreeRate,
			"trading_days":   s.engine.Params().TradingDays,
		},
		"system": gin.H{
			"goroutines": runtime.NumGoroutine(),
			"memory": gin.H{
				"alloc_mb": toMB(memStats.Alloc),
				"sys_mb":   toMB(memStats.Sys),
				"num_gc":   memStats.NumGC,
			},
			"go_version": runtime.Version(),
		},
	})
}

// handleGetHealth returns a simple health check (for load balancers)
func (s *Server) handleGetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().UTC(),
	})
}

func toMB(b uint64) float64 {
	return float64(b) / 1024 / 1024
}
