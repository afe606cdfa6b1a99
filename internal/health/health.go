package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const checkTimeout = 3 * time.Second

// Checker probes a single dependency.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc struct {
	CheckerName string
	Fn          func(ctx context.Context) error
}

func (c CheckerFunc) Name() string                    { return c.CheckerName }
func (c CheckerFunc) Check(ctx context.Context) error { return c.Fn(ctx) }

// Handler runs every checker and reports 200 when all pass, 503 otherwise.
// With no checkers registered it always reports ok.
func Handler(logger *logrus.Logger, checkers ...Checker) gin.HandlerFunc {
	log := logger.WithField("component", "health")

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
		defer cancel()

		checks := make(map[string]string, len(checkers))
		healthy := true
		for _, checker := range checkers {
			if err := checker.Check(ctx); err != nil {
				log.WithError(err).WithField("check", checker.Name()).Warn("health check failed")
				checks[checker.Name()] = err.Error()
				healthy = false
				continue
			}
			checks[checker.Name()] = "ok"
		}

		status := http.StatusOK
		overall := "ok"
		if !healthy {
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}

		c.JSON(status, gin.H{"status": overall, "checks": checks})
	}
}
