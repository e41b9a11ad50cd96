package healthcheck

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// HealthCheckTestSuite provides a test suite for the health check
type HealthCheckTestSuite struct {
	suite.Suite
}

func (suite *HealthCheckTestSuite) healthy(name string) Checker {
	return CheckFunc{Name: name, Fn: func(ctx context.Context) error { return nil }}
}

func (suite *HealthCheckTestSuite) failing(name string) Checker {
	return CheckFunc{Name: name, Fn: func(ctx context.Context) error { return errors.New("unreachable") }}
}

func (suite *HealthCheckTestSuite) TestCheck() {
	suite.Run("AllHealthy_ShouldAggregateHealthy", func() {
		h := New("1.0.0", zap.NewNop())
		h.Register("database", suite.healthy("database"))
		h.Register("cache", suite.healthy("cache"))

		response := h.Check(context.Background())

		assert.Equal(suite.T(), StatusHealthy, response.Status)
		assert.Equal(suite.T(), "1.0.0", response.Version)
		assert.Len(suite.T(), response.Checks, 2)
	})

	suite.Run("OneFailing_ShouldBeDegraded", func() {
		h := New("1.0.0", zap.NewNop())
		h.Register("database", suite.healthy("database"))
		h.Register("cache", suite.failing("cache"))

		assert.Equal(suite.T(), StatusDegraded, h.Check(context.Background()).Status)
	})

	suite.Run("AllFailing_ShouldBeUnhealthy", func() {
		h := New("1.0.0", zap.NewNop())
		h.Register("database", suite.failing("database"))

		assert.Equal(suite.T(), StatusUnhealthy, h.Check(context.Background()).Status)
	})

	suite.Run("WithinTTL_ShouldServeCachedResponse", func() {
		h := New("1.0.0", zap.NewNop())
		calls := 0
		h.Register("counter", CheckFunc{Name: "counter", Fn: func(ctx context.Context) error {
			calls++
			return nil
		}})

		h.Check(context.Background())
		h.Check(context.Background())

		assert.Equal(suite.T(), 1, calls)
	})
}

func (suite *HealthCheckTestSuite) TestHandler() {
	suite.Run("Healthy_ShouldReturn200", func() {
		h := New("1.0.0", zap.NewNop())
		h.Register("database", suite.healthy("database"))

		rec := httptest.NewRecorder()
		h.Handler()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(suite.T(), http.StatusOK, rec.Code)
		assert.Contains(suite.T(), rec.Body.String(), `"healthy"`)
	})

	suite.Run("Unhealthy_ShouldReturn503", func() {
		h := New("1.0.0", zap.NewNop())
		h.Register("database", suite.failing("database"))

		rec := httptest.NewRecorder()
		h.Handler()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(suite.T(), http.StatusServiceUnavailable, rec.Code)
	})
}

func (suite *HealthCheckTestSuite) TestCheckFunc() {
	suite.Run("ShouldRecordTimingAndMessage", func() {
		check := CheckFunc{Name: "slow", Fn: func(ctx context.Context) error {
			time.Sleep(2 * time.Millisecond)
			return errors.New("timeout")
		}}.Check(context.Background())

		assert.Equal(suite.T(), StatusUnhealthy, check.Status)
		assert.Equal(suite.T(), "timeout", check.Message)
		assert.False(suite.T(), check.LastChecked.IsZero())
	})
}

func TestHealthCheckTestSuite(t *testing.T) {
	suite.Run(t, new(HealthCheckTestSuite))
}
