package http

import (
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/community-service/internal/config"
)

func TestRateLimitAuth_ThrottlesAfterBurst(t *testing.T) {
	app := fiber.New()
	app.Post("/auth/login", RateLimitAuth(config.RateLimitConfig{AuthPerSecond: 0.001, AuthBurst: 2}),
		func(c *fiber.Ctx) error { return c.SendStatus(nethttp.StatusOK) })

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(nethttp.MethodPost, "/auth/login", nil))
		require.NoError(t, err)
		statuses = append(statuses, resp.StatusCode)
	}

	require.Equal(t, nethttp.StatusOK, statuses[0])
	require.Equal(t, nethttp.StatusOK, statuses[1])
	require.Equal(t, nethttp.StatusTooManyRequests, statuses[2])
}

func TestRateLimitAuth_SeparateBucketsPerIP(t *testing.T) {
	limiter := newIPLimiter(config.RateLimitConfig{AuthPerSecond: 0.001, AuthBurst: 1})

	require.True(t, limiter.limiterFor("10.0.0.1").Allow())
	require.False(t, limiter.limiterFor("10.0.0.1").Allow())
	require.True(t, limiter.limiterFor("10.0.0.2").Allow(), "a second client has its own bucket")
}
