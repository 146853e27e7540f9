package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/projectsign/pkg/types"
	"github.com/stretchr/testify/assert"
)

func newContext(t *testing.T, headers map[string]string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:1234"
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	c.Request = req
	return c
}

func TestClientIP(t *testing.T) {
	t.Run("forwarded first hop", func(t *testing.T) {
		c := newContext(t, map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"})
		assert.Equal(t, "203.0.113.5", ClientIP(c))
	})
	t.Run("real ip", func(t *testing.T) {
		c := newContext(t, map[string]string{"X-Real-IP": "203.0.113.9"})
		assert.Equal(t, "203.0.113.9", ClientIP(c))
	})
	t.Run("remote addr", func(t *testing.T) {
		c := newContext(t, nil)
		assert.Equal(t, "192.0.2.10", ClientIP(c))
	})
}

func TestActorFromContext(t *testing.T) {
	c := newContext(t, map[string]string{"User-Agent": "ua"})
	actor := ActorFromContext(c)
	assert.Equal(t, uint(0), actor.UserID)
	assert.Equal(t, "ua", actor.UserAgent)

	c.Set("claims", &types.Claims{UserID: 42, Username: "dana"})
	assert.Equal(t, uint(42), ActorFromContext(c).UserID)
	name, err := GetUserNameFromContext(c)
	assert.NoError(t, err)
	assert.Equal(t, "dana", name)
}

func TestParseUUIDParam(t *testing.T) {
	c := newContext(t, nil)
	c.Params = gin.Params{{Key: "id", Value: "7B4A3F0E-7C43-4E68-9D1F-0A8C1B2D3E4F"}}
	id, err := ParseUUIDParam(c, "id")
	assert.NoError(t, err)
	assert.Equal(t, "7b4a3f0e-7c43-4e68-9d1f-0a8c1b2d3e4f", id)

	c.Params = gin.Params{{Key: "id", Value: "42"}}
	_, err = ParseUUIDParam(c, "id")
	assert.Error(t, err)
}
