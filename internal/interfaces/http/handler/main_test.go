package handler

import (
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/poolcrm/backend/internal/interfaces/http/middleware"
)

// The validator caches struct metadata on first use, so the JSON tag-name
// func must be registered before any test binds a request.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
	os.Exit(m.Run())
}
