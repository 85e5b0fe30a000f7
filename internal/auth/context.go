package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxUID = "uid"
)

// CallerUID extracts the authenticated user's uid from the Gin context.
// This is set by FirebaseAuthMiddleware; empty means unauthenticated.
func CallerUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUID))
}
