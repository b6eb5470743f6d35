package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxOwnerID = "firebase_uid"
	CtxEmail   = "email"

	// DevOwnerID is used by the header identity when X-User-Id is absent.
	DevOwnerID = "demo-user"
)

// OwnerID is the id of the signed-in user that owns the projects.
func OwnerID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxOwnerID))
}
