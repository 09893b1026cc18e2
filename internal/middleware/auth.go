package middleware

import (
	"net/http"

	"catalog/internal/auth"

	"github.com/gin-gonic/gin"
)

const adminSubjectKey = "admin_subject"

// AdminRequired rejects requests the verifier does not accept as admin.
func AdminRequired(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := verifier.VerifyAdmin(c.Request)
		if !res.IsAuthenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": res.Message()})
			return
		}
		c.Set(adminSubjectKey, res.Subject)
		c.Next()
	}
}

// AdminSubject returns the authenticated admin identity (must be used after AdminRequired).
func AdminSubject(c *gin.Context) string {
	return c.GetString(adminSubjectKey)
}
