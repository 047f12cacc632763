package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/a573364948/trainee-evaluation-system-sub001/internal/handlers"
)

// AdminRequired allows only operator-console sessions through.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		role, _ := session.Get(handlers.SessionRoleKey).(string)
		if role != handlers.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin login required"})
			return
		}
		c.Next()
	}
}

// ScoringRequired allows judge or admin sessions; judges only ever see the
// working set they score against.
func ScoringRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		role, _ := session.Get(handlers.SessionRoleKey).(string)
		if role != handlers.RoleAdmin && role != handlers.RoleJudge {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		c.Next()
	}
}
