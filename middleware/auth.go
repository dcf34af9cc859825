package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/localboard/board-be/db"
	"github.com/localboard/board-be/model"
)

const (
	TOKEN_KEY        = "authToken"
	USER_PROFILE_KEY = "user"
)

type AuthConfig struct {
	SessionNotRequired bool
	ProfileNotRequired bool
}

// Auth verifies the firebase bearer token and resolves the local profile row,
// making both available to downstream handlers
func Auth(userDB db.UserDatabase, authClient *auth.Client, config *AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authorizationHeader, ok := c.Request.Header["Authorization"]
		if !ok || len(authorizationHeader) == 0 {
			if config.SessionNotRequired {
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "no authorization header",
			})
			c.Abort()
			return
		}
		if strings.Index(authorizationHeader[0], "Bearer ") != 0 || len(authorizationHeader[0]) < 8 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "incorrectly formatted authorization header",
			})
			c.Abort()
			return
		}
		token, err := authClient.VerifyIDToken(c, authorizationHeader[0][7:])
		if err != nil {
			if config.SessionNotRequired {
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid token",
			})
			c.Abort()
			return
		}
		c.Set(TOKEN_KEY, token)

		user, err := userDB.GetUser(c, token.UID)
		if err != nil || user == nil {
			if config.ProfileNotRequired {
				return
			}
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "must have a user profile",
			})
			c.Abort()
			return
		}
		c.Set(USER_PROFILE_KEY, user)
	}
}

func MustGetToken(c *gin.Context) *auth.Token {
	token, _ := c.Get(TOKEN_KEY)
	return token.(*auth.Token)
}

// GetLocalUserMaybe returns the resolved profile or nil for anonymous sessions
func GetLocalUserMaybe(c *gin.Context) *model.User {
	user, ok := c.Get(USER_PROFILE_KEY)
	if !ok {
		return nil
	}
	return user.(*model.User)
}

func MustGetLocalUser(c *gin.Context) *model.User {
	user, _ := c.Get(USER_PROFILE_KEY)
	return user.(*model.User)
}
