package routes

import (
	"log"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"

	"github.com/localboard/board-be/db"
	"github.com/localboard/board-be/middleware"
	"github.com/localboard/board-be/model"
	"github.com/localboard/board-be/util"
)

type userRoutes struct {
	db db.UserDatabase
}

func AddUserRoutes(group *gin.RouterGroup, userDatabase db.UserDatabase, authClient *auth.Client) {
	routes := userRoutes{userDatabase}
	users := group.Group("/users", middleware.Auth(userDatabase, authClient, &middleware.AuthConfig{
		ProfileNotRequired: true,
	}))
	users.PUT("", util.HandlerWrapper(routes.createUser, &util.HandlerOpts{}))
	users.GET("/me", util.HandlerWrapper(routes.getCurrentUser, &util.HandlerOpts{}))
}

type createUserReq struct {
	DisplayName string `json:"displayName"`
}

func (ur *userRoutes) createUser(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createUserReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	uid := middleware.MustGetToken(c).UID
	if err := ur.db.CreateUser(c, &model.User{
		Id:          uid,
		DisplayName: req.DisplayName,
		Avatar:      util.Avatar(uid),
	}); err != nil {
		if mysqlErr, ok := err.(*mysql.MySQLError); ok && db.IsDupKeyErr(mysqlErr) {
			log.Printf("blocked duplicate profile for %v on key %v", uid, db.GetDupKey(mysqlErr))
			return nil, &util.HTTPError{Status: http.StatusConflict, Message: "profile already exists"}
		}
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

func (ur *userRoutes) getCurrentUser(c *gin.Context) (interface{}, *util.HTTPError) {
	user := middleware.GetLocalUserMaybe(c)
	if user == nil {
		return nil, &util.HTTPError{Status: http.StatusNotFound, Message: "no profile for session"}
	}
	return user, nil
}
