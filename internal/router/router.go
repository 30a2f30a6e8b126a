package router

import (
	"fmt"
	"net/http"

	"github.com/blogly/internal/handler"
	"github.com/blogly/internal/logging"
	"github.com/blogly/internal/view"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const sessionName = "blogly_session"

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, logger zerolog.Logger, sessionSecret string) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestLogger(logger))

	// 配置会话中间件，用于一次性提示信息
	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions(sessionName, store))

	tmpl, err := view.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	r.GET("/", api.ShowHome)

	users := r.Group("/users")
	{
		users.GET("", api.ShowUserList)
		users.GET("/new", api.ShowNewUserForm)
		users.POST("/new", api.CreateUser)
		users.GET("/:id", api.ShowUser)
		users.GET("/:id/edit", api.ShowEditUserForm)
		users.POST("/:id/edit", api.UpdateUser)
		users.POST("/:id/delete", api.DeleteUser)
		users.GET("/:id/posts/new", api.ShowNewPostForm)
		users.POST("/:id/posts/new", api.CreatePost)
	}

	posts := r.Group("/posts")
	{
		posts.GET("/:id", api.ShowPost)
		posts.GET("/:id/edit", api.ShowEditPostForm)
		posts.POST("/:id/edit", api.UpdatePost)
		posts.POST("/:id/delete", api.DeletePost)
	}

	tags := r.Group("/tags")
	{
		tags.GET("", api.ShowTagList)
		tags.GET("/new", api.ShowNewTagForm)
		tags.POST("/new", api.CreateTag)
		tags.GET("/:id", api.ShowTag)
		tags.GET("/:id/edit", api.ShowEditTagForm)
		tags.POST("/:id/edit", api.UpdateTag)
		tags.POST("/:id/delete", api.DeleteTag)
	}

	r.NoRoute(api.NotFound)

	return r, nil
}
