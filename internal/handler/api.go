package handler

import (
	"errors"
	"net/http"

	"github.com/blogly/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	flashSessionKey  = "flashes"
	defaultHomeLimit = 5
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	users     *service.UserService
	posts     *service.PostService
	tags      *service.TagService
	homeLimit int
}

// Options 描述构建 API 所需的业务配置。
type Options struct {
	DefaultImageURL string
	HomePostLimit   int
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, opts Options) *API {
	homeLimit := opts.HomePostLimit
	if homeLimit <= 0 {
		homeLimit = defaultHomeLimit
	}

	return &API{
		users:     service.NewUserService(gdb, opts.DefaultImageURL),
		posts:     service.NewPostService(gdb),
		tags:      service.NewTagService(gdb),
		homeLimit: homeLimit,
	}
}

// renderHTML 渲染模板，并附带会话中待展示的提示信息。
func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}
	if _, exists := payload["flashes"]; !exists {
		payload["flashes"] = popFlashes(c)
	}

	c.HTML(status, template, payload)
}

// fail maps a service error onto a response: 404 for unknown ids, 400 for rejected writes, 500 otherwise.
func (a *API) fail(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, service.ErrNotFound):
		a.notFound(c)
	case errors.Is(err, service.ErrConstraintViolation), errors.Is(err, service.ErrReferentialViolation):
		a.renderHTML(c, http.StatusBadRequest, "error.html", gin.H{
			"title": "Bad Request",
			"error": err.Error(),
		})
	default:
		a.renderHTML(c, http.StatusInternalServerError, "error.html", gin.H{
			"title": "Error",
		})
	}
}

func (a *API) notFound(c *gin.Context) {
	a.renderHTML(c, http.StatusNotFound, "not_found.html", gin.H{"title": "Not Found"})
}

// NotFound is used for unmatched routes.
func (a *API) NotFound(c *gin.Context) {
	a.notFound(c)
}

// isRejectedWrite reports errors that should re-render the submitted form.
func isRejectedWrite(err error) bool {
	return errors.Is(err, service.ErrConstraintViolation) || errors.Is(err, service.ErrReferentialViolation)
}

func addFlash(c *gin.Context, message string) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	session.AddFlash(message, flashSessionKey)
	if err := session.Save(); err != nil {
		_ = c.Error(err)
	}
}

func popFlashes(c *gin.Context) []string {
	session, ok := sessionFrom(c)
	if !ok {
		return nil
	}

	raw := session.Flashes(flashSessionKey)
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(); err != nil {
		_ = c.Error(err)
	}

	messages := make([]string, 0, len(raw))
	for _, item := range raw {
		if text, ok := item.(string); ok {
			messages = append(messages, text)
		}
	}
	return messages
}

func sessionFrom(c *gin.Context) (sessions.Session, bool) {
	if _, exists := c.Get(sessions.DefaultKey); !exists {
		return nil, false
	}
	return sessions.Default(c), true
}
