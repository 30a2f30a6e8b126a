package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// parseUintSlice parses the repeated tag id field; blank entries are ignored.
func parseUintSlice(values []string) ([]uint, error) {
	ids := make([]uint, 0, len(values))
	for _, raw := range values {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		parsed, err := strconv.ParseUint(trimmed, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid tag id %q", trimmed)
		}
		ids = append(ids, uint(parsed))
	}
	return ids, nil
}

// bindForm 绑定表单，失败时直接返回 400。
func (a *API) bindForm(c *gin.Context, dst any) bool {
	if err := c.ShouldBind(dst); err != nil {
		_ = c.Error(err)
		a.renderHTML(c, http.StatusBadRequest, "error.html", gin.H{
			"title": "Bad Request",
			"error": "invalid form submission",
		})
		return false
	}
	return true
}
