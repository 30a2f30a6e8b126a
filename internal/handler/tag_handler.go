package handler

import (
	"fmt"
	"net/http"

	"github.com/blogly/internal/db"
	"github.com/gin-gonic/gin"
)

type tagForm struct {
	Name string `form:"name"`
}

// ShowTagList 渲染标签列表
func (a *API) ShowTagList(c *gin.Context) {
	tags, err := a.tags.List()
	if err != nil {
		a.fail(c, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "tag_list.html", gin.H{
		"title": "Tags",
		"tags":  tags,
	})
}

// ShowTag 渲染标签详情及关联文章
func (a *API) ShowTag(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.notFound(c)
		return
	}

	tag, err := a.tags.GetWithPosts(id)
	if err != nil {
		a.fail(c, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "tag_detail.html", gin.H{
		"title": tag.Name,
		"tag":   tag,
	})
}

func (a *API) ShowNewTagForm(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "tag_new.html", gin.H{
		"title": "Create a tag",
		"form":  tagForm{},
	})
}

// CreateTag 新建标签，名称重复时回显表单
func (a *API) CreateTag(c *gin.Context) {
	var form tagForm
	if !a.bindForm(c, &form) {
		return
	}

	tag, err := a.tags.Create(form.Name)
	if err != nil {
		if isRejectedWrite(err) {
			_ = c.Error(err)
			a.renderHTML(c, http.StatusBadRequest, "tag_new.html", gin.H{
				"title": "Create a tag",
				"form":  form,
				"error": err.Error(),
			})
			return
		}
		a.fail(c, err)
		return
	}

	addFlash(c, fmt.Sprintf("Added tag %q.", tag.Name))
	c.Redirect(http.StatusFound, "/tags")
}

func (a *API) ShowEditTagForm(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.notFound(c)
		return
	}

	tag, err := a.tags.Get(id)
	if err != nil {
		a.fail(c, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "tag_edit.html", gin.H{
		"title": "Edit a tag",
		"tag":   tag,
		"form":  tagForm{Name: tag.Name},
	})
}

// UpdateTag 重命名标签
func (a *API) UpdateTag(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.notFound(c)
		return
	}

	var form tagForm
	if !a.bindForm(c, &form) {
		return
	}

	tag, err := a.tags.Update(id, form.Name)
	if err != nil {
		if isRejectedWrite(err) {
			_ = c.Error(err)
			a.renderHTML(c, http.StatusBadRequest, "tag_edit.html", gin.H{
				"title": "Edit a tag",
				"tag":   &db.Tag{ID: id},
				"form":  form,
				"error": err.Error(),
			})
			return
		}
		a.fail(c, err)
		return
	}

	addFlash(c, fmt.Sprintf("Updated tag %q.", tag.Name))
	c.Redirect(http.StatusFound, "/tags")
}

// DeleteTag 删除标签，文章本身保留
func (a *API) DeleteTag(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.notFound(c)
		return
	}

	if err := a.tags.Delete(id); err != nil {
		a.fail(c, err)
		return
	}

	addFlash(c, "Tag deleted.")
	c.Redirect(http.StatusFound, "/tags")
}
