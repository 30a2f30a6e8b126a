package handler

import (
	"fmt"
	"net/http"

	"github.com/blogly/internal/db"
	"github.com/blogly/internal/service"
	"github.com/gin-gonic/gin"
)

type postForm struct {
	Title   string   `form:"title"`
	Content string   `form:"content"`
	Tags    []string `form:"tags"`
}

func (f postForm) input() (service.PostInput, error) {
	ids, err := parseUintSlice(f.Tags)
	if err != nil {
		return service.PostInput{}, err
	}
	return service.PostInput{Title: f.Title, Content: f.Content, TagIDs: ids}, nil
}

// selectedTags marks which of the tag ids belong to the submitted selection.
func (f postForm) selectedTags() map[uint]bool {
	selected := make(map[uint]bool, len(f.Tags))
	ids, err := parseUintSlice(f.Tags)
	if err != nil {
		return selected
	}
	for _, id := range ids {
		selected[id] = true
	}
	return selected
}

// ShowHome 展示最近发布的文章
func (a *API) ShowHome(c *gin.Context) {
	posts, err := a.posts.Recent(a.homeLimit)
	if err != nil {
		a.fail(c, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "home.html", gin.H{
		"title": "Blogly",
		"posts": posts,
	})
}

// ShowNewPostForm 渲染新建文章表单，附带全部标签供选择
func (a *API) ShowNewPostForm(c *gin.Context) {
	userID, err := parseUintParam(c, "id")
	if err != nil {
		a.notFound(c)
		return
	}

	user, err := a.users.Get(userID)
	if err != nil {
		a.fail(c, err)
		return
	}

	tags, err := a.tags.List()
	if err != nil {
		a.fail(c, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "post_new.html", gin.H{
		"title":    "Add post",
		"user":     user,
		"tags":     tags,
		"selected": map[uint]bool{},
		"form":     postForm{},
	})
}

// CreatePost 为指定用户创建文章
func (a *API) CreatePost(c *gin.Context) {
	userID, err := parseUintParam(c, "id")
	if err != nil {
		a.notFound(c)
		return
	}

	user, err := a.users.Get(userID)
	if err != nil {
		a.fail(c, err)
		return
	}

	var form postForm
	if !a.bindForm(c, &form) {
		return
	}

	input, err := form.input()
	if err != nil {
		a.rerenderNewPost(c, user, form, err)
		return
	}

	post, err := a.posts.Create(user.ID, input)
	if err != nil {
		if isRejectedWrite(err) {
			a.rerenderNewPost(c, user, form, err)
			return
		}
		a.fail(c, err)
		return
	}

	addFlash(c, fmt.Sprintf("Added post %q.", post.Title))
	c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d", user.ID))
}

func (a *API) rerenderNewPost(c *gin.Context, user *db.User, form postForm, cause error) {
	_ = c.Error(cause)

	tags, err := a.tags.List()
	if err != nil {
		a.fail(c, err)
		return
	}

	a.renderHTML(c, http.StatusBadRequest, "post_new.html", gin.H{
		"title":    "Add post",
		"user":     user,
		"tags":     tags,
		"selected": form.selectedTags(),
		"form":     form,
		"error":    cause.Error(),
	})
}

// ShowPost 渲染文章详情
func (a *API) ShowPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.notFound(c)
		return
	}

	post, err := a.posts.Get(id)
	if err != nil {
		a.fail(c, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "post_detail.html", gin.H{
		"title": post.Title,
		"post":  post,
	})
}

// ShowEditPostForm 渲染编辑文章表单，已选标签预先勾选
func (a *API) ShowEditPostForm(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.notFound(c)
		return
	}

	post, err := a.posts.Get(id)
	if err != nil {
		a.fail(c, err)
		return
	}

	tags, err := a.tags.List()
	if err != nil {
		a.fail(c, err)
		return
	}

	selected := make(map[uint]bool, len(tags))
	for _, tag := range tags {
		selected[tag.ID] = post.HasTag(tag.ID)
	}

	a.renderHTML(c, http.StatusOK, "post_edit.html", gin.H{
		"title":    "Edit post",
		"post":     post,
		"tags":     tags,
		"selected": selected,
		"form":     postForm{Title: post.Title, Content: post.Content},
	})
}

// UpdatePost 更新文章并整体替换标签集合
func (a *API) UpdatePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.notFound(c)
		return
	}

	var form postForm
	if !a.bindForm(c, &form) {
		return
	}

	input, err := form.input()
	if err != nil {
		// 未知文章优先返回 404
		if _, getErr := a.posts.Get(id); getErr != nil {
			a.fail(c, getErr)
			return
		}
		a.rerenderEditPost(c, id, form, err)
		return
	}

	post, err := a.posts.Update(id, input)
	if err != nil {
		if isRejectedWrite(err) {
			a.rerenderEditPost(c, id, form, err)
			return
		}
		a.fail(c, err)
		return
	}

	addFlash(c, fmt.Sprintf("Updated post %q.", post.Title))
	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
}

func (a *API) rerenderEditPost(c *gin.Context, id uint, form postForm, cause error) {
	_ = c.Error(cause)

	tags, err := a.tags.List()
	if err != nil {
		a.fail(c, err)
		return
	}

	a.renderHTML(c, http.StatusBadRequest, "post_edit.html", gin.H{
		"title":    "Edit post",
		"post":     &db.Post{ID: id},
		"tags":     tags,
		"selected": form.selectedTags(),
		"form":     form,
		"error":    cause.Error(),
	})
}

// DeletePost 删除文章并跳转回作者页面
func (a *API) DeletePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.notFound(c)
		return
	}

	post, err := a.posts.Delete(id)
	if err != nil {
		a.fail(c, err)
		return
	}

	addFlash(c, fmt.Sprintf("Deleted post %q.", post.Title))
	c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d", post.CreatedBy))
}
