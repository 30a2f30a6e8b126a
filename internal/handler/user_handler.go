package handler

import (
	"fmt"
	"net/http"

	"github.com/blogly/internal/db"
	"github.com/blogly/internal/service"
	"github.com/gin-gonic/gin"
)

type userForm struct {
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
	ImageURL  string `form:"image_url"`
}

func (f userForm) input() service.UserInput {
	return service.UserInput{FirstName: f.FirstName, LastName: f.LastName, ImageURL: f.ImageURL}
}

func userFormFrom(user *db.User) userForm {
	return userForm{FirstName: user.FirstName, LastName: user.LastName, ImageURL: user.ImageURL}
}

// ShowUserList 渲染用户列表
func (a *API) ShowUserList(c *gin.Context) {
	users, err := a.users.List()
	if err != nil {
		a.fail(c, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "user_list.html", gin.H{
		"title": "Users",
		"users": users,
	})
}

// ShowNewUserForm 渲染新建用户表单
func (a *API) ShowNewUserForm(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "user_new.html", gin.H{
		"title": "Create a user",
		"form":  userForm{},
	})
}

// CreateUser 处理新建用户表单
func (a *API) CreateUser(c *gin.Context) {
	var form userForm
	if !a.bindForm(c, &form) {
		return
	}

	user, err := a.users.Create(form.input())
	if err != nil {
		if isRejectedWrite(err) {
			a.renderHTML(c, http.StatusBadRequest, "user_new.html", gin.H{
				"title": "Create a user",
				"form":  form,
				"error": err.Error(),
			})
			return
		}
		a.fail(c, err)
		return
	}

	addFlash(c, fmt.Sprintf("Added %s.", user.FullName()))
	c.Redirect(http.StatusFound, "/users")
}

// ShowUser 渲染用户详情及其文章
func (a *API) ShowUser(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.notFound(c)
		return
	}

	user, err := a.users.GetWithPosts(id)
	if err != nil {
		a.fail(c, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "user_detail.html", gin.H{
		"title": user.FullName(),
		"user":  user,
	})
}

// ShowEditUserForm 渲染编辑用户表单
func (a *API) ShowEditUserForm(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.notFound(c)
		return
	}

	user, err := a.users.Get(id)
	if err != nil {
		a.fail(c, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "user_edit.html", gin.H{
		"title": "Edit a user",
		"user":  user,
		"form":  userFormFrom(user),
	})
}

// UpdateUser 处理编辑用户表单
func (a *API) UpdateUser(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.notFound(c)
		return
	}

	var form userForm
	if !a.bindForm(c, &form) {
		return
	}

	user, err := a.users.Update(id, form.input())
	if err != nil {
		if isRejectedWrite(err) {
			a.renderHTML(c, http.StatusBadRequest, "user_edit.html", gin.H{
				"title": "Edit a user",
				"user":  &db.User{ID: id},
				"form":  form,
				"error": err.Error(),
			})
			return
		}
		a.fail(c, err)
		return
	}

	addFlash(c, fmt.Sprintf("Updated %s.", user.FullName()))
	c.Redirect(http.StatusFound, "/users")
}

// DeleteUser 删除用户及其全部文章
func (a *API) DeleteUser(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.notFound(c)
		return
	}

	if err := a.users.Delete(id); err != nil {
		a.fail(c, err)
		return
	}

	addFlash(c, "User deleted.")
	c.Redirect(http.StatusFound, "/users")
}
