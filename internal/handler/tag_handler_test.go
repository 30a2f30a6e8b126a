package handler

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/blogly/internal/db"
)

func TestCreateTag(t *testing.T) {
	api, gdb := setupTestAPI(t)

	c, w := newTestContext(t, http.MethodPost, "/tags/new", url.Values{"name": {"Go"}})
	serve(c, api.CreateTag)

	if w.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", w.Code)
	}
	if location := w.Header().Get("Location"); location != "/tags" {
		t.Fatalf("unexpected redirect %q", location)
	}
	if count := countRows(t, gdb, &db.Tag{}, "name = ?", "Go"); count != 1 {
		t.Fatalf("expected tag to be created, got %d", count)
	}
}

func TestCreateTagDuplicateName(t *testing.T) {
	api, gdb := setupTestAPI(t)
	seedTag(t, gdb, "Go")

	c, w := newTestContext(t, http.MethodPost, "/tags/new", url.Values{"name": {"Go"}})
	serve(c, api.CreateTag)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	if count := countRows(t, gdb, &db.Tag{}, ""); count != 1 {
		t.Fatalf("expected a single tag, got %d", count)
	}
}

func TestUpdateTagDuplicateName(t *testing.T) {
	api, gdb := setupTestAPI(t)
	seedTag(t, gdb, "Go")
	other := seedTag(t, gdb, "Gin")

	c, w := newTestContext(t, http.MethodPost, "/tags/2/edit", url.Values{"name": {"Go"}}, idParam(other.ID))
	serve(c, api.UpdateTag)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	var reloaded db.Tag
	if err := gdb.First(&reloaded, other.ID).Error; err != nil {
		t.Fatalf("failed to reload tag: %v", err)
	}
	if reloaded.Name != "Gin" {
		t.Fatalf("expected name to be unchanged, got %q", reloaded.Name)
	}
}

func TestUpdateTagRenames(t *testing.T) {
	api, gdb := setupTestAPI(t)
	tag := seedTag(t, gdb, "Go")

	c, w := newTestContext(t, http.MethodPost, "/tags/1/edit", url.Values{"name": {"Golang"}}, idParam(tag.ID))
	serve(c, api.UpdateTag)

	if w.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", w.Code)
	}
	if count := countRows(t, gdb, &db.Tag{}, "name = ?", "Golang"); count != 1 {
		t.Fatalf("expected renamed tag, got %d", count)
	}
}

func TestShowTagListsPosts(t *testing.T) {
	api, gdb := setupTestAPI(t)
	user := seedUser(t, gdb, "Jane", "Doe")
	tag := seedTag(t, gdb, "Fun")
	seedPost(t, gdb, user, "Another Post", tag)
	seedPost(t, gdb, user, "Untagged")

	c, w := newTestContext(t, http.MethodGet, "/tags/1", nil, idParam(tag.ID))
	serve(c, api.ShowTag)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Another Post") || strings.Contains(body, "Untagged") {
		t.Fatalf("unexpected tag page: %s", body)
	}
}

func TestShowTagListSortedByName(t *testing.T) {
	api, gdb := setupTestAPI(t)
	seedTag(t, gdb, "Wow")
	seedTag(t, gdb, "Cool")

	c, w := newTestContext(t, http.MethodGet, "/tags", nil)
	serve(c, api.ShowTagList)

	body := w.Body.String()
	if w.Code != http.StatusOK || strings.Index(body, "Cool") > strings.Index(body, "Wow") {
		t.Fatalf("expected tags sorted by name, status %d body: %s", w.Code, body)
	}
}

func TestDeleteTagKeepsPosts(t *testing.T) {
	api, gdb := setupTestAPI(t)
	user := seedUser(t, gdb, "John", "Smith")
	tag := seedTag(t, gdb, "Wow")
	post := seedPost(t, gdb, user, "Blah", tag)

	c, w := newTestContext(t, http.MethodPost, "/tags/1/delete", url.Values{}, idParam(tag.ID))
	serve(c, api.DeleteTag)

	if w.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", w.Code)
	}
	if count := countRows(t, gdb, &db.Post{}, "id = ?", post.ID); count != 1 {
		t.Fatalf("expected post to survive, got %d", count)
	}
	if count := countRows(t, gdb, &db.PostTag{}, ""); count != 0 {
		t.Fatalf("expected links to be removed, got %d", count)
	}
}

func TestDeleteTagNotFound(t *testing.T) {
	api, _ := setupTestAPI(t)

	c, w := newTestContext(t, http.MethodPost, "/tags/7/delete", url.Values{}, idParam(7))
	serve(c, api.DeleteTag)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestUpdateTagUnknownIDWithBlankName(t *testing.T) {
	api, _ := setupTestAPI(t)

	c, w := newTestContext(t, http.MethodPost, "/tags/999/edit", url.Values{"name": {"  "}}, idParam(999))
	serve(c, api.UpdateTag)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}
