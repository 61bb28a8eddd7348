package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mkarlsen/go-posts-backend/internal/domain"
	"github.com/mkarlsen/go-posts-backend/internal/http/extract"
	"github.com/mkarlsen/go-posts-backend/internal/repo"
)

func createPost(t *testing.T, r *gin.Engine, sid, title string) domain.Post {
	t.Helper()
	w := do(t, r, http.MethodPost, "/posts",
		fmt.Sprintf(`{"title":%q,"content":"some markdown"}`, title), withSession(sid))
	if w.Code != http.StatusCreated {
		t.Fatalf("create post: status = %d, body %s", w.Code, w.Body.String())
	}
	var p domain.Post
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode post: %v", err)
	}
	return p
}

func TestCreatePost_ValidationAndSuccess(t *testing.T) {
	r, _ := newAPI(t)
	sid := register(t, r, "ada@example.com", "ada")

	// Too-short title is a single accumulated violation.
	w := do(t, r, http.MethodPost, "/posts", `{"title":"ab","content":"x"}`, withSession(sid))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	env := envelope(t, w)
	if len(env.Errors) != 1 || env.Errors[0].Field != "title" || env.Errors[0].Code != "min" {
		t.Fatalf("errors = %+v", env.Errors)
	}

	p := createPost(t, r, sid, "My first post")
	if p.ID == "" || p.Title != "My first post" || p.UserID == "" {
		t.Fatalf("post = %+v", p)
	}
}

func TestCreatePost_RequiresAuth(t *testing.T) {
	r, _ := newAPI(t)
	w := do(t, r, http.MethodPost, "/posts", `{"title":"My first post","content":"x"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestGetPost_PublicAndNotFound(t *testing.T) {
	r, _ := newAPI(t)
	sid := register(t, r, "ada@example.com", "ada")
	p := createPost(t, r, sid, "Readable by anyone")

	// No credentials needed for reads.
	w := do(t, r, http.MethodGet, "/posts/"+p.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	missing := repo.NewID()
	w = do(t, r, http.MethodGet, "/posts/"+missing, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	env := envelope(t, w)
	if env.Errors[0].Code != "post_not_found" {
		t.Fatalf("errors = %+v", env.Errors)
	}
	if env.Errors[0].Details["post"] != missing {
		t.Fatalf("details = %+v, want the requested id", env.Errors[0].Details)
	}
}

func TestGetPost_BadID(t *testing.T) {
	r, _ := newAPI(t)
	w := do(t, r, http.MethodGet, "/posts/not-a-uuid", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	env := envelope(t, w)
	if env.Errors[0].Code != "invalid_path" || env.Errors[0].Field != "id" {
		t.Fatalf("errors = %+v", env.Errors)
	}
}

func TestListPosts_PaginationEnvelope(t *testing.T) {
	r, _ := newAPI(t)
	sid := register(t, r, "ada@example.com", "ada")
	for i := 0; i < 3; i++ {
		createPost(t, r, sid, fmt.Sprintf("Post number %d", i))
	}

	w := do(t, r, http.MethodGet, "/posts?page=1&size=2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp ListPostsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Posts) != 2 || resp.Pagination.Total != 3 {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.Pagination.TotalPages != 2 || !resp.Pagination.HasNext {
		t.Fatalf("pagination = %+v", resp.Pagination)
	}

	w = do(t, r, http.MethodGet, "/posts?page=2&size=2", "")
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Posts) != 1 || resp.Pagination.HasNext {
		t.Fatalf("last page = %+v", resp.Pagination)
	}
}

func TestListPosts_EmptyIsArray(t *testing.T) {
	r, _ := newAPI(t)
	w := do(t, r, http.MethodGet, "/posts", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(raw["posts"]) != "[]" {
		t.Fatalf("posts = %s, want []", raw["posts"])
	}
}

func TestListMyPosts_FiltersByAuthor(t *testing.T) {
	r, _ := newAPI(t)
	adaSid := register(t, r, "ada@example.com", "ada")
	graceSid := register(t, r, "grace@example.com", "grace")
	createPost(t, r, adaSid, "Written by ada")
	createPost(t, r, graceSid, "Written by grace")

	w := do(t, r, http.MethodGet, "/posts/me", "", withSession(adaSid))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp ListPostsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Posts) != 1 || resp.Posts[0].Title != "Written by ada" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestUpdatePost_OwnershipEnforced(t *testing.T) {
	r, _ := newAPI(t)
	adaSid := register(t, r, "ada@example.com", "ada")
	graceSid := register(t, r, "grace@example.com", "grace")
	p := createPost(t, r, adaSid, "Original title")

	w := do(t, r, http.MethodPut, "/posts/"+p.ID, `{"title":"Updated title"}`, withSession(adaSid))
	if w.Code != http.StatusOK {
		t.Fatalf("owner update: status = %d, body %s", w.Code, w.Body.String())
	}
	var got domain.Post
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Title != "Updated title" || got.Content != "some markdown" {
		t.Fatalf("post = %+v", got)
	}

	// A foreign post is reported as missing, not forbidden.
	w = do(t, r, http.MethodPut, "/posts/"+p.ID, `{"title":"Hijacked title"}`, withSession(graceSid))
	if w.Code != http.StatusNotFound {
		t.Fatalf("foreign update: status = %d, want 404", w.Code)
	}
	env := envelope(t, w)
	if env.Errors[0].Code != "post_not_found" || env.Errors[0].Details["post"] != p.ID {
		t.Fatalf("errors = %+v", env.Errors)
	}
}

func TestDeletePost(t *testing.T) {
	r, _ := newAPI(t)
	sid := register(t, r, "ada@example.com", "ada")
	p := createPost(t, r, sid, "Doomed post")

	w := do(t, r, http.MethodDelete, "/posts/"+p.ID, "", withSession(sid))
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: status = %d", w.Code)
	}

	w = do(t, r, http.MethodDelete, "/posts/"+p.ID, "", withSession(sid))
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete: status = %d", w.Code)
	}
}

func TestPagination_Helper(t *testing.T) {
	cases := []struct {
		page, size int
		total      int64
		wantPages  int
		wantNext   bool
	}{
		{1, 10, 0, 0, false},
		{1, 10, 10, 1, false},
		{1, 10, 11, 2, true},
		{2, 10, 11, 2, false},
	}
	for _, tc := range cases {
		got := paginationFor(extract.Paginate{Page: tc.page, Size: tc.size}, tc.total)
		if got.TotalPages != tc.wantPages || got.HasNext != tc.wantNext {
			t.Errorf("page=%d size=%d total=%d: got %+v", tc.page, tc.size, tc.total, got)
		}
	}
}
