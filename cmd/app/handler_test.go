package main

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerAndLogin(t *testing.T, ts *testServer, username, email, password string) int {
	t.Helper()

	code, _, _ := ts.post(t, "/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, code)

	code, _, body := ts.post(t, "/login", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, "user_id")

	return int(body["user_id"].(float64))
}

func TestRegisterHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	code, _, body := ts.post(t, "/register", map[string]string{
		"username": "alice",
		"email":    "a@x.com",
		"password": "pw1",
	})
	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "user created successfully", body["message"])

	tests := []struct {
		name        string
		payload     map[string]string
		wantCode    int
		wantMessage string
	}{
		{
			name:        "duplicate username",
			payload:     map[string]string{"username": "alice", "email": "other@x.com", "password": "pw1"},
			wantCode:    http.StatusBadRequest,
			wantMessage: "username already exists",
		},
		{
			name:        "duplicate email",
			payload:     map[string]string{"username": "alice2", "email": "a@x.com", "password": "pw1"},
			wantCode:    http.StatusBadRequest,
			wantMessage: "email already exists",
		},
		{
			name:     "missing username",
			payload:  map[string]string{"email": "b@x.com", "password": "pw1"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing password",
			payload:  map[string]string{"username": "bob", "email": "b@x.com"},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, body := ts.post(t, "/register", tt.payload)
			assert.Equal(t, tt.wantCode, code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, body["message"])
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	code, _, _ := ts.post(t, "/register", map[string]string{
		"username": "alice",
		"email":    "a@x.com",
		"password": "pw1",
	})
	require.Equal(t, http.StatusCreated, code)

	tests := []struct {
		name     string
		payload  map[string]string
		wantCode int
	}{
		{
			name:     "wrong password",
			payload:  map[string]string{"username": "alice", "password": "nope"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "unknown user",
			payload:  map[string]string{"username": "ghost", "password": "pw1"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "empty payload",
			payload:  map[string]string{},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "valid credentials",
			payload:  map[string]string{"username": "alice", "password": "pw1"},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, body := ts.post(t, "/login", tt.payload)
			assert.Equal(t, tt.wantCode, code)

			if tt.wantCode == http.StatusOK {
				assert.Equal(t, "alice", body["username"])
				assert.Equal(t, "a@x.com", body["email"])
				assert.EqualValues(t, 1, body["user_id"])
			} else {
				assert.Equal(t, "invalid credentials", body["message"])
			}
		})
	}
}

func TestCheckAuthHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	code, _, body := ts.get(t, "/check_auth")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["authenticated"])

	userID := registerAndLogin(t, ts, "alice", "a@x.com", "pw1")

	code, _, body = ts.get(t, "/check_auth")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["authenticated"])
	assert.EqualValues(t, userID, body["user_id"])
	assert.Equal(t, "alice", body["username"])
}

func TestLogoutHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	registerAndLogin(t, ts, "alice", "a@x.com", "pw1")

	code, _, _ := ts.get(t, "/dashboard")
	require.Equal(t, http.StatusOK, code)

	code, _, body := ts.post(t, "/logout", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "logged out successfully", body["message"])

	code, _, body = ts.get(t, "/dashboard")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "authentication required", body["message"])
}

func TestDashboardHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	registerAndLogin(t, ts, "alice", "a@x.com", "pw1")

	code, _, body := ts.get(t, "/dashboard")
	require.Equal(t, http.StatusOK, code)

	user := body["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
	assert.NotContains(t, user, "password")
	assert.Empty(t, body["blogs"])

	code, _, _ = ts.postForm(t, "/create_blog", map[string]string{
		"title":   "Hi",
		"content": "<p>hello</p>",
	}, nil)
	require.Equal(t, http.StatusCreated, code)

	code, _, body = ts.get(t, "/dashboard")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["blogs"], 1)
}

func TestBlogLifecycle(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	registerAndLogin(t, ts, "alice", "a@x.com", "pw1")

	code, _, body := ts.postForm(t, "/create_blog", map[string]string{
		"title":   "Hi",
		"content": "<p>hello</p>",
	}, nil)
	require.Equal(t, http.StatusCreated, code)
	assert.EqualValues(t, 1, body["blog_id"])

	code, _, body = ts.get(t, "/blog/1")
	require.Equal(t, http.StatusOK, code)

	blog := body["blog"].(map[string]any)
	assert.Equal(t, "Hi", blog["title"])
	assert.Equal(t, "<p>hello</p>", blog["content"])
	assert.Equal(t, "alice", blog["author_username"])
	assert.EqualValues(t, 0, blog["likes_count"])
	assert.EqualValues(t, 0, blog["comments_count"])
	assert.Equal(t, false, blog["liked"])

	code, _, body = ts.post(t, "/blog/1/like", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["liked"])
	assert.EqualValues(t, 1, body["likes_count"])

	code, _, body = ts.get(t, "/blog/1")
	require.Equal(t, http.StatusOK, code)
	blog = body["blog"].(map[string]any)
	assert.EqualValues(t, 1, blog["likes_count"])
	assert.Equal(t, true, blog["liked"])

	code, _, body = ts.post(t, "/blog/1/like", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["liked"])
	assert.EqualValues(t, 0, body["likes_count"])

	code, _, _ = ts.get(t, "/blog/999")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCreateBlogHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	code, _, body := ts.postForm(t, "/create_blog", map[string]string{
		"title":   "Hi",
		"content": "<p>hello</p>",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "authentication required", body["message"])

	registerAndLogin(t, ts, "alice", "a@x.com", "pw1")

	code, _, body = ts.postForm(t, "/create_blog", map[string]string{
		"title":   "",
		"content": "something",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body, "message")
}

func TestDeleteBlogHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	registerAndLogin(t, ts, "alice", "a@x.com", "pw1")

	code, _, _ := ts.postForm(t, "/create_blog", map[string]string{
		"title":   "Hi",
		"content": "<p>hello</p>",
	}, nil)
	require.Equal(t, http.StatusCreated, code)

	// a different user must not be able to delete it
	ts.clearCookies(t)
	registerAndLogin(t, ts, "bob", "b@x.com", "pw2")

	code, _, body := ts.delete(t, "/blog/1")
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "unauthorized", body["message"])

	code, _, _ = ts.get(t, "/blog/1")
	assert.Equal(t, http.StatusOK, code)

	// the owner can
	ts.clearCookies(t)
	code, _, body = ts.post(t, "/login", map[string]string{"username": "alice", "password": "pw1"})
	require.Equal(t, http.StatusOK, code)

	code, _, body = ts.delete(t, "/blog/1")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "blog deleted successfully", body["message"])

	code, _, _ = ts.get(t, "/blog/1")
	assert.Equal(t, http.StatusNotFound, code)

	code, _, _ = ts.delete(t, "/blog/1")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestFeedHandlers(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	registerAndLogin(t, ts, "alice", "a@x.com", "pw1")

	longContent := strings.Repeat("x", 150)
	code, _, _ := ts.postForm(t, "/create_blog", map[string]string{
		"title":   "Long",
		"content": longContent,
	}, nil)
	require.Equal(t, http.StatusCreated, code)

	code, _, _ = ts.postForm(t, "/create_blog", map[string]string{
		"title":   "Short",
		"content": "short body",
	}, nil)
	require.Equal(t, http.StatusCreated, code)

	code, _, body := ts.get(t, "/feed")
	require.Equal(t, http.StatusOK, code)
	blogs := body["blogs"].([]any)
	require.Len(t, blogs, 2)
	// newest first
	assert.Equal(t, "Short", blogs[0].(map[string]any)["title"])

	code, _, body = ts.get(t, "/simple_feed")
	require.Equal(t, http.StatusOK, code)
	blogs = body["blogs"].([]any)
	require.Len(t, blogs, 2)
	assert.Equal(t, false, blogs[0].(map[string]any)["liked"])

	code, _, body = ts.get(t, "/minimal_feed")
	require.Equal(t, http.StatusOK, code)
	blogs = body["blogs"].([]any)
	require.Len(t, blogs, 2)
	assert.Equal(t, "short body", blogs[0].(map[string]any)["preview"])
	assert.Equal(t, strings.Repeat("x", 100)+"...", blogs[1].(map[string]any)["preview"])
}

func TestCommentHandlers(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	registerAndLogin(t, ts, "alice", "a@x.com", "pw1")

	code, _, _ := ts.postForm(t, "/create_blog", map[string]string{
		"title":   "Hi",
		"content": "<p>hello</p>",
	}, nil)
	require.Equal(t, http.StatusCreated, code)

	code, _, body := ts.get(t, "/blog/1/comments")
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, body["comments"])

	code, _, body = ts.post(t, "/blog/1/comment", map[string]string{"content": "nice post"})
	require.Equal(t, http.StatusCreated, code)
	comment := body["comment"].(map[string]any)
	assert.Equal(t, "nice post", comment["content"])
	assert.Equal(t, "alice", comment["author_username"])

	code, _, _ = ts.post(t, "/blog/1/comment", map[string]string{"content": ""})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _, _ = ts.post(t, "/blog/999/comment", map[string]string{"content": "hello"})
	assert.Equal(t, http.StatusNotFound, code)

	code, _, body = ts.get(t, "/blog/1/comments")
	require.Equal(t, http.StatusOK, code)
	comments := body["comments"].([]any)
	require.Len(t, comments, 1)

	code, _, body = ts.get(t, "/blog/1")
	require.Equal(t, http.StatusOK, code)
	blog := body["blog"].(map[string]any)
	assert.EqualValues(t, 1, blog["comments_count"])
}

func TestUploadMediaHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	userID := registerAndLogin(t, ts, "alice", "a@x.com", "pw1")
	require.Equal(t, 1, userID)

	code, _, body := ts.postForm(t, "/upload_media", nil, map[string][2]string{
		"file": {"photo.png", "fake image bytes"},
	})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "/uploads/1/photo.png", body["url"])
	assert.NotContains(t, body, "media_url")

	// the stored file must be served back
	res, err := ts.Client().Get(ts.URL + "/uploads/1/photo.png")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	content, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(content))

	code, _, body = ts.postForm(t, "/upload_media", nil, map[string][2]string{
		"file": {"malware.exe", "nope"},
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _, _ = ts.postForm(t, "/upload_media", nil, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	res, err = ts.Client().Get(ts.URL + "/uploads/../../etc/passwd")
	require.NoError(t, err)
	res.Body.Close()
	assert.NotEqual(t, http.StatusOK, res.StatusCode)
}
