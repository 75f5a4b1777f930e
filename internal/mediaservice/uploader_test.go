package mediaservice

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUploaderUpload(t *testing.T) {
	const secret = "test-secret"

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1_1/testcloud/auto/upload", r.URL.Path)

		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "test-key", r.FormValue("api_key"))

		timestamp := r.FormValue("timestamp")
		assert.NotEmpty(t, timestamp)

		want := sha1.Sum([]byte("timestamp=" + timestamp + secret))
		assert.Equal(t, hex.EncodeToString(want[:]), r.FormValue("signature"))

		file, header, err := r.FormFile("file")
		assert.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "photo.png", header.Filename)

		data, err := io.ReadAll(file)
		assert.NoError(t, err)
		assert.Equal(t, "fake image bytes", string(data))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"secure_url": "https://media.example.com/photo.png", "public_id": "photo"}`)
	}))
	defer ts.Close()

	u := NewUploader(ts.URL, "testcloud", "test-key", secret)

	result, err := u.Upload(context.Background(), "photo.png", strings.NewReader("fake image bytes"))
	assert.NoError(t, err)
	assert.Equal(t, "https://media.example.com/photo.png", result.URL)
	assert.Equal(t, "photo", result.PublicID)
}

func TestUploaderUploadError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "Invalid signature"}}`, http.StatusUnauthorized)
	}))
	defer ts.Close()

	u := NewUploader(ts.URL, "testcloud", "test-key", "wrong")

	_, err := u.Upload(context.Background(), "photo.png", strings.NewReader("x"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
