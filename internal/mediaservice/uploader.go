package mediaservice

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"
)

// Uploader relays files to an external media-hosting provider over its
// signed HTTP upload endpoint.
type Uploader struct {
	client    *http.Client
	baseURL   string
	cloudName string
	apiKey    string
	apiSecret string
}

type UploadResult struct {
	URL      string `json:"secure_url"`
	PublicID string `json:"public_id"`
}

const defaultUploadBaseURL = "https://api.cloudinary.com"

// NewUploader builds a media-host client. baseURL may be empty to use the
// provider default; tests point it at a local server.
func NewUploader(baseURL, cloudName, apiKey, apiSecret string) *Uploader {
	if baseURL == "" {
		baseURL = defaultUploadBaseURL
	}

	return &Uploader{
		client:    &http.Client{Timeout: 30 * time.Second},
		baseURL:   baseURL,
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
	}
}

// signature signs the request parameters the way the provider expects: the
// sorted parameter string followed by the API secret, sha1-hexed.
func (u *Uploader) signature(timestamp string) string {
	hash := sha1.Sum([]byte("timestamp=" + timestamp + u.apiSecret))
	return hex.EncodeToString(hash[:])
}

// Upload sends the file to the media host and returns the hosted URL.
func (u *Uploader) Upload(ctx context.Context, filename string, r io.Reader) (*UploadResult, error) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	fields := map[string]string{
		"api_key":   u.apiKey,
		"timestamp": timestamp,
		"signature": u.signature(timestamp),
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, err
		}
	}

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1_1/%s/auto/upload", u.baseURL, u.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	res, err := u.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("media host returned %d: %s", res.StatusCode, msg)
	}

	var result UploadResult
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}
