package storage

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

type Cloudinary struct {
	cloudName string
	apiKey    string
	apiSecret string
	folder    string
	baseURL   string
	client    *http.Client
}

// CloudinaryUploadResponse represents the response from the Cloudinary upload API.
type CloudinaryUploadResponse struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

type cloudinaryDestroyResponse struct {
	Result string `json:"result"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
}

func NewCloudinary(cloudName, apiKey, apiSecret, folder string) *Cloudinary {
	client := &http.Client{
		Timeout: 2 * time.Minute,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &Cloudinary{
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		folder:    folder,
		baseURL:   "https://api.cloudinary.com/v1_1",
		client:    client,
	}
}

// Upload sends the image bytes to Cloudinary as a signed upload and
// returns the durable {url, storage id} reference.
func (c *Cloudinary) Upload(ctx context.Context, reader io.Reader, filename string) (*Image, error) {
	var buf bytes.Buffer
	fileSize, err := io.Copy(&buf, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}
	if fileSize == 0 {
		return nil, fmt.Errorf("empty file, size is 0 bytes")
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	signature := c.sign(fmt.Sprintf("folder=%s&timestamp=%s", c.folder, timestamp))

	formBuf := &bytes.Buffer{}
	writer := multipart.NewWriter(formBuf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, bytes.NewReader(buf.Bytes())); err != nil {
		return nil, fmt.Errorf("failed to copy file: %w", err)
	}

	fields := map[string]string{
		"api_key":   c.apiKey,
		"timestamp": timestamp,
		"folder":    c.folder,
		"signature": signature,
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("failed to add form field: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	uploadURL := fmt.Sprintf("%s/%s/image/upload", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, formBuf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var response CloudinaryUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cloudinary returned status %d: %s", resp.StatusCode, response.Error.Message)
	}

	return &Image{
		URL:       response.SecureURL,
		StorageID: response.PublicID,
	}, nil
}

// Delete removes a previously uploaded image by its public id.
func (c *Cloudinary) Delete(ctx context.Context, storageID string) error {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	signature := c.sign(fmt.Sprintf("public_id=%s&timestamp=%s", storageID, timestamp))

	formBuf := &bytes.Buffer{}
	writer := multipart.NewWriter(formBuf)
	fields := map[string]string{
		"public_id": storageID,
		"api_key":   c.apiKey,
		"timestamp": timestamp,
		"signature": signature,
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("failed to add form field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}

	destroyURL := fmt.Sprintf("%s/%s/image/destroy", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, destroyURL, formBuf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var response cloudinaryDestroyResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || response.Result != "ok" {
		return fmt.Errorf("failed to delete image %s: status %d, result %q", storageID, resp.StatusCode, response.Result)
	}

	return nil
}

// Cloudinary authenticates requests with a SHA-1 digest of the sorted
// parameters concatenated with the API secret.
func (c *Cloudinary) sign(params string) string {
	digest := sha1.Sum([]byte(params + c.apiSecret))
	return hex.EncodeToString(digest[:])
}
