package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/nomanion/nomadmin/internal/models"
)

// UploadFile sends a single media file. The multipart content type
// overrides the client's JSON default for this call only.
func (c *Client) UploadFile(ctx context.Context, path string) (*models.Upload, error) {
	body, contentType, err := multipartBody("file", path)
	if err != nil {
		return nil, err
	}

	var env struct {
		Data *models.Upload `json:"data"`
	}
	if err := c.send(ctx, http.MethodPost, "/upload/single", nil, contentType, body, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// UploadFiles sends several media files under the backend's shared
// "media" field.
func (c *Client) UploadFiles(ctx context.Context, paths []string) ([]models.Upload, error) {
	body, contentType, err := multipartBody("media", paths...)
	if err != nil {
		return nil, err
	}

	var env struct {
		Data []models.Upload `json:"data"`
	}
	if err := c.send(ctx, http.MethodPost, "/upload/multiple", nil, contentType, body, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// multipartBody assembles a multipart form holding the given files under
// one field name and returns the body with its boundary content type.
func multipartBody(field string, paths ...string) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, "", fmt.Errorf("open upload: %w", err)
		}

		part, err := writer.CreateFormFile(field, filepath.Base(path))
		if err != nil {
			f.Close()
			return nil, "", fmt.Errorf("create form file: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			f.Close()
			return nil, "", fmt.Errorf("copy upload: %w", err)
		}
		f.Close()
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}
