// Package netx holds the HTTP client calls used by the scanmedctl tool.
package netx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/scanmed/internal/common"
)

// UploadToPresignedURL PUTs data to an S3 presigned URL.
// contentType must match the one the URL was signed for.
func UploadToPresignedURL(ctx context.Context, client *http.Client, url, contentType string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}

type uploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Key     string `json:"key"`
	URL     string `json:"url"`
}

// RequestImageUpload asks the API at baseURL for a scan image upload slot
// and returns the storage key and the presigned PUT URL.
func RequestImageUpload(ctx context.Context, client *http.Client, baseURL, token, contentType string) (string, string, error) {
	body, err := json.Marshal(map[string]string{"contentType": contentType})
	if err != nil {
		return "", "", err
	}

	endpoint := strings.TrimRight(baseURL, "/") + "/api/health-scans/image-upload"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)

	resp, err := client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", "", fmt.Errorf("decode response (%s): %w", resp.Status, err)
	}
	if resp.StatusCode != http.StatusOK || !out.Success {
		return "", "", fmt.Errorf("presign failed: %s: %s", resp.Status, out.Message)
	}
	return out.Key, out.URL, nil
}
