package hospital

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"

	apperrors "github.com/carebridge/hms-gateway/pkg/errors"
)

// GetUploadURL asks the hospital API for a presigned URL the resume
// can be uploaded to. The response body is the bare URL.
func (c *Client) GetUploadURL(ctx context.Context, fileName string) (string, error) {
	query := url.Values{"fileName": {fileName}}
	return c.doText(ctx, http.MethodGet, "/s3/upload-url", query)
}

// UploadResume PUTs the PDF bytes straight to the presigned URL. The
// stored object's public URL is the presigned URL minus its query.
func (c *Client) UploadResume(ctx context.Context, presignedURL string, pdf []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, presignedURL, bytes.NewReader(pdf))
	if err != nil {
		return "", apperrors.NewInternalError("failed to build upload request", err)
	}
	req.Header.Set("Content-Type", "application/pdf")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", apperrors.NewUpstreamError("resume upload failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperrors.NewUpstreamError(
			fmt.Sprintf("resume upload returned status %d", resp.StatusCode), nil)
	}

	parsed, err := url.Parse(presignedURL)
	if err != nil {
		return "", apperrors.NewInternalError("invalid presigned url", err)
	}
	parsed.RawQuery = ""
	return parsed.String(), nil
}
