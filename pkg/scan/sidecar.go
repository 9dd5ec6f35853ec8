package scan

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

// SidecarClient talks to an OCR sidecar service (tesseract behind a small
// HTTP surface) implementing both Rasterizer and Recognizer.
type SidecarClient struct {
	BaseURL string
	client  *http.Client
}

func NewSidecarClient(baseURL string) *SidecarClient {
	if baseURL == "" {
		baseURL = "http://localhost:8884"
	}
	return &SidecarClient{
		BaseURL: baseURL,
		client:  &http.Client{},
	}
}

type rasterizeRequest struct {
	PDF string `json:"pdf"` // base64
	DPI int    `json:"dpi"`
}

type rasterizeResponse struct {
	Pages []string `json:"pages"` // base64 PNGs
}

func (c *SidecarClient) Rasterize(ctx context.Context, pdfPath string, dpi int) ([][]byte, error) {
	raw, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, err
	}

	var resp rasterizeResponse
	req := rasterizeRequest{PDF: base64.StdEncoding.EncodeToString(raw), DPI: dpi}
	if err := c.post(ctx, "/rasterize", req, &resp); err != nil {
		return nil, err
	}

	images := make([][]byte, 0, len(resp.Pages))
	for _, p := range resp.Pages {
		img, err := base64.StdEncoding.DecodeString(p)
		if err != nil {
			return nil, fmt.Errorf("invalid page image from sidecar: %w", err)
		}
		images = append(images, img)
	}
	return images, nil
}

type recognizeRequest struct {
	Image string `json:"image"` // base64
	Lang  string `json:"lang"`
}

type recognizeResponse struct {
	Text string `json:"text"`
}

func (c *SidecarClient) Recognize(ctx context.Context, image []byte, lang string) (string, error) {
	var resp recognizeResponse
	req := recognizeRequest{Image: base64.StdEncoding.EncodeToString(image), Lang: lang}
	if err := c.post(ctx, "/ocr", req, &resp); err != nil {
		return "", err
	}
	return resp.Text, nil
}

func (c *SidecarClient) post(ctx context.Context, path string, body, out interface{}) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ocr sidecar error: %s", string(bodyBytes))
	}
	return json.Unmarshal(bodyBytes, out)
}
