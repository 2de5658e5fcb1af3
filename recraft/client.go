// Package recraft is a client for the Recraft image-to-image endpoint.
package recraft

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/ByteMirror/growlens/log"
	"github.com/google/uuid"
)

const (
	DefaultBaseURL    = "https://external.api.recraft.ai"
	ImageToImagePath  = "/v1/images/imageToImage"
	maxErrorBodyBytes = 64 << 10
)

// DefaultToken is the compiled-in bearer token used when none is stored.
// Set it at build time with -ldflags "-X github.com/ByteMirror/growlens/recraft.DefaultToken=...".
var DefaultToken = ""

// ClientConfig configures a Client.
type ClientConfig struct {
	BaseURL string
	Token   string
	Options Options
	// HTTPClient overrides the transport. Nil means a client with no timeout of
	// its own; callers cancel through the context.
	HTTPClient *http.Client
}

// Client submits photos to the transformation API. One call is one request:
// no retries.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
}

// NewClient creates a client. A missing token is not an error here; Transform
// reports it so the UI can show it like any other submission failure.
func NewClient(config ClientConfig) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Options == (Options{}) {
		config.Options = DefaultOptions()
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
			},
		}
	}
	return &Client{config: config, httpClient: httpClient}
}

// Endpoint returns the full imageToImage URL.
func (c *Client) Endpoint() string {
	return c.config.BaseURL + ImageToImagePath
}

// Transform uploads img with prompt and returns the URL of the first result.
func (c *Client) Transform(ctx context.Context, img Image, prompt string) (string, error) {
	if c.config.Token == "" {
		return "", ErrMissingToken
	}

	body, contentType, err := c.encodeForm(img, prompt)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.Token)

	id := uuid.NewString()
	start := time.Now()
	log.InfoLog.Printf("submission %s: POST %s image=%s token=%s", id,
		log.SanitizeURL(c.Endpoint()), img.Name, log.RedactToken(c.config.Token))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.ErrorLog.Printf("submission %s: request failed: %v", id, err)
		return "", fmt.Errorf("failed to reach transformation API: %w", err)
	}
	defer resp.Body.Close()

	log.InfoLog.Printf("submission %s: status %d in %s", id, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := readAPIError(resp)
		log.ErrorLog.Printf("submission %s: %v", id, apiErr)
		return "", apiErr
	}

	var result transformResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if len(result.Data) == 0 || result.Data[0].URL == "" {
		return "", ErrInvalidResponse
	}
	return result.Data[0].URL, nil
}

// encodeForm builds the multipart body: image, prompt, strength, style, n,
// response_format.
func (c *Client) encodeForm(img Image, prompt string) (io.Reader, string, error) {
	if img.Body == nil {
		return nil, "", fmt.Errorf("image %q has no content", img.Name)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, escapeQuotes(img.Name)))
	header.Set("Content-Type", img.ContentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create image part: %w", err)
	}
	if _, err := io.Copy(part, img.Body); err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}

	opts := c.config.Options
	fields := []struct{ name, value string }{
		{"prompt", prompt},
		{"strength", strconv.FormatFloat(opts.Strength, 'f', -1, 64)},
		{"style", opts.Style},
		{"n", strconv.Itoa(opts.N)},
		{"response_format", opts.ResponseFormat},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", f.name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// readAPIError extracts the best human-readable message from an error response.
// JSON bodies contribute their "message" field, anything else its raw text.
func readAPIError(resp *http.Response) *APIError {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil {
		return NewAPIError(resp.StatusCode, "", err)
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		var body errorResponse
		if err := json.Unmarshal(raw, &body); err != nil {
			return NewAPIError(resp.StatusCode, "", err)
		}
		return NewAPIError(resp.StatusCode, body.Message, nil)
	}
	return NewAPIError(resp.StatusCode, strings.TrimSpace(string(raw)), nil)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
