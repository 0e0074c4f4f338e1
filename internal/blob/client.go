// Package blob implements the HTTP client for the remote blob service.
//
// The service's contract is four verbs over opaque text payloads:
//
//	POST   /blob/new   → 2xx, body is a resource locator ending in the new id
//	GET    /blob/{id}  → 2xx, body is the stored payload
//	PUT    /blob/{id}  → 2xx, payload overwritten
//	DELETE /blob/{id}  → 2xx, payload removed
//
// On non-2xx the service may return a JSON body with a "detail" field; when
// it does, that message is surfaced, otherwise the HTTP status text is used.
// The client performs no retries — retry policy belongs to callers.
package blob

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sakif/snipshare/internal/apperror"
	"github.com/sakif/snipshare/internal/repository"
)

// DefaultBaseURL is the public blob service the original deployment uses.
const DefaultBaseURL = "https://blobse.us.to"

// Compile-time check that Client satisfies the BlobStore interface.
var _ repository.BlobStore = (*Client)(nil)

// Client talks to a blob service at a fixed base URL. The http.Client is
// injected so callers control timeouts and transport settings; the zero
// value of those concerns is deliberately not imposed here.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a blob client. A nil httpClient falls back to
// http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// Create stores the payload and returns the identifier the service assigned.
// The response body is a resource locator; the identifier is its final path
// segment.
func (c *Client) Create(ctx context.Context, payload string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, c.baseURL+"/blob/new", "", payload)
	if err != nil {
		return "", err
	}

	locator := strings.TrimSpace(body)
	// Some deployments return the locator as a JSON string rather than
	// plain text; unwrap it before splitting.
	if strings.HasPrefix(locator, `"`) {
		var unquoted string
		if err := json.Unmarshal([]byte(locator), &unquoted); err == nil {
			locator = unquoted
		}
	}

	id := locator
	if i := strings.LastIndex(locator, "/"); i >= 0 {
		id = locator[i+1:]
	}
	if id == "" {
		return "", apperror.Remote(http.StatusOK,
			fmt.Sprintf("create response %q contains no blob id", locator))
	}
	return id, nil
}

// Get retrieves the payload stored at id.
func (c *Client) Get(ctx context.Context, id string) (string, error) {
	return c.do(ctx, http.MethodGet, c.blobURL(id), id, "")
}

// Update overwrites the payload stored at id.
func (c *Client) Update(ctx context.Context, id, payload string) error {
	_, err := c.do(ctx, http.MethodPut, c.blobURL(id), id, payload)
	return err
}

// Delete removes the payload stored at id.
func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, c.blobURL(id), id, "")
	return err
}

func (c *Client) blobURL(id string) string {
	return c.baseURL + "/blob/" + id
}

// do runs one request/response cycle and returns the response body as text.
// All four verbs share the same error translation, so it lives here.
func (c *Client) do(ctx context.Context, method, url, id, payload string) (string, error) {
	var reqBody io.Reader
	if payload != "" {
		reqBody = strings.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return "", fmt.Errorf("blob: building %s request: %w", method, err)
	}
	if payload != "" {
		req.Header.Set("Content-Type", "text/plain")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("blob: %s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("blob: reading %s response: %w", method, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", c.statusError(resp, body, id)
	}
	return string(body), nil
}

// statusError translates a non-2xx response into a typed error. Not-found
// class statuses become ErrNotFound; everything else is ErrRemote with the
// service-supplied detail when one can be decoded.
func (c *Client) statusError(resp *http.Response, body []byte, id string) error {
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return apperror.NotFound(id)
	}

	message := http.StatusText(resp.StatusCode)
	var detail struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &detail); err == nil && detail.Detail != "" {
		message = detail.Detail
	}
	return apperror.Remote(resp.StatusCode, message)
}
