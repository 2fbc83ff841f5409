package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	domain "github.com/example/drive-gateway-demo/domain/drive"
)

const (
	defaultBaseURL = "https://www.googleapis.com/drive/v3"

	// searchFields trims the by-name search response to the fields the
	// gateway actually reads.
	searchFields = "files(id,name,mimeType,shortcutDetails)"

	clientTimeout = 30 * time.Second
)

// Client is a minimal Google Drive v3 files client. Every call carries the
// API key and the shared-drive flags; nothing is cached or retried.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// NewClient creates a client against the public Drive API.
func NewClient(apiKey string) *Client {
	return NewClientWithBaseURL(apiKey, defaultBaseURL)
}

// NewClientWithBaseURL points the client at a non-default API endpoint.
// Tests use this to target a local fake provider.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: clientTimeout},
	}
}

// ListFolder returns all entries whose parent is folderID, in provider order.
func (c *Client) ListFolder(ctx context.Context, folderID string) (*domain.FileList, error) {
	query := fmt.Sprintf("'%s' in parents", folderID)
	body, err := c.get(ctx, "/files", url.Values{"q": {query}}, ErrListFailed)
	if err != nil {
		return nil, err
	}

	var list domain.FileList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("%w: decoding listing response: %v", ErrListFailed, err)
	}
	return &list, nil
}

// FindByName returns the entries whose name equals name and whose parent is
// folderID. Single quotes in name are escaped before insertion into the
// query expression.
func (c *Client) FindByName(ctx context.Context, folderID, name string) (*domain.FileList, error) {
	query := fmt.Sprintf("name='%s' and '%s' in parents", escapeQueryValue(name), folderID)
	params := url.Values{
		"q":      {query},
		"fields": {searchFields},
	}
	body, err := c.get(ctx, "/files", params, ErrSearchFailed)
	if err != nil {
		return nil, err
	}

	var list domain.FileList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("%w: decoding search response: %v", ErrSearchFailed, err)
	}
	return &list, nil
}

// GetFile fetches a single entry's metadata by id. Used to resolve a
// shortcut to its target.
func (c *Client) GetFile(ctx context.Context, id string) (*domain.File, error) {
	body, err := c.get(ctx, "/files/"+url.PathEscape(id), nil, ErrTargetFetchFailed)
	if err != nil {
		return nil, err
	}

	var file domain.File
	if err := json.Unmarshal(body, &file); err != nil {
		return nil, fmt.Errorf("%w: decoding metadata response: %v", ErrTargetFetchFailed, err)
	}
	return &file, nil
}

// Download returns the exact byte content of the entry with the given id.
func (c *Client) Download(ctx context.Context, id string) ([]byte, error) {
	return c.get(ctx, "/files/"+url.PathEscape(id), url.Values{"alt": {"media"}}, ErrDownloadFailed)
}

// get issues one GET with the key and shared-drive flags attached. A non-2xx
// status maps to callErr; the upstream body is discarded in that case so no
// partially-read bytes escape to the caller.
func (c *Client) get(ctx context.Context, path string, params url.Values, callErr error) ([]byte, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("supportsAllDrives", "true")
	params.Set("includeItemsFromAllDrives", "true")
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", callErr, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", callErr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, callErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", callErr, err)
	}
	return body, nil
}

// escapeQueryValue escapes the single-quote character for embedding a string
// literal in a Drive query expression. The query language only needs '
// escaped; this is not a general-purpose sanitizer.
func escapeQueryValue(v string) string {
	return strings.ReplaceAll(v, "'", `\'`)
}
