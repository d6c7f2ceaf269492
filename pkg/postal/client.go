package postal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/lamuse/classtee-backend/pkg/errors"
	"github.com/lamuse/classtee-backend/pkg/types"
)

const (
	defaultBaseURL = "https://zipcloud.ibsnet.co.jp/api"
	defaultTimeout = 5 * time.Second

	responseBodyReadLimit int64 = 1024
)

// Client looks up Japanese addresses by postal code against a
// zipcloud-compatible search API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the search API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// NewClient builds the postal lookup client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client
}

type searchResponse struct {
	Status  int     `json:"status"`
	Message *string `json:"message"`
	Results []struct {
		Zipcode  string `json:"zipcode"`
		Address1 string `json:"address1"`
		Address2 string `json:"address2"`
		Address3 string `json:"address3"`
	} `json:"results"`
}

// Search resolves a seven-digit postal code. A code with no match returns a
// NOT_FOUND error; transport and upstream failures return DEPENDENCY_ERROR.
func (c *Client) Search(ctx context.Context, postalCode string) (types.Address, error) {
	if c == nil {
		return types.Address{}, pkgerrors.New(pkgerrors.CodeDependency, "postal client not configured")
	}
	code := types.NormalizePostalCode(postalCode)
	if code == "" {
		return types.Address{}, pkgerrors.New(pkgerrors.CodeValidation, "postal code must be 7 digits")
	}

	endpoint := fmt.Sprintf("%s/search?%s", strings.TrimRight(c.baseURL, "/"), url.Values{"zipcode": {code}}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return types.Address{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build postal search request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return types.Address{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute postal search request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return types.Address{}, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "postal search request failed")
	}

	var apiResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return types.Address{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode postal search response")
	}
	if apiResp.Status != 0 && apiResp.Status != http.StatusOK {
		detail := ""
		if apiResp.Message != nil {
			detail = *apiResp.Message
		}
		return types.Address{}, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", apiResp.Status, detail), "postal search rejected")
	}
	if len(apiResp.Results) == 0 {
		return types.Address{}, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
	}

	first := apiResp.Results[0]
	return types.Address{
		PostalCode: code,
		Prefecture: first.Address1,
		City:       first.Address2,
		Town:       first.Address3,
	}, nil
}
