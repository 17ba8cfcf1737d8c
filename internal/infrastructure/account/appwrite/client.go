// Package appwrite verifies end-user sessions against an Appwrite
// account endpoint. Signup and login live in the identity provider;
// this client only exchanges a session JWT for the account behind it.
package appwrite

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/aryasetia/dropshot/internal/domain/user"
	"github.com/aryasetia/dropshot/internal/platform/cache"
	"github.com/aryasetia/dropshot/internal/platform/logging"
	"github.com/aryasetia/dropshot/internal/usecase"
)

const verifiedTokenTTL = 30 * time.Second

type Client struct {
	httpClient *http.Client
	accountURL string
	projectID  string
	logger     *logging.Logger
	verified   *cache.Store[string, user.Principal]
}

func NewClient(httpClient *http.Client, endpoint, projectID string, logger *logging.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &Client{
		httpClient: httpClient,
		accountURL: buildURL(endpoint, "/v1/account"),
		projectID:  projectID,
		logger:     logger,
		verified:   cache.NewStore[string, user.Principal](verifiedTokenTTL),
	}
}

// VerifySession resolves a session JWT to the account it belongs to.
// Recently verified tokens are served from the cache.
func (c *Client) VerifySession(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	return c.verified.GetOrLoad(token, func() (user.Principal, error) {
		return c.fetchAccount(ctx, token)
	})
}

func (c *Client) fetchAccount(ctx context.Context, token string) (user.Principal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.accountURL, nil)
	if err != nil {
		return user.Principal{}, errors.Wrap(err, "create account request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Appwrite-Project", c.projectID)
	req.Header.Set("X-Appwrite-JWT", token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: request account: %v", usecase.ErrDependencyUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return user.Principal{}, fmt.Errorf("%w: session rejected", usecase.ErrUnauthorized)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return user.Principal{}, errors.Wrap(err, "read account response")
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "appwrite account non-200", "status_code", resp.StatusCode)
		return user.Principal{}, fmt.Errorf("%w: account endpoint returned status %d", usecase.ErrDependencyUnavailable, resp.StatusCode)
	}

	var decoded accountResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, errors.Wrap(err, "unmarshal account response")
	}
	if strings.TrimSpace(decoded.ID) == "" {
		return user.Principal{}, errors.New("invalid account response: $id is empty")
	}

	return user.Principal{
		UserID: decoded.ID,
		Name:   decoded.Name,
	}, nil
}

type accountResponse struct {
	ID   string `json:"$id"`
	Name string `json:"name"`
}

func buildURL(baseURL, path string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)
	if path == "" {
		return baseURL
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	// Endpoints configured with the /v1 suffix already in place.
	if strings.HasSuffix(baseURL, "/v1") && strings.HasPrefix(path, "/v1/") {
		path = strings.TrimPrefix(path, "/v1")
	}
	return baseURL + path
}
