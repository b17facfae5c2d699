package requests

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"raidlog/pkg/config"
	"strings"
	"sync"
	"time"
)

// Cache for the WCL OAuth token.
// The token is shared by every request of the process and refreshed a bit
// before it expires, so parallel ingestions never race on a stale header.
type tokenCache struct {
	mu      sync.Mutex
	value   string
	expires time.Time
}

// Get the bearer header value, requesting a new token when needed.
func (t *tokenCache) bearer(ctx context.Context, client *http.Client) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	if t.value != "" && now.Before(t.expires) {
		return t.value, nil
	}

	if config.Wcl.ClientID == "" || config.Wcl.ClientSecret == "" {
		return "", fmt.Errorf("WCL_CLIENT_ID and WCL_CLIENT_SECRET must be set")
	}

	form := url.Values{
		"grant_type": []string{"client_credentials"},
	}

	req, err := http.NewRequestWithContext(
		ctx,
		"POST",
		config.Wcl.OAuthURL,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return "", fmt.Errorf("couldn't create the token request: %w", err)
	}
	req.SetBasicAuth(config.Wcl.ClientID, config.Wcl.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status code %d", resp.StatusCode)
	}

	var token struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("failed to parse the token response: %w", err)
	}

	// Refresh a bit early to not run with a token about to expire.
	t.value = "Bearer " + token.AccessToken
	t.expires = now.Add(time.Duration(token.ExpiresIn-60) * time.Second)

	return t.value, nil
}
