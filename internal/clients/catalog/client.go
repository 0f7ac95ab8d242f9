// Package catalog is the client for the upstream creature catalog API.
// The catalog is read-only reference data; the economy engine treats it as a
// stable oracle for the duration of a single operation.
package catalog

//go:generate mockgen -destination=mock/mock_client.go -package=catalogmock github.com/packvault/collection-api/internal/clients/catalog Client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/packvault/collection-api/internal/errors"
)

const (
	defaultTimeout           = 10 * time.Second
	defaultRequestsPerSecond = 10
	defaultBurst             = 5
)

// Client defines the interface for catalog lookups
type Client interface {
	// GetCreature fetches a catalog entry by creature id.
	// Returns errors.NotFound if the catalog has no such creature.
	// Returns errors.CodeCatalogUnavailable for transport or decode failures.
	GetCreature(ctx context.Context, creatureID string) (*CreatureEntry, error)
}

// Config holds the settings for the HTTP catalog client
type Config struct {
	// BaseURL is the catalog API root, e.g. "https://catalog.example.com/api/v1".
	BaseURL string
	// HTTPClient is optional; a client with a default timeout is used when nil.
	HTTPClient *http.Client
	// RequestsPerSecond caps outbound catalog calls. Zero means the default.
	RequestsPerSecond float64
	// Burst is the rate limiter burst size. Zero means the default.
	Burst int
}

// Validate validates the Config
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("BaseURL", cfg.BaseURL, vb)
	if cfg.BaseURL != "" {
		if _, err := url.Parse(cfg.BaseURL); err != nil {
			vb.InvalidField("BaseURL", err.Error())
		}
	}
	return vb.Build()
}

type client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// New creates a new catalog client
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	rps := cfg.RequestsPerSecond
	if rps == 0 {
		rps = defaultRequestsPerSecond
	}
	burst := cfg.Burst
	if burst == 0 {
		burst = defaultBurst
	}

	return &client{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
	}, nil
}

func (c *client) GetCreature(ctx context.Context, creatureID string) (*CreatureEntry, error) {
	if creatureID == "" {
		return nil, errors.InvalidArgument("creature ID cannot be empty")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCatalogUnavailable, "catalog rate limit wait canceled")
	}

	endpoint := fmt.Sprintf("%s/creatures/%s", c.baseURL, url.PathEscape(creatureID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCatalogUnavailable, "failed to build catalog request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "catalog request failed",
			"creature_id", creatureID,
			"error", err.Error())
		return nil, errors.WrapWithCodef(err, errors.CodeCatalogUnavailable,
			"catalog lookup failed for creature %s", creatureID)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.NotFoundf("creature %s not found in catalog", creatureID)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.Newf(errors.CodeCatalogUnavailable,
			"catalog returned status %d for creature %s: %s", resp.StatusCode, creatureID, string(body))
	}

	var entry CreatureEntry
	if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeCatalogUnavailable,
			"failed to decode catalog entry for creature %s", creatureID)
	}

	if entry.ID == "" {
		entry.ID = creatureID
	}

	return &entry, nil
}
