package biolomics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/oauth2"

	"github.com/mirri-tools/strainsync/internal/errors"
	"github.com/mirri-tools/strainsync/internal/logging"
)

// Package-level logger specific to the biolomics service
var (
	logger          *slog.Logger
	serviceLevelVar = new(slog.LevelVar)
	closeLogger     func() error
)

func init() {
	var err error
	logFilePath := filepath.Join("logs", "biolomics.log")
	serviceLevelVar.Set(slog.LevelInfo)

	logger, closeLogger, err = logging.NewFileLogger(logFilePath, "biolomics", serviceLevelVar)
	if err != nil {
		log.Printf("Failed to initialize biolomics file logger at %s: %v. Service logging disabled.", logFilePath, err)
		fbHandler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: serviceLevelVar})
		logger = slog.New(fbHandler).With("service", "biolomics")
		closeLogger = func() error { return nil }
	}
}

// Config carries the catalog connection settings.
type Config struct {
	ServerURL    string // e.g. https://webservices.example.org
	APIVersion   string // path segment, e.g. "v2"
	Username     string
	Password     string
	ClientID     string
	ClientSecret string
	WebsiteID    string // tenant id sent as the websiteId header
	Timeout      time.Duration
}

const (
	defaultAPIVersion = "v2"
	defaultTimeout    = 30 * time.Second
	resolveCacheTTL   = 10 * time.Minute
)

// txEntry is one logged creation inside a client-side transaction.
type txEntry struct {
	endpoint Endpoint
	recordID int
}

// Client talks to a Biolomics-style catalog. A Client is meant for
// sequential use by a single caller; the token source and schema cache are
// guarded for safety but operations are not otherwise synchronized.
type Client struct {
	config     Config
	httpClient *http.Client

	oauthConfig *oauth2.Config
	tokenMu     sync.Mutex
	tokenSource oauth2.TokenSource

	schemaMu sync.Mutex
	schema   catalogSchema

	// resolveCache keeps name-resolution hits; reference-heavy strains
	// look the same media and taxa up over and over.
	resolveCache *cache.Cache

	txActive bool
	txLog    []txEntry
}

// NewClient validates the configuration and builds a catalog client. No
// network traffic happens until the first operation; the OAuth token and the
// schema are both fetched lazily.
func NewClient(config Config) (*Client, error) {
	if config.ServerURL == "" {
		return nil, errors.Newf("catalog server URL is required").
			Category(errors.CategoryConfiguration).Component("biolomics").Build()
	}
	if config.Username == "" || config.Password == "" {
		return nil, errors.Newf("catalog credentials are required").
			Category(errors.CategoryConfiguration).Component("biolomics").Build()
	}
	if config.APIVersion == "" {
		config.APIVersion = defaultAPIVersion
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}

	client := &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		oauthConfig: &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL: config.ServerURL + "/connect/token",
			},
		},
		resolveCache: cache.New(resolveCacheTTL, 2*resolveCacheTTL),
	}

	logger.Info("catalog client initialized",
		"server_url", config.ServerURL,
		"api_version", config.APIVersion,
		"website_id", config.WebsiteID)
	return client, nil
}

// Close releases the client's resources.
func (c *Client) Close() {
	logger.Info("closing catalog client")
	if closeLogger != nil {
		if err := closeLogger(); err != nil {
			log.Printf("Error closing biolomics logger: %v", err)
		}
	}
}

// token returns a bearer token, acquiring one via the password grant on
// first use. The token source refreshes expired tokens on its own.
func (c *Client) token(ctx context.Context) (string, error) {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()
	if c.tokenSource == nil {
		authCtx := context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
		tok, err := c.oauthConfig.PasswordCredentialsToken(authCtx, c.config.Username, c.config.Password)
		if err != nil {
			return "", errors.Newf("token acquisition failed: %w", err).
				Category(errors.CategoryConfiguration).Component("biolomics").
				Context("token_url", c.oauthConfig.Endpoint.TokenURL).Build()
		}
		c.tokenSource = c.oauthConfig.TokenSource(authCtx, tok)
		logger.Info("catalog token acquired", "expires", tok.Expiry)
	}
	tok, err := c.tokenSource.Token()
	if err != nil {
		return "", errors.Newf("token refresh failed: %w", err).
			Category(errors.CategoryConfiguration).Component("biolomics").Build()
	}
	return tok.AccessToken, nil
}

// URL layout of the catalog.

func (c *Client) detailURL(spec endpointSpec, recordID int) string {
	return fmt.Sprintf("%s/%s/data/%s/%d", c.config.ServerURL, c.config.APIVersion, spec.path, recordID)
}

func (c *Client) listURL(spec endpointSpec) string {
	return fmt.Sprintf("%s/data/%s", c.config.ServerURL, spec.path)
}

func (c *Client) searchURL(spec endpointSpec) string {
	return fmt.Sprintf("%s/%s/search/%s", c.config.ServerURL, c.config.APIVersion, spec.path)
}

func (c *Client) findByNameURL(spec endpointSpec, name string) string {
	return fmt.Sprintf("%s/%s/search/%s/findByName?name=%s",
		c.config.ServerURL, c.config.APIVersion, spec.path, url.QueryEscape(name))
}

func (c *Client) schemasURL() string {
	return c.config.ServerURL + "/schemas"
}

// errAbsent marks a 404 from a retrieve or find; callers translate it into
// a nil entity.
var errAbsent = errors.Newf("record absent").
	Category(errors.CategoryNotFound).Component("biolomics").Build()

// doRequest performs one authenticated HTTP round trip.
func (c *Client) doRequest(ctx context.Context, method, reqURL string, body []byte, result any) error {
	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return errors.Newf("failed to create HTTP request: %w", err).
			Category(errors.CategoryNetwork).Component("biolomics").
			Context("method", method).Context("url", reqURL).Build()
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if c.config.WebsiteID != "" {
		req.Header.Set("websiteId", c.config.WebsiteID)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("catalog request failed", "method", method, "url", reqURL, "error", err)
		return errors.Newf("HTTP request failed: %w", err).
			Category(errors.CategoryNetwork).Component("biolomics").
			Context("method", method).Context("url", reqURL).Build()
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Newf("failed to read response body: %w", err).
			Category(errors.CategoryNetwork).Component("biolomics").
			Context("url", reqURL).Context("status_code", resp.StatusCode).Build()
	}

	if resp.StatusCode == http.StatusNotFound {
		return errAbsent
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("catalog error response",
			"method", method, "url", reqURL,
			"status_code", resp.StatusCode, "body", string(respBody))
		return errors.Newf("catalog error (status %d): %s", resp.StatusCode, string(respBody)).
			Category(statusCategory(resp.StatusCode)).Component("biolomics").
			Context("status_code", resp.StatusCode).Context("url", reqURL).Build()
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return errors.Newf("failed to parse catalog response: %w", err).
				Category(errors.CategoryParsing).Component("biolomics").
				Context("url", reqURL).Context("response_size", len(respBody)).Build()
		}
	}
	logger.Debug("catalog request",
		"method", method, "url", reqURL,
		"status_code", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

// doRequestWithRetry retries transient failures with a linear backoff.
// Client errors and absences are terminal.
func (c *Client) doRequestWithRetry(ctx context.Context, method, reqURL string, body []byte, result any) error {
	const maxRetries = 3
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err := c.doRequest(ctx, method, reqURL, body, result)
		if err == nil {
			return nil
		}
		if errors.Is(err, errAbsent) {
			return err
		}

		var enhanced *errors.EnhancedError
		if errors.As(err, &enhanced) {
			if enhanced.Category == errors.CategoryConfiguration ||
				enhanced.Category == errors.CategoryValidation ||
				enhanced.Category == errors.CategoryParsing {
				return err
			}
			if status, ok := enhanced.Context["status_code"].(int); ok {
				if status >= 400 && status < 500 && status != http.StatusTooManyRequests {
					return err
				}
			}
		}

		lastErr = err
		if ctx.Err() != nil {
			return lastErr
		}
		if attempt < maxRetries-1 {
			delay := time.Duration(attempt+1) * 500 * time.Millisecond
			logger.Warn("catalog request failed, retrying",
				"attempt", attempt+1, "max_retries", maxRetries,
				"delay_ms", delay.Milliseconds(), "url", reqURL, "error", err.Error())
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return lastErr
}

func statusCategory(status int) errors.ErrorCategory {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return errors.CategoryConfiguration
	case status == http.StatusTooManyRequests:
		return errors.CategoryLimit
	case status == http.StatusNotFound:
		return errors.CategoryNotFound
	default:
		return errors.CategoryNetwork
	}
}

// ensureSchema fetches the catalog schema once per client lifetime and runs
// the field-drift diagnostic for the strain view.
func (c *Client) ensureSchema(ctx context.Context) (catalogSchema, error) {
	c.schemaMu.Lock()
	defer c.schemaMu.Unlock()
	if c.schema != nil {
		return c.schema, nil
	}
	var tables []schemaTable
	if err := c.doRequestWithRetry(ctx, http.MethodGet, c.schemasURL(), nil, &tables); err != nil {
		return nil, err
	}
	c.schema = buildCatalogSchema(tables)
	logger.Info("catalog schema loaded", "views", len(c.schema))
	if strainFields, ok := c.schema[endpoints[EndpointStrain].view]; ok {
		diagnoseSchema(strainFields)
	}
	return c.schema, nil
}

// RetrieveByID fetches one record. Absent records return a nil entity.
func (c *Client) RetrieveByID(ctx context.Context, endpoint Endpoint, recordID int) (any, error) {
	spec, err := endpoint.spec()
	if err != nil {
		return nil, err
	}
	var rec Record
	err = c.doRequestWithRetry(ctx, http.MethodGet, c.detailURL(spec, recordID), nil, &rec)
	if errors.Is(err, errAbsent) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return spec.from(&rec)
}

// RetrieveByName fetches one record by its record name. Absent records
// return a nil entity.
func (c *Client) RetrieveByName(ctx context.Context, endpoint Endpoint, name string) (any, error) {
	rec, err := c.ResolveName(ctx, endpoint, name)
	if err != nil || rec == nil {
		return nil, err
	}
	spec, err := endpoint.spec()
	if err != nil {
		return nil, err
	}
	return spec.from(rec)
}

// ResolveName fetches the raw envelope behind a record name, satisfying the
// serializers' Resolver capability. Hits are cached.
func (c *Client) ResolveName(ctx context.Context, endpoint Endpoint, name string) (*Record, error) {
	spec, err := endpoint.spec()
	if err != nil {
		return nil, err
	}
	cacheKey := spec.name + ":" + name
	if cached, found := c.resolveCache.Get(cacheKey); found {
		if rec, ok := cached.(*Record); ok {
			return rec, nil
		}
	}
	var rec Record
	err = c.doRequestWithRetry(ctx, http.MethodGet, c.findByNameURL(spec, name), nil, &rec)
	if errors.Is(err, errAbsent) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.resolveCache.Set(cacheKey, &rec, cache.DefaultExpiration)
	return &rec, nil
}

// SearchResult carries a search's total hit count and the deserialized page.
type SearchResult struct {
	Total   int
	Records []any
}

// Search runs a structured query against an endpoint.
func (c *Client) Search(ctx context.Context, endpoint Endpoint, query SearchQuery) (*SearchResult, error) {
	spec, err := endpoint.spec()
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, errors.Newf("failed to encode search query: %w", err).
			Category(errors.CategoryParsing).Component("biolomics").Build()
	}
	var resp searchResponse
	if err := c.doRequestWithRetry(ctx, http.MethodPost, c.searchURL(spec), body, &resp); err != nil {
		return nil, err
	}
	result := &SearchResult{Total: resp.Total, Records: make([]any, 0, len(resp.Records))}
	for i := range resp.Records {
		entity, err := spec.from(&resp.Records[i])
		if err != nil {
			return nil, err
		}
		result.Records = append(result.Records, entity)
	}
	return result, nil
}

// Create serializes the entity, validates the payload against the catalog
// schema, posts it, and returns the entity as echoed back with its assigned
// record id. Inside a transaction the creation is logged for rollback.
func (c *Client) Create(ctx context.Context, endpoint Endpoint, entity any) (any, error) {
	spec, err := endpoint.spec()
	if err != nil {
		return nil, err
	}
	rec, err := spec.to(ctx, entity, c, false)
	if err != nil {
		return nil, err
	}
	if err := c.validatePayload(ctx, spec, rec, false); err != nil {
		return nil, err
	}
	body, err := json.Marshal(rec)
	if err != nil {
		return nil, errors.Newf("failed to encode record: %w", err).
			Category(errors.CategoryParsing).Component("biolomics").Build()
	}
	var created Record
	if err := c.doRequestWithRetry(ctx, http.MethodPost, c.listURL(spec), body, &created); err != nil {
		return nil, err
	}
	if c.txActive && created.RecordID != 0 {
		// prepended so rollback walks creations newest first
		c.txLog = append([]txEntry{{endpoint: endpoint, recordID: created.RecordID}}, c.txLog...)
	}
	logger.Info("record created", "endpoint", spec.name, "record_id", created.RecordID, "record_name", created.RecordName)
	return spec.from(&created)
}

// Update serializes the entity with its remote identity and puts it.
func (c *Client) Update(ctx context.Context, endpoint Endpoint, entity any) (any, error) {
	spec, err := endpoint.spec()
	if err != nil {
		return nil, err
	}
	rec, err := spec.to(ctx, entity, c, true)
	if err != nil {
		return nil, err
	}
	if err := c.validatePayload(ctx, spec, rec, true); err != nil {
		return nil, err
	}
	body, err := json.Marshal(rec)
	if err != nil {
		return nil, errors.Newf("failed to encode record: %w", err).
			Category(errors.CategoryParsing).Component("biolomics").Build()
	}
	var updated Record
	if err := c.doRequestWithRetry(ctx, http.MethodPut, c.listURL(spec), body, &updated); err != nil {
		return nil, err
	}
	logger.Info("record updated", "endpoint", spec.name, "record_id", updated.RecordID)
	return spec.from(&updated)
}

func (c *Client) validatePayload(ctx context.Context, spec endpointSpec, rec *Record, update bool) error {
	schema, err := c.ensureSchema(ctx)
	if err != nil {
		return err
	}
	fields, ok := schema[spec.view]
	if !ok {
		// catalogs may omit views for resolution-only endpoints
		logger.Debug("no schema view for endpoint, skipping payload validation", "endpoint", spec.name)
		return nil
	}
	return validateRecord(fields, rec, update)
}

// DeleteByID removes a record.
func (c *Client) DeleteByID(ctx context.Context, endpoint Endpoint, recordID int) error {
	spec, err := endpoint.spec()
	if err != nil {
		return err
	}
	if err := c.doRequestWithRetry(ctx, http.MethodDelete, c.detailURL(spec, recordID), nil, nil); err != nil {
		return err
	}
	logger.Info("record deleted", "endpoint", spec.name, "record_id", recordID)
	return nil
}

// DeleteByName resolves a record name and removes the record behind it.
func (c *Client) DeleteByName(ctx context.Context, endpoint Endpoint, name string) error {
	rec, err := c.ResolveName(ctx, endpoint, name)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.Newf("record %q not found", name).
			Category(errors.CategoryNotFound).Component("biolomics").
			Context("endpoint", endpoint.String()).Build()
	}
	c.resolveCache.Delete(endpoint.String() + ":" + name)
	return c.DeleteByID(ctx, endpoint, rec.RecordID)
}
