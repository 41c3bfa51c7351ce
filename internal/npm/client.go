package npm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os/exec"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/bookpm/bookpm/internal/branding"
	"github.com/bookpm/bookpm/internal/registry"
)

// ClientOptions configures a registry Client.
type ClientOptions struct {
	// RegistryURL overrides the registry. When empty, Load asks npm for its
	// configured registry and falls back to the public one.
	RegistryURL string
	// EngineKey is the key under "engines" that carries the compatibility
	// range (e.g., "gitbook").
	EngineKey string
	// NPMPath is the npm executable. Empty means look it up on PATH.
	NPMPath   string
	UserAgent string
	Logger    *zap.Logger
}

var (
	_ registry.Loader         = (*Client)(nil)
	_ registry.VersionQuerier = (*Client)(nil)
)

// Client queries an npm registry for published versions. It must be loaded
// before use; registry.Registry does that through its load guard.
type Client struct {
	opts ClientOptions
	log  *zap.Logger

	mu   sync.RWMutex
	http *resty.Client
	base string
}

// NewClient returns an unloaded Client.
func NewClient(opts ClientOptions) *Client {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.EngineKey == "" {
		opts.EngineKey = branding.EngineName()
	}
	return &Client{opts: opts, log: log}
}

// Load settles which registry to talk to and prepares the HTTP client.
func (c *Client) Load(ctx context.Context) error {
	base := c.opts.RegistryURL
	source := "config"
	if base == "" {
		base = c.npmRegistry(ctx)
		source = "npm"
	}
	if base == "" {
		base = branding.DefaultRegistry()
		source = "default"
	}

	u, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("parsing registry URL %q: %w", base, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("registry URL %q must be http or https", base)
	}
	base = strings.TrimSuffix(u.String(), "/")

	rc := resty.New().
		SetBaseURL(base).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	if c.opts.UserAgent != "" {
		rc.SetHeader("User-Agent", c.opts.UserAgent)
	}

	c.mu.Lock()
	c.http = rc
	c.base = base
	c.mu.Unlock()

	c.log.Debug("registry loaded", zap.String("url", base), zap.String("source", source))
	return nil
}

// Registry returns the registry base URL, or "" before Load.
func (c *Client) Registry() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.base
}

// npmRegistry asks the npm executable for its configured registry. Any
// failure yields "", leaving the caller to fall back.
func (c *Client) npmRegistry(ctx context.Context) string {
	bin, err := lookNPM(c.opts.NPMPath)
	if err != nil {
		c.log.Debug("npm not available for registry lookup", zap.Error(err))
		return ""
	}
	out, err := exec.CommandContext(ctx, bin, "config", "get", "registry").Output()
	if err != nil {
		c.log.Debug("npm config get registry failed", zap.Error(err))
		return ""
	}
	v := strings.TrimSpace(string(out))
	if v == "undefined" || v == "null" {
		return ""
	}
	return v
}

type packument struct {
	Versions map[string]struct {
		Engines json.RawMessage `json:"engines"`
	} `json:"versions"`
}

// QueryVersions returns every published version of packageName with its
// compatibility range. A package the registry does not know has no
// versions; that is not an error.
func (c *Client) QueryVersions(ctx context.Context, packageName string) (map[string]registry.Declaration, error) {
	c.mu.RLock()
	rc := c.http
	c.mu.RUnlock()
	if rc == nil {
		return nil, errors.New("registry client used before Load")
	}

	resp, err := rc.R().
		SetContext(ctx).
		Get("/" + url.PathEscape(packageName))
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", packageName, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return map[string]registry.Declaration{}, nil
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetching %s: registry returned %s", packageName, resp.Status())
	}

	var doc packument
	if err := json.Unmarshal(resp.Body(), &doc); err != nil {
		return nil, fmt.Errorf("decoding metadata for %s: %w", packageName, err)
	}

	result := make(map[string]registry.Declaration, len(doc.Versions))
	for tag, v := range doc.Versions {
		result[tag] = registry.Declaration{Compatibility: engineRange(v.Engines, c.opts.EngineKey)}
	}

	c.log.Debug("queried versions", zap.String("package", packageName), zap.Int("versions", len(result)))
	return result, nil
}

// engineRange reads engines[key] when engines is an object with a string
// value there. Old packages sometimes publish engines as an array; those
// declare nothing for us.
func engineRange(raw json.RawMessage, key string) string {
	if len(raw) == 0 {
		return ""
	}
	var engines map[string]any
	if err := json.Unmarshal(raw, &engines); err != nil {
		return ""
	}
	rng, _ := engines[key].(string)
	return rng
}
