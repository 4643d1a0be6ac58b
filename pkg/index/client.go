package index

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"github.com/reqwire/reqwire/pkg/cleanhttp"
	"github.com/reqwire/reqwire/pkg/data"
	"github.com/reqwire/reqwire/pkg/manifest"
	"github.com/reqwire/reqwire/pkg/pyver"
)

const DefaultBaseURL = "https://pypi.org"

var ErrNotFound = errors.New("package not found on index")

// Client speaks the JSON API that PyPI style package indexes expose
// at /pypi/<name>/json.
type Client struct {
	BaseURL  string
	CacheDir string

	logger hclog.Logger
}

func NewClient(base, cacheDir string) *Client {
	if base == "" {
		base = DefaultBaseURL
	}

	return &Client{
		BaseURL:  base,
		CacheDir: cacheDir,
	}
}

func (c *Client) L() hclog.Logger {
	if c.logger != nil {
		return c.logger
	}

	c.logger = hclog.L()

	return c.logger
}

func (c *Client) SetLogger(logger hclog.Logger) {
	c.logger = logger
}

func (c *Client) Project(ctx context.Context, name string) (*data.ProjectInfo, error) {
	norm := manifest.NormalizeName(name)

	if raw, ok := c.cached(norm); ok {
		var pi data.ProjectInfo

		if err := json.Unmarshal(raw, &pi); err == nil {
			return &pi, nil
		}

		// fall through and refetch on a corrupt cache entry
	}

	url := fmt.Sprintf("%s/pypi/%s/json", strings.TrimSuffix(c.BaseURL, "/"), norm)

	c.L().Debug("fetching project info", "url", url)

	resp, err := cleanhttp.Get(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %s", url)
	}

	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// ok
	case http.StatusNotFound:
		return nil, errors.Wrapf(ErrNotFound, "%s", norm)
	default:
		return nil, errors.Errorf("index returned %d for %s", resp.StatusCode, norm)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	c.store(norm, raw)

	var pi data.ProjectInfo

	err = json.Unmarshal(raw, &pi)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding project info for %s", norm)
	}

	return &pi, nil
}

// Versions returns the released versions of a package in ascending
// order. Release tokens the version parser rejects are skipped.
func (c *Client) Versions(ctx context.Context, name string) ([]*semver.Version, error) {
	pi, err := c.Project(ctx, name)
	if err != nil {
		return nil, err
	}

	var vers []*semver.Version

	for tok := range pi.Releases {
		v, err := pyver.ParseVersion(tok)
		if err != nil {
			c.L().Debug("skipping unparseable release", "package", name, "version", tok)
			continue
		}

		vers = append(vers, v)
	}

	sort.Sort(semver.Collection(vers))

	return vers, nil
}

func (c *Client) Latest(ctx context.Context, name string) (string, error) {
	pi, err := c.Project(ctx, name)
	if err != nil {
		return "", err
	}

	return pi.Info.Version, nil
}
