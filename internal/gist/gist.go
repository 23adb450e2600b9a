// Package gist uploads code snippets to GitHub Gist and reads them back.
package gist

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/blacktop/swtws/internal/logutil"
	"github.com/google/go-github/v66/github"
)

var httpTimeout = 30 * time.Second

// Client talks to the Gist API. A client without a token can only read.
type Client struct {
	gh *github.Client
}

// Option customizes a Client.
type Option func(*Client) error

// WithBaseURL points the client at another API root, e.g. a test server.
func WithBaseURL(raw string) Option {
	return func(c *Client) error {
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("parse base url: %w", err)
		}
		c.gh.BaseURL = u
		return nil
	}
}

// New constructs a Gist client authenticated with token, when non-empty.
func New(token string, opts ...Option) (*Client, error) {
	gh := github.NewClient(&http.Client{Timeout: httpTimeout})
	if token != "" {
		gh = gh.WithAuthToken(token)
	}
	c := &Client{gh: gh}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Create uploads a single-file public gist and returns its id.
func (c *Client) Create(ctx context.Context, filename, content, description string) (string, error) {
	logutil.Debugf("creating gist: file=%s bytes=%d", filename, len(content))
	g, _, err := c.gh.Gists.Create(ctx, &github.Gist{
		Description: github.String(description),
		Public:      github.Bool(true),
		Files: map[github.GistFilename]github.GistFile{
			github.GistFilename(filename): {Content: github.String(content)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("create gist: %w", err)
	}
	id := g.GetID()
	if id == "" {
		return "", errors.New("create gist: empty id in response")
	}
	logutil.Debugf("gist created: id=%s", id)
	return id, nil
}

// File returns the name and content of the first file (by name) of a gist.
func (c *Client) File(ctx context.Context, id string) (string, string, error) {
	logutil.Debugf("fetching gist: id=%s", id)
	g, _, err := c.gh.Gists.Get(ctx, id)
	if err != nil {
		return "", "", fmt.Errorf("get gist %s: %w", id, err)
	}
	if len(g.Files) == 0 {
		return "", "", fmt.Errorf("gist %s has no files", id)
	}
	names := make([]string, 0, len(g.Files))
	for name := range g.Files {
		names = append(names, string(name))
	}
	sort.Strings(names)
	file := g.Files[github.GistFilename(names[0])]
	return names[0], file.GetContent(), nil
}
