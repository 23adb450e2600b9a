// Package speaker resolves tweet attachments through external services and
// publishes tweets with pacing.
//
// Every operation takes an ordered slice of tweets and returns a new slice of
// the same length and order; the input slice is never modified.
package speaker

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/blacktop/swtws/internal/gist"
	"github.com/blacktop/swtws/internal/logutil"
	"github.com/blacktop/swtws/internal/publish"
	"github.com/blacktop/swtws/internal/publish/bluesky"
	"github.com/blacktop/swtws/internal/publish/mastodon"
	"github.com/blacktop/swtws/internal/publish/twitter"
	"github.com/blacktop/swtws/internal/render"
	"golang.org/x/sync/errgroup"
)

// Publish targets.
const (
	TargetTwitter  = "twitter"
	TargetMastodon = "mastodon"
	TargetBluesky  = "bluesky"
)

// Targets lists the supported publish targets.
var Targets = []string{TargetTwitter, TargetMastodon, TargetBluesky}

const defaultConcurrency = 4

// GistService uploads and fetches code snippets.
type GistService interface {
	Create(ctx context.Context, filename, content, description string) (string, error)
	File(ctx context.Context, id string) (string, string, error)
}

// Renderer draws code into a PNG.
type Renderer interface {
	PNG(w io.Writer, filename, source string) error
}

// MediaUploader uploads a local image and returns a media id.
type MediaUploader interface {
	UploadImage(ctx context.Context, path, alt string) (string, error)
}

// Config carries the credentials and paths a Speaker works with.
type Config struct {
	Twitter     *publish.Credential
	GitHubToken string
	// OutputDir receives rendered code images. A relative path is taken
	// relative to BaseDir.
	OutputDir string
	// BaseDir is the directory of the tweets file; relative image paths are
	// resolved against it.
	BaseDir string
	Target  string
}

// Speaker implements the resolution steps and publishing.
type Speaker struct {
	cfg         Config
	concurrency int

	gists    GistService
	renderer Renderer
	uploader MediaUploader
	poster   publish.Poster
	twitter  *twitter.Client
}

// Option customizes a Speaker.
type Option func(*Speaker)

// WithGists replaces the GitHub Gist client.
func WithGists(g GistService) Option { return func(s *Speaker) { s.gists = g } }

// WithRenderer replaces the code image renderer.
func WithRenderer(r Renderer) Option { return func(s *Speaker) { s.renderer = r } }

// WithUploader replaces the Twitter media uploader.
func WithUploader(u MediaUploader) Option { return func(s *Speaker) { s.uploader = u } }

// WithPoster replaces the publisher selected by Config.Target.
func WithPoster(p publish.Poster) Option { return func(s *Speaker) { s.poster = p } }

// WithConcurrency bounds concurrent uploads within one step.
func WithConcurrency(n int) Option { return func(s *Speaker) { s.concurrency = n } }

// New creates a Speaker. Service clients are created on first use.
func New(cfg Config, opts ...Option) *Speaker {
	if cfg.Target == "" {
		cfg.Target = TargetTwitter
	}
	s := &Speaker{cfg: cfg, concurrency: defaultConcurrency, renderer: render.Renderer{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Speaker) gistService() (GistService, error) {
	if s.gists != nil {
		return s.gists, nil
	}
	c, err := gist.New(s.cfg.GitHubToken)
	if err != nil {
		return nil, err
	}
	s.gists = c
	return c, nil
}

func (s *Speaker) twitterClient(ctx context.Context, step string) (*twitter.Client, error) {
	if s.cfg.Twitter == nil {
		return nil, MissingCredentialError{Step: step, Credential: TwitterCredential}
	}
	if s.twitter == nil {
		c, err := twitter.New(ctx, *s.cfg.Twitter)
		if err != nil {
			return nil, err
		}
		s.twitter = c
	}
	return s.twitter, nil
}

func (s *Speaker) mediaUploader(ctx context.Context) (MediaUploader, error) {
	if s.cfg.Twitter == nil {
		return nil, MissingCredentialError{Step: StepResolveImage, Credential: TwitterCredential}
	}
	if s.uploader != nil {
		return s.uploader, nil
	}
	return s.twitterClient(ctx, StepResolveImage)
}

func (s *Speaker) publisher(ctx context.Context) (publish.Poster, error) {
	if s.cfg.Target == TargetTwitter && s.cfg.Twitter == nil {
		return nil, MissingCredentialError{Step: StepPresentation, Credential: TwitterCredential}
	}
	if s.poster != nil {
		return s.poster, nil
	}
	var (
		p   publish.Poster
		err error
	)
	logutil.Debugf("creating %s publisher", s.cfg.Target)
	switch s.cfg.Target {
	case TargetTwitter:
		p, err = s.twitterClient(ctx, StepPresentation)
	case TargetMastodon:
		p, err = mastodon.New(ctx)
	case TargetBluesky:
		p, err = bluesky.New(ctx, bluesky.Config{PDSURL: bluesky.DefaultPDSURL})
	default:
		err = fmt.Errorf("target %q is not implemented", s.cfg.Target)
	}
	if err != nil {
		return nil, err
	}
	s.poster = p
	return p, nil
}

// path resolves p against the base directory.
func (s *Speaker) path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.cfg.BaseDir, p)
}

// each runs fn for every index with bounded concurrency and returns the
// first error.
func (s *Speaker) each(ctx context.Context, indices []int, fn func(ctx context.Context, i int) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.concurrency, 1))
	for _, i := range indices {
		g.Go(func() error { return fn(ctx, i) })
	}
	return g.Wait()
}

func elapsed(start time.Time) string {
	return time.Since(start).Round(time.Millisecond).String()
}
