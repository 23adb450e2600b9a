package mastodon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/blacktop/swtws/internal/logutil"
	"github.com/blacktop/swtws/internal/publish"
	mastodonapi "github.com/mattn/go-mastodon"
)

const (
	envServer       = "SWTWS_MASTODON_SERVER"
	envAccessToken  = "SWTWS_MASTODON_ACCESS_TOKEN"
	envClientID     = "SWTWS_MASTODON_CLIENT_ID"
	envClientSecret = "SWTWS_MASTODON_CLIENT_SECRET"

	providerName   = "mastodon"
	requestTimeout = 30 * time.Second
)

// Config contains the settings needed to reach a Mastodon server.
type Config struct {
	Server       string
	AccessToken  string
	ClientID     string
	ClientSecret string
}

// Client wraps the Mastodon API client.
type Client struct {
	client *mastodonapi.Client
}

// New constructs a Mastodon poster based on environment configuration.
func New(ctx context.Context) (publish.Poster, error) {
	cfg, err := loadConfigFromEnv(os.Getenv)
	if err != nil {
		return nil, err
	}

	mastodonClient := mastodonapi.NewClient(&mastodonapi.Config{
		Server:       cfg.Server,
		AccessToken:  cfg.AccessToken,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
	})
	mastodonClient.Timeout = requestTimeout

	return &Client{client: mastodonClient}, nil
}

// Name identifies the provider.
func (c *Client) Name() string { return providerName }

// Post publishes a new toot. Twitter media ids cannot be reused here, so only
// local images are accepted.
func (c *Client) Post(ctx context.Context, req publish.Request) (publish.Response, error) {
	if req.MediaID != "" {
		return publish.Response{}, publish.ValidationError{Provider: providerName, Reason: fmt.Sprintf("cannot attach twitter media %s", req.MediaID)}
	}

	var mediaIDs []mastodonapi.ID
	if req.ImagePath != "" {
		attachment, err := c.uploadMedia(ctx, req.ImagePath, req.ImageAlt)
		if err != nil {
			return publish.Response{}, err
		}
		mediaIDs = append(mediaIDs, attachment.ID)
	}

	status, err := c.client.PostStatus(ctx, &mastodonapi.Toot{
		Status:   req.Text,
		MediaIDs: mediaIDs,
	})
	if err != nil {
		return publish.Response{}, fmt.Errorf("post status: %w", err)
	}
	logutil.Debugf("status posted: id=%s", status.ID)

	return publish.Response{ScreenName: status.Account.Acct, StatusID: string(status.ID)}, nil
}

func (c *Client) uploadMedia(ctx context.Context, path, alt string) (*mastodonapi.Attachment, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, publish.ValidationError{Provider: providerName, Reason: fmt.Sprintf("image %q not found", path)}
		}
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	logutil.Debugf("uploading media: path=%s", path)
	attachment, err := c.client.UploadMediaFromMedia(ctx, &mastodonapi.Media{
		File:        file,
		Description: alt,
	})
	if err != nil {
		return nil, fmt.Errorf("upload media: %w", err)
	}

	return attachment, nil
}

func loadConfigFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Server:       strings.TrimSpace(getenv(envServer)),
		AccessToken:  strings.TrimSpace(getenv(envAccessToken)),
		ClientID:     strings.TrimSpace(getenv(envClientID)),
		ClientSecret: strings.TrimSpace(getenv(envClientSecret)),
	}

	var missing []string
	if cfg.Server == "" {
		missing = append(missing, envServer)
	}
	if cfg.AccessToken == "" {
		missing = append(missing, envAccessToken)
	}

	if len(missing) > 0 {
		return Config{}, publish.MissingEnvError{Provider: providerName, Variables: missing}
	}

	return cfg, nil
}
