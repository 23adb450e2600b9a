package publish

import (
	"context"
	"fmt"
	"strings"
)

// Request is a single post as handed to a network.
type Request struct {
	Text string
	// ImagePath is a local image to upload along with the post.
	ImagePath string
	ImageAlt  string
	// MediaID references an image already uploaded to the network.
	MediaID string
}

// Response identifies a published post.
type Response struct {
	ScreenName string
	StatusID   string
}

// Poster abstracts a social network that can publish content.
type Poster interface {
	Name() string
	Post(ctx context.Context, req Request) (Response, error)
}

// Credential is an OAuth 1.0a user-context credential.
type Credential struct {
	ConsumerKey      string
	ConsumerSecret   string
	OAuthToken       string
	OAuthTokenSecret string
}

// ParseCredential decodes "<consumer-key>,<consumer-secret>,<oauth-token>,<oauth-token-secret>".
func ParseCredential(s string) (Credential, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 4 {
		return Credential{}, fmt.Errorf("expected 4 comma-separated fields, got %d", len(fields))
	}
	for i, f := range fields {
		if strings.TrimSpace(f) == "" {
			return Credential{}, fmt.Errorf("field %d is empty", i+1)
		}
	}
	return Credential{
		ConsumerKey:      fields[0],
		ConsumerSecret:   fields[1],
		OAuthToken:       fields[2],
		OAuthTokenSecret: fields[3],
	}, nil
}

// String hides the secrets.
func (c Credential) String() string {
	return fmt.Sprintf("Credential{ConsumerKey:%s, ...}", c.ConsumerKey)
}
