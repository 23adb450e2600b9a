package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/blacktop/swtws/internal/logutil"
	"github.com/blacktop/swtws/internal/publish"
	"github.com/michimani/gotwi"
	"github.com/michimani/gotwi/media/upload"
	uploadtypes "github.com/michimani/gotwi/media/upload/types"
	"github.com/michimani/gotwi/resources"
	"github.com/michimani/gotwi/tweet/managetweet"
	managetweettypes "github.com/michimani/gotwi/tweet/managetweet/types"
	"github.com/michimani/gotwi/user/userlookup"
	userlookuptypes "github.com/michimani/gotwi/user/userlookup/types"
)

const (
	providerName = "twitter"

	metadataEndpoint = "https://upload.twitter.com/1.1/media/metadata/create.json"
)

var httpTimeout = 30 * time.Second

// Client uploads media and publishes tweets for a single account.
type Client struct {
	api *gotwi.Client

	meOnce     sync.Once
	screenName string
	meErr      error
}

// New constructs a Twitter client using gotwi and OAuth 1.0a credentials.
func New(ctx context.Context, cred publish.Credential) (*Client, error) {
	httpClient := &http.Client{Timeout: httpTimeout}

	client, err := gotwi.NewClient(&gotwi.NewClientInput{
		HTTPClient:           httpClient,
		AuthenticationMethod: gotwi.AuthenMethodOAuth1UserContext,
		OAuthToken:           cred.OAuthToken,
		OAuthTokenSecret:     cred.OAuthTokenSecret,
		APIKey:               cred.ConsumerKey,
		APIKeySecret:         cred.ConsumerSecret,
		Debug:                logutil.Verbose(),
	})
	if err != nil {
		return nil, fmt.Errorf("create X client: %w", err)
	}

	if !client.IsReady() {
		return nil, fmt.Errorf("twitter client not ready")
	}

	return &Client{api: client}, nil
}

// Name returns the provider identifier.
func (c *Client) Name() string { return providerName }

// Post publishes one tweet, uploading its local image first when needed.
func (c *Client) Post(ctx context.Context, req publish.Request) (publish.Response, error) {
	var mediaIDs []string
	switch {
	case req.MediaID != "":
		mediaIDs = append(mediaIDs, req.MediaID)
	case strings.TrimSpace(req.ImagePath) != "":
		mediaID, err := c.UploadImage(ctx, req.ImagePath, req.ImageAlt)
		if err != nil {
			return publish.Response{}, err
		}
		mediaIDs = append(mediaIDs, mediaID)
	}

	screenName, err := c.me(ctx)
	if err != nil {
		return publish.Response{}, err
	}

	input := &managetweettypes.CreateInput{
		Text: gotwi.String(req.Text),
	}
	if len(mediaIDs) > 0 {
		input.Media = &managetweettypes.CreateInputMedia{MediaIDs: mediaIDs}
	}

	logutil.Debugf("posting tweet: media_count=%d", len(mediaIDs))
	res, err := managetweet.Create(ctx, c.api, input)
	if err != nil {
		return publish.Response{}, fmt.Errorf("post tweet: %w", unwrapGotwiError(err))
	}
	id := gotwi.StringValue(res.Data.ID)
	logutil.Debugf("tweet posted: id=%s", id)

	return publish.Response{ScreenName: screenName, StatusID: id}, nil
}

// UploadImage uploads a local image and returns its media id.
func (c *Client) UploadImage(ctx context.Context, imagePath, altText string) (string, error) {
	logutil.Debugf("uploading media: path=%s", imagePath)
	mediaID, err := c.uploadMedia(ctx, imagePath, altText)
	if err != nil {
		return "", err
	}
	logutil.Debugf("media uploaded: media_id=%s", mediaID)
	return mediaID, nil
}

func (c *Client) me(ctx context.Context) (string, error) {
	c.meOnce.Do(func() {
		res, err := userlookup.GetMe(ctx, c.api, &userlookuptypes.GetMeInput{})
		if err != nil {
			c.meErr = fmt.Errorf("look up account: %w", unwrapGotwiError(err))
			return
		}
		c.screenName = gotwi.StringValue(res.Data.Username)
	})
	return c.screenName, c.meErr
}

func (c *Client) uploadMedia(ctx context.Context, imagePath, altText string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", publish.ValidationError{Provider: providerName, Reason: fmt.Sprintf("image %q not found", imagePath)}
		}
		return "", fmt.Errorf("read image: %w", err)
	}

	mediaType, category, err := resolveMediaType(imagePath, data)
	if err != nil {
		return "", err
	}

	logutil.Debugf("initialize upload: media_type=%s bytes=%d", mediaType, len(data))
	initRes, err := upload.Initialize(ctx, c.api, &uploadtypes.InitializeInput{
		MediaType:     mediaType,
		TotalBytes:    len(data),
		MediaCategory: category,
	})
	if err != nil {
		return "", fmt.Errorf("initialize upload: %w", err)
	}
	if err := partialError(initRes.Errors); err != nil {
		return "", fmt.Errorf("initialize upload: %w", err)
	}

	mediaID := initRes.Data.MediaID
	logutil.Debugf("initialize complete: media_id=%s", mediaID)

	appendIn := &uploadtypes.AppendInput{
		MediaID:      mediaID,
		Media:        bytes.NewReader(data),
		SegmentIndex: 0,
	}
	appendIn.GenerateBoundary()

	logutil.Debugf("append upload: media_id=%s segment=0", mediaID)
	appendRes, err := upload.Append(ctx, c.api, appendIn)
	if err != nil {
		return "", fmt.Errorf("append upload: %w", err)
	}
	if err := partialError(appendRes.Errors); err != nil {
		return "", fmt.Errorf("append upload: %w", err)
	}
	logutil.Debugf("append completed")

	finalizeRes, err := upload.Finalize(ctx, c.api, &uploadtypes.FinalizeInput{MediaID: mediaID})
	if err != nil {
		return "", fmt.Errorf("finalize upload: %w", err)
	}
	if err := partialError(finalizeRes.Errors); err != nil {
		return "", fmt.Errorf("finalize upload: %w", err)
	}

	state := finalizeRes.Data.ProcessingInfo.State
	logutil.Debugf("finalize state=%s media_id=%s", state, mediaID)
	switch state {
	case "", resources.ProcessingInfoStateSucceeded:
	case resources.ProcessingInfoStateInProgress, resources.ProcessingInfoStatePending:
		// images are usually ready after the first suggested wait
		wait := time.Duration(finalizeRes.Data.ProcessingInfo.CheckAfterSecs) * time.Second
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	default:
		return "", fmt.Errorf("media processing failed: state=%s", state)
	}

	if alt := strings.TrimSpace(altText); alt != "" {
		logutil.Debugf("setting alt text: media_id=%s", mediaID)
		if err := c.setAltText(ctx, mediaID, alt); err != nil {
			return "", err
		}
	}

	return mediaID, nil
}

func (c *Client) setAltText(ctx context.Context, mediaID, altText string) error {
	params := &metadataParameters{
		mediaID: mediaID,
		altText: altText,
	}

	ctx = context.WithValue(ctx, "Content-Type", "application/json;charset=UTF-8")

	if err := c.api.CallAPI(ctx, metadataEndpoint, http.MethodPost, params, &metadataResponse{}); err != nil {
		return fmt.Errorf("set alt text: %w", unwrapGotwiError(err))
	}
	logutil.Debugf("alt text set: media_id=%s", mediaID)

	return nil
}

func resolveMediaType(path string, data []byte) (uploadtypes.MediaType, uploadtypes.MediaCategory, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jpg", ".jpeg":
		return uploadtypes.MediaTypeJPEG, uploadtypes.MediaCategoryTweetImage, nil
	case ".png":
		return uploadtypes.MediaTypePNG, uploadtypes.MediaCategoryTweetImage, nil
	case ".gif":
		return uploadtypes.MediaTypeGIF, uploadtypes.MediaCategoryTweetGIF, nil
	case ".webp":
		return uploadtypes.MediaTypeWebP, uploadtypes.MediaCategoryTweetImage, nil
	}

	// fallback to simple detection
	detected := http.DetectContentType(data)
	switch {
	case strings.Contains(detected, "jpeg"):
		return uploadtypes.MediaTypeJPEG, uploadtypes.MediaCategoryTweetImage, nil
	case strings.Contains(detected, "png"):
		return uploadtypes.MediaTypePNG, uploadtypes.MediaCategoryTweetImage, nil
	case strings.Contains(detected, "gif"):
		return uploadtypes.MediaTypeGIF, uploadtypes.MediaCategoryTweetGIF, nil
	case strings.Contains(detected, "webp"):
		return uploadtypes.MediaTypeWebP, uploadtypes.MediaCategoryTweetImage, nil
	}

	return "", "", publish.ValidationError{Provider: providerName, Reason: fmt.Sprintf("unsupported image type for %q", path)}
}

// partialError folds the partial errors of an upload response into one error.
func partialError(partials []resources.PartialError) error {
	if len(partials) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(partials))
	for _, pe := range partials {
		switch {
		case pe.Detail != nil && *pe.Detail != "":
			msgs = append(msgs, *pe.Detail)
		case pe.Title != nil && *pe.Title != "":
			msgs = append(msgs, *pe.Title)
		case pe.ResourceType != nil:
			msgs = append(msgs, fmt.Sprintf("%s", *pe.ResourceType))
		}
	}
	if len(msgs) == 0 {
		return errors.New("unknown error")
	}
	return errors.New(strings.Join(msgs, "; "))
}

func unwrapGotwiError(err error) error {
	var gwErr *gotwi.GotwiError
	if errors.As(err, &gwErr) && gwErr != nil {
		return fmt.Errorf("%s", summarizeGotwiError(gwErr))
	}
	return err
}

func summarizeGotwiError(err *gotwi.GotwiError) string {
	if err == nil {
		return "unknown X API error"
	}

	parts := make([]string, 0, 4)
	if err.Title != "" {
		parts = append(parts, err.Title)
	}
	if err.Detail != "" {
		parts = append(parts, err.Detail)
	}
	for _, apiErr := range err.APIErrors {
		if apiErr.Message != "" {
			parts = append(parts, apiErr.Message)
		}
	}
	if len(parts) == 0 {
		if msg := err.Error(); msg != "" {
			parts = append(parts, msg)
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "X API request failed")
	}

	return strings.Join(parts, "; ")
}

type metadataParameters struct {
	mediaID     string
	altText     string
	accessToken string
}

func (p *metadataParameters) SetAccessToken(token string) {
	p.accessToken = token
}

func (p *metadataParameters) AccessToken() string {
	return p.accessToken
}

func (p *metadataParameters) ResolveEndpoint(endpointBase string) string {
	return endpointBase
}

func (p *metadataParameters) Body() (io.Reader, error) {
	body := struct {
		MediaID string `json:"media_id"`
		AltText struct {
			Text string `json:"text"`
		} `json:"alt_text"`
	}{}
	body.MediaID = p.mediaID
	body.AltText.Text = p.altText

	buf, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(buf), nil
}

func (p *metadataParameters) ParameterMap() map[string]string {
	return map[string]string{}
}

type metadataResponse struct{}

func (metadataResponse) HasPartialError() bool { return false }
