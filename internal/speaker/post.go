package speaker

import (
	"context"
	"fmt"
	"time"

	"github.com/blacktop/swtws/internal/logutil"
	"github.com/blacktop/swtws/internal/publish"
	"github.com/blacktop/swtws/internal/tweet"
	"golang.org/x/time/rate"
)

// Post publishes tweets in order, one every interval, and returns one
// response per tweet in the same order. The first tweet goes out immediately.
func (s *Speaker) Post(ctx context.Context, tweets []tweet.Tweet, interval time.Duration) ([]publish.Response, error) {
	if len(tweets) == 0 {
		return []publish.Response{}, nil
	}
	poster, err := s.publisher(ctx)
	if err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if interval > 0 {
		limiter = rate.NewLimiter(rate.Every(interval), 1)
	}

	// reject unpublishable tweets before anything goes out
	reqs := make([]publish.Request, len(tweets))
	for i, t := range tweets {
		if reqs[i], err = s.request(poster.Name(), t); err != nil {
			return nil, fmt.Errorf("tweet %d: %w", i+1, err)
		}
	}

	responses := make([]publish.Response, 0, len(tweets))
	for i, req := range reqs {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		res, err := poster.Post(ctx, req)
		if err != nil {
			if i > 0 {
				logutil.Errorf("stopped after %d of %d tweet(s) were posted to %s", i, len(tweets), poster.Name())
			}
			return nil, fmt.Errorf("post tweet %d to %s: %w", i+1, poster.Name(), err)
		}
		logutil.Infof("posted %d/%d to %s: %s", i+1, len(tweets), poster.Name(), res.StatusID)
		responses = append(responses, res)
	}
	return responses, nil
}

func (s *Speaker) request(provider string, t tweet.Tweet) (publish.Request, error) {
	req := publish.Request{Text: t.Text()}
	switch a := t.Attachment.(type) {
	case nil, tweet.Gist:
	case tweet.Image:
		req.ImageAlt = a.Alt
		if a.Uploaded() {
			req.MediaID = a.MediaID
		} else {
			req.ImagePath = s.path(a.Path)
		}
	case tweet.Code:
		return publish.Request{}, publish.ValidationError{Provider: provider, Reason: fmt.Sprintf("code %s must be resolved before publishing", a.FileName)}
	default:
		return publish.Request{}, fmt.Errorf("unsupported attachment %T", a)
	}
	return req, nil
}
