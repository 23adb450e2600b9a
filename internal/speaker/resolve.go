package speaker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/blacktop/swtws/internal/logutil"
	"github.com/blacktop/swtws/internal/tweet"
)

func indicesOf(tweets []tweet.Tweet, match func(tweet.Attachment) bool) []int {
	var out []int
	for i, t := range tweets {
		if t.Attachment != nil && match(t.Attachment) {
			out = append(out, i)
		}
	}
	return out
}

// ResolveCodes uploads code attachments to Gist and replaces them with gist
// references.
func (s *Speaker) ResolveCodes(ctx context.Context, tweets []tweet.Tweet) ([]tweet.Tweet, error) {
	out := append([]tweet.Tweet(nil), tweets...)
	todo := indicesOf(out, func(a tweet.Attachment) bool { _, ok := a.(tweet.Code); return ok })
	if len(todo) == 0 {
		return out, nil
	}
	if s.cfg.GitHubToken == "" {
		return nil, MissingCredentialError{Step: StepResolveCode, Credential: GitHubToken}
	}
	gists, err := s.gistService()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	err = s.each(ctx, todo, func(ctx context.Context, i int) error {
		code := out[i].Attachment.(tweet.Code)
		id, err := gists.Create(ctx, code.FileName, code.Body, out[i].Body)
		if err != nil {
			return fmt.Errorf("tweet %d: %w", i+1, err)
		}
		out[i] = out[i].WithAttachment(tweet.Gist{ID: id})
		return nil
	})
	if err != nil {
		return nil, err
	}
	logutil.Infof("resolved %d code attachment(s) in %s", len(todo), elapsed(start))
	return out, nil
}

// ResolveGists renders gist attachments into PNG files under the output
// directory and replaces them with image references.
func (s *Speaker) ResolveGists(ctx context.Context, tweets []tweet.Tweet) ([]tweet.Tweet, error) {
	out := append([]tweet.Tweet(nil), tweets...)
	todo := indicesOf(out, func(a tweet.Attachment) bool { _, ok := a.(tweet.Gist); return ok })
	if len(todo) == 0 {
		return out, nil
	}
	if s.cfg.OutputDir == "" {
		return nil, MissingCredentialError{Step: StepResolveGist, Credential: OutputDirectoryPath}
	}
	gists, err := s.gistService()
	if err != nil {
		return nil, err
	}
	dir := s.path(s.cfg.OutputDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	start := time.Now()
	err = s.each(ctx, todo, func(ctx context.Context, i int) error {
		g := out[i].Attachment.(tweet.Gist)
		name, content, err := gists.File(ctx, g.ID)
		if err != nil {
			return fmt.Errorf("tweet %d: %w", i+1, err)
		}
		file := g.ID + ".png"
		if err := s.writeImage(filepath.Join(dir, file), name, content); err != nil {
			return fmt.Errorf("tweet %d: %w", i+1, err)
		}
		// relative to the tweets file unless OutputDir is absolute
		out[i] = out[i].WithAttachment(tweet.Image{Alt: name, Path: filepath.ToSlash(filepath.Join(s.cfg.OutputDir, file))})
		return nil
	})
	if err != nil {
		return nil, err
	}
	logutil.Infof("rendered %d gist(s) into %s in %s", len(todo), dir, elapsed(start))
	return out, nil
}

func (s *Speaker) writeImage(path, name, content string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("write image: %w", cerr)
		}
	}()
	logutil.Debugf("rendering code image: file=%s path=%s", name, path)
	return s.renderer.PNG(f, name, content)
}

// ResolveImages uploads local images to Twitter and replaces them with media
// ids.
func (s *Speaker) ResolveImages(ctx context.Context, tweets []tweet.Tweet) ([]tweet.Tweet, error) {
	out := append([]tweet.Tweet(nil), tweets...)
	todo := indicesOf(out, func(a tweet.Attachment) bool {
		img, ok := a.(tweet.Image)
		return ok && !img.Uploaded()
	})
	if len(todo) == 0 {
		return out, nil
	}
	uploader, err := s.mediaUploader(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	err = s.each(ctx, todo, func(ctx context.Context, i int) error {
		img := out[i].Attachment.(tweet.Image)
		id, err := uploader.UploadImage(ctx, s.path(img.Path), img.Alt)
		if err != nil {
			return fmt.Errorf("tweet %d: %w", i+1, err)
		}
		out[i] = out[i].WithAttachment(tweet.Image{Alt: img.Alt, MediaID: id})
		return nil
	})
	if err != nil {
		return nil, err
	}
	logutil.Infof("uploaded %d image(s) in %s", len(todo), elapsed(start))
	return out, nil
}
