// Package swtws parses swtws command lines and runs the requested workflow:
// checking a tweets file, resolving its attachments step by step, or
// publishing it as a paced presentation.
package swtws

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/blacktop/swtws/internal/async"
	"github.com/blacktop/swtws/internal/logutil"
	"github.com/blacktop/swtws/internal/publish"
	"github.com/blacktop/swtws/internal/speaker"
	"github.com/blacktop/swtws/internal/tweet"
)

// Speaker resolves attachments and publishes tweets. Every method returns
// one element per input tweet, in input order.
type Speaker interface {
	ResolveCodes(ctx context.Context, tweets []tweet.Tweet) ([]tweet.Tweet, error)
	ResolveGists(ctx context.Context, tweets []tweet.Tweet) ([]tweet.Tweet, error)
	ResolveImages(ctx context.Context, tweets []tweet.Tweet) ([]tweet.Tweet, error)
	Post(ctx context.Context, tweets []tweet.Tweet, interval time.Duration) ([]publish.Response, error)
}

// Runner executes one command line. It holds no state between runs.
type Runner struct {
	Stdout     io.Writer
	Load       Loader
	NewSpeaker func(Settings) Speaker
	Defaults   Defaults
	// Configure, when set, replaces Defaults and the parse options of Load.
	// It is called once per run, after help has been ruled out.
	Configure func() (Defaults, tweet.Options, error)
}

// NewRunner returns a Runner wired to the real tweets file and services.
func NewRunner(stdout io.Writer, opts tweet.Options, defaults Defaults) *Runner {
	return &Runner{
		Stdout:   stdout,
		Load:     FileLoader(opts),
		Defaults: defaults,
		NewSpeaker: func(s Settings) Speaker {
			return speaker.New(s.SpeakerConfig())
		},
	}
}

// Run parses args with g and performs the requested work. Output goes to
// r.Stdout; errors are returned for the caller to report.
func (r *Runner) Run(ctx context.Context, g Grammar, args []string) error {
	inputs, options, err := g.Parse(args)
	if err != nil {
		return err
	}
	// only a leading help short-circuits
	if len(options) > 0 && options[0].Name() == OptHelp {
		_, err := io.WriteString(r.Stdout, g.Usage())
		return err
	}

	set := NewOptionSet(append(options, g.Implied...)...)
	switch {
	case len(inputs) == 0:
		return NoInputError{}
	case len(inputs) > 1:
		return MultipleInputsError{Inputs: inputs}
	}

	defaults, load := r.Defaults, r.Load
	if r.Configure != nil {
		d, opts, err := r.Configure()
		if err != nil {
			return err
		}
		defaults, load = d, FileLoader(opts)
	}

	settings := set.Settings(inputs[0], defaults)
	if settings.Verbose {
		logutil.SetVerbose(true)
	}
	logutil.Debugf("loading tweets: path=%s", settings.Input)
	tweets, err := load(settings.Input)
	if err != nil {
		return err
	}

	if settings.Count {
		_, err := fmt.Fprintln(r.Stdout, FormatCount(tweets))
		return err
	}

	sp := r.NewSpeaker(settings)
	tweets, err = resolve(ctx, sp, settings, tweets)
	if err != nil {
		return err
	}

	if settings.Presentation {
		return r.present(ctx, sp, settings, tweets)
	}
	_, err = fmt.Fprintln(r.Stdout, FormatTweets(tweets, settings.Length))
	return err
}

func (r *Runner) present(ctx context.Context, sp Speaker, s Settings, tweets []tweet.Tweet) error {
	logutil.Infof("presenting %d tweet(s) to %s every %s", len(tweets), s.Target, s.Interval)
	responses, err := async.Bridge(ctx, func(ctx context.Context) ([]publish.Response, error) {
		return sp.Post(ctx, tweets, s.Interval)
	})
	if err != nil {
		return err
	}
	out, err := FormatPresentation(tweets, responses, s.HTML)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.Stdout, out)
	return err
}

type step struct {
	name    string
	enabled bool
	run     func(context.Context, []tweet.Tweet) ([]tweet.Tweet, error)
}

// resolve runs the enabled resolution steps in their fixed order. Each step
// is awaited before the next one starts.
func resolve(ctx context.Context, sp Speaker, s Settings, tweets []tweet.Tweet) ([]tweet.Tweet, error) {
	steps := []step{
		{speaker.StepResolveCode, s.ResolveCode, sp.ResolveCodes},
		{speaker.StepResolveGist, s.ResolveGist, sp.ResolveGists},
		{speaker.StepResolveImage, s.ResolveImage, sp.ResolveImages},
	}
	for _, st := range steps {
		if !st.enabled {
			continue
		}
		logutil.Debugf("running %s on %d tweet(s)", st.name, len(tweets))
		in := tweets
		out, err := async.Bridge(ctx, func(ctx context.Context) ([]tweet.Tweet, error) {
			return st.run(ctx, in)
		})
		if err != nil {
			return nil, err
		}
		if len(out) != len(in) {
			return nil, ContractError{Stage: st.name, Want: len(in), Got: len(out)}
		}
		tweets = out
	}
	return tweets, nil
}
