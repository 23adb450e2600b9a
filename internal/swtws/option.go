package swtws

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/blacktop/swtws/internal/publish"
	"github.com/blacktop/swtws/internal/speaker"
)

// OptionName is the canonical identity of a command-line option.
type OptionName int

const (
	OptHelp OptionName = iota
	OptCount
	OptLength
	OptResolveCode
	OptResolveGist
	OptResolveImage
	OptPresentation
	OptHTML
	OptVerbose
	OptInterval
	OptTwitter
	OptGitHub
	OptQiita
	OptImageOutput
	OptTarget
)

var canonical = map[OptionName]string{
	OptHelp:         "--help",
	OptCount:        "--count",
	OptLength:       "--length",
	OptResolveCode:  "--resolve-code",
	OptResolveGist:  "--resolve-gist",
	OptResolveImage: "--resolve-image",
	OptPresentation: "--presentation",
	OptHTML:         "--html",
	OptVerbose:      "--verbose",
	OptInterval:     "--interval",
	OptTwitter:      "--twitter",
	OptGitHub:       "--github",
	OptQiita:        "--qiita",
	OptImageOutput:  "--image-output",
	OptTarget:       "--target",
}

// spellings maps every accepted token to its option.
var spellings = map[string]OptionName{
	"-h":              OptHelp,
	"--help":          OptHelp,
	"-c":              OptCount,
	"--count":         OptCount,
	"--length":        OptLength,
	"--resolve-code":  OptResolveCode,
	"--resolve-gist":  OptResolveGist,
	"--resolve-image": OptResolveImage,
	"--presentation":  OptPresentation,
	"--post":          OptPresentation,
	"--html":          OptHTML,
	"-v":              OptVerbose,
	"--verbose":       OptVerbose,
	"--interval":      OptInterval,
	"--twitter":       OptTwitter,
	"--github":        OptGitHub,
	"--qiita":         OptQiita,
	"--image-output":  OptImageOutput,
	"--target":        OptTarget,
}

func (n OptionName) String() string {
	if s, ok := canonical[n]; ok {
		return s
	}
	return fmt.Sprintf("OptionName(%d)", int(n))
}

// LookupOption returns the option a token spells, if any.
func LookupOption(token string) (OptionName, bool) {
	n, ok := spellings[token]
	return n, ok
}

// Option is one parsed command-line option. The concrete types below are
// the only implementations.
type Option interface {
	Name() OptionName
	isOption()
}

type (
	Help         struct{}
	Count        struct{}
	Length       struct{}
	ResolveCode  struct{}
	ResolveGist  struct{}
	ResolveImage struct{}
	Presentation struct{}
	HTML         struct{}
	Verbose      struct{}
)

func (Help) Name() OptionName         { return OptHelp }
func (Count) Name() OptionName        { return OptCount }
func (Length) Name() OptionName       { return OptLength }
func (ResolveCode) Name() OptionName  { return OptResolveCode }
func (ResolveGist) Name() OptionName  { return OptResolveGist }
func (ResolveImage) Name() OptionName { return OptResolveImage }
func (Presentation) Name() OptionName { return OptPresentation }
func (HTML) Name() OptionName         { return OptHTML }
func (Verbose) Name() OptionName      { return OptVerbose }

func (Help) isOption()         {}
func (Count) isOption()        {}
func (Length) isOption()       {}
func (ResolveCode) isOption()  {}
func (ResolveGist) isOption()  {}
func (ResolveImage) isOption() {}
func (Presentation) isOption() {}
func (HTML) isOption()         {}
func (Verbose) isOption()      {}

// Interval is the pause between published tweets.
type Interval struct{ Duration time.Duration }

// TwitterCredential carries the OAuth credential given to --twitter.
type TwitterCredential struct{ Credential publish.Credential }

// GitHubToken is the access token used for Gist.
type GitHubToken struct{ Token string }

// QiitaToken is accepted for compatibility; no step uses it.
type QiitaToken struct{ Token string }

// ImageOutput is the directory code images are written to.
type ImageOutput struct{ Path string }

// Target selects the network presentation mode publishes to.
type Target struct{ Network string }

func (Interval) Name() OptionName          { return OptInterval }
func (TwitterCredential) Name() OptionName { return OptTwitter }
func (GitHubToken) Name() OptionName       { return OptGitHub }
func (QiitaToken) Name() OptionName        { return OptQiita }
func (ImageOutput) Name() OptionName       { return OptImageOutput }
func (Target) Name() OptionName            { return OptTarget }

func (Interval) isOption()          {}
func (TwitterCredential) isOption() {}
func (GitHubToken) isOption()       {}
func (QiitaToken) isOption()        {}
func (ImageOutput) isOption()       {}
func (Target) isOption()            {}

var flags = map[OptionName]Option{
	OptHelp:         Help{},
	OptCount:        Count{},
	OptLength:       Length{},
	OptResolveCode:  ResolveCode{},
	OptResolveGist:  ResolveGist{},
	OptResolveImage: ResolveImage{},
	OptPresentation: Presentation{},
	OptHTML:         HTML{},
	OptVerbose:      Verbose{},
}

// decoders validate the argument of each argument-carrying option.
var decoders = map[OptionName]func(string) (Option, error){
	OptInterval: decodeInterval,
	OptTwitter: func(raw string) (Option, error) {
		c, err := publish.ParseCredential(raw)
		if err != nil {
			return nil, err
		}
		return TwitterCredential{Credential: c}, nil
	},
	OptGitHub:      nonEmpty(func(s string) Option { return GitHubToken{Token: s} }),
	OptQiita:       nonEmpty(func(s string) Option { return QiitaToken{Token: s} }),
	OptImageOutput: nonEmpty(func(s string) Option { return ImageOutput{Path: s} }),
	OptTarget: func(raw string) (Option, error) {
		name := strings.ToLower(strings.TrimSpace(raw))
		if !slices.Contains(speaker.Targets, name) {
			return nil, fmt.Errorf("unsupported target, want one of %s", strings.Join(speaker.Targets, ", "))
		}
		return Target{Network: name}, nil
	},
}

func nonEmpty(build func(string) Option) func(string) (Option, error) {
	return func(raw string) (Option, error) {
		if strings.TrimSpace(raw) == "" {
			return nil, errors.New("must not be empty")
		}
		return build(raw), nil
	}
}

// maxIntervalSeconds is the longest interval a time.Duration can hold.
const maxIntervalSeconds = float64(math.MaxInt64) / float64(time.Second)

// decodeInterval accepts seconds ("30", "2.5") or a Go duration ("1m30s").
func decodeInterval(raw string) (Option, error) {
	var d time.Duration
	if secs, err := strconv.ParseFloat(raw, 64); err == nil {
		if math.IsNaN(secs) || math.IsInf(secs, 0) {
			return nil, errors.New("not a finite number")
		}
		if secs >= maxIntervalSeconds {
			return nil, errors.New("too large")
		}
		d = time.Duration(secs * float64(time.Second))
	} else if d, err = time.ParseDuration(raw); err != nil {
		return nil, errors.New("want seconds or a duration such as 1m30s")
	}
	if d < 0 {
		return nil, errors.New("must not be negative")
	}
	return Interval{Duration: d}, nil
}
