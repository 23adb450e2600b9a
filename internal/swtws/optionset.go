package swtws

import (
	"path/filepath"
	"time"

	"github.com/blacktop/swtws/internal/publish"
	"github.com/blacktop/swtws/internal/speaker"
)

// DefaultInterval is the pause between published tweets.
const DefaultInterval = 30 * time.Second

// OptionSet is the ordered list of options of one invocation.
type OptionSet struct {
	options []Option
}

// NewOptionSet copies options into a set.
func NewOptionSet(options ...Option) OptionSet {
	return OptionSet{options: append([]Option(nil), options...)}
}

// Has reports whether an option with that name was given, whatever its value.
func (s OptionSet) Has(name OptionName) bool {
	_, ok := s.Last(name)
	return ok
}

// Last returns the last occurrence of the named option.
func (s OptionSet) Last(name OptionName) (Option, bool) {
	for i := len(s.options) - 1; i >= 0; i-- {
		if s.options[i].Name() == name {
			return s.options[i], true
		}
	}
	return nil, false
}

// Len returns the number of options, duplicates included.
func (s OptionSet) Len() int { return len(s.options) }

// Defaults are the fallbacks for settings not given on the command line.
type Defaults struct {
	Interval  time.Duration
	OutputDir string
	Target    string
}

// Settings is the resolved configuration of one invocation.
type Settings struct {
	Input   string
	BaseDir string

	Twitter     *publish.Credential
	GitHubToken string
	QiitaToken  string
	OutputDir   string
	Interval    time.Duration
	Target      string

	Count        bool
	Length       bool
	ResolveCode  bool
	ResolveGist  bool
	ResolveImage bool
	Presentation bool
	HTML         bool
	Verbose      bool
}

// Settings projects the set onto the tweets file input. Scalar options take
// their last occurrence; anything missing falls back to d.
func (s OptionSet) Settings(input string, d Defaults) Settings {
	st := Settings{
		Input:     input,
		BaseDir:   filepath.Dir(input),
		Interval:  DefaultInterval,
		OutputDir: d.OutputDir,
		Target:    speaker.TargetTwitter,

		Count:        s.Has(OptCount),
		Length:       s.Has(OptLength),
		ResolveCode:  s.Has(OptResolveCode),
		ResolveGist:  s.Has(OptResolveGist),
		ResolveImage: s.Has(OptResolveImage),
		Presentation: s.Has(OptPresentation),
		HTML:         s.Has(OptHTML),
		Verbose:      s.Has(OptVerbose),
	}
	if d.Interval > 0 {
		st.Interval = d.Interval
	}
	if d.Target != "" {
		st.Target = d.Target
	}

	if o, ok := s.Last(OptTwitter); ok {
		c := o.(TwitterCredential).Credential
		st.Twitter = &c
	}
	if o, ok := s.Last(OptGitHub); ok {
		st.GitHubToken = o.(GitHubToken).Token
	}
	if o, ok := s.Last(OptQiita); ok {
		st.QiitaToken = o.(QiitaToken).Token
	}
	if o, ok := s.Last(OptImageOutput); ok {
		st.OutputDir = o.(ImageOutput).Path
	}
	if o, ok := s.Last(OptInterval); ok {
		st.Interval = o.(Interval).Duration
	}
	if o, ok := s.Last(OptTarget); ok {
		st.Target = o.(Target).Network
	}
	return st
}

// SpeakerConfig returns the part of the settings the speaker needs.
func (s Settings) SpeakerConfig() speaker.Config {
	return speaker.Config{
		Twitter:     s.Twitter,
		GitHubToken: s.GitHubToken,
		OutputDir:   s.OutputDir,
		BaseDir:     s.BaseDir,
		Target:      s.Target,
	}
}
