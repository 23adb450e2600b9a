package swtws

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/blacktop/swtws/internal/publish"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSplitsInputsAndOptions(t *testing.T) {
	inputs, options, err := Legacy.Parse([]string{"-c", "talk.md", "--length"})
	require.NoError(t, err)
	assert.Equal(t, []string{"talk.md"}, inputs)
	assert.Equal(t, []Option{Count{}, Length{}}, options)
}

func TestParseEmpty(t *testing.T) {
	inputs, options, err := Legacy.Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, inputs)
	assert.Empty(t, options)
}

func TestParseIllegalOption(t *testing.T) {
	_, _, err := Legacy.Parse([]string{"--frobnicate", "talk.md"})
	var ill IllegalOptionError
	require.ErrorAs(t, err, &ill)
	assert.Equal(t, "--frobnicate", ill.Token)
	assert.Equal(t, "ParseError", Category(err))
}

func TestParseDisallowedOptionForSubcommand(t *testing.T) {
	_, _, err := Check.Parse([]string{"--presentation", "talk.md"})
	var ill IllegalOptionError
	require.ErrorAs(t, err, &ill)
	assert.Equal(t, "--presentation", ill.Token)

	_, _, err = ResolveImageCommand.Parse([]string{"--github", "tok", "talk.md"})
	require.ErrorAs(t, err, &ill)
}

func TestParseHelpAndVerboseAlwaysAllowed(t *testing.T) {
	for _, g := range append([]Grammar{Legacy}, Commands...) {
		_, options, err := g.Parse([]string{"-v", "--help"})
		require.NoError(t, err, g.Command())
		assert.Equal(t, []Option{Verbose{}, Help{}}, options, g.Command())
	}
}

func TestParseLackOfArgument(t *testing.T) {
	for _, flag := range []string{"--interval", "--twitter", "--github", "--qiita", "--image-output", "--target"} {
		_, _, err := Legacy.Parse([]string{"talk.md", flag})
		var lack LackOfArgumentError
		require.ErrorAs(t, err, &lack, flag)
		assert.Equal(t, flag, lack.Option.String())
	}
}

func TestParseTwitterCredential(t *testing.T) {
	_, options, err := Legacy.Parse([]string{"--twitter", "a,b,c,d", "talk.md"})
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, TwitterCredential{Credential: publish.Credential{
		ConsumerKey: "a", ConsumerSecret: "b", OAuthToken: "c", OAuthTokenSecret: "d",
	}}, options[0])

	_, _, err = Legacy.Parse([]string{"--twitter", "a,b,c", "talk.md"})
	var bad IllegalArgumentFormatError
	require.ErrorAs(t, err, &bad)
	assert.Equal(t, OptTwitter, bad.Option)
	assert.NotContains(t, err.Error(), "a,b,c")
}

func TestParseInterval(t *testing.T) {
	tests := []struct {
		raw     string
		want    time.Duration
		wantErr bool
	}{
		{raw: "30", want: 30 * time.Second},
		{raw: "2.5", want: 2500 * time.Millisecond},
		{raw: "0", want: 0},
		{raw: "1m30s", want: 90 * time.Second},
		{raw: "-1", wantErr: true},
		{raw: "NaN", wantErr: true},
		{raw: "+Inf", wantErr: true},
		{raw: "soon", wantErr: true},
		{raw: "1e300", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, options, err := PresentationCommand.Parse([]string{"--interval", tt.raw, "talk.md"})
			if tt.wantErr {
				var bad IllegalArgumentFormatError
				require.ErrorAs(t, err, &bad)
				assert.Equal(t, OptInterval, bad.Option)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []Option{Interval{Duration: tt.want}}, options)
		})
	}
}

func TestParseTarget(t *testing.T) {
	_, options, err := PresentationCommand.Parse([]string{"--target", "Mastodon", "talk.md"})
	require.NoError(t, err)
	assert.Equal(t, []Option{Target{Network: "mastodon"}}, options)
	assert.Equal(t, "mastodon", NewOptionSet(options...).Settings("talk.md", Defaults{Target: "bluesky"}).Target)

	_, _, err = PresentationCommand.Parse([]string{"--target", "myspace", "talk.md"})
	var bad IllegalArgumentFormatError
	require.ErrorAs(t, err, &bad)
	assert.Contains(t, err.Error(), `"myspace"`)
}

func TestParseIntervalTooLarge(t *testing.T) {
	_, _, err := PresentationCommand.Parse([]string{"--interval", "1e300", "talk.md"})
	assert.ErrorContains(t, err, "too large")
}

func TestParseEmptyToken(t *testing.T) {
	_, _, err := Legacy.Parse([]string{"--github", " ", "talk.md"})
	var bad IllegalArgumentFormatError
	require.ErrorAs(t, err, &bad)
	assert.Equal(t, OptGitHub, bad.Option)
}

func TestParseArgumentMayLookLikeFlag(t *testing.T) {
	_, options, err := Legacy.Parse([]string{"--image-output", "-out", "talk.md"})
	require.NoError(t, err)
	assert.Equal(t, []Option{ImageOutput{Path: "-out"}}, options)
}

func TestPostAlias(t *testing.T) {
	_, options, err := Legacy.Parse([]string{"--post", "talk.md"})
	require.NoError(t, err)
	assert.Equal(t, []Option{Presentation{}}, options)
}

func TestUsage(t *testing.T) {
	usage := Check.Usage()
	assert.True(t, strings.HasPrefix(usage, "OVERVIEW: "))
	assert.Contains(t, usage, "(swtws "+Version+")")
	assert.Contains(t, usage, "USAGE: swtws check [-c|--count] [--length] <tweets-file-path>")
	assert.Contains(t, usage, "OPTIONS:")
	assert.Contains(t, usage, "-c, --count")

	assert.Contains(t, Legacy.Usage(), "USAGE: swtws [-h|--help]")
}

func TestOptionSetLastWins(t *testing.T) {
	_, options, err := Legacy.Parse([]string{"--github", "first", "--github", "second", "--interval", "5", "talk.md"})
	require.NoError(t, err)

	set := NewOptionSet(options...)
	assert.Equal(t, 3, set.Len())
	last, ok := set.Last(OptGitHub)
	require.True(t, ok)
	assert.Equal(t, GitHubToken{Token: "second"}, last)
	assert.False(t, set.Has(OptTwitter))

	s := set.Settings("docs/talk.md", Defaults{})
	assert.Equal(t, "second", s.GitHubToken)
	assert.Equal(t, 5*time.Second, s.Interval)
	assert.Equal(t, "docs", s.BaseDir)
	assert.Equal(t, "twitter", s.Target)
}

func TestSettingsDefaults(t *testing.T) {
	s := NewOptionSet().Settings("talk.md", Defaults{})
	assert.Equal(t, DefaultInterval, s.Interval)
	assert.Nil(t, s.Twitter)
	assert.Equal(t, ".", s.BaseDir)

	s = NewOptionSet().Settings("talk.md", Defaults{Interval: time.Minute, OutputDir: "img", Target: "bluesky"})
	assert.Equal(t, time.Minute, s.Interval)
	assert.Equal(t, "img", s.OutputDir)
	assert.Equal(t, "bluesky", s.Target)

	s = NewOptionSet(Interval{Duration: 0}, ImageOutput{Path: "out"}).Settings("talk.md", Defaults{Interval: time.Minute, OutputDir: "img"})
	assert.Equal(t, time.Duration(0), s.Interval)
	assert.Equal(t, "out", s.OutputDir)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "[CommandError] no input file", Describe(NoInputError{}))
	assert.Equal(t, "[Error] boom", Describe(errors.New("boom")))
	assert.Equal(t, "ContractError", Category(ContractError{Stage: "resolve-code", Want: 2, Got: 1}))
}
