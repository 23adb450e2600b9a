package swtws

import (
	"fmt"
	"slices"
	"strings"
)

// Version is shown at the top of every usage text.
var Version = "0.4.0"

// Grammar is the option vocabulary of one command.
type Grammar struct {
	// Name is the subcommand name, empty for the legacy top-level command.
	Name string
	// Allowed lists the options the command accepts; nil accepts all.
	Allowed []OptionName
	// Implied options are appended after the parsed ones.
	Implied []Option

	Summary  string
	Synopsis string
	Help     [][2]string
}

func (g Grammar) allows(n OptionName) bool {
	return g.Allowed == nil || n == OptHelp || n == OptVerbose || slices.Contains(g.Allowed, n)
}

// Parse splits args into positional inputs and options. Each flag that takes
// an argument consumes the next token and validates it right away.
func (g Grammar) Parse(args []string) ([]string, []Option, error) {
	inputs := []string{}
	options := []Option{}

	for i := 0; i < len(args); i++ {
		token := args[i]
		name, known := LookupOption(token)
		if !known || !g.allows(name) {
			if strings.HasPrefix(token, "-") {
				return nil, nil, IllegalOptionError{Token: token}
			}
			inputs = append(inputs, token)
			continue
		}

		if opt, ok := flags[name]; ok {
			options = append(options, opt)
			continue
		}

		if i+1 >= len(args) {
			return nil, nil, LackOfArgumentError{Option: name}
		}
		i++
		opt, err := decoders[name](args[i])
		if err != nil {
			return nil, nil, IllegalArgumentFormatError{Option: name, Value: args[i], Err: err}
		}
		options = append(options, opt)
	}

	return inputs, options, nil
}

// Command returns the full command line form, e.g. "swtws check".
func (g Grammar) Command() string {
	if g.Name == "" {
		return "swtws"
	}
	return "swtws " + g.Name
}

// Usage renders the help text of the command.
func (g Grammar) Usage() string {
	var b strings.Builder
	fmt.Fprintf(&b, "OVERVIEW: %s (swtws %s)\n\n", g.Summary, Version)
	fmt.Fprintf(&b, "USAGE: %s %s\n", g.Command(), g.Synopsis)
	if len(g.Help) > 0 {
		b.WriteString("\nOPTIONS:\n")
		width := 0
		for _, h := range g.Help {
			width = max(width, len(h[0]))
		}
		for _, h := range g.Help {
			fmt.Fprintf(&b, "  %-*s  %s\n", width, h[0], h[1])
		}
	}
	return b.String()
}

var (
	helpFlag    = [2]string{"-h, --help", "Display this document."}
	verboseFlag = [2]string{"-v, --verbose", "Log progress details to standard error."}
	githubFlag  = [2]string{"--github <token>", "Access token to post code to Gist."}
	outputFlag  = [2]string{"--image-output <path>", "Directory in which images of code are written, relative to the tweets file."}
	twitterFlag = [2]string{"--twitter <credential>", "Credential to post to Twitter: <consumer-key>,<consumer-secret>,<oauth-token>,<oauth-token-secret>."}
)

// Check parses a tweets file and prints the tweets or their count.
var Check = Grammar{
	Name:     "check",
	Allowed:  []OptionName{OptCount, OptLength},
	Summary:  "Check the format of the given tweets and display them with inserted hashtags",
	Synopsis: "[-c|--count] [--length] <tweets-file-path>",
	Help: [][2]string{
		{"-c, --count", "Display the count of the given tweets."},
		{"--length", "Display the length of each tweet additionally."},
		helpFlag, verboseFlag,
	},
}

// ResolveCodeCommand posts code to Gist.
var ResolveCodeCommand = Grammar{
	Name:     "resolve-code",
	Allowed:  []OptionName{OptGitHub},
	Implied:  []Option{ResolveCode{}},
	Summary:  "Post code in the given tweets to Gist and output tweets linking to the gists",
	Synopsis: "[--github <token>] <tweets-file-path>",
	Help:     [][2]string{githubFlag, helpFlag, verboseFlag},
}

// ResolveGistCommand renders gists into images.
var ResolveGistCommand = Grammar{
	Name:     "resolve-gist",
	Allowed:  []OptionName{OptGitHub, OptImageOutput},
	Implied:  []Option{ResolveGist{}},
	Summary:  "Capture images of the gists in the given tweets and output tweets referring to the images",
	Synopsis: "[--image-output <path>] [--github <token>] <tweets-file-path>",
	Help:     [][2]string{outputFlag, githubFlag, helpFlag, verboseFlag},
}

// ResolveImageCommand uploads images to Twitter.
var ResolveImageCommand = Grammar{
	Name:     "resolve-image",
	Allowed:  []OptionName{OptTwitter},
	Implied:  []Option{ResolveImage{}},
	Summary:  "Upload images in the given tweets to Twitter and output tweets referring to the media ids",
	Synopsis: "[--twitter <credential>] <tweets-file-path>",
	Help:     [][2]string{twitterFlag, helpFlag, verboseFlag},
}

// PresentationCommand publishes the tweets with pacing.
var PresentationCommand = Grammar{
	Name: "presentation",
	Allowed: []OptionName{
		OptInterval, OptGitHub, OptImageOutput, OptTwitter, OptTarget, OptHTML,
		OptResolveCode, OptResolveGist, OptResolveImage,
	},
	Implied:  []Option{Presentation{}},
	Summary:  "Make a presentation by posting the given tweets",
	Synopsis: "[--interval <seconds>] [--github <token>] [--image-output <path>] [--twitter <credential>] [--target <name>] [--html] [--resolve-code] [--resolve-gist] [--resolve-image] <tweets-file-path>",
	Help: [][2]string{
		{"--interval <seconds>", "Interval between tweets in seconds or as a duration (default 30)."},
		githubFlag, outputFlag, twitterFlag,
		{"--target <name>", "Network to post to: twitter, mastodon or bluesky (default twitter)."},
		{"--html", "Output the posted tweets as HTML quotes."},
		{"--resolve-code", "Post code to Gist before publishing."},
		{"--resolve-gist", "Render gists into images before publishing."},
		{"--resolve-image", "Upload images before publishing."},
		helpFlag, verboseFlag,
	},
}

// Legacy is the single-command grammar that accepts every option.
var Legacy = Grammar{
	Summary:  "Command line tool for Swift Tweets",
	Synopsis: "[-h|--help] [[-c|--count] [--length] [--resolve-code --github <token>] [--resolve-gist --image-output <path>] [--resolve-image --twitter <credential>] [--presentation [--interval <seconds>] [--target <name>] [--html]] <tweets-file-path>]",
	Help: [][2]string{
		{"-c, --count", "Display the count of tweets."},
		{"--length", "Display the length of each tweet."},
		{"--resolve-code", "Post code to Gist."},
		{"--resolve-gist", "Render gists into images."},
		{"--resolve-image", "Upload images to Twitter."},
		{"--presentation, --post", "Post the tweets."},
		{"--interval <seconds>", "Interval between tweets (default 30)."},
		githubFlag, outputFlag, twitterFlag,
		{"--qiita <token>", "Access token for Qiita (accepted, unused)."},
		{"--target <name>", "Network to post to: twitter, mastodon or bluesky."},
		{"--html", "Output posted tweets as HTML quotes."},
		helpFlag, verboseFlag,
	},
}

// Commands are the subcommand grammars, in help order.
var Commands = []Grammar{ResolveCodeCommand, ResolveGistCommand, ResolveImageCommand, PresentationCommand, Check}
