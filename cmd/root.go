/*
Copyright © 2025 blacktop

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/blacktop/swtws/internal/config"
	"github.com/blacktop/swtws/internal/swtws"
	"github.com/blacktop/swtws/internal/tweet"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

// runnerFactory builds the runner for one invocation. Tests replace it.
type runnerFactory func(stdout io.Writer) *swtws.Runner

// reportedError marks an error whose report was already written.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// Execute runs the root command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return execute(ctx, newRootCommand(configuredRunner))
}

// execute runs root and reports the errors cobra raises before a command
// gets to run, such as invalid completion arguments.
func execute(ctx context.Context, root *cobra.Command) error {
	c, err := root.ExecuteContextC(ctx)
	if err == nil {
		return nil
	}
	var done reportedError
	if !errors.As(err, &done) {
		if c == nil {
			c = root
		}
		w := c.ErrOrStderr()
		fmt.Fprintln(w, styledHeader(w, err))
		fmt.Fprintln(w, swtws.Divider)
		fmt.Fprint(w, c.UsageString())
	}
	return err
}

// configuredRunner reads the config file only once the runner knows the
// invocation is not a help request.
func configuredRunner(stdout io.Writer) *swtws.Runner {
	r := swtws.NewRunner(stdout, tweet.Options{}, swtws.Defaults{})
	r.Configure = loadConfig
	return r
}

func loadConfig() (swtws.Defaults, tweet.Options, error) {
	cfg, err := config.Load()
	if err != nil {
		return swtws.Defaults{}, tweet.Options{}, fmt.Errorf("failed to load config: %w", err)
	}
	opts := tweet.Options{Hashtag: cfg.Hashtag, MaxLength: cfg.MaxLength}
	defaults := swtws.Defaults{Interval: cfg.Interval, OutputDir: cfg.ImageOutput, Target: cfg.Target}
	return defaults, opts, nil
}

func newRootCommand(newRunner runnerFactory) *cobra.Command {
	cmd := grammarCommand(swtws.Legacy, newRunner)
	cmd.Use = "swtws [options] <tweets-file-path>"
	cmd.Short = "Command line tool for Swift Tweets"
	cmd.Long = "swtws checks a tweets file, resolves its code, gists and images, " +
		"and presents it as a paced series of tweets."
	cmd.Args = cobra.ArbitraryArgs
	cmd.Example = `  swtws check -c talk.md
  swtws resolve-code --github $GITHUB_TOKEN talk.md > talk-gists.md
  swtws presentation --interval 45 --twitter $TWITTER_CREDENTIAL talk-images.md`

	for _, g := range swtws.Commands {
		cmd.AddCommand(grammarCommand(g, newRunner))
	}
	cmd.AddCommand(newCompletionCommand())

	return cmd
}

// grammarCommand hands the raw arguments of a command to its grammar.
func grammarCommand(g swtws.Grammar, newRunner runnerFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:                g.Name + " [options] <tweets-file-path>",
		Short:              g.Summary,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := newRunner(cmd.OutOrStdout()).Run(cmd.Context(), g, args)
			if err != nil {
				report(cmd.ErrOrStderr(), err, g)
				return reportedError{err}
			}
			return nil
		},
	}
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		fmt.Fprint(c.OutOrStdout(), g.Usage())
	})
	return cmd
}

func report(w io.Writer, err error, g swtws.Grammar) {
	fmt.Fprintln(w, styledHeader(w, err))
	fmt.Fprintln(w, swtws.Divider)
	fmt.Fprint(w, g.Usage())
}

func styledHeader(w io.Writer, err error) string {
	header := swtws.ErrorHeader(err)
	if isTerminal(w) {
		header = errorStyle.Render(header)
	}
	return header
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
