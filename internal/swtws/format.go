package swtws

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/blacktop/swtws/internal/publish"
	"github.com/blacktop/swtws/internal/tweet"
)

const (
	// Separator is printed between tweets.
	Separator = "\n\n---\n\n"
	// Divider separates an error from the usage text.
	Divider = "----------------------------------------"
)

// FormatTweets renders tweets, optionally prefixed with their length.
func FormatTweets(tweets []tweet.Tweet, lengths bool) string {
	parts := make([]string, len(tweets))
	for i, t := range tweets {
		if lengths {
			parts[i] = "[" + strconv.Itoa(t.Length()) + "]\n\n" + t.String()
		} else {
			parts[i] = t.String()
		}
	}
	return strings.Join(parts, Separator)
}

// FormatCount renders the number of tweets.
func FormatCount(tweets []tweet.Tweet) string {
	return strconv.Itoa(len(tweets))
}

// FormatPresentation pairs each tweet with the response for it.
func FormatPresentation(tweets []tweet.Tweet, responses []publish.Response, asHTML bool) (string, error) {
	if len(tweets) != len(responses) {
		return "", ContractError{Stage: "presentation", Want: len(tweets), Got: len(responses)}
	}
	quotes := make([]string, len(tweets))
	for i, t := range tweets {
		r := responses[i]
		if asHTML {
			quotes[i] = htmlQuote(t, r)
		} else {
			quotes[i] = fmt.Sprintf("@%s %s\n%s", r.ScreenName, r.StatusID, t)
		}
	}
	return strings.Join(quotes, "\n\n"), nil
}

func htmlQuote(t tweet.Tweet, r publish.Response) string {
	body := strings.ReplaceAll(html.EscapeString(t.String()), "\n", "<br>")
	name := html.EscapeString(r.ScreenName)
	id := html.EscapeString(r.StatusID)
	return fmt.Sprintf(`<blockquote class="twitter-tweet"><p>%s</p>&mdash; @%s <a href="https://twitter.com/%s/status/%s">%s</a></blockquote>`,
		body, name, name, id, id)
}

// ErrorHeader is the first line of an error report.
func ErrorHeader(err error) string {
	return "ERROR: " + Describe(err)
}

// FormatError renders the full error report: header, divider and usage.
func FormatError(err error, g Grammar) string {
	return ErrorHeader(err) + "\n" + Divider + "\n" + g.Usage()
}
