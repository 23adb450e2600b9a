// Package tweet models the posts of a tweetup document and parses them from
// their text form.
package tweet

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultHashtag is appended to every tweet that does not already carry it.
	DefaultHashtag = "#swtws"
	// DefaultMaxLength is the weighted length limit of a single tweet.
	DefaultMaxLength = 280

	urlLength  = 23
	linkLength = urlLength + 1

	gistURLPrefix = "https://gist.github.com/"
	mediaScheme   = "twitter:"
)

var urlPattern = regexp.MustCompile(`https?://\S+`)

// Attachment is the single trailing artifact a tweet may carry.
type Attachment interface {
	// String renders the attachment in the same form the parser accepts.
	String() string
	attachment()
}

// Code is a source snippet that has not been uploaded yet.
type Code struct {
	Language string
	FileName string
	Body     string
}

func (c Code) String() string {
	return "```" + c.Language + ":" + c.FileName + "\n" + c.Body + "\n```"
}

func (Code) attachment() {}

// Gist references code hosted on GitHub Gist.
type Gist struct {
	ID string
}

// URL returns the public gist address.
func (g Gist) URL() string { return gistURLPrefix + g.ID }

func (g Gist) String() string { return g.URL() }

func (Gist) attachment() {}

// Image is either a local file (Path) or an uploaded Twitter media (MediaID).
type Image struct {
	Alt     string
	Path    string
	MediaID string
}

// Uploaded reports whether the image already refers to remote media.
func (i Image) Uploaded() bool { return i.MediaID != "" }

func (i Image) String() string {
	if i.Uploaded() {
		return "![" + i.Alt + "](" + mediaScheme + i.MediaID + ")"
	}
	return "![" + i.Alt + "](" + i.Path + ")"
}

func (Image) attachment() {}

// Tweet is one post of a document.
type Tweet struct {
	Body       string
	Attachment Attachment
}

// New validates body and attachment against maxLength and builds a Tweet.
func New(body string, attachment Attachment, maxLength int) (Tweet, error) {
	t := Tweet{Body: body, Attachment: attachment}
	if strings.TrimSpace(body) == "" && attachment == nil {
		return Tweet{}, EmptyError{}
	}
	if maxLength > 0 {
		if n := t.Length(); n > maxLength {
			return Tweet{}, TooLongError{Tweet: body, Attachment: attachment, Length: n, Limit: maxLength}
		}
	}
	return t, nil
}

// WithAttachment returns a copy of t carrying a instead of its attachment.
func (t Tweet) WithAttachment(a Attachment) Tweet {
	t.Attachment = a
	return t
}

// Length is the weighted length Twitter counts for the tweet: URLs count as
// a fixed-size link and links to code are counted even before upload.
func (t Tweet) Length() int {
	n := Weight(t.Body)
	switch t.Attachment.(type) {
	case Code, Gist:
		n += linkLength
	}
	return n
}

// Text is what gets published: the body, plus the gist link when present.
func (t Tweet) Text() string {
	if g, ok := t.Attachment.(Gist); ok {
		return t.Body + " " + g.URL()
	}
	return t.Body
}

func (t Tweet) String() string {
	if t.Attachment == nil {
		return t.Body
	}
	return t.Body + "\n\n" + t.Attachment.String()
}

// Weight counts runes, with every URL counted as a shortened link.
func Weight(s string) int {
	n := 0
	last := 0
	for _, loc := range urlPattern.FindAllStringIndex(s, -1) {
		n += utf8.RuneCountInString(s[last:loc[0]]) + urlLength
		last = loc[1]
	}
	return n + utf8.RuneCountInString(s[last:])
}
