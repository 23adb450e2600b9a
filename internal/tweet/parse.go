package tweet

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	hashtagPattern = regexp.MustCompile(`^#[\p{L}\p{N}_]+$`)
	imagePattern   = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)]+)\)$`)
	gistPattern    = regexp.MustCompile(`^https://gist\.github\.com/(?:[\w-]+/)?([0-9A-Za-z]+)/?$`)
)

const fence = "```"

// Options tune how a document is parsed.
type Options struct {
	// Hashtag is appended to tweets that lack it. Defaults to DefaultHashtag.
	Hashtag string
	// MaxLength is the weighted length limit. Zero means DefaultMaxLength,
	// a negative value disables the check.
	MaxLength int
}

func (o Options) withDefaults() Options {
	if o.Hashtag == "" {
		o.Hashtag = DefaultHashtag
	}
	if o.MaxLength == 0 {
		o.MaxLength = DefaultMaxLength
	}
	return o
}

// Parse splits a document into tweets. Tweets are separated by lines that
// contain only "---".
func Parse(text string, opts Options) ([]Tweet, error) {
	opts = opts.withDefaults()
	if !hashtagPattern.MatchString(opts.Hashtag) {
		return nil, IllegalHashTagError{HashTag: opts.Hashtag}
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return []Tweet{}, nil
	}

	chunks := split(text)
	tweets := make([]Tweet, 0, len(chunks))
	for i, chunk := range chunks {
		t, err := parseTweet(chunk, opts)
		if err != nil {
			return nil, fmt.Errorf("tweet %d: %w", i+1, err)
		}
		tweets = append(tweets, t)
	}
	return tweets, nil
}

func split(text string) []string {
	var (
		chunks  []string
		current []string
		inCode  bool
	)
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, fence) {
			inCode = !inCode
		}
		if !inCode && trimmed == "---" {
			chunks = append(chunks, strings.Join(current, "\n"))
			current = nil
			continue
		}
		current = append(current, line)
	}
	return append(chunks, strings.Join(current, "\n"))
}

type span struct {
	start, end int
	raw        string
	value      Attachment
	err        error
}

func parseTweet(chunk string, opts Options) (Tweet, error) {
	chunk = strings.Trim(chunk, "\n")
	lines := strings.Split(chunk, "\n")

	var spans []span
	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		switch {
		case strings.HasPrefix(trimmed, fence):
			end := closingFence(lines, i+1)
			if end < 0 {
				continue
			}
			raw := strings.Join(lines[i:end+1], "\n")
			code, err := parseCode(trimmed[len(fence):], lines[i+1:end], raw)
			spans = append(spans, span{start: i, end: end, raw: raw, value: code, err: err})
			i = end
		case imagePattern.MatchString(trimmed):
			m := imagePattern.FindStringSubmatch(trimmed)
			img := Image{Alt: m[1]}
			if id, ok := strings.CutPrefix(m[2], mediaScheme); ok {
				img.MediaID = id
			} else {
				img.Path = m[2]
			}
			spans = append(spans, span{start: i, end: i, raw: trimmed, value: img})
		case gistPattern.MatchString(trimmed):
			m := gistPattern.FindStringSubmatch(trimmed)
			spans = append(spans, span{start: i, end: i, raw: trimmed, value: Gist{ID: m[1]}})
		}
	}

	if len(spans) > 1 {
		raws := make([]string, len(spans))
		for i, s := range spans {
			raws[i] = s.raw
		}
		return Tweet{}, MultipleAttachmentsError{Tweet: chunk, Attachments: raws}
	}

	body := chunk
	var attachment Attachment
	if len(spans) == 1 {
		s := spans[0]
		if s.err != nil {
			return Tweet{}, s.err
		}
		if strings.TrimSpace(strings.Join(lines[s.end+1:], "\n")) != "" {
			return Tweet{}, NonTailAttachmentError{Tweet: chunk, Attachment: s.raw}
		}
		body = strings.Join(lines[:s.start], "\n")
		attachment = s.value
	}

	body = strings.TrimSpace(body)
	if body == "" && attachment == nil {
		return Tweet{}, EmptyError{}
	}
	return New(withHashtag(body, opts.Hashtag), attachment, opts.MaxLength)
}

func closingFence(lines []string, from int) int {
	for j := from; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) == fence {
			return j
		}
	}
	return -1
}

func parseCode(info string, body []string, raw string) (Attachment, error) {
	lang, file, ok := strings.Cut(strings.TrimSpace(info), ":")
	if !ok || strings.TrimSpace(file) == "" {
		return nil, CodeWithoutFileNameError{Code: raw}
	}
	return Code{
		Language: strings.TrimSpace(lang),
		FileName: strings.TrimSpace(file),
		Body:     strings.Join(body, "\n"),
	}, nil
}

func withHashtag(body, hashtag string) string {
	for _, field := range strings.Fields(body) {
		if field == hashtag {
			return body
		}
	}
	if body == "" {
		return hashtag
	}
	return body + " " + hashtag
}
