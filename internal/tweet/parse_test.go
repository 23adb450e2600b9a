package tweet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `Hello, tweetup!

---

Look at this code:

` + "```swift:hello.swift\nprint(\"Hello\")\n```" + `

---

A picture #swtws

![a cat](images/cat.png)
`

func TestParseSample(t *testing.T) {
	tweets, err := Parse(sample, Options{})
	require.NoError(t, err)
	require.Len(t, tweets, 3)

	assert.Equal(t, "Hello, tweetup! #swtws", tweets[0].Body)
	assert.Nil(t, tweets[0].Attachment)

	assert.Equal(t, "Look at this code: #swtws", tweets[1].Body)
	assert.Equal(t, Code{Language: "swift", FileName: "hello.swift", Body: `print("Hello")`}, tweets[1].Attachment)

	assert.Equal(t, "A picture #swtws", tweets[2].Body, "existing hashtag must not be duplicated")
	assert.Equal(t, Image{Alt: "a cat", Path: "images/cat.png"}, tweets[2].Attachment)
}

func TestParseAttachmentForms(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Attachment
	}{
		{"gist", "code\n\nhttps://gist.github.com/0123abcd", Gist{ID: "0123abcd"}},
		{"gist with user", "code\n\nhttps://gist.github.com/koher/0123abcd", Gist{ID: "0123abcd"}},
		{"uploaded image", "pic\n\n![alt](twitter:998877)", Image{Alt: "alt", MediaID: "998877"}},
		{"code without language", "x\n\n```:main.go\npackage main\n```", Code{FileName: "main.go", Body: "package main"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tweets, err := Parse(tt.text, Options{})
			require.NoError(t, err)
			require.Len(t, tweets, 1)
			assert.Equal(t, tt.want, tweets[0].Attachment)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts Options
		err  any
	}{
		{"code without file name", "x\n\n```swift\nlet a = 1\n```", Options{}, &CodeWithoutFileNameError{}},
		{"multiple attachments", "x\n\n![a](a.png)\n![b](b.png)", Options{}, &MultipleAttachmentsError{}},
		{"non tail attachment", "x\n\n![a](a.png)\n\ntrailing text", Options{}, &NonTailAttachmentError{}},
		{"empty tweet", "first\n---\n\n---\nthird", Options{}, &EmptyError{}},
		{"too long", strings.Repeat("a", 300), Options{}, &TooLongError{}},
		{"illegal hashtag", "x", Options{Hashtag: "no hash"}, &IllegalHashTagError{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text, tt.opts)
			require.Error(t, err)
			assert.ErrorAs(t, err, tt.err)
		})
	}
}

func TestParseSeparatorInsideCode(t *testing.T) {
	text := "code\n\n```md:notes.md\nabove\n---\nbelow\n```"
	tweets, err := Parse(text, Options{})
	require.NoError(t, err)
	require.Len(t, tweets, 1)
	assert.Equal(t, "above\n---\nbelow", tweets[0].Attachment.(Code).Body)
}

func TestParseEmptyDocument(t *testing.T) {
	tweets, err := Parse(" \n\n", Options{})
	require.NoError(t, err)
	assert.Empty(t, tweets)
}

func TestStringRoundTrip(t *testing.T) {
	tweets, err := Parse(sample, Options{})
	require.NoError(t, err)

	parts := make([]string, len(tweets))
	for i, tw := range tweets {
		parts[i] = tw.String()
	}
	again, err := Parse(strings.Join(parts, "\n\n---\n\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, tweets, again)
}

func TestLength(t *testing.T) {
	assert.Equal(t, 5, Weight("hello"))
	assert.Equal(t, 4+23, Weight("see https://example.com/a/very/long/path/indeed"))
	assert.Equal(t, 3, Weight("日本語"))

	tw := Tweet{Body: "abc", Attachment: Gist{ID: "1"}}
	assert.Equal(t, 3+24, tw.Length())
	tw = tw.WithAttachment(Image{Path: "a.png"})
	assert.Equal(t, 3, tw.Length())
}

func TestTextIncludesGistLink(t *testing.T) {
	tw := Tweet{Body: "code #swtws", Attachment: Gist{ID: "abc"}}
	assert.Equal(t, "code #swtws https://gist.github.com/abc", tw.Text())
}
