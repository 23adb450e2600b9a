package tweet

import (
	"fmt"
	"strings"
)

const (
	parseCategory = "TweetParseError"
	initCategory  = "TweetInitializationError"
)

// CodeWithoutFileNameError is returned for a code fence lacking ":file".
type CodeWithoutFileNameError struct {
	Code string
}

func (e CodeWithoutFileNameError) Error() string {
	return fmt.Sprintf("code without file name: %s", e.Code)
}

func (CodeWithoutFileNameError) Category() string { return parseCategory }

// IllegalHashTagError is returned when the configured hashtag is malformed.
type IllegalHashTagError struct {
	HashTag string
}

func (e IllegalHashTagError) Error() string {
	return fmt.Sprintf("illegal hashtag: %q", e.HashTag)
}

func (IllegalHashTagError) Category() string { return parseCategory }

// MultipleAttachmentsError is returned when a tweet carries more than one attachment.
type MultipleAttachmentsError struct {
	Tweet       string
	Attachments []string
}

func (e MultipleAttachmentsError) Error() string {
	return fmt.Sprintf("multiple attachments in a tweet: tweet = %q, attachments = [%s]", e.Tweet, strings.Join(e.Attachments, ", "))
}

func (MultipleAttachmentsError) Category() string { return parseCategory }

// NonTailAttachmentError is returned when text follows an attachment.
type NonTailAttachmentError struct {
	Tweet      string
	Attachment string
}

func (e NonTailAttachmentError) Error() string {
	return fmt.Sprintf("attachment must be put at the end of a tweet: tweet = %q, attachment = %q", e.Tweet, e.Attachment)
}

func (NonTailAttachmentError) Category() string { return parseCategory }

// EmptyError is returned for a tweet with neither text nor attachment.
type EmptyError struct{}

func (EmptyError) Error() string { return "empty tweet" }

func (EmptyError) Category() string { return initCategory }

// TooLongError is returned when a tweet exceeds the length limit.
type TooLongError struct {
	Tweet      string
	Attachment Attachment
	Length     int
	Limit      int
}

func (e TooLongError) Error() string {
	att := "none"
	if e.Attachment != nil {
		att = e.Attachment.String()
	}
	return fmt.Sprintf("too long tweet: tweet = %q, attachment = %s, length = %d (limit %d)", e.Tweet, att, e.Length, e.Limit)
}

func (TooLongError) Category() string { return initCategory }
