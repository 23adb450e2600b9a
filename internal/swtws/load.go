package swtws

import (
	"os"
	"unicode/utf8"

	"github.com/blacktop/swtws/internal/tweet"
)

// Loader reads the tweets of a document.
type Loader func(path string) ([]tweet.Tweet, error)

// FileLoader reads and parses a UTF-8 tweets file.
func FileLoader(opts tweet.Options) Loader {
	return func(path string) ([]tweet.Tweet, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, NoSuchFileError{Path: path, Err: err}
		}
		if !utf8.Valid(data) {
			return nil, IllegalEncodingError{Path: path}
		}
		return tweet.Parse(string(data), opts)
	}
}
