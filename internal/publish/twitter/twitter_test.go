package twitter

import (
	"testing"

	"github.com/blacktop/swtws/internal/publish"
	"github.com/michimani/gotwi"
	uploadtypes "github.com/michimani/gotwi/media/upload/types"
	"github.com/michimani/gotwi/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMediaType(t *testing.T) {
	pngHeader := []byte("\x89PNG\r\n\x1a\n0000000000000000")
	tests := []struct {
		name     string
		path     string
		data     []byte
		wantType uploadtypes.MediaType
		wantCat  uploadtypes.MediaCategory
	}{
		{"jpeg by extension", "a.JPG", nil, uploadtypes.MediaTypeJPEG, uploadtypes.MediaCategoryTweetImage},
		{"gif by extension", "a.gif", nil, uploadtypes.MediaTypeGIF, uploadtypes.MediaCategoryTweetGIF},
		{"png sniffed", "image", pngHeader, uploadtypes.MediaTypePNG, uploadtypes.MediaCategoryTweetImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mt, cat, err := resolveMediaType(tt.path, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, mt)
			assert.Equal(t, tt.wantCat, cat)
		})
	}
}

func TestResolveMediaTypeUnsupported(t *testing.T) {
	_, _, err := resolveMediaType("notes.txt", []byte("plain text"))
	var verr publish.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, providerName, verr.Provider)
}

func TestPartialError(t *testing.T) {
	assert.NoError(t, partialError(nil))

	detail := "bad media"
	title := "Invalid Request"
	err := partialError([]resources.PartialError{{Detail: &detail}, {Title: &title}})
	assert.EqualError(t, err, "bad media; Invalid Request")

	assert.EqualError(t, partialError([]resources.PartialError{{}}), "unknown error")
}

func TestSummarizeGotwiError(t *testing.T) {
	assert.Equal(t, "unknown X API error", summarizeGotwiError(nil))
	gwErr := &gotwi.GotwiError{}
	gwErr.Title = "Forbidden"
	gwErr.Detail = "not allowed"
	assert.Equal(t, "Forbidden; not allowed", summarizeGotwiError(gwErr))
}
