package swtws

import (
	"io"
	"os"
	"testing"

	"github.com/blacktop/swtws/internal/logutil"
)

func TestMain(m *testing.M) {
	logutil.SetOutput(io.Discard)
	os.Exit(m.Run())
}
