package version

import (
	"bytes"
	"io"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type info struct{ out bytes.Buffer }

func (i *info) Version() string   { return "v0.3.0" }
func (i *info) Commit() string    { return "deadbeef" }
func (i *info) Date() string      { return "2024-03-01" }
func (i *info) BuiltBy() string   { return "goreleaser" }
func (i *info) Stdout() io.Writer { return &i.out }

func TestNewCommand(t *testing.T) {
	app := &info{}
	cmd := NewCommand(app)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())

	want := "docserve version v0.3.0\n" +
		"commit: deadbeef\n" +
		"built: 2024-03-01\n" +
		"built by: goreleaser\n" +
		"go version: " + runtime.Version() + "\n" +
		"platform: " + runtime.GOOS + "/" + runtime.GOARCH + "\n"
	assert.Equal(t, want, app.out.String())
}
