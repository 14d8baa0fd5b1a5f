// Package version prints build information.
package version

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
)

// AppContext defines what the version command needs from the app.
type AppContext interface {
	Version() string
	Commit() string
	Date() string
	BuiltBy() string
	Stdout() io.Writer
}

// NewCommand creates the version command.
func NewCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show version information for the docserve CLI.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return Print(app.Stdout(), app)
		},
	}
}

// Print writes the version report to w.
func Print(w io.Writer, app AppContext) error {
	_, err := fmt.Fprintf(w,
		"docserve version %s\ncommit: %s\nbuilt: %s\nbuilt by: %s\ngo version: %s\nplatform: %s/%s\n",
		app.Version(), app.Commit(), app.Date(), app.BuiltBy(),
		runtime.Version(), runtime.GOOS, runtime.GOARCH,
	)
	return err
}
