// Package list enumerates the documents docserve would render.
package list

import (
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/docserve/internal/cmd/output"
	"github.com/agentstation/docserve/internal/docroot"
	"github.com/agentstation/docserve/internal/server"
	"github.com/agentstation/docserve/pkg/constants"
	"github.com/agentstation/docserve/pkg/logging"
)

// AppContext defines what the list command needs from the app.
type AppContext interface {
	ServerConfig() server.Config
	Logger() *zerolog.Logger
	Stdout() io.Writer
}

// NewCommand creates the list command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the Markdown documents under the serving root",
		Long: `List walks the serving root and prints every regular file ending in .md,
with the URL it is served at and its size.`,
		Example: `  docserve list                    # Table of documents
  docserve list --format wide      # Include modification times
  docserve list --format markdown  # Markdown table, e.g. for an index page
  docserve list --root ./docs -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := output.ParseFormat(format)
			if err != nil {
				return err
			}
			return Run(cmd, app, output.DetectFormat(string(f)))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", "", "output format: table, wide, json, yaml, markdown")

	return cmd
}

// Run lists documents in the given format.
func Run(cmd *cobra.Command, app AppContext, format output.Format) error {
	cfg := app.ServerConfig()
	logger := app.Logger()

	root, err := docroot.Open(cfg.Root)
	if err != nil {
		return fmt.Errorf("opening serving root: %w", err)
	}
	defer root.Close()

	ctx := logging.WithLogger(cmd.Context(), logger)
	ctx = logging.WithRoot(logging.WithOperation(ctx, "list"), root.Dir())
	docs, err := root.Documents(ctx)
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}
	logging.FromContext(ctx).Debug().Int("count", len(docs)).Msg("Listed documents")

	w := app.Stdout()
	switch format {
	case output.FormatJSON, output.FormatYAML:
		if docs == nil {
			docs = []docroot.Document{}
		}
		return output.NewFormatter(format).Format(w, docs)
	case output.FormatMarkdown:
		formatter := &output.MarkdownFormatter{Title: "Documents"}
		return formatter.Format(w, toTable(docs, false))
	default:
		if len(docs) == 0 {
			_, err := fmt.Fprintf(w, "No documents found in %s\n", root.Dir())
			return err
		}
		return output.NewFormatter(format).Format(w, toTable(docs, format == output.FormatWide))
	}
}

func toTable(docs []docroot.Document, wide bool) output.Data {
	headers := []string{"Path", "URL", "Size"}
	align := []output.Align{output.AlignLeft, output.AlignLeft, output.AlignRight}
	if wide {
		headers = append(headers, "Modified")
		align = append(align, output.AlignLeft)
	}

	rows := make([][]string, 0, len(docs))
	for _, doc := range docs {
		row := []string{doc.Path, doc.URL, strconv.FormatInt(doc.Size, 10)}
		if wide {
			row = append(row, doc.Modified.Format(constants.TimeFormatHuman))
		}
		rows = append(rows, row)
	}

	return output.Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}
