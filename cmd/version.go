package cmd

import (
	"fmt"
	"io"
	"runtime"
	"text/tabwriter"

	"github.com/kamusis/embedprep/internal/embeddings"
	"github.com/spf13/cobra"
)

// Set via -ldflags at release time.
var (
	version   = "dev"
	commit    = ""
	buildDate = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show embedprep version, build information and provider defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return writeVersion(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// writeVersion prints the build line followed by one row per provider with
// its default model and credential key.
func writeVersion(w io.Writer) error {
	fmt.Fprintf(w, "embedprep %s (commit %s, built %s, %s %s/%s)\n",
		version, emptyAsNA(commit), emptyAsNA(buildDate), runtime.Version(), runtime.GOOS, runtime.GOARCH)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\nPROVIDER\tDEFAULT MODEL\tCREDENTIAL")
	for i, p := range embeddings.Providers {
		name := p
		if i == 0 {
			name += " (default)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", name, embeddings.DefaultModel(p), emptyAsNA(embeddings.APIKeyName(p)))
	}
	return tw.Flush()
}

func emptyAsNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
