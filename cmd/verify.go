package cmd

import (
	"fmt"

	"github.com/kamusis/embedprep/internal/config"
	"github.com/kamusis/embedprep/internal/content"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check an embeddings file against its version manifest",
	Long: `Recompute the sha256 of the embeddings file and compare it, and the item
count, with <output>.version.json. Exits non-zero when they disagree.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	output := resolveOutput(cmd, fileCfg)

	res, err := content.Verify(output)
	if err != nil {
		return err
	}
	printOK("", fmt.Sprintf("%s matches %s", res.OutputPath, res.VersionPath))
	printInfo("", fmt.Sprintf("version %s, %d items, updated %s", res.Manifest.Version, res.Count, res.Manifest.UpdatedAt))
	return nil
}
