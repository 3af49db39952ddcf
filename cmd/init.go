package cmd

import (
	"fmt"
	"os"

	"github.com/kamusis/embedprep/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create ~/.embedprep with a default config and .env template",
	Long: `Create ~/.embedprep/config.yaml and ~/.embedprep/.env if they are missing.
Existing files are never overwritten.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	dir, err := config.Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", dir, err)
	}
	printOK("", fmt.Sprintf("config directory ready: %s", dir))

	cfgPath, err := config.Path()
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfgPath); err == nil {
		printInfo("", fmt.Sprintf("kept existing %s", cfgPath))
	} else if os.IsNotExist(err) {
		if err := config.Save(cfgPath, config.DefaultConfig()); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("wrote %s", cfgPath))
	} else {
		return fmt.Errorf("cannot stat %s: %w", cfgPath, err)
	}

	envPath, err := config.DotEnvPath()
	if err != nil {
		return err
	}
	created, err := config.EnsureDotEnvTemplate()
	if err != nil {
		return err
	}
	if created {
		printOK("", fmt.Sprintf("wrote %s (fill in tokens as needed)", envPath))
	} else {
		printInfo("", fmt.Sprintf("kept existing %s", envPath))
	}
	return nil
}
