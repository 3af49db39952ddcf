package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kamusis/embedprep/internal/config"
	"github.com/kamusis/embedprep/internal/embeddings"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run pre-flight environment checks",
	Long: `Check that the config file parses, the embeddings provider can be
constructed with the available credentials, and the output directory is
writable. No model request is made.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	allOK := true
	failD := func(format string, args ...any) {
		printErr("", fmt.Sprintf(format, args...))
		allOK = false
	}

	printSection("embedprep doctor")
	fmt.Println()

	// ── Check 1: config file ──────────────────────────────────────────────────
	fmt.Println("[ config ]")
	cfgPath := flagConfig
	if cfgPath == "" {
		cfgPath, _ = config.Path()
	}
	fileCfg, err := config.Load(flagConfig)
	switch {
	case err != nil:
		failD("%v", err)
		fileCfg = &config.Config{}
	case *fileCfg == (config.Config{}):
		printInfo("", fmt.Sprintf("no settings in %s (using defaults)", cfgPath))
	default:
		printOK("", fmt.Sprintf("loaded %s", cfgPath))
	}
	fmt.Println()

	// ── Check 2: provider and credentials ─────────────────────────────────────
	fmt.Println("[ provider ]")
	embCfg, err := resolveEmbeddingsConfig(fileCfg)
	if err != nil {
		failD("%v", err)
	} else {
		printInfo("", fmt.Sprintf("provider %s, model %s", embCfg.Provider, embCfg.Model))
		if key := embeddings.APIKeyName(embCfg.Provider); key != "" {
			switch {
			case embCfg.APIKey != "":
				printOK("", fmt.Sprintf("%s is set", key))
			case embCfg.Provider == embeddings.ProviderHuggingFace:
				printWarn("", fmt.Sprintf("%s not set; gated models will fail to download", key))
			default:
				failD("%s not set", key)
			}
		}
		if _, err := newProvider(cmd.Context(), embCfg); err != nil {
			failD("%v", err)
		} else {
			printOK("", "provider configured")
		}
	}
	fmt.Println()

	// ── Check 3: output directory ─────────────────────────────────────────────
	fmt.Println("[ output ]")
	output := resolveOutput(cmd, fileCfg)
	if dir, err := checkWritable(filepath.Dir(output)); err != nil {
		failD("cannot write under %s: %v", dir, err)
	} else {
		printOK("", fmt.Sprintf("%s is writable", dir))
	}
	fmt.Println()

	if !allOK {
		return errors.New("doctor found problems")
	}
	printOK("", "all checks passed")
	return nil
}

// checkWritable probes dir, or its nearest existing ancestor, with a temp file.
// It returns the directory actually probed.
func checkWritable(dir string) (string, error) {
	for {
		st, err := os.Stat(dir)
		if err == nil {
			if !st.IsDir() {
				return dir, fmt.Errorf("not a directory")
			}
			break
		}
		if !errors.Is(err, os.ErrNotExist) {
			return dir, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir, err
		}
		dir = parent
	}
	f, err := os.CreateTemp(dir, ".embedprep-doctor-*")
	if err != nil {
		return dir, err
	}
	name := f.Name()
	_ = f.Close()
	return dir, os.Remove(name)
}
