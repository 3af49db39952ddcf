package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/kamusis/embedprep/internal/config"
	"github.com/kamusis/embedprep/internal/content"
	"github.com/kamusis/embedprep/internal/embeddings"
	"github.com/spf13/cobra"
)

var (
	flagInput    string
	flagOutput   string
	flagModel    string
	flagHFToken  string
	flagProvider string
	flagBaseURL  string
	flagConfig   string
	flagTimeout  time.Duration
)

// newProvider builds the embeddings backend; tests replace it with a stub.
var newProvider = embeddings.NewFromConfig

var rootCmd = &cobra.Command{
	Use:   "embedprep --input <content.json>",
	Short: "Precompute sentence embeddings for content blocks",
	Long: `embedprep reads a JSON array of content blocks ({id, text, meta}), embeds
every text with a sentence-embedding model in one batched call, and writes:

  <output>                 the blocks plus their unit-length embedding vectors
  <output>.version.json    sha256 of the embeddings file, timestamp and count

The default provider is the Hugging Face inference API with
sentence-transformers/all-MiniLM-L6-v2. Set HF_API_TOKEN or pass --hf-token
for authenticated access to gated models.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true, // don't print usage on operational errors
	SilenceErrors: true,
	RunE:          runPrecompute,
}

func init() {
	rootCmd.Flags().StringVar(&flagInput, "input", "", "Path to source JSON content (required)")
	_ = rootCmd.MarkFlagRequired("input")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagOutput, "output", config.DefaultOutput, "Embeddings output path")
	pf.StringVar(&flagModel, "model", "", "Embedding model id (default depends on provider)")
	pf.StringVar(&flagHFToken, "hf-token", "", "Hugging Face token (env HF_API_TOKEN also respected)")
	pf.StringVar(&flagProvider, "provider", "", "Embeddings provider: huggingface, openai, ollama or gemini")
	pf.StringVar(&flagBaseURL, "base-url", "", "Override the provider endpoint")
	pf.StringVar(&flagConfig, "config", "", "Config file (default ~/.embedprep/config.yaml)")
	pf.DurationVar(&flagTimeout, "timeout", 0, "HTTP timeout for the embedding request (0 = none)")
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printErr("", err.Error())
		os.Exit(1)
	}
}

func runPrecompute(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	embCfg, err := resolveEmbeddingsConfig(fileCfg)
	if err != nil {
		return err
	}
	output := resolveOutput(cmd, fileCfg)

	ctx := cmd.Context()
	prov, err := newProvider(ctx, embCfg)
	if err != nil {
		return err
	}

	unlock, err := acquireRunLock(output)
	if err != nil {
		return err
	}
	defer unlock()

	res, err := content.Build(ctx, prov, content.BuildOptions{
		InputPath:  flagInput,
		OutputPath: output,
		Logf: func(format string, args ...any) {
			printInfo("", fmt.Sprintf(format, args...))
		},
	})
	if err != nil {
		return err
	}
	for _, id := range res.DuplicateIDs {
		printWarn(id, "duplicate id in input")
	}
	printOK("", fmt.Sprintf("done: %d items, version %s", res.Manifest.Count, res.Manifest.Version[:12]))
	return nil
}

// resolveEmbeddingsConfig overlays command-line flags on env, dotenv and file settings.
func resolveEmbeddingsConfig(fileCfg *config.Config) (*embeddings.Config, error) {
	cfg, err := embeddings.LoadConfig(fileCfg, embeddings.Config{
		Provider: flagProvider,
		Model:    flagModel,
		BaseURL:  flagBaseURL,
		Timeout:  flagTimeout,
	})
	if err != nil {
		return nil, err
	}
	if cfg.Provider == embeddings.ProviderHuggingFace && flagHFToken != "" {
		cfg.APIKey = flagHFToken
	}
	if cfg.Model == "" {
		cfg.Model = embeddings.DefaultModel(cfg.Provider)
	}
	return cfg, nil
}

// resolveOutput returns --output when given, else the config file value, else the default.
func resolveOutput(cmd *cobra.Command, fileCfg *config.Config) string {
	if cmd.Flags().Changed("output") || fileCfg.Output == "" {
		return flagOutput
	}
	return fileCfg.Output
}
