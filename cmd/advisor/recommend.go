package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/benefits-advisor/internal/advisor"
	"github.com/jonathan/benefits-advisor/internal/document"
	"github.com/jonathan/benefits-advisor/internal/llm"
	"github.com/jonathan/benefits-advisor/internal/observability"
	"github.com/jonathan/benefits-advisor/internal/recommend"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Ask Gemini for recommendations about a profile CSV",
	Long: `Send a profile CSV to Gemini and print the recommendations extracted from the
reply as cards. Use --raw to print the reply text instead.`,
	RunE: runRecommend,
}

var (
	recommendInputFile string
	recommendAPIKey    string
	recommendStrategy  string
	recommendModelTier string
	recommendRaw       bool
)

func init() {
	recommendCmd.Flags().StringVarP(&recommendInputFile, "in", "i", "", "Path to the profile CSV (required)")
	recommendCmd.Flags().StringVar(&recommendAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	recommendCmd.Flags().StringVar(&recommendStrategy, "strategy", "", "Extraction strategy: bold or markdown (defaults to config strategy)")
	recommendCmd.Flags().StringVar(&recommendModelTier, "model-tier", "", "Model tier: lite, standard or advanced (defaults to config model_tier)")
	recommendCmd.Flags().BoolVar(&recommendRaw, "raw", false, "Print the raw model reply instead of cards")

	_ = recommendCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = recommendAPIKey
	}
	if cmd.Flags().Changed("strategy") {
		cfg.Strategy = recommendStrategy
	}
	if cmd.Flags().Changed("model-tier") {
		cfg.ModelTier = recommendModelTier
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	extractor, err := recommend.ByName(cfg.Strategy)
	if err != nil {
		return err
	}
	tier, err := llm.ParseModelTier(cfg.ModelTier)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, err := llm.NewClient(ctx, cfg.LLMConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			log.Printf("[advisor] failed to close client: %v", err)
		}
	}()

	a := advisor.New(client, advisor.WithTier(tier), advisor.WithExtractor(extractor))
	return recommendFile(ctx, cmd.OutOrStdout(), a, recommendInputFile, recommendRaw)
}

// recommendFile sends the profile at path to the advisor and prints the result
func recommendFile(ctx context.Context, out io.Writer, a *advisor.Advisor, path string, raw bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	text, err := document.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if raw {
		reply := a.Ask(ctx, text)
		fmt.Fprintln(out, reply)
		if advisor.IsFailure(reply) {
			return fmt.Errorf("model request failed")
		}
		return nil
	}

	recs, err := a.Recommend(ctx, text)
	if err != nil {
		return err
	}
	observability.NewPrinter(out).PrintRecommendations(recs)
	return nil
}
