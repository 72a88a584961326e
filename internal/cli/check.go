package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/veridex/internal/model"
	"github.com/ppiankov/veridex/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON       bool
	timeout       time.Duration
	userAgent     string
	maxBytes      int64
	noCache       bool
	topK          int
	maxPerSource  int
	judgeProvider string
	judgeModel    string
	embedProvider string
	embedModel    string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <claim>",
	Short: "Check a single claim against the scientific literature",
	Long: `Check runs the full verification cycle for one claim:
- Search Europe PMC, arXiv, Crossref and OpenAlex for candidate papers
- Deduplicate and rerank them by semantic similarity to the claim
- Ask the judge model to weigh the evidence
- Print the verdict, confidence score and supporting papers

Example:
  veridex check "Coffee consumption reduces the risk of type 2 diabetes"
  veridex check "The earth is flat" --json
  veridex check "Vitamin D prevents influenza" --judge-provider openai --judge-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Output flags
	checkCmd.Flags().BoolVar(&outJSON, "json", false, "print the full result as JSON")

	// HTTP flags
	checkCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall check timeout (includes judge inference)")
	checkCmd.Flags().StringVar(&userAgent, "ua", "Veridex/0.1 (+https://github.com/ppiankov/veridex)", "HTTP User-Agent")
	checkCmd.Flags().Int64Var(&maxBytes, "max-bytes", 4_000_000, "max response bytes to read per source")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh searches)")

	// Retrieval flags
	checkCmd.Flags().IntVar(&topK, "top-k", 5, "number of papers to pass to the judge")
	checkCmd.Flags().IntVar(&maxPerSource, "max-per-source", 30, "max candidates fetched per literature source")

	// Model flags
	checkCmd.Flags().StringVar(&judgeProvider, "judge-provider", "ollama", "judge provider (openai, ollama)")
	checkCmd.Flags().StringVar(&judgeModel, "judge-model", "phi3", "judge model name")
	checkCmd.Flags().StringVar(&embedProvider, "embed-provider", "ollama", "embedding provider (openai, ollama)")
	checkCmd.Flags().StringVar(&embedModel, "embed-model", "nomic-embed-text", "embedding model name")
}

func runCheck(cmd *cobra.Command, args []string) error {
	claim := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := buildConfig()

	if verbose {
		fmt.Fprintf(os.Stderr, "Checking: %s\n", claim)
		fmt.Fprintf(os.Stderr, "Judge: %s/%s\n", cfg.Judge.Provider, cfg.Judge.Model)
		fmt.Fprintf(os.Stderr, "Embeddings: %s/%s\n", cfg.Embedding.Provider, cfg.Embedding.Model)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	result, err := p.Analyze(ctx, claim)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if outJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printAnalysis(result)
	return nil
}

// buildConfig assembles the configuration from defaults and flags
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.Cache.Enabled = !noCache
	cfg.Ranking.TopK = topK
	cfg.Sources.MaxPerSource = maxPerSource
	cfg.Output.Verbose = verbose
	cfg.Output.JSON = outJSON

	cfg.Judge.Provider = judgeProvider
	cfg.Judge.Model = judgeModel
	cfg.Embedding.Provider = embedProvider
	cfg.Embedding.Model = embedModel

	applyProviderEnv(&cfg.Judge)
	applyProviderEnv(&cfg.Embedding)
	return cfg
}

// applyProviderEnv fills in credentials and endpoints from the environment
func applyProviderEnv(pc *model.ProviderConfig) {
	switch pc.Provider {
	case "openai":
		if pc.APIKey == "" {
			pc.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			pc.BaseURL = baseURL
		}
	}
}

func printAnalysis(a *model.Analysis) {
	fmt.Printf("Claim:   %s\n", a.Claim)
	fmt.Printf("Label:   %s\n", a.Label)
	if a.Confidence != nil {
		fmt.Printf("Confidence: %d\n", *a.Confidence)
	} else {
		fmt.Printf("Confidence: n/a\n")
	}
	fmt.Println()
	fmt.Println(a.Verdict)
	fmt.Println()

	if len(a.Papers) == 0 {
		fmt.Println("No supporting papers were found.")
		return
	}
	fmt.Printf("Papers (%d):\n", len(a.Papers))
	for i, p := range a.Papers {
		fmt.Printf("  [%d] %s (%s)\n", i+1, p.Title, p.Source)
		if p.URL != "" {
			fmt.Printf("      %s\n", p.URL)
		}
	}
}
