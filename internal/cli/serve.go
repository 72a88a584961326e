package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ppiankov/veridex/internal/model"
	"github.com/ppiankov/veridex/internal/pipeline"
	"github.com/ppiankov/veridex/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Veridex HTTP service",
	Long: `Serve starts an HTTP server exposing the verification pipeline:

  GET  /healthz   liveness probe, reports the judge model
  POST /analyze   check a claim ({"claim": "..."})

Example:
  veridex serve
  veridex serve --addr :9090 --judge-provider openai --judge-model gpt-4o-mini`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")

	// Model flags shared with check
	serveCmd.Flags().StringVar(&judgeProvider, "judge-provider", "ollama", "judge provider (openai, ollama)")
	serveCmd.Flags().StringVar(&judgeModel, "judge-model", "phi3", "judge model name")
	serveCmd.Flags().StringVar(&embedProvider, "embed-provider", "ollama", "embedding provider (openai, ollama)")
	serveCmd.Flags().StringVar(&embedModel, "embed-model", "nomic-embed-text", "embedding model name")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()
	cfg.Server.Addr = serveAddr
	cfg.Output.Verbose = verbose

	cfg.Judge.Provider = judgeProvider
	cfg.Judge.Model = judgeModel
	cfg.Embedding.Provider = embedProvider
	cfg.Embedding.Model = embedModel

	applyProviderEnv(&cfg.Judge)
	applyProviderEnv(&cfg.Embedding)

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	// Warn early if a backend is unreachable; requests will still be
	// attempted and fail with proper statuses.
	probeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if !p.Judge().IsAvailable(probeCtx) {
		fmt.Fprintf(os.Stderr, "Warning: judge %s/%s is not reachable\n", cfg.Judge.Provider, cfg.Judge.Model)
	}
	cancel()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "Listening on %s (judge %s/%s)\n", cfg.Server.Addr, cfg.Judge.Provider, cfg.Judge.Model)

	srv := server.New(p, cfg.Judge.Model)
	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}
