package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type options struct {
	configPath  string
	bvid        string
	seasonID    int64
	startPage   int
	endPage     int
	prompt      string
	outputDir   string
	device      string
	modelSize   string
	provider    string
	watchPrompt bool
	docx        bool
	quiet       bool
}

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	return buildRootCmd(opts, func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), cmd, opts)
	})
}

// buildRootCmd declares the flags bound to opts and runs runE.
func buildRootCmd(opts *options, runE func(cmd *cobra.Command, args []string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bilisum",
		Short: "Summarize every page of a Bilibili video or season with an LLM",
		Long: `bilisum fetches the transcript of each page (official subtitles when
available, otherwise whisper.cpp speech-to-text), summarizes it with the
chosen prompt and writes one markdown file per page. Pages that already
have an output file are skipped, so an interrupted run can simply be
started again.`,
		Example: `  bilisum --bvid BV1xx411c7mD --prompt summary
  bilisum --bvid BV1xx411c7mD --start-page 3 --end-page 8 --prompt notes --device cpu
  bilisum --season-id 123456 --prompt summary --output-dir season`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runE,
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "config.yaml", "config file (.yaml or .toml); missing file means defaults")
	f.StringVar(&opts.bvid, "bvid", "", "BVID of the video to process")
	f.Int64Var(&opts.seasonID, "season-id", 0, "ID of the season (channel series) to process")
	f.IntVar(&opts.startPage, "start-page", 1, "first page to process (only with --bvid)")
	f.IntVar(&opts.endPage, "end-page", 0, "last page to process, inclusive (only with --bvid; 0 means the last page)")
	f.StringVar(&opts.prompt, "prompt", "", "name of the prompt file without extension")
	f.StringVar(&opts.outputDir, "output-dir", "result", "directory for the summaries")
	f.StringVar(&opts.device, "device", "cuda", "device for speech-to-text (cuda or cpu)")
	f.StringVar(&opts.modelSize, "model-size", "small", "whisper model size (tiny, base, small, medium, large-v3)")
	f.StringVar(&opts.provider, "provider", "", "LLM provider (gemini, openai, anthropic)")
	f.BoolVar(&opts.watchPrompt, "watch-prompt", false, "reload the prompt file when it changes during the run")
	f.BoolVar(&opts.docx, "docx", false, "also render every summary as .docx")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "hide progress bars")

	_ = cmd.MarkFlagRequired("prompt")
	cmd.MarkFlagsMutuallyExclusive("bvid", "season-id")
	cmd.MarkFlagsOneRequired("bvid", "season-id")

	return cmd
}
