package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nguyentantai21042004/bilisum/internal/batch"
	"github.com/nguyentantai21042004/bilisum/internal/bilibili"
	"github.com/nguyentantai21042004/bilisum/internal/cache"
	"github.com/nguyentantai21042004/bilisum/internal/config"
	"github.com/nguyentantai21042004/bilisum/internal/logger"
	"github.com/nguyentantai21042004/bilisum/internal/output"
	"github.com/nguyentantai21042004/bilisum/internal/processor"
	"github.com/nguyentantai21042004/bilisum/internal/prompt"
	"github.com/nguyentantai21042004/bilisum/internal/subtitle"
	"github.com/nguyentantai21042004/bilisum/internal/summarizer"
	"github.com/nguyentantai21042004/bilisum/internal/transcriber"
	"github.com/nguyentantai21042004/bilisum/pkg/executor"
	"github.com/spf13/cobra"
)

func run(ctx context.Context, cmd *cobra.Command, opts *options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applyFlags(cmd, cfg, opts); err != nil {
		return err
	}

	log := logger.NewWithOptions(logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	var progress io.Writer = os.Stderr
	if opts.quiet {
		progress = nil
	}

	cred := bilibili.CredentialFromEnv()
	if cred.Empty() {
		log.Warn(ctx, "SESSDATA not set. Some videos and subtitles may be unavailable.")
	}

	transcripts := cache.New(cfg.Paths.Cache, log)
	if _, err := transcripts.EvictOlderThan(ctx, cfg.Cache.MaxAge()); err != nil {
		log.Warn(ctx, "Cache cleanup failed: %v", err)
	}

	loader := prompt.New(cfg.Paths.Prompts)
	promptText, err := loader.Load(ctx, opts.prompt)
	if err != nil {
		if errors.Is(err, prompt.ErrNotFound) {
			return fmt.Errorf("prompt %q not found in %s", opts.prompt, cfg.Paths.Prompts)
		}
		return err
	}

	var source prompt.Source = prompt.Static(promptText)
	if opts.watchPrompt {
		w, err := prompt.NewWatcher(loader, opts.prompt, promptText, log)
		if err != nil {
			return fmt.Errorf("watch prompt: %w", err)
		}
		defer w.Stop()

		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := w.Start(watchCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error(ctx, "Prompt watcher stopped: %v", err)
			}
		}()
		source = w
	}

	completions, err := summarizer.NewCompletionService(cfg.LLM, log)
	if err != nil {
		return fmt.Errorf("create %s client: %w", cfg.LLM.Provider, err)
	}

	client := bilibili.New(bilibili.Options{
		RequestsPerSecond: cfg.Bilibili.RequestsPerSecond,
		Timeout:           cfg.Bilibili.Timeout,
		TempDir:           cfg.Paths.Temp,
	}, cred, log)

	trans := transcriber.New(cfg.FFmpeg, cfg.Whisper, executor.New(), log, progress)
	resolver := subtitle.New(transcripts, client, client, trans, client.HTTPClient(), log)
	writer := output.New(cfg.Paths.Output, cfg.Output.Docx, log)
	proc := processor.New(resolver, summarizer.New(completions, log), writer, processor.Options{
		MaxAttempts: cfg.Retry.MaxAttempts,
		BackoffBase: cfg.Retry.BackoffBase,
	}, log)
	runner := batch.New(client, client, proc, writer, source, log, progress)

	log.Info(ctx, "========================================")
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "LLM: %s (%s)", cfg.LLM.Provider, cfg.LLM.Model)
	log.Info(ctx, "Whisper: %s on %s", cfg.Whisper.ModelSize, cfg.Whisper.Device)
	log.Info(ctx, "========================================")

	if opts.bvid != "" {
		_, err = runner.RunVideo(ctx, opts.bvid, opts.startPage, opts.endPage)
	} else {
		_, err = runner.RunSeason(ctx, opts.seasonID)
	}

	if errors.Is(err, context.Canceled) {
		log.Info(ctx, "Interrupted; completed pages are kept and will be skipped next run")
		return nil
	}
	return err
}

// applyFlags lets explicitly set flags override the config file.
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts *options) error {
	flags := cmd.Flags()

	if flags.Changed("output-dir") {
		cfg.Paths.Output = opts.outputDir
	}
	if flags.Changed("device") {
		cfg.Whisper.Device = opts.device
	}
	if flags.Changed("model-size") {
		cfg.Whisper.ModelSize = opts.modelSize
	}
	if flags.Changed("provider") && opts.provider != cfg.LLM.Provider {
		cfg.LLM.Provider = opts.provider
		cfg.LLM.Model = ""
		cfg.LLM.APIKeyEnv = nil
	}
	if flags.Changed("docx") {
		cfg.Output.Docx = opts.docx
	}

	if opts.startPage < 1 {
		return fmt.Errorf("--start-page must be at least 1")
	}
	if opts.endPage != 0 && opts.endPage < opts.startPage {
		return fmt.Errorf("--end-page %d is before --start-page %d", opts.endPage, opts.startPage)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}
