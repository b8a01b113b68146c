package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/loadwatch/internal/config"
	"github.com/ppiankov/loadwatch/internal/model"
	"github.com/ppiankov/loadwatch/internal/pipeline"
)

var (
	watchInputs string
	watchConfig string
)

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchInputs, "inputs", "", "Path to a YAML inputs file (required)")
	watchCmd.Flags().StringVar(&watchConfig, "config", "", "Path to config YAML (optional)")
	watchCmd.MarkFlagRequired("inputs")
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-evaluate whenever the inputs or config file change",
	Long: "Watches the inputs file (and config, when given) and re-runs the full\n" +
		"pipeline after each change. Prints the fresh decision output each time.",
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	for _, p := range []string{watchInputs, watchConfig} {
		if p == "" {
			continue
		}
		if err := watcher.Add(p); err != nil {
			return fmt.Errorf("failed to watch %q: %w", p, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	evaluateOnce()

	// Debounce: wait 500ms after last write before re-evaluating
	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(500*time.Millisecond, evaluateOnce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "file watcher error: %v\n", err)
		}
	}
}

func evaluateOnce() {
	cfg, err := config.Load(watchConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config reload failed: %v\n", err)
		return
	}

	data, err := os.ReadFile(watchInputs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read inputs: %v\n", err)
		return
	}

	var inputs model.StateInputs
	if err := yaml.Unmarshal(data, &inputs); err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse inputs: %v\n", err)
		return
	}

	result, err := pipeline.Run(inputs, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}

	fmt.Println(pipeline.FormatText(result))
	fmt.Println()
}
