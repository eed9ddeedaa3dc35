package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gauravorbit07-glitch/brandpulse/internal/model"
	"github.com/gauravorbit07-glitch/brandpulse/internal/pipeline"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [product-id]",
		Short: "Run a brand visibility analysis",
		Long: `Analyze asks the backend to analyze a product's brand visibility and
tracks the run through a staged progress timeline.

The backend does the real work asynchronously; the timeline paces itself so
quick runs still show every stage and slow runs visibly keep polling
instead of freezing. When no product id is given, the account's first
product is used.

Examples:
  # Analyze a specific product
  brandpulse analyze prod-42

  # Analyze the default product
  brandpulse analyze`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyzeCmd,
	}

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg.Verbose)

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.requireSession(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	resourceID, err := resolveResourceID(a, args)
	if err != nil {
		return err
	}

	// Mark the run before triggering so every other surface of the client
	// sees "analyzing" immediately.
	a.store.StartAnalysis(resourceID)

	if err := a.client.TriggerAnalysis(ctx, resourceID); err != nil {
		// A rejected trigger must not leave the store stuck "analyzing".
		a.store.FailAnalysis(err.Error())
		if a.handleUnauthorized(err) {
			return errLoggedOut
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Analyzing %s\n\n", resourceID)

	// The latest successful poll result, carrying the dashboard payload
	// once the backend reports ready.
	var latest atomic.Pointer[model.Dashboard]

	readiness := func() bool {
		status, err := a.client.PollStatus(ctx, resourceID)
		if err != nil {
			logger.Debug("status poll failed", "error", err)
			return false
		}
		if status.Ready && status.Dashboard != nil {
			latest.Store(status.Dashboard)
		}
		return status.Ready
	}

	// The transition callback reads the runner's states, so it closes
	// over the variable and is only invoked after NewRunner assigns it.
	var runner *pipeline.Runner
	printer := &progressPrinter{out: out, lastActive: -1}
	runner = pipeline.NewRunner(readiness,
		pipeline.WithPollInterval(cfg.PollInterval),
		pipeline.WithReadinessTimeout(cfg.ReadinessTimeout),
		pipeline.WithLogger(logger),
		pipeline.WithTransitionFunc(func() {
			printer.update(runner.States())
		}),
	)

	if err := runner.Run(ctx); err != nil {
		// Interrupted mid-run: the backend job keeps going, and the
		// persisted record lets a later invocation resume watching it.
		fmt.Fprintln(out, "\nInterrupted. The analysis continues in the background; run 'brandpulse status' to check on it.")
		return nil
	}

	if runner.TimedOut() {
		fmt.Fprintln(out, "\nThe analysis is taking longer than expected. Results will appear on the dashboard once the backend finishes.")
		a.store.ClearState()
		return nil
	}

	a.store.CompleteAnalysis()
	a.store.MarkCompletionAnnounced()
	a.store.SetFirstAnalysisPending(false)

	fmt.Fprintln(out, "\nAnalysis complete.")
	if d := latest.Load(); d != nil {
		printSnapshotStats(out, d)
	}
	fmt.Fprintln(out, "Run 'brandpulse dashboard' to view the full report.")
	return nil
}

// progressPrinter prints each stage the first time it completes and each
// stage the first time it becomes active. It only runs from the runner's
// transition callback, so no locking is needed.
type progressPrinter struct {
	out io.Writer

	// printedDone counts the completed stages already printed.
	printedDone int

	// lastActive is the index of the active stage already printed,
	// -1 before the first transition.
	lastActive int
}

// update prints whatever changed since the previous transition.
func (p *progressPrinter) update(states []pipeline.StepState) {
	completed := 0
	for _, s := range states {
		if s.Status == pipeline.StatusComplete {
			completed++
		}
	}
	for i := p.printedDone; i < completed; i++ {
		fmt.Fprintf(p.out, "  [done] %s\n", states[i].Step.Title)
	}
	p.printedDone = completed

	if completed < len(states) && states[completed].Status == pipeline.StatusActive && completed != p.lastActive {
		s := states[completed]
		fmt.Fprintf(p.out, "  [....] %s - %s\n", s.Step.Title, s.Step.Description)
		p.lastActive = completed
	}
}

// resolveResourceID picks the product to analyze: the positional argument
// when given, otherwise the first cached product.
func resolveResourceID(a *app, args []string) (string, error) {
	if len(args) == 1 && args[0] != "" {
		return args[0], nil
	}

	raw := a.vault.Products()
	if raw == "" {
		return "", fmt.Errorf("no product id given and no cached products: pass a product id or log in again")
	}
	var products []model.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil || len(products) == 0 {
		return "", fmt.Errorf("no product id given and no cached products: pass a product id or log in again")
	}
	return products[0].ID, nil
}

// printSnapshotStats prints the headline numbers of the fresh analysis.
func printSnapshotStats(out io.Writer, d *model.Dashboard) {
	fmt.Fprintf(out, "\n  Visibility score: %.1f\n", d.VisibilityScore)
	fmt.Fprintf(out, "  Rank vs competitors: #%d\n", d.BrandRank())
	fmt.Fprintf(out, "  Sentiment: mostly %s\n\n", d.Sentiment.Dominant())
}
