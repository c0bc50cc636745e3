package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/domaincomb/domaincomb/internal/config"
	"github.com/domaincomb/domaincomb/internal/core"
	"github.com/domaincomb/domaincomb/internal/core/checker"
	"github.com/domaincomb/domaincomb/internal/core/engine"
	"github.com/domaincomb/domaincomb/internal/observability"
	"github.com/domaincomb/domaincomb/internal/output"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check prefix+suffix domain combinations",
	Long:  "Expand prefixes and suffixes into candidate domains and check each one against the registry's RDAP endpoint",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().String("prefixes", "", "Comma-separated prefixes")
	checkCmd.Flags().String("suffixes", "", "Comma-separated suffixes")
	checkCmd.Flags().String("prefix-file", "", "File with one prefix per line (- for stdin)")
	checkCmd.Flags().String("suffix-file", "", "File with one suffix per line")
	checkCmd.Flags().String("tld", "com", "TLD to check")
	checkCmd.Flags().Duration("delay", 0, "Delay between registry requests (default from config)")
	checkCmd.Flags().Int("workers", 0, "Concurrent lookups (default from config)")
	checkCmd.Flags().String("output", "table", "Output format: table, json, csv")
	checkCmd.Flags().String("out", "", "Also write a CSV report to this file")
}

func runCheck(cmd *cobra.Command, args []string) error {
	prefixesArg, err := cmd.Flags().GetString("prefixes")
	if err != nil {
		return err
	}
	prefixFile, err := cmd.Flags().GetString("prefix-file")
	if err != nil {
		return err
	}
	suffixesArg, err := cmd.Flags().GetString("suffixes")
	if err != nil {
		return err
	}
	suffixFile, err := cmd.Flags().GetString("suffix-file")
	if err != nil {
		return err
	}

	prefixes, err := resolveList(prefixesArg, prefixFile, "prefixes")
	if err != nil {
		return err
	}
	suffixes, err := resolveList(suffixesArg, suffixFile, "suffixes")
	if err != nil {
		return err
	}

	tldArg, err := cmd.Flags().GetString("tld")
	if err != nil {
		return err
	}
	tld := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(tldArg)), ".")
	if tld == "" {
		return errors.New("tld is required")
	}

	formatValue, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(formatValue)
	if err != nil {
		return err
	}

	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}

	cfg := appConfig
	if cfg == nil {
		return errors.New("config not loaded")
	}

	delay := cfg.Batch.Delay
	if cmd.Flags().Changed("delay") {
		if delay, err = cmd.Flags().GetDuration("delay"); err != nil {
			return err
		}
	}
	workers := cfg.Batch.Workers
	if cmd.Flags().Changed("workers") {
		if workers, err = cmd.Flags().GetInt("workers"); err != nil {
			return err
		}
	}
	if workers < 1 {
		return errors.New("workers must be at least 1")
	}

	orchestrator := &engine.Orchestrator{
		Checker: buildChecker(cfg, tld),
		Pacer:   &engine.Pacer{Interval: delay},
		Workers: workers,
	}
	if format == output.FormatTable {
		orchestrator.OnResult = newProgressPrinter()
	}

	total := len(prefixes) * len(suffixes)
	observability.CLILogger.Info("Checking domains",
		zap.Int("candidates", total),
		zap.String("tld", tld),
		zap.Int("workers", workers),
	)

	startedAt := time.Now()
	records, err := orchestrator.Run(cmd.Context(), prefixes, suffixes, tld)
	if err != nil {
		return err
	}

	report := core.NewReport(tld, records)

	rendered, err := output.NewFormatter(format).FormatReport(report)
	if err != nil {
		return err
	}
	if rendered != "" {
		fmt.Println(rendered)
	}

	if strings.TrimSpace(outPath) != "" {
		if err := writeCSVReport(outPath, report); err != nil {
			return err
		}
		observability.CLILogger.Info("Saved CSV report", zap.String("path", outPath))
	}

	if format != output.FormatJSON {
		logThroughput(report.Summary.Total, startedAt)
	}
	return nil
}

// buildChecker constructs the lookup client for one TLD with the endpoint
// template injected from config.
func buildChecker(cfg *config.Config, tld string) *checker.RDAPChecker {
	return &checker.RDAPChecker{
		BaseURL:    cfg.Registry.EndpointFor(tld),
		UserAgent:  cfg.Registry.UserAgent,
		Client:     &http.Client{Timeout: cfg.Registry.Timeout},
		MaxRetries: cfg.Registry.MaxRetries,
		Backoff:    cfg.Registry.Backoff,
	}
}

// newProgressPrinter returns a result observer that prints one line per
// checked domain. Safe for concurrent workers.
func newProgressPrinter() func(core.ResultRecord) {
	var mu sync.Mutex
	return func(record core.ResultRecord) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Printf("%-35s -> %s (%s)\n",
			record.Domain,
			strings.ToUpper(string(record.Outcome.Status)),
			record.Outcome.Detail,
		)
	}
}

func writeCSVReport(path string, report *core.Report) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer file.Close() // nolint:errcheck // close error surfaced via WriteCSV flush

	return output.WriteCSV(file, report)
}

func logThroughput(count int, startedAt time.Time) {
	if count <= 0 {
		return
	}
	elapsed := time.Since(startedAt)
	if elapsed <= 0 {
		return
	}
	observability.CLILogger.Info("Check throughput",
		zap.Int("checks", count),
		zap.Duration("elapsed", elapsed),
		zap.Float64("rate_per_sec", float64(count)/elapsed.Seconds()),
	)
}
