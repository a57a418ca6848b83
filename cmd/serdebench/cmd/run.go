/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ssargent/serdebench/pkg/bench"
	"github.com/ssargent/serdebench/pkg/codec"
	"github.com/ssargent/serdebench/pkg/config"
	"github.com/ssargent/serdebench/pkg/generator"
	"github.com/ssargent/serdebench/pkg/stream"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the serialization benchmark",
	Long: `Generate a record batch, serialize it with the selected codec, then
deserialize it from a chunked stream and verify the result.

Flags override values from the configuration file.

Examples:
	  serdebench run
	  serdebench run --codec=csv --records=50000 --attempts=5
	  serdebench run --codec=json --chunk-size=4096 --output=json
	  serdebench run --metrics-addr=:9090`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFromContext(cmd)
		if err := applyRunFlags(cmd, cfg); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		output, _ := cmd.Flags().GetString("output")
		if output != outputTable && output != outputJSON {
			return fmt.Errorf("unknown output format %q (expected %s or %s)", output, outputTable, outputJSON)
		}

		if container == nil {
			return fmt.Errorf("dependency container not initialized")
		}

		logger := loggerFromContext(cmd)
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		metrics := bench.NewMetrics()
		report, err := runBenchmark(ctx, cfg, logger, metrics)
		if err != nil {
			return err
		}

		if err := writeReport(cmd.OutOrStdout(), report, output); err != nil {
			return err
		}

		if cfg.Metrics.Addr == "" {
			return nil
		}

		srv := bench.NewResultServer(metrics, logger)
		srv.SetReport(report)
		cmd.PrintErrf("Serving metrics on %s (Ctrl+C to stop)\n", cfg.Metrics.Addr)
		return srv.ListenAndServe(ctx, cfg.Metrics.Addr)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	addRunFlags(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("codec", string(codec.KindMsgpack), "Codec to benchmark (json, csv, msgpack)")
	cmd.Flags().Int("records", 10000, "Number of records per attempt")
	cmd.Flags().Int("attempts", 1, "Number of round trips")
	cmd.Flags().Int("chunk-size", stream.DefaultChunkSize, "Maximum chunk size fed to the deserializer")
	cmd.Flags().String("dataset", string(generator.DatasetFixed), "Record generator (fixed, varied)")
	cmd.Flags().Int64("seed", 1, "Seed for the varied dataset")
	cmd.Flags().StringP("output", "o", outputTable, "Output format (table, json)")
	cmd.Flags().String("metrics-addr", "", "Serve /metrics and /report on this address after the run")
}

// applyRunFlags copies explicitly set flags over the loaded configuration.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("codec") {
		if cfg.Benchmark.Codec, err = flags.GetString("codec"); err != nil {
			return err
		}
	}
	if flags.Changed("records") {
		if cfg.Benchmark.Records, err = flags.GetInt("records"); err != nil {
			return err
		}
	}
	if flags.Changed("attempts") {
		if cfg.Benchmark.Attempts, err = flags.GetInt("attempts"); err != nil {
			return err
		}
	}
	if flags.Changed("chunk-size") {
		if cfg.Benchmark.ChunkSize, err = flags.GetInt("chunk-size"); err != nil {
			return err
		}
	}
	if flags.Changed("dataset") {
		if cfg.Benchmark.Dataset, err = flags.GetString("dataset"); err != nil {
			return err
		}
	}
	if flags.Changed("seed") {
		if cfg.Benchmark.Seed, err = flags.GetInt64("seed"); err != nil {
			return err
		}
	}
	if flags.Changed("metrics-addr") {
		if cfg.Metrics.Addr, err = flags.GetString("metrics-addr"); err != nil {
			return err
		}
	}
	return nil
}

// runBenchmark resolves the codec and generator through the container and
// executes every configured attempt.
func runBenchmark(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger, metrics *bench.Metrics) (*bench.Report, error) {
	kind, err := codec.ParseKind(cfg.Benchmark.Codec)
	if err != nil {
		return nil, err
	}

	c, err := container.GetCodecFactory()(kind)
	if err != nil {
		return nil, fmt.Errorf("failed to create codec: %w", err)
	}

	g, err := container.GetGeneratorFactory()(generator.Dataset(cfg.Benchmark.Dataset), cfg.Benchmark.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	h, err := bench.NewHarness(bench.Config{
		Records:   cfg.Benchmark.Records,
		Attempts:  cfg.Benchmark.Attempts,
		ChunkSize: cfg.Benchmark.ChunkSize,
		Dataset:   cfg.Benchmark.Dataset,
	}, c, g, bench.WithLogger(logger), bench.WithMetrics(metrics))
	if err != nil {
		return nil, err
	}

	return h.Run(ctx)
}

func writeReport(out io.Writer, report *bench.Report, format string) error {
	if format == outputJSON {
		return report.WriteJSON(out)
	}
	return report.WriteTable(out)
}
