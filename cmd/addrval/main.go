package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LYYYYL/AddressValidator/internal/batch"
	"github.com/LYYYYL/AddressValidator/internal/config"
	"github.com/LYYYYL/AddressValidator/internal/countries"
	"github.com/LYYYYL/AddressValidator/internal/debug"
	"github.com/LYYYYL/AddressValidator/internal/libpostal"
	"github.com/LYYYYL/AddressValidator/internal/logging"
	"github.com/LYYYYL/AddressValidator/internal/telemetry"
	"github.com/LYYYYL/AddressValidator/internal/validation"
	"github.com/LYYYYL/AddressValidator/internal/web"
	"github.com/LYYYYL/AddressValidator/internal/web/handlers"
)

var (
	settings config.Settings
	logger   *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "addrval",
		Short:         "Singapore address validator",
		Long:          `Parses free-form Singapore addresses and checks them against OneMap and StreetDirectory`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if settings, err = config.Load(); err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if logger, err = logging.New(settings.LogLevel, settings.LogFormat); err != nil {
				return err
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				logger.Sync()
			}
		},
	}

	rootCmd.AddCommand(createParseCmd())
	rootCmd.AddCommand(createExpandCmd())
	rootCmd.AddCommand(createValidateCmd())
	rootCmd.AddCommand(createBatchCmd())
	rootCmd.AddCommand(createServeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// createParseCmd parses an address without any lookups
func createParseCmd() *cobra.Command {
	var parserName string

	cmd := &cobra.Command{
		Use:   "parse [address]",
		Short: "Parse an address into components",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if parserName == "" {
				parserName = settings.AddressParser
			}

			var parsed validation.ParsedAddress
			switch parserName {
			case config.ParserLibpostal:
				var err error
				if parsed, err = libpostal.Parse(args[0]); err != nil {
					return err
				}
			case config.ParserHeuristic:
				parser := validation.NewAddressParser()
				parser.SetTracer(debug.NewTracer(settings.DebugParse, logger))
				parsed = parser.Parse(args[0])
			default:
				return fmt.Errorf("unknown parser %q", parserName)
			}

			return printJSON(cmd.OutOrStdout(), parsed)
		},
	}

	cmd.Flags().StringVar(&parserName, "parser", "", "parser to use: heuristic or libpostal (default ADDRESS_PARSER)")
	return cmd
}

// createExpandCmd prints libpostal's normalized variants of an address
func createExpandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expand [address]",
		Short: "List libpostal expansions of an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			variants, err := libpostal.Expand(args[0])
			if err != nil {
				return err
			}
			for _, v := range variants {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}
}

// createValidateCmd runs the full pipeline for one address
func createValidateCmd() *cobra.Command {
	var (
		country string
		asTable bool
	)

	cmd := &cobra.Command{
		Use:   "validate [address]",
		Short: "Validate an address against the lookup services",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			validator := countries.NewValidator(settings, logger, nil)

			vc, err := validator.Validate(cmd.Context(), args[0], country, nil)
			if err != nil {
				return err
			}

			if asTable {
				fmt.Fprintln(cmd.OutOrStdout(), batch.RenderRows([]batch.Row{batch.MapContext(vc)}))
				return nil
			}
			return printJSON(cmd.OutOrStdout(), handlers.NewValidationResponse(vc))
		},
	}

	cmd.Flags().StringVar(&country, "country", countries.Singapore, "country code")
	cmd.Flags().BoolVar(&asTable, "table", false, "print a summary table instead of JSON")
	return cmd
}

// createBatchCmd validates a CSV export
func createBatchCmd() *cobra.Command {
	var (
		country string
		workers int
		filter  string
		all     bool
		noRoad  bool
	)

	cmd := &cobra.Command{
		Use:   "batch [file.csv]",
		Short: "Validate the shipping addresses of a CSV file",
		Long:  `Reads Shipping Street, Shipping City and Shipping Zip from the file and writes <name>_validated.csv next to it`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := resolveFilter(filter, all, noRoad)
			if err != nil {
				return err
			}

			runner := &batch.Runner{
				Validator: countries.NewValidator(settings, logger, nil),
				Country:   country,
				Workers:   workers,
				Filter:    f,
				Log:       logger,
			}

			output, summary, err := runner.RunFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, batch.RenderSummary(summary))
			fmt.Fprintf(out, "\nOutput saved to: %s (%d rows)\n", output, summary.Written)
			return nil
		},
	}

	cmd.Flags().StringVar(&country, "country", countries.Singapore, "country code")
	cmd.Flags().IntVar(&workers, "workers", 4, "addresses validated concurrently")
	cmd.Flags().StringVar(&filter, "filter", string(batch.FilterInvalid), "rows to write: invalid, all or no-road")
	cmd.Flags().BoolVar(&all, "all", false, "write every row (same as --filter all)")
	cmd.Flags().BoolVar(&noRoad, "no-road", false, "write only rows without a road (same as --filter no-road)")
	cmd.MarkFlagsMutuallyExclusive("all", "no-road")
	return cmd
}

// createServeCmd starts the HTTP API
func createServeCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the validation API",
		RunE: func(cmd *cobra.Command, args []string) error {
			webConfig := web.DefaultConfig()
			if configFile != "" {
				var err error
				if webConfig, err = web.LoadConfig(configFile); err != nil {
					return fmt.Errorf("failed to load web config: %w", err)
				}
			}

			metrics := telemetry.NewMetrics()
			validator := countries.NewValidator(settings, logger, metrics)

			server, err := web.NewServer(webConfig, validator, logger, metrics)
			if err != nil {
				return err
			}
			return server.Start()
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "JSON web server config file")
	return cmd
}

func resolveFilter(name string, all, noRoad bool) (batch.Filter, error) {
	switch {
	case all && noRoad:
		return "", errors.New("--all and --no-road cannot be combined")
	case all:
		return batch.FilterAll, nil
	case noRoad:
		return batch.FilterNoRoad, nil
	}
	return batch.ParseFilter(name)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
