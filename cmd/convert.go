package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/billflow-cli/internal/invoice"
)

var (
	convertStrategy     string
	convertVATRate      float64
	convertPayerAccount string
	convertPayerName    string
	convertOutputDir    string
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert a single billing export file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		applyConvertFlags(cmd)
		if err := cfg.Validate("convert"); err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		if st != nil {
			defer st.Close() //nolint:errcheck
			if err := st.Migrate(ctx); err != nil {
				return eris.Wrap(err, "migrate store")
			}
		}

		opts, err := conversionOptions()
		if err != nil {
			return err
		}

		result, err := processFile(ctx, st, args[0], cfg.Convert.OutputDir, opts)
		if err != nil {
			return eris.Wrapf(err, "convert %s", args[0])
		}

		zap.L().Info("convert complete",
			zap.String("file", args[0]),
			zap.String("tsv", result.TSVPath),
			zap.String("xlsx", result.ExcelPath),
			zap.Bool("perfect_match", result.PerfectMatch),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

// applyConvertFlags overlays command-line flags onto the loaded config so
// flags win over file and environment values.
func applyConvertFlags(cmd *cobra.Command) {
	if cmd.Flags().Changed("strategy") {
		cfg.Convert.Strategy = convertStrategy
	}
	if cmd.Flags().Changed("vat-rate") {
		cfg.Convert.VATRate = convertVATRate
	}
	if cmd.Flags().Changed("payer-account") {
		cfg.Convert.PayerAccount = convertPayerAccount
	}
	if cmd.Flags().Changed("payer-name") {
		cfg.Convert.PayerName = convertPayerName
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.Convert.OutputDir = convertOutputDir
	}
}

func conversionOptions() (invoice.Options, error) {
	strategy, err := invoice.ParseStrategy(cfg.Convert.Strategy)
	if err != nil {
		return invoice.Options{}, err
	}
	return invoice.Options{
		Strategy: strategy,
		VATRate:  cfg.Convert.VATRate,
		Payer: invoice.Payer{
			Account: cfg.Convert.PayerAccount,
			Name:    cfg.Convert.PayerName,
		},
	}, nil
}

func init() {
	convertCmd.Flags().StringVar(&convertStrategy, "strategy", "factor", "decomposition strategy (factor, discounted)")
	convertCmd.Flags().Float64Var(&convertVATRate, "vat-rate", invoice.DefaultVATRate, "VAT rate applied to line items")
	convertCmd.Flags().StringVar(&convertPayerAccount, "payer-account", "", "payer account number for output rows")
	convertCmd.Flags().StringVar(&convertPayerName, "payer-name", "", "payer display name for output rows")
	convertCmd.Flags().StringVar(&convertOutputDir, "output-dir", ".", "directory for generated TSV and XLSX files")
	rootCmd.AddCommand(convertCmd)
}
