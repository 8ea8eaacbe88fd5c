package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/billflow-cli/internal/config"
	"github.com/sells-group/billflow-cli/internal/invoice"
	"github.com/sells-group/billflow-cli/internal/store"
)

var batchFoldersFile string

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Convert every billing export in the configured folders",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("batch"); err != nil {
			return err
		}

		folders := cfg.Batch.Folders
		if batchFoldersFile != "" {
			loaded, err := loadFolders(batchFoldersFile)
			if err != nil {
				return err
			}
			folders = loaded
		}
		if len(folders) == 0 {
			return eris.New("no batch folders configured (set batch.folders or --folders)")
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

		return processFolders(ctx, st, folders, cfg.Batch.MaxConcurrentFiles)
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchFoldersFile, "folders", "", "YAML file listing input/output folder pairs")
	rootCmd.AddCommand(batchCmd)
}

// loadFolders reads a folder list from a standalone YAML file, overriding the
// batch.folders config section.
func loadFolders(path string) ([]config.FolderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read folders file %s", path)
	}

	var doc struct {
		Folders []config.FolderConfig `yaml:"folders"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrapf(err, "parse folders file %s", path)
	}
	return doc.Folders, nil
}

// listSourceFiles returns the convertible files in a folder, sorted by name.
func listSourceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "read folder %s", dir)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".csv", ".txt", ".xlsx":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// processFolders converts all files across folders concurrently. Individual
// file failures are logged and counted without aborting the batch.
func processFolders(ctx context.Context, st store.Store, folders []config.FolderConfig, concurrency int) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64

	for _, folder := range folders {
		files, err := listSourceFiles(folder.Input)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			zap.L().Info("no source files in folder", zap.String("input", folder.Input))
			continue
		}

		outputDir := folder.Output
		if outputDir == "" {
			outputDir = folder.Input
		}
		opts := folderOptions(folder)

		zap.L().Info("processing folder",
			zap.String("input", folder.Input),
			zap.String("output", outputDir),
			zap.Int("files", len(files)),
		)

		for _, file := range files {
			g.Go(func() error {
				log := zap.L().With(zap.String("file", file))

				result, err := processFile(gctx, st, file, outputDir, opts)
				if err != nil {
					failed.Add(1)
					log.Error("conversion failed", zap.Error(err))
					return nil // don't abort batch on individual failure
				}

				succeeded.Add(1)
				log.Info("conversion complete",
					zap.String("period", result.BillingPeriod),
					zap.Int("line_items", result.TotalLines),
					zap.Bool("perfect_match", result.PerfectMatch),
				)
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "batch processing")
	}

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return nil
}

// folderOptions builds conversion options for one folder, falling back to the
// global convert settings where the folder leaves payer fields empty.
func folderOptions(folder config.FolderConfig) invoice.Options {
	account := folder.PayerAccount
	if account == "" {
		account = cfg.Convert.PayerAccount
	}
	name := folder.PayerName
	if name == "" {
		name = cfg.Convert.PayerName
	}

	strategy, _ := invoice.ParseStrategy(cfg.Convert.Strategy)
	return invoice.Options{
		Strategy: strategy,
		VATRate:  cfg.Convert.VATRate,
		Payer:    invoice.Payer{Account: account, Name: name},
	}
}
