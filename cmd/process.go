package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/billflow-cli/internal/export"
	"github.com/sells-group/billflow-cli/internal/invoice"
	"github.com/sells-group/billflow-cli/internal/model"
	"github.com/sells-group/billflow-cli/internal/source"
	"github.com/sells-group/billflow-cli/internal/store"
)

// processFile converts one source file end to end: read, extract, decompose,
// write TSV and XLSX outputs, and record the run if a store is configured.
func processFile(ctx context.Context, st store.Store, path, outputDir string, opts invoice.Options) (*model.ConversionResult, error) {
	var runID string
	if st != nil {
		run, err := st.CreateRun(ctx, filepath.Base(path))
		if err != nil {
			return nil, eris.Wrap(err, "create run")
		}
		runID = run.ID
	}

	result, err := convertFile(path, outputDir, opts)
	if st != nil {
		if err != nil {
			if sErr := st.FailRun(ctx, runID, err); sErr != nil {
				zap.L().Warn("failed to record run failure", zap.Error(sErr))
			}
		} else if sErr := st.CompleteRun(ctx, runID, result); sErr != nil {
			zap.L().Warn("failed to record run completion", zap.Error(sErr))
		}
	}
	return result, err
}

func convertFile(path, outputDir string, opts invoice.Options) (*model.ConversionResult, error) {
	grid, err := source.ReadFile(path)
	if err != nil {
		return nil, err
	}

	rows, diags, err := source.ExtractRows(grid)
	if err != nil {
		return nil, err
	}

	conv, err := invoice.Convert(rows, opts)
	if err != nil {
		return nil, err
	}
	conv.Diagnostics = append(diags, conv.Diagnostics...)

	tsvName, xlsxName := export.Filenames(conv.Period, time.Now())
	tsvPath := filepath.Join(outputDir, tsvName)
	xlsxPath := filepath.Join(outputDir, xlsxName)

	if err := export.WriteTSV(tsvPath, conv.Items); err != nil {
		return nil, err
	}
	if err := export.WriteXLSX(xlsxPath, conv.Items); err != nil {
		return nil, err
	}

	result := conv.Summary()
	result.TSVFilename = tsvName
	result.TSVPath = tsvPath
	result.ExcelFilename = xlsxName
	result.ExcelPath = xlsxPath
	return &result, nil
}
