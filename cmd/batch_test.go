package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "github.com/sells-group/billflow-cli/internal/config"
	"github.com/sells-group/billflow-cli/internal/model"
	"github.com/sells-group/billflow-cli/internal/store"
)

func TestLoadFolders(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folders.yaml")
	yaml := `
folders:
  - input: /data/north
    output: /out/north
    payer_account: AC-100
  - input: /data/south
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	folders, err := loadFolders(path)
	require.NoError(t, err)
	require.Len(t, folders, 2)
	assert.Equal(t, "/data/north", folders[0].Input)
	assert.Equal(t, "AC-100", folders[0].PayerAccount)
	assert.Empty(t, folders[1].Output)
}

func TestLoadFolders_MissingFile(t *testing.T) {
	_, err := loadFolders(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestListSourceFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.csv", "a.xlsx", "notes.md", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0755))

	files, err := listSourceFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, filepath.Join(dir, "a.xlsx"), files[0])
	assert.Equal(t, filepath.Join(dir, "b.csv"), files[1])
	assert.Equal(t, filepath.Join(dir, "c.txt"), files[2])
}

func TestProcessFolders(t *testing.T) {
	cfg = &appconfig.Config{}
	t.Cleanup(func() { cfg = nil })

	inDir := t.TempDir()
	outDir := t.TempDir()
	writeFixture(t, inDir)

	// A second folder whose only file fails; the batch must still finish.
	badDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(badDir, "broken.csv"), []byte("not,a,real\nexport,file,here\n"), 0644))

	ctx := context.Background()
	st, err := store.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(ctx))

	folders := []appconfig.FolderConfig{
		{Input: inDir, Output: outDir, PayerAccount: "AC-1", PayerName: "Acme"},
		{Input: badDir},
	}
	require.NoError(t, processFolders(ctx, st, folders, 2))

	runs, err := st.ListRuns(ctx, store.RunFilter{})
	require.NoError(t, err)
	require.Len(t, runs, 2)

	complete, err := st.ListRuns(ctx, store.RunFilter{Status: model.RunStatusComplete})
	require.NoError(t, err)
	require.Len(t, complete, 1)
	assert.Equal(t, "january.csv", complete[0].SourceFile)

	// Outputs landed in the folder's output directory.
	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestFolderOptions_Fallback(t *testing.T) {
	cfg = &appconfig.Config{}
	cfg.Convert.Strategy = "factor"
	cfg.Convert.VATRate = 0.18
	cfg.Convert.PayerAccount = "GLOBAL"
	cfg.Convert.PayerName = "Global Payer"
	t.Cleanup(func() { cfg = nil })

	opts := folderOptions(appconfig.FolderConfig{Input: "/data", PayerAccount: "AC-7"})
	assert.Equal(t, "AC-7", opts.Payer.Account)
	assert.Equal(t, "Global Payer", opts.Payer.Name)
	assert.InDelta(t, 0.18, opts.VATRate, 1e-9)
}

func TestFormatRunsList(t *testing.T) {
	now := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	runs := []model.Run{
		{
			ID:         "abcdef1234567890",
			SourceFile: "january.csv",
			Status:     model.RunStatusComplete,
			Result:     &model.ConversionResult{BillingPeriod: "2024-01", PerfectMatch: true},
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			ID:         "ffff",
			SourceFile: "a-very-long-source-file-name-that-overflows.xlsx",
			Status:     model.RunStatusFailed,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}

	var buf bytes.Buffer
	formatRunsList(&buf, runs)
	out := buf.String()

	assert.Contains(t, out, "abcdef12")
	assert.Contains(t, out, "january.csv")
	assert.Contains(t, out, "2024-01")
	assert.Contains(t, out, "yes")
	assert.Contains(t, out, "...")
	assert.NotContains(t, out, "abcdef1234567890")
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "12345678", truncateID("1234567890"))
	assert.Equal(t, "short", truncateID("short"))
}
