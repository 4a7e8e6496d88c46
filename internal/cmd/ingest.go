package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/intake/internal/display"
	"github.com/harrison/intake/internal/export"
	"github.com/harrison/intake/internal/fileutil"
	"github.com/harrison/intake/internal/records"
	"github.com/harrison/intake/internal/session"
)

// NewIngestCommand creates and returns the ingest subcommand
func NewIngestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <clients-file-or-directory>...",
		Short: "Normalize client spreadsheets into client and admission exports",
		Long: `Read comma or tab separated client lists (.csv, .tsv, .txt) and write
normalized clients.csv and admissions.csv files.

Column headers are matched case-insensitively against known names such as
"Unique ID", "DOB" or "Zip Code". Dates become MM/DD/YYYY, zip codes nine
digits and genders their numeric codes. Rows with both a client id and an
admission date also produce an admission with a generated admission id.

Rows that fail validation are reported and skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			outDir, _ := cmd.Flags().GetString("out-dir")
			return ingestClients(commandContext(cmd), args, outDir, rt, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}

	cmd.Flags().String("out-dir", ".", "Directory for clients.csv and admissions.csv")

	return cmd
}

func ingestClients(ctx context.Context, paths []string, outDir string, rt *runtime, output, errOutput io.Writer) error {
	files, err := fileutil.ExpandPaths(paths, fileutil.ScanOptions{Extensions: fileutil.ClientExtensions})
	if err != nil {
		return err
	}

	s := session.New(rt.cfg, rt.schema)
	stats, err := loadClientFiles(s, files, rt, output, errOutput)
	if err != nil {
		return err
	}
	if stats.clients == 0 {
		return fmt.Errorf("no valid client records found")
	}

	written, err := export.Session(ctx, s, outDir, rt.cfg)
	if err != nil {
		return err
	}
	for _, w := range written {
		rt.log.LogExport(w.Path, w.Rows)
	}

	fmt.Fprintf(output, "✓ Ingested %d client(s) and %d admission(s)\n", stats.clients, stats.admissions)
	return nil
}

// loadStats counts what loadClientFiles added to a session
type loadStats struct {
	clients    int
	admissions int
	skipped    int
}

// loadClientFiles ingests every client file into s. Rows the session rejects
// are skipped and listed in a warning; unreadable files abort.
func loadClientFiles(s *session.Session, files []string, rt *runtime, output, errOutput io.Writer) (loadStats, error) {
	opts := records.IngestOptions{
		ProviderID: rt.cfg.ProviderID,
		LocationID: rt.cfg.ProviderLocationID,
		Now:        time.Now(),
	}

	var progress *display.ProgressIndicator
	if len(files) > 1 {
		progress = display.NewProgressIndicator(output, len(files), "client files")
		progress.Start()
	}

	var stats loadStats
	var skipped, unmapped []string
	for _, file := range files {
		if progress != nil {
			progress.Step(file)
		}

		ingested, err := ingestFile(file, opts)
		if err != nil {
			return stats, err
		}
		rt.log.LogDebug(fmt.Sprintf("%s: %d client row(s), %d admission row(s)", file, len(ingested.Clients), len(ingested.Admissions)))

		for _, col := range ingested.Unmapped {
			unmapped = append(unmapped, fmt.Sprintf("%s (%s)", col, filepath.Base(file)))
		}
		for _, c := range ingested.Clients {
			if _, err := s.AddClient(c); err != nil {
				skipped = append(skipped, fmt.Sprintf("%s: client %q: %v", filepath.Base(file), c.ProviderClientID, err))
				continue
			}
			stats.clients++
		}
		for _, a := range ingested.Admissions {
			if _, err := s.AddAdmission(a); err != nil {
				skipped = append(skipped, fmt.Sprintf("%s: admission %q: %v", filepath.Base(file), a.ProviderAdmissionID, err))
				continue
			}
			stats.admissions++
		}
	}

	if progress != nil {
		progress.Complete(0)
	}

	if len(unmapped) > 0 {
		display.Warning{
			Title:   "Unrecognized columns were ignored",
			Items:   unmapped,
			Noun:    "column",
			Message: "Only known client and admission columns are kept",
		}.Display(errOutput)
	}
	if len(skipped) > 0 {
		stats.skipped = len(skipped)
		for _, msg := range skipped {
			rt.log.LogWarn(msg)
		}
		display.Warning{
			Title:      fmt.Sprintf("%d record(s) skipped", len(skipped)),
			Items:      skipped,
			Noun:       "record",
			Suggestion: "Correct the listed rows and ingest the file again",
		}.Display(errOutput)
	}

	return stats, nil
}

func ingestFile(path string, opts records.IngestOptions) (*records.Ingested, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	ingested, err := records.IngestClients(f, records.DelimiterFor(path), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to ingest %s: %w", path, err)
	}
	return ingested, nil
}

// commandContext returns the command's context, or Background when run outside Execute
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
