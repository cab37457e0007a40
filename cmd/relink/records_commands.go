package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"relink/internal/records"
)

func newRecordsCommand(ctx *commandContext) *cobra.Command {
	recordsCmd := &cobra.Command{
		Use:   "records",
		Short: "Manage the internal record store",
	}

	recordsCmd.AddCommand(newRecordsImportCommand(ctx))
	recordsCmd.AddCommand(newRecordsListCommand(ctx))
	recordsCmd.AddCommand(newRecordsStatsCommand(ctx))

	return recordsCmd
}

func newRecordsImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <csv>",
		Short: "Import book records from a CSV export",
		Long: `Import reads a CSV with a header row containing at least a Title column;
Author and Resource_URL columns are optional. Placeholder values such as
"NaN" or "null" in optional columns are stored as NULL.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer file.Close()

			imported, skipped, err := importRecords(cmd, store, file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records (%d skipped)\n", imported, skipped)
			return nil
		},
	}
}

func importRecords(cmd *cobra.Command, store *records.Store, r io.Reader) (imported, skipped int, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, 0, errors.New("import file is empty")
		}
		return 0, 0, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	titleIdx, ok := columns["title"]
	if !ok {
		return 0, 0, errors.New("import header missing Title column")
	}
	authorIdx, hasAuthor := columns["author"]
	urlIdx, hasURL := columns["resource_url"]

	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return imported, skipped, fmt.Errorf("read row %d: %w", line, err)
		}

		title := strings.TrimSpace(csvField(row, titleIdx))
		if title == "" {
			skipped++
			continue
		}

		record := &records.Record{Title: title}
		if hasAuthor {
			record.Author = records.CleanOptional(csvField(row, authorIdx))
		}
		if hasURL {
			record.ResourceURL = records.CleanOptional(csvField(row, urlIdx))
		}

		if _, err := store.Insert(cmd.Context(), record); err != nil {
			return imported, skipped, fmt.Errorf("import row %d (%q): %w", line, title, err)
		}
		imported++
	}
	return imported, skipped, nil
}

func csvField(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func newRecordsListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var eligibleOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records ordered by title",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			var list []records.Record
			switch {
			case eligibleOnly && limit > 0:
				list, err = store.PageEligible(cmd.Context(), 0, limit)
			case eligibleOnly:
				list, err = store.ListEligible(cmd.Context())
			default:
				list, err = store.List(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No records")
				return nil
			}

			rows := make([][]string, 0, len(list))
			for _, record := range list {
				link := ""
				if record.ResourceURL != nil {
					link = *record.ResourceURL
				}
				rows = append(rows, []string{
					fmt.Sprintf("%d", record.ID),
					record.Title,
					record.AuthorOrEmpty(),
					link,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Title", "Author", "Resource"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum rows to show (0 for all)")
	cmd.Flags().BoolVar(&eligibleOnly, "eligible", false, "Only show records without a resource link")
	return cmd
}

func newRecordsStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show record counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Database: %s\n", store.Path())
			fmt.Fprintf(out, "Total records: %d\n", stats.Total)
			fmt.Fprintf(out, "Linked: %d\n", stats.Linked)
			fmt.Fprintf(out, "Awaiting reconciliation: %d\n", stats.Eligible)
			return nil
		},
	}
}
