package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"relink/internal/catalog"
	"relink/internal/similarity"
)

const searchResultLimit = 10

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the reference catalog",
	}

	catalogCmd.AddCommand(newCatalogStatsCommand(ctx))
	catalogCmd.AddCommand(newCatalogSearchCommand(ctx))

	return catalogCmd
}

func newCatalogStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog size and normalization coverage",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			index, err := ctx.loadCatalog()
			if err != nil {
				return err
			}

			subjects := make(map[string]int)
			for i := range index.Entries() {
				entry := &index.Entries()[i]
				for subject := range entry.Profile().Terms.Subjects {
					subjects[subject]++
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Catalog: %s\n", cfg.Paths.CatalogFile)
			fmt.Fprintf(out, "Entries: %d\n", index.Len())
			fmt.Fprintf(out, "Distinct subjects: %d\n", len(subjects))
			if len(subjects) > 0 {
				fmt.Fprintln(out, renderTable(
					[]string{"Subject", "Entries"},
					topSubjects(subjects, searchResultLimit),
					[]columnAlignment{alignLeft, alignRight},
				))
			}
			return nil
		},
	}
}

func topSubjects(counts map[string]int, limit int) [][]string {
	type pair struct {
		subject string
		count   int
	}
	pairs := make([]pair, 0, len(counts))
	for subject, count := range counts {
		pairs = append(pairs, pair{subject, count})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].subject < pairs[j].subject
	})
	if len(pairs) > limit {
		pairs = pairs[:limit]
	}
	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, []string{p.subject, fmt.Sprintf("%d", p.count)})
	}
	return rows
}

func newCatalogSearchCommand(ctx *commandContext) *cobra.Command {
	var author string

	cmd := &cobra.Command{
		Use:   "search <title>",
		Short: "Rank catalog entries against a title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := ctx.loadCatalog()
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			ranked := rankEntries(query, author, index)
			if len(ranked) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No catalog entries score above zero for %q\n", query)
				return nil
			}

			rows := make([][]string, 0, len(ranked))
			for _, hit := range ranked {
				rows = append(rows, []string{
					fmt.Sprintf("%.2f", hit.score),
					hit.entry.Name,
					hit.entry.URL,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Score", "Name", "URL"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "Author to include in matching variants")
	return cmd
}

type searchHit struct {
	entry *catalog.Entry
	score float64
}

// rankEntries scores every catalog entry against the query variants and
// returns the strongest hits, best first.
func rankEntries(title, author string, index *catalog.Index) []searchHit {
	variants := []string{title}
	if strings.TrimSpace(author) != "" {
		variants = append(variants, title+" "+author, author+" "+title)
	}

	profiles := make([]similarity.Profile, 0, len(variants))
	for _, variant := range variants {
		profile := similarity.NewProfile(variant)
		if profile.Normalized == "" {
			continue
		}
		profiles = append(profiles, profile)
	}
	if len(profiles) == 0 {
		return nil
	}

	entries := index.Entries()
	hits := make([]searchHit, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		best := 0.0
		for _, profile := range profiles {
			if score := similarity.ScoreProfiles(profile, entry.Profile()); score > best {
				best = score
			}
		}
		if best > 0 {
			hits = append(hits, searchHit{entry: entry, score: best})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	if len(hits) > searchResultLimit {
		hits = hits[:searchResultLimit]
	}
	return hits
}
