package main

import (
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var (
		baseURL string
		kind    string
		year    int
		query   string
		genre   string
		sortBy  string
		sortAsc bool
		limit   int
		offset  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries as JSON lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newCatalogAPIClient(baseURL)
			if err != nil {
				return err
			}

			view := viewDescriptor{
				Kind:     kind,
				Query:    query,
				Genre:    genre,
				SortBy:   sortBy,
				SortDesc: !sortAsc,
				Limit:    limit,
				Offset:   offset,
			}
			if cmd.Flags().Changed("year") {
				y := year
				view.Year = &y
			}

			items, err := client.ListEntries(cmd.Context(), view)
			if err != nil {
				return err
			}
			for _, item := range items {
				if err := writeJSONLine(item); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "catalog server base URL (defaults to the configured origin)")
	cmd.Flags().StringVar(&kind, "kind", "", "filter by kind (work or chronicle)")
	cmd.Flags().IntVar(&year, "year", 0, "filter by year")
	cmd.Flags().StringVar(&query, "q", "", "free-text search over title and note")
	cmd.Flags().StringVar(&genre, "genre", "", "filter by genre")
	cmd.Flags().StringVar(&sortBy, "sort-by", "year", "sort field (year or title)")
	cmd.Flags().BoolVar(&sortAsc, "asc", false, "sort ascending instead of descending")
	cmd.Flags().IntVar(&limit, "limit", 0, "page size (0 uses the server default)")
	cmd.Flags().IntVar(&offset, "offset", 0, "page offset")
	return cmd
}
