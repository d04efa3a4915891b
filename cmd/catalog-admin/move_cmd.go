package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/amadeus-works/koechel/pkg/logging"
)

func newMoveCmd() *cobra.Command {
	var (
		baseURL  string
		kind     string
		year     int
		entryID  string
		targetID string
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move an entry onto another entry's position within its year group",
		RunE: func(cmd *cobra.Command, args []string) error {
			if entryID == "" || targetID == "" {
				return withCode(exitUsage, fmt.Errorf("--entry-id and --target-id are required"))
			}
			if !cmd.Flags().Changed("year") {
				return withCode(exitUsage, fmt.Errorf("--year is required"))
			}

			client, err := newCatalogAPIClient(baseURL)
			if err != nil {
				return err
			}

			y := year
			view := viewDescriptor{
				Kind:     kind,
				Year:     &y,
				SortBy:   "year",
				SortDesc: true,
			}

			level := logrus.WarnLevel
			if verbose {
				level = logrus.DebugLevel
			}
			session := newReorderSession(client, view, logging.ConsoleLogger(level))
			if err := session.Load(cmd.Context()); err != nil {
				return err
			}
			if err := session.Move(cmd.Context(), entryID, targetID); err != nil {
				return err
			}
			for _, item := range session.Entries() {
				if err := writeJSONLine(item); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "catalog server base URL (defaults to the configured origin)")
	cmd.Flags().StringVar(&kind, "kind", "work", "entry kind (work or chronicle)")
	cmd.Flags().IntVar(&year, "year", 0, "year group to reorder within")
	cmd.Flags().StringVar(&entryID, "entry-id", "", "id of the entry being moved")
	cmd.Flags().StringVar(&targetID, "target-id", "", "id of the entry whose position the moved entry takes")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log each step of the move")
	return cmd
}
