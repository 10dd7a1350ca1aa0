// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/creative-designer/cdlib/internal/category"
	"github.com/creative-designer/cdlib/internal/config"
	"github.com/creative-designer/cdlib/internal/preview"
	"github.com/creative-designer/cdlib/internal/session"

	"github.com/spf13/cobra"
)

// newPreviewsCommand creates the `cdlib previews` command.
func newPreviewsCommand(app *App, flags *rootFlagValues) *cobra.Command {
	var (
		categoryName string
		force        bool
		folders      bool
	)

	prevCmd := &cobra.Command{
		Use:   "previews <kind>",
		Short: "List the preview thumbnails of the active category",
		Long: `List the preview thumbnails of an asset kind's active category.

With --folders the category folders themselves are listed instead. Listings
are cached for the session; --force rebuilds them.`,
		Args:              kindArgs(1),
		ValidArgsFunction: kindCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := parseKind(args[0])
			return runWithSession(cmd, app, flags, func(s *session.Session, _ *config.Config) error {
				if folders {
					fmt.Fprintf(app.stdout, "%s %s\n\n", TitleStyle.Render(kind.TabName()), SubtitleStyle.Render(s.EffectivePath(kind)))
					printPreviews(app, s.CategoryPreviews(kind))
					return nil
				}
				if categoryName != "" {
					if err := s.SelectCategory(kind, categoryName); err != nil {
						return err
					}
				}

				active := s.ActiveCategory(kind)
				if active == category.None {
					fmt.Fprintf(app.stdout, "%s %s\n\n", TitleStyle.Render(kind.TabName()), SubtitleStyle.Render("(no categories)"))
					return nil
				}

				fmt.Fprintf(app.stdout, "%s %s\n\n", TitleStyle.Render(kind.TabName()), KeyStyle.Render(active))
				printPreviews(app, s.Previews(kind, force))
				return nil
			})
		},
	}
	prevCmd.Flags().StringVar(&categoryName, "category", "", "category to list (default is the active category)")
	prevCmd.Flags().BoolVar(&force, "force", false, "rebuild cached listings")
	prevCmd.Flags().BoolVar(&folders, "folders", false, "list the category folders as previews")

	return prevCmd
}

func printPreviews(app *App, items []preview.Item) {
	if len(items) == 0 {
		fmt.Fprintf(app.stdout, "  %s\n", SubtitleStyle.Render("(no previews)"))
		return
	}
	for _, item := range items {
		fmt.Fprintf(app.stdout, "%3d %s %s\n", item.Index, item.Name, SubtitleStyle.Render(item.Icon))
	}
}
