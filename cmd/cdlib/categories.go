// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/creative-designer/cdlib/internal/category"
	"github.com/creative-designer/cdlib/internal/config"
	"github.com/creative-designer/cdlib/internal/session"
	"github.com/creative-designer/cdlib/pkg/assetkind"

	"github.com/spf13/cobra"
)

// newCategoriesCommand creates the `cdlib categories` command.
func newCategoriesCommand(app *App, flags *rootFlagValues) *cobra.Command {
	var selectName string

	catCmd := &cobra.Command{
		Use:   "categories <kind>",
		Short: "List the category folders of an asset kind",
		Long: `List the category folders of an asset kind.

Categories are the immediate sub-folders of the kind's effective folder.
The active category is the selected one while it still exists, else the
first folder.`,
		Args:              kindArgs(1),
		ValidArgsFunction: kindCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := parseKind(args[0])
			return runWithSession(cmd, app, flags, func(s *session.Session, _ *config.Config) error {
				if selectName != "" {
					if err := s.SelectCategory(kind, selectName); err != nil {
						return err
					}
				}
				printCategories(app, s, kind)
				return nil
			})
		},
	}
	catCmd.Flags().StringVar(&selectName, "select", "", "category to make active")

	return catCmd
}

func printCategories(app *App, s *session.Session, kind assetkind.Kind) {
	fmt.Fprintf(app.stdout, "%s %s\n\n", TitleStyle.Render(kind.TabName()), SubtitleStyle.Render(s.EffectivePath(kind)))

	folders := s.Categories(kind)
	if len(folders) == 0 {
		fmt.Fprintf(app.stdout, "  %s\n", SubtitleStyle.Render("(no categories)"))
		return
	}

	active := s.ActiveCategory(kind)
	for _, name := range folders {
		marker := " "
		if name == active && active != category.None {
			marker = activeMarkerStyle.Render("*")
		}
		fmt.Fprintf(app.stdout, "%s %s\n", marker, name)
	}
}
