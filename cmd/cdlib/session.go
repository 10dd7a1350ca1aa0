// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/creative-designer/cdlib/internal/config"
	"github.com/creative-designer/cdlib/internal/issue"
	"github.com/creative-designer/cdlib/internal/session"
	"github.com/creative-designer/cdlib/pkg/assetkind"

	"github.com/spf13/cobra"
)

// runWithSession opens a session for cmd and passes it to fn. Failures that
// carry a catalog entry get the entry rendered in verbose mode.
func runWithSession(cmd *cobra.Command, app *App, flags *rootFlagValues, fn func(*session.Session, *config.Config) error) error {
	s, cfg, err := app.openSession(cmd.Context(), flags)
	if err != nil {
		if flags.verbose {
			renderIssueHelp(app.stderr, err, config.ColorSchemeAuto)
		}
		return err
	}

	if err := fn(s, cfg); err != nil {
		if flags.verbose {
			renderIssueHelp(app.stderr, err, cfg.UI.ColorScheme)
		}
		return err
	}
	return nil
}

// parseKind converts a command argument into an asset kind.
func parseKind(arg string) (assetkind.Kind, error) {
	kind, err := assetkind.Parse(arg)
	if err != nil {
		return "", issue.NewErrorContext().
			WithOperation("parse asset kind").
			WithResource(arg).
			WithSuggestion("Use one of: script, object, collection, material, world").
			WithIssue(issue.UnknownAssetKindId).
			Wrap(err).
			BuildError()
	}
	return kind, nil
}

// kindArgs validates a single asset kind positional argument.
func kindArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return err
		}
		_, err := parseKind(args[0])
		return err
	}
}

// kindCompletion completes the asset kind argument.
func kindCompletion(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	var names []string
	for _, k := range assetkind.All() {
		names = append(names, k.String())
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
