package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/phyten/tokenstudio/internal/store"
	"github.com/phyten/tokenstudio/internal/textutil"
	"github.com/phyten/tokenstudio/internal/theme"
	"github.com/phyten/tokenstudio/internal/tokens"
)

func newThemeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Manage saved themes",
		Long: `Themes are named token specs kept in the theme database.

Examples:
  tokenstudio theme save ocean -p brand=#0ea5e9 -p gray
  tokenstudio theme list
  tokenstudio theme show ocean
  tokenstudio theme delete ocean`,
	}
	cmd.PersistentFlags().String("db", "", "theme database path (default $XDG_DATA_HOME/tokenstudio/themes.db)")

	save := &cobra.Command{
		Use:   "save <name>",
		Short: "Save the current palettes and build settings as a theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()
			t, err := st.Save(cmd.Context(), theme.Theme{Name: args[0], Spec: a.settings.Spec()})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.stdout, "saved %s (%s)\n", t.Name, t.ID)
			return err
		},
	}
	addBuildFlags(save, &buildOptions{})

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()
			themes, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			t := a.newTable(
				textutil.Column{Header: "NAME"},
				textutil.Column{Header: "PALETTES", Align: textutil.AlignRight},
				textutil.Column{Header: "STEPS", Align: textutil.AlignRight},
				textutil.Column{Header: "CREATED"},
				textutil.Column{Header: "ID"},
			)
			for _, th := range themes {
				steps := th.Spec.Steps
				if steps == 0 {
					steps = 12
				}
				t.AddRow(th.Name, strconv.Itoa(len(th.Spec.Palettes)), strconv.Itoa(steps),
					th.CreatedAt.Local().Format("2006-01-02 15:04"), th.ID)
			}
			return t.Render(a.stdout)
		},
	}

	var output string
	show := &cobra.Command{
		Use:   "show <name>",
		Short: "Print the tokens of a saved theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := parseOutput(output)
			if err != nil {
				return err
			}
			st, err := a.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()
			th, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			set, err := tokens.Build(th.Spec)
			if err != nil {
				return err
			}
			switch mode {
			case outputJSON:
				return writeJSON(a.stdout, th)
			case outputPlain:
				lines := make([]string, 0, len(set.Tokens))
				for _, tok := range set.Tokens {
					lines = append(lines, set.CSSVar(tok)+": "+tok.Value)
				}
				return writeLines(a.stdout, lines)
			}
			return a.renderTokens(set)
		},
	}
	show.Flags().StringVarP(&output, "output", "o", outputTable, "table|json|plain")

	del := &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved theme",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("no theme named %q", args[0])
				}
				return err
			}
			_, err = fmt.Fprintf(a.stdout, "deleted %s\n", args[0])
			return err
		},
	}

	cmd.AddCommand(save, list, show, del)
	return cmd
}

func (a *app) openStore(cmd *cobra.Command) (*store.Store, error) {
	path := a.settings.UI.DB
	if path == "" {
		path = store.DefaultPath(a.getenv("XDG_DATA_HOME"), a.getenv("HOME"))
	}
	a.logger.Debug("theme database", "path", path)
	return store.Open(cmd.Context(), path)
}

func (a *app) renderTokens(set *tokens.Set) error {
	cols := []textutil.Column{{Header: "TOKEN"}, {Header: "KIND"}}
	if a.term.Enabled {
		cols = append(cols, textutil.Column{Header: "SWATCH"})
	}
	cols = append(cols, textutil.Column{Header: "VALUE"}, textutil.Column{Header: "NEAREST"})
	t := a.newTable(cols...)
	for _, tok := range set.Tokens {
		cells := []string{set.CSSVar(tok), a.kind(tok.Kind)}
		if a.term.Enabled {
			cells = append(cells, a.swatch(tok.Value))
		}
		cells = append(cells, tok.Value, tok.Nearest)
		t.AddRow(cells...)
	}
	return t.Render(a.stdout)
}
