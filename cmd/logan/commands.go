package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/clarktrimble/sabot"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"logan"
	nt "logan/entity"
	"logan/markup"
	"logan/panel"
	"logan/store/duck"
	"logan/style"
	lt "logan/table"
	"logan/util"
)

// app carries what every subcommand needs.
type app struct {
	cfgPath string
	decode  bool
	cfg     *logan.Config
	logOut  io.Writer
	logger  *sabot.Sabot
	ctx     context.Context
}

func rootCmd() *cobra.Command {

	ap := &app{}

	root := &cobra.Command{
		Use:   "logan",
		Short: "logan: rule based log analyzer",
		Long: `Logan parses line oriented logs with an ordered list of rules and
shows the records as a table.  Lines matching no rule are kept as plain text.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ap.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			util.CloseLog(ap.logOut)
		},
	}

	root.PersistentFlags().StringVarP(&ap.cfgPath, "config", "c", cfgFile, "rule and column config, yaml or toml")
	root.PersistentFlags().BoolVar(&ap.decode, "markup", false, "input is html, parse the text content of each line (implied for .html and .htm)")

	root.AddCommand(ap.renderCmd(), ap.viewCmd(), ap.filtersCmd(), ap.sampleCmd())
	return root
}

func (ap *app) renderCmd() *cobra.Command {

	var html bool

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Print the parsed log as a table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {

			pl, records, err := ap.parse(args)
			if err != nil {
				return
			}
			tbl := pl.Render(records)

			if html {
				err = markup.Write(cmd.OutOrStdout(), tbl)
				return
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), style.Render(tbl, pl.Columns()))
			return
		},
	}

	cmd.Flags().BoolVar(&html, "html", false, "write an html table instead")
	return cmd
}

func (ap *app) viewCmd() *cobra.Command {

	return &cobra.Command{
		Use:   "view [file]",
		Short: "Browse the parsed log in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {

			pl, records, err := ap.parse(args)
			if err != nil {
				return
			}

			pnl := panel.NewTablePanel(ap.ctx, source(args), records, pl.Columns(), ap.logger)

			_, err = tea.NewProgram(pnl).Run()
			err = errors.Wrapf(err, "viewer failed")
			return
		},
	}
}

func (ap *app) filtersCmd() *cobra.Command {

	var where []string

	cmd := &cobra.Command{
		Use:   "filters [file]",
		Short: "List filter options for each column, with row counts",
		Long: `Filters lists each visible column with its filter kind, and for select columns
the distinct values with the number of rows carrying them.  With --where, counts
are restricted to rows matching every key=value term: select columns match
exactly and like columns by substring.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {

			pl, records, err := ap.parse(args)
			if err != nil {
				return
			}

			columns := pl.Columns()
			filter, err := nt.ParseWhere(columns, where)
			if err != nil {
				return
			}

			dk, err := duck.New(ap.logger)
			if err != nil {
				return
			}
			defer dk.Close()

			err = dk.Load(ap.ctx, pl.Render(records))
			if err != nil {
				return
			}

			metas, err := dk.Filters(ap.ctx, columns)
			if err != nil {
				return
			}

			total, err := dk.Count(ap.ctx, filter)
			if err != nil {
				return
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "rows: %d\n", total)
			for _, meta := range metas {
				fmt.Fprintf(out, "%s (%s)\n", meta.Key, meta.Kind)
				for _, option := range meta.Options {
					var count int
					count, err = dk.Count(ap.ctx, narrow(filter, meta, option))
					if err != nil {
						return
					}
					if count > 0 {
						fmt.Fprintf(out, "  %6d  %s\n", count, option)
					}
				}
			}
			return
		},
	}

	cmd.Flags().StringArrayVarP(&where, "where", "w", nil, "count only rows matching key=value, repeatable")
	return cmd
}

func (ap *app) sampleCmd() *cobra.Command {

	return &cobra.Command{
		Use:   "sample",
		Short: "Write a sample config unless one exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {

			err = util.SampleConfig(logan.SampleYaml, &logan.Config{}, ap.cfgPath, 0644)
			return
		},
	}
}

// unexported

func (ap *app) setup() (err error) {

	ap.cfg = &logan.Config{}
	if _, statErr := os.Stat(ap.cfgPath); statErr == nil {
		ap.cfg, err = logan.LoadConfig(ap.cfgPath)
		if err != nil {
			return
		}
	}

	path := ap.cfg.LogFile
	if path == "" {
		path = logFile
	}
	ap.logOut = util.OpenLog(path, 0644)

	ap.logger = &sabot.Sabot{Writer: ap.logOut, MaxLen: 999}
	ap.ctx = ap.logger.WithFields(context.Background(), "app_id", "logan", "config", ap.cfgPath)

	ap.logger.Info(ap.ctx, "starting up", "rules", len(ap.cfg.Rules), "columns", len(ap.cfg.Columns))
	return
}

func (ap *app) parse(args []string) (pl *logan.Pipeline, records []nt.Record, err error) {

	pl, err = ap.cfg.New(ap.logger)
	if err != nil {
		ap.logger.Error(ap.ctx, "failed to build pipeline", err)
		return
	}

	text, err := util.ReadText(source(args))
	if err != nil {
		ap.logger.Error(ap.ctx, "failed to read log", err)
		return
	}

	if ap.decode || isMarkup(source(args)) {
		records = pl.ParseMarkup(ap.ctx, text)
		return
	}
	records = pl.ParseText(ap.ctx, text)
	return
}

// narrow adds an option of a column to filter.
func narrow(filter nt.Filter, meta lt.FilterMeta, option string) nt.Filter {

	children := append([]nt.Filter{}, filter.Children...)
	children = append(children, nt.Filter{Op: meta.Kind.Op(), Field: meta.Key, Value: option})

	return nt.Filter{Op: nt.And, Children: children}
}

// isMarkup is true for html input.
func isMarkup(path string) bool {

	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".html" || ext == ".htm"
}

func source(args []string) string {

	if len(args) == 0 {
		return "-"
	}
	return args[0]
}
