package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"

	"github.com/domsel/domsel/filter"
	"github.com/domsel/domsel/query"
)

func selectorsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "selectors",
		Short: "List registered selectors",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			reg := newRegistry(cfg)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFORMAT\tLABEL\tFILTERS")
			for _, name := range reg.Names() {
				sel, _ := reg.Get(name)
				var filters []string
				for _, f := range sel.Filters().ExpressionFilters() {
					filters = append(filters, f.Key().String())
				}
				for _, f := range sel.Filters().NodeFilters() {
					filters = append(filters, f.Key().String())
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, sel.Format(), sel.Label(), strings.Join(filters, ","))
			}
			return w.Flush()
		},
	}
}

func detectCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "detect <locator>",
		Short: "Auto-detect the selector for a raw locator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			reg := newRegistry(cfg)

			if sel, ok := reg.Detect(args[0]); ok {
				fmt.Fprintln(cmd.OutOrStdout(), sel.Name())
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "no selector matched; default is %q\n", cfg.DefaultSelector)
			return nil
		},
	}
}

func findCmd(configPath *string) *cobra.Command {
	var (
		file    string
		visible string
		text    string
		optArgs []string
	)

	cmd := &cobra.Command{
		Use:   "find <selector> [locator]",
		Short: "Run a selector against a saved HTML document",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			reg := newRegistry(cfg)

			sel, ok := reg.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown selector %q", args[0])
			}
			locator := ""
			if len(args) == 2 {
				locator = args[1]
			}

			opts, err := parseOptions(optArgs)
			if err != nil {
				return err
			}
			if visible != "" {
				opts["visible"] = visible
			}
			if text != "" {
				opts["text"] = text
			}

			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open document: %w", err)
			}
			defer f.Close()
			doc, err := goquery.NewDocumentFromReader(f)
			if err != nil {
				return fmt.Errorf("parse document: %w", err)
			}

			q := query.New(sel, locator, opts)
			matches, err := q.Resolve(doc.Get(0), cfg.DefaultVisibility())
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), q.FailureMessage(0))
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "found %d for %s\n", len(matches), q.Description())
			for _, el := range matches {
				markup, err := goquery.OuterHtml(goquery.NewDocumentFromNode(el.Node()).Selection)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(markup))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "HTML document to search (required)")
	cmd.Flags().StringVar(&visible, "visible", "", "visibility mode (all, hidden, visible)")
	cmd.Flags().StringVar(&text, "text", "", "require matches to contain this text")
	cmd.Flags().StringArrayVar(&optArgs, "opt", nil, "filter option as key=value (repeatable)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// parseOptions turns key=value pairs into an options bag. true/false values
// become booleans, since most node filters take them.
func parseOptions(pairs []string) (filter.Options, error) {
	opts := filter.Options{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("malformed option %q, want key=value", pair)
		}
		switch value {
		case "true":
			opts[key] = true
		case "false":
			opts[key] = false
		default:
			opts[key] = value
		}
	}
	return opts, nil
}
