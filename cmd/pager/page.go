package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/syntrixbase/pager/internal/config"
	"github.com/syntrixbase/pager/pkg/model"
)

type pageFlags struct {
	first, last   int
	after, before string
	search        string
	sortBy        string
	sortOrder     string
	filters       []string
	verbose       bool
}

func newPageCommand(opts *rootOptions) *cobra.Command {
	var f pageFlags

	cmd := &cobra.Command{
		Use:   "page <collection>",
		Args:  cobra.ExactArgs(1),
		Short: "Fetch one page from a collection and print the connection as JSON",
		Example: `  pager page users --first 10
  pager page users --sort-by lastName --last 5 --filter lastName=Doe`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.pageRequest(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := bootstrap(ctx, opts, func(cfg *config.Config) {
				// stdout carries the JSON result
				cfg.Logging.File.Enabled = false
				cfg.Logging.Console.Enabled = f.verbose
			})
			if err != nil {
				return err
			}
			defer a.close(ctx)

			conn, err := a.registry.Paginate(ctx, args[0], req)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(conn)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&f.first, "first", 0, "number of rows from the start of the window")
	flags.IntVar(&f.last, "last", 0, "number of rows from the end of the window")
	flags.StringVar(&f.after, "after", "", "cursor the page starts after")
	flags.StringVar(&f.before, "before", "", "cursor the page ends before")
	flags.StringVar(&f.search, "search", "", "case-insensitive text searched in the search fields")
	flags.StringVar(&f.sortBy, "sort-by", "", "sortable field")
	flags.StringVar(&f.sortOrder, "sort-order", "", "asc or desc")
	flags.StringArrayVar(&f.filters, "filter", nil, "filter as name=value, repeatable")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "log to the console")
	return cmd
}

// pageRequest turns the flags into a page request. first and last are set
// only when given on the command line.
func (f *pageFlags) pageRequest(cmd *cobra.Command) (model.PageRequest, error) {
	req := model.PageRequest{
		After:  f.after,
		Before: f.before,
		Search: f.search,
	}
	if cmd.Flags().Changed("first") {
		req.First = model.IntPtr(f.first)
	}
	if cmd.Flags().Changed("last") {
		req.Last = model.IntPtr(f.last)
	}
	if err := req.CheckLimits(0); err != nil {
		return req, err
	}
	if f.sortBy != "" || f.sortOrder != "" {
		req.Sort = &model.Sort{By: f.sortBy, Order: model.SortOrder(f.sortOrder)}
	}

	for _, raw := range f.filters {
		name, value, ok := strings.Cut(raw, "=")
		if !ok || name == "" {
			return req, fmt.Errorf("%w: filter %q is not name=value", model.ErrInvalidArgument, raw)
		}
		parsed, err := parseFilterValue(value)
		if err != nil {
			return req, fmt.Errorf("%w: filter %s: %v", model.ErrInvalidArgument, name, err)
		}
		if req.Filters == nil {
			req.Filters = make(map[string]interface{})
		}
		req.Filters[name] = parsed
	}
	return req, nil
}

// parseFilterValue reads value as a YAML scalar or flow sequence, so
// 30, true, null and [18, 30] arrive typed.
func parseFilterValue(value string) (interface{}, error) {
	if value == "" {
		return "", nil
	}
	var v interface{}
	if err := yaml.Unmarshal([]byte(value), &v); err != nil {
		return nil, err
	}
	return v, nil
}
