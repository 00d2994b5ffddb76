package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/syntrixbase/pager/internal/config"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configDir    string
	cursorSecret string
	methodName   string
}

// pagerOverrides returns the pager settings given on the command line.
// Empty fields leave the configured value in place.
func (o *rootOptions) pagerOverrides() config.PagerConfig {
	return config.PagerConfig{
		CursorSecret: o.cursorSecret,
		MethodName:   o.methodName,
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "pager",
		Short:         "Relay cursor pagination over document collections",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configDir, "config", "c", "config", "configuration directory")
	flags.StringVar(&opts.cursorSecret, "cursor-secret", "", "cursor signing secret, overrides pager.cursor_secret")
	flags.StringVar(&opts.methodName, "method-name", "", "paginate method name, overrides pager.method_name")

	cmd.AddCommand(
		newServeCommand(opts),
		newPageCommand(opts),
	)
	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
