package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"engine-demo/internal/app"
	"engine-demo/internal/demos"
)

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "demo",
		Short:         "Run engine subsystem demos",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.AddCommand(newRunCmd(stderr), newListCmd())
	return root
}

func newRunCmd(logOut io.Writer) *cobra.Command {
	cfg := app.NewConfig()
	var configPath string

	cmd := &cobra.Command{
		Use:   "run <demo-id> <asset-root>",
		Short: "Bootstrap, run and tear down one demo",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return &app.ExitError{Code: app.ExitUsage, Err: fmt.Errorf("demo id %q is not a number", args[0])}
			}
			if configPath != "" {
				if err := cfg.LoadFile(configPath, cmd.Flags().Changed); err != nil {
					return &app.ExitError{Code: app.ExitUsage, Err: err}
				}
			}
			log, err := app.NewLogger(logOut, cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return &app.ExitError{Code: app.ExitUsage, Err: err}
			}
			h, err := app.NewHarness(cfg, log)
			if err != nil {
				return &app.ExitError{Code: app.ExitUsage, Err: err}
			}
			rep, err := app.Run(cmd.Context(), h, id, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s after %d ticks\n", rep.Demo, rep.Result.Outcome, rep.Result.Ticks)
			return nil
		},
	}
	cfg.Bind(cmd.Flags())
	cmd.Flags().StringVar(&configPath, "config", "", "TOML file with defaults for the flags above")
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in demos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := demos.Builtin()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tMODE\tREQUIRES\tSUMMARY")
			for _, d := range reg.List() {
				kinds := make([]string, 0, len(d.Requires))
				for _, k := range d.Requires {
					kinds = append(kinds, k.String())
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", d.ID, d.Name, d.Mode, strings.Join(kinds, ","), d.Summary)
			}
			return tw.Flush()
		},
	}
}
