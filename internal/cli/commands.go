package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/layoutgrid/internal/app"
	"github.com/specialistvlad/layoutgrid/internal/engine"
	"github.com/specialistvlad/layoutgrid/internal/serializer"
	"github.com/spf13/cobra"
)

func newApplyCommand(r *runner) *cobra.Command {
	var opts app.ApplyOptions
	var printLayout bool

	cmd := &cobra.Command{
		Use:   "apply PATH...",
		Short: "Apply HCL layout definitions to the stored layout",
		Long: `Apply loads every .hcl file below the given paths and applies the parts and
views they declare to the layout stored under --key. Parts that already exist
only receive the declared views.`,
		Args: minArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := r.app.ApplyDefinition(r.key(), args, opts)
			if err != nil {
				return err
			}
			if printLayout {
				return writeOutline(cmd.OutOrStdout(), l)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d file(s) to layout %q.\n", len(args), r.key())
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.Reset, "reset", false, "Build the layout from scratch instead of extending the stored one.")
	cmd.Flags().BoolVar(&printLayout, "print", false, "Print the resulting layout outline.")
	return cmd
}

func newInspectCommand(r *runner) *cobra.Command {
	var format, input string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print a layout as an outline, JSON or YAML",
		Long: `Inspect prints the layout stored under --key, or the layout encoded in the
transport string given with --input ("-" reads it from stdin).`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := r.resolveLayout(cmd, input)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch format {
			case "outline":
				return writeOutline(out, l)
			case "json":
				return writeJSON(out, l)
			case "yaml":
				return writeYAML(out, l)
			case "transport":
				s, err := app.EncodeLayout(l)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, s)
				return err
			default:
				return usageError("invalid format %q: must be 'outline', 'json', 'yaml' or 'transport'", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "outline", "Output format. Options: 'outline', 'json', 'yaml', 'transport'.")
	cmd.Flags().StringVar(&input, "input", "", "Transport string to inspect instead of the stored layout.")
	return cmd
}

func newMigrateCommand(r *runner) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Upgrade a layout to the current serialization version",
		Long: fmt.Sprintf(`Migrate upgrades the layout stored under --key to version %d and writes it
back. With --input, the given transport string is upgraded and printed instead.`, serializer.CurrentVersion),
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if input != "" {
				s, err := readInput(cmd.InOrStdin(), input)
				if err != nil {
					return err
				}
				l, err := r.app.DecodeLayout(s)
				if err != nil {
					return err
				}
				encoded, err := app.EncodeLayout(l)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, encoded)
				return err
			}

			loaded, err := r.app.MigrateLayout(r.key())
			if err != nil {
				return err
			}
			switch {
			case !loaded.Found:
				fmt.Fprintf(out, "No layout stored under %q.\n", r.key())
			case loaded.Migrated:
				fmt.Fprintf(out, "Layout %q migrated to version %d.\n", r.key(), serializer.CurrentVersion)
			default:
				fmt.Fprintf(out, "Layout %q is up to date.\n", r.key())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "Transport string to upgrade (\"-\" reads stdin).")
	return cmd
}

func newMergeCommand(r *runner) *cobra.Command {
	var base, remote string

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Reconcile the stored layout with a remote layout",
		Long: `Merge three-way merges the layout stored under --key (local) with --remote,
using --base as the common ancestor, and stores the result.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if base == "" || remote == "" {
				return usageError("both --base and --remote are required")
			}
			merged, err := r.app.MergeLayout(r.key(), base, remote)
			if err != nil {
				return err
			}
			return writeOutline(cmd.OutOrStdout(), merged)
		},
	}
	cmd.Flags().StringVar(&base, "base", "", "Transport string of the common ancestor.")
	cmd.Flags().StringVar(&remote, "remote", "", "Transport string of the remote layout.")
	return cmd
}

func newNextViewIDCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "next-view-id",
		Short: "Print the smallest unused generated view id",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := r.app.LoadLayout(r.key())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), loaded.Layout.ComputeNextViewID())
			return err
		},
	}
}

func newListCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the keys of the stored layouts",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			keys, err := r.app.Keys()
			if err != nil {
				return err
			}
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
}

// resolveLayout decodes input when given, otherwise loads the stored layout.
func (r *runner) resolveLayout(cmd *cobra.Command, input string) (*engine.Layout, error) {
	if input == "" {
		loaded, err := r.app.LoadLayout(r.key())
		if err != nil {
			return nil, err
		}
		return loaded.Layout, nil
	}
	s, err := readInput(cmd.InOrStdin(), input)
	if err != nil {
		return nil, err
	}
	return r.app.DecodeLayout(s)
}

// readInput returns input itself, or the contents of in when input is "-".
func readInput(in io.Reader, input string) (string, error) {
	if input != "-" {
		return input, nil
	}
	b, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
