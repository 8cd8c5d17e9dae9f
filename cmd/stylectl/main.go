// Stylectl applies widget styles and handles embed snippets offline, without a
// running server.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/TheLab-ms/styler/internal/chartstyle"
	"github.com/TheLab-ms/styler/internal/snippet"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "stylectl",
		Short:        "Style chart widgets and work with embed snippets",
		SilenceUsage: true,
	}
	root.AddCommand(newRenderCmd(), newExtractCmd(), newSnippetCmd())
	return root
}

func newRenderCmd() *cobra.Command {
	var (
		stylePath string
		pretty    bool
		chrome    bool
	)
	cmd := &cobra.Command{
		Use:   "render [options.json]",
		Short: "Apply a style to a chart option tree",
		Long: `Reads a chart option tree (from the file argument, or stdin when omitted
or "-") and prints it with the style applied. The style file may hold any
subset of style fields; missing fields keep their defaults.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			style := chartstyle.Default()
			if stylePath != "" {
				buf, err := os.ReadFile(stylePath)
				if err != nil {
					return fmt.Errorf("reading style: %w", err)
				}
				if style, err = chartstyle.Merge(style, buf); err != nil {
					return err
				}
				if err := style.Validate(); err != nil {
					return fmt.Errorf("invalid style: %w", err)
				}
			}

			buf, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			opts := chartstyle.Options{}
			if len(buf) > 0 {
				if err := json.Unmarshal(buf, &opts); err != nil {
					return fmt.Errorf("parsing chart options: %w", err)
				}
			}
			if opts == nil {
				opts = chartstyle.Options{}
			}

			var out any = chartstyle.Apply(style, opts)
			if chrome {
				out = map[string]any{
					"options":     out,
					"widgetStyle": style.WidgetStyle(),
					"palette":     style.Palette(),
				}
			}
			return writeJSON(cmd.OutOrStdout(), out, pretty)
		},
	}
	cmd.Flags().StringVarP(&stylePath, "style", "s", "", "Style JSON file (default: built-in style)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().BoolVar(&chrome, "chrome", false, "Also print the widget style and palette")
	return cmd
}

func newExtractCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Print the widget and dashboard ids found in embed code",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			ids := snippet.Extract(string(buf))
			if err := writeJSON(cmd.OutOrStdout(), ids, false); err != nil {
				return err
			}
			if strict && !ids.Complete() {
				return fmt.Errorf("embed code is missing %s or %s", snippet.WidgetAttr, snippet.DashboardAttr)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail unless both ids are present")
	return cmd
}

func newSnippetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snippet <widgetOid> <dashboardOid>",
		Short: "Print the embed code for a widget",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), snippet.Generate(args[0], args[1]))
			return err
		},
	}
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	buf, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return buf, nil
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
