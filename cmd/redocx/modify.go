package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/luwenhao/redocx"
	"github.com/luwenhao/redocx/model"
)

var (
	modifyOutput  string
	modifyOptsFile string
	bodyFont      string
	bodySize      float64
)

var modifyCmd = &cobra.Command{
	Use:   "modify <document.docx>",
	Short: "Rebuild a DOCX with per-role style overrides",
	Long: `Modify analyzes a DOCX file, then rebuilds it applying style overrides
per structural role (title, author, body). Overrides come from a YAML
options file, with --body-font and --body-size as quick shortcuts.

Example options file:

  title:
    fontName: 黑体
    fontSize: 22
    bold: true
  body:
    fontName: 仿宋
    fontSize: 12`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		var opts model.ModifyOptions
		if modifyOptsFile != "" {
			raw, err := os.ReadFile(modifyOptsFile)
			if err != nil {
				return fmt.Errorf("reading options file: %w", err)
			}
			if err := yaml.Unmarshal(raw, &opts); err != nil {
				return fmt.Errorf("parsing options file: %w", err)
			}
		}
		if bodyFont != "" || bodySize > 0 {
			if opts.Body == nil {
				opts.Body = &model.RoleOptions{}
			}
			if bodyFont != "" {
				opts.Body.FontName = model.String(bodyFont)
			}
			if bodySize > 0 {
				opts.Body.Size = model.Float(bodySize)
			}
		}

		out, warnings, err := redocx.FromBytes(data).
			Title(opts.Title).
			Author(opts.Author).
			Body(opts.Body).
			Modify()
		if err != nil {
			return err
		}
		for _, line := range warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠ [%s] %s\n", line.Code, line.Message)
		}

		dest := modifyOutput
		if dest == "" {
			dest = outputName(args[0])
		}
		if err := os.WriteFile(dest, out, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", dest, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Modified document written to %s\n", dest)
		return nil
	},
}

// outputName derives a default destination next to the source file.
func outputName(src string) string {
	base := strings.TrimSuffix(src, ".docx")
	return base + "_modified.docx"
}

func init() {
	modifyCmd.Flags().StringVarP(&modifyOutput, "output", "o", "", "destination file (default <source>_modified.docx)")
	modifyCmd.Flags().StringVar(&modifyOptsFile, "options", "", "YAML file with per-role style overrides")
	modifyCmd.Flags().StringVar(&bodyFont, "body-font", "", "override the body font name")
	modifyCmd.Flags().Float64Var(&bodySize, "body-size", 0, "override the body font size in points")
	rootCmd.AddCommand(modifyCmd)
}
