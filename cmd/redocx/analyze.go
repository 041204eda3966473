package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/luwenhao/redocx"
)

var analyzeOutput string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <document.docx>",
	Short: "Report the structure of a DOCX document as JSON",
	Long: `Analyze reads a DOCX file and prints its structural analysis: title and
author detection, per-paragraph runs with resolved fonts, deduplicated
body styles, font usage statistics and extracted image positions.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		r := redocx.FromBytes(data)
		if !viper.GetBool("deep") {
			r = r.WithoutDeepFonts()
		}
		result, warnings, err := r.Analyze()
		if err != nil {
			return err
		}
		for _, line := range warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠ [%s] %s\n", line.Code, line.Message)
		}

		var out []byte
		if viper.GetBool("json-indent") {
			out, err = json.MarshalIndent(result, "", "  ")
		} else {
			out, err = json.Marshal(result)
		}
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}

		if analyzeOutput != "" {
			if err := os.WriteFile(analyzeOutput, out, 0644); err != nil {
				return fmt.Errorf("writing %s: %w", analyzeOutput, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Analysis written to %s\n", analyzeOutput)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "write JSON to a file instead of stdout")
	rootCmd.AddCommand(analyzeCmd)
}
