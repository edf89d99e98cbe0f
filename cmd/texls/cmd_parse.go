package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/texls/format"
	"github.com/dhamidi/texls/latex/parser"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var includePositions bool
	var prefix bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a LaTeX file and dump its tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read latex file: %w", err)
			}
			source := string(data)

			var tree *parser.Tree
			if prefix {
				tree, err = parser.ParsePrefix(source)
				if err != nil {
					return fmt.Errorf("parse %s: %w", filename, err)
				}
			} else {
				lines := parser.NewLineIndex(source)
				sink := parser.IssueSinkFunc(func(issue parser.Issue) {
					fmt.Fprintln(os.Stderr, formatIssue(issue, lines))
				})
				doc, err := parser.Parse(source, filename, sink)
				if err != nil {
					return fmt.Errorf("parse %s: %w", filename, err)
				}
				tree = &doc.Tree
			}

			var encoder format.Encoder
			switch outputFormat {
			case "json":
				encoder = format.NewTreeJSONEncoder(os.Stdout)
			case "xml":
				encoder = format.NewXMLEncoder(os.Stdout)
			case "tree":
				if includePositions {
					fmt.Print(tree.StringWithPositions())
				} else {
					fmt.Print(tree.String())
				}
				return nil
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			if err := encoder.Encode(tree); err != nil {
				return fmt.Errorf("encode %s: %w", outputFormat, err)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "Output format (tree, json, xml)")
	cmd.Flags().BoolVarP(&includePositions, "positions", "p", false, "Include character spans in tree output")
	cmd.Flags().BoolVar(&prefix, "prefix", false, "Parse as the text left of a cursor")

	return cmd
}
