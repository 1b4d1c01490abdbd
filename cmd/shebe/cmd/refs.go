package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shebe-oss/shebe/internal/toolops"
)

func newRefsCmd() *cobra.Command {
	var (
		sessionID         string
		symbolType        string
		definedIn         string
		includeDefinition bool
		contextLines      int
		maxResults        int
		jsonOut           bool
	)

	cmd := &cobra.Command{
		Use:   "refs SYMBOL",
		Short: "Find references to a symbol across an indexed session",
		Long: `Find references to SYMBOL, each labelled with its pattern kind and
bucketed by confidence into high, medium, and low.

Examples:
  shebe refs --session widget ParseConfig
  shebe refs --session widget --symbol-type function --defined-in /src/widget/server.go --include-definition=false HandleRequest`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := toolops.FindReferences(getDeps(), toolops.FindReferencesRequest{
				SessionID:         sessionID,
				Symbol:            args[0],
				SymbolType:        symbolType,
				DefinedIn:         definedIn,
				IncludeDefinition: includeDefinition,
				ContextLines:      contextLines,
				MaxResults:        maxResults,
			})
			if err != nil {
				return err
			}
			return printReferences(cmd, resp, jsonOut)
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "session id to search (required)")
	cmd.Flags().StringVar(&symbolType, "symbol-type", "", "restrict to a symbol kind (function, type, variable, constant, any)")
	cmd.Flags().StringVar(&definedIn, "defined-in", "", "indexed path of the file defining the symbol; with --include-definition=false, matches in that file are skipped")
	cmd.Flags().BoolVar(&includeDefinition, "include-definition", true, "include the defining occurrence in results")
	cmd.Flags().IntVar(&contextLines, "context-lines", 0, "lines of context to show around each match")
	cmd.Flags().IntVar(&maxResults, "max-results", 0, "maximum matches to return (0 uses the default)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output results as JSON")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}

func printReferences(cmd *cobra.Command, resp toolops.FindReferencesResponse, jsonOut bool) error {
	if jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	out := outWriter(cmd)
	if len(resp.Matches) == 0 {
		out.Status("no references found.")
		return nil
	}
	for _, m := range resp.Matches {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s:%d [%s/%s]\n    %s\n",
			m.FilePath, m.LineNumber, m.Bucket, m.PatternKind, m.LineContent)
	}
	out.Statusf("%d reference(s)", len(resp.Matches))
	return nil
}
