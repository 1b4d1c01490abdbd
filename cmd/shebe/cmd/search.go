package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shebe-oss/shebe/internal/toolops"
)

func newSearchCmd() *cobra.Command {
	var (
		sessionID string
		k         int
		literal   bool
		jsonOut   bool
	)

	cmd := &cobra.Command{
		Use:   "search QUERY...",
		Short: "Run a BM25 search over an indexed session",
		Long: `Search the BM25 index built by 'shebe index' for a session.

Examples:
  shebe search --session widget "parse config file"
  shebe search --session widget --literal "err != nil" --k 5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearchCmd(cmd, sessionID, strings.Join(args, " "), k, literal, jsonOut)
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "session id to search (required)")
	cmd.Flags().IntVar(&k, "k", 0, "number of results (0 uses the configured default_k)")
	cmd.Flags().BoolVar(&literal, "literal", false, "search the query as one literal phrase rather than a BM25 query string")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output results as JSON")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}

func runSearchCmd(cmd *cobra.Command, sessionID, query string, k int, literal, jsonOut bool) error {
	resp, err := toolops.SearchCode(getDeps(), toolops.SearchCodeRequest{
		SessionID: sessionID,
		Query:     query,
		K:         k,
		Literal:   literal,
	})
	if err != nil {
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	out := outWriter(cmd)
	if len(resp.Results) == 0 {
		out.Status("no results.")
		return nil
	}
	for _, r := range resp.Results {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%.3f  %s:%d (chunk %d)\n", r.Score, r.FilePath, r.ByteStart, r.ChunkIndex)
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), indent(r.Content))
	}
	out.Statusf("%d result(s) in %.1fms (%d chunks queried)", len(resp.Results), resp.ElapsedMs, resp.TotalQueried)
	return nil
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n")
}
