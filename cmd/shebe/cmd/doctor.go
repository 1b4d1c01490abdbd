package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shebe-oss/shebe/internal/cliutil"
	"github.com/shebe-oss/shebe/internal/store"
)

func newDoctorCmd() *cobra.Command {
	var repair bool

	cmd := &cobra.Command{
		Use:   "doctor SESSION",
		Short: "Validate a session's index and optionally repair it",
		Long: `Run the consistency checks session.Validate performs internally
(meta.json parses, the Bleve index opens, and files_indexed,
chunks_created and size_bytes match the index and the files on disk)
and report the result.

Examples:
  shebe doctor widget
  shebe doctor widget --repair`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd, args[0], repair)
		},
	}

	cmd.Flags().BoolVar(&repair, "repair", false, "attempt to auto-repair a broken session")
	return cmd
}

func runDoctor(cmd *cobra.Command, sessionID string, repair bool) error {
	out := outWriter(cmd)
	mgr, err := getSessionManager()
	if err != nil {
		return err
	}

	report, err := mgr.Validate(sessionID)
	if err != nil {
		return err
	}

	printReport(out, report)

	if report.Valid {
		out.Success("session is healthy.")
		return nil
	}

	if !repair {
		out.Warning("run with --repair to attempt automatic repair.")
		return nil
	}

	out.Status("attempting repair...")
	if err := mgr.Repair(sessionID); err != nil {
		return err
	}

	report, err = mgr.Validate(sessionID)
	if err != nil {
		return err
	}
	printReport(out, report)
	if report.Valid {
		out.Success("repair succeeded.")
	} else {
		out.Error("repair did not resolve all issues.")
	}
	return nil
}

func printReport(out *cliutil.Writer, report store.ValidationReport) {
	out.Statusf("meta.json parses:     %v", report.MetaParses)
	out.Statusf("files_indexed OK:     %v (actual %d)", report.FilesIndexedOK, report.ActualFilesIndexed)
	out.Statusf("chunks_created OK:    %v (actual %d)", report.ChunksCreatedOK, report.ActualChunksCount)
	out.Statusf("size_bytes OK:        %v (actual %d)", report.SizeBytesOK, report.ActualSizeBytes)
	for _, p := range report.Problems {
		out.Warningf("problem: %s", p)
	}
}
