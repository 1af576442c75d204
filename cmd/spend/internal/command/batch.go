package command

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/student-spending/spendboard/internal/report"
	"github.com/student-spending/spendboard/internal/upload"
)

type reportFlags struct {
	output string
	xlsx   string
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "table", "output format: table, json or yaml")
	cmd.Flags().StringVar(&f.xlsx, "xlsx", "", "also write an Excel report to this path")
}

func (f *reportFlags) write(w io.Writer, rep report.Report) error {
	var err error

	switch f.output {
	case "table":
		err = report.WriteTable(w, rep)
	case "json":
		err = report.WriteJSON(w, rep)
	case "yaml":
		err = report.WriteYAML(w, rep)
	default:
		return fmt.Errorf("unknown output format %q", f.output)
	}

	if err != nil {
		return err
	}

	if f.xlsx == "" {
		return nil
	}

	out, err := os.Create(f.xlsx)
	if err != nil {
		return fmt.Errorf("creating xlsx report: %w", err)
	}
	defer out.Close()

	return report.WriteXLSX(out, rep)
}

func newValidateCmd(a *app) *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "validate <file.csv|file.jsonl>",
		Short: "Check a batch file without uploading it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.ingest(args[0])
			if err != nil {
				return err
			}

			return flags.write(cmd.OutOrStdout(), report.New(filepath.Base(args[0]), result, nil))
		},
	}

	flags.register(cmd)

	return cmd
}

func newUploadCmd(a *app) *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "upload <file.csv|file.jsonl>",
		Short: "Validate a batch file and upload its valid rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.ingest(args[0])
			if err != nil {
				return err
			}

			client, _, err := a.client()
			if err != nil {
				return err
			}

			uploaded, submitErr := upload.NewUploader(client).Submit(cmd.Context(), result.Valid)

			if err := flags.write(cmd.OutOrStdout(), report.New(filepath.Base(args[0]), result, uploaded)); err != nil {
				return err
			}

			return submitErr
		},
	}

	flags.register(cmd)

	return cmd
}
