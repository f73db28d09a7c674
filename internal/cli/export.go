package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mheller/debtbook/internal/export"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full ledger snapshot",
		Long:  "Export every debt entry, the audit log and the request inbox as JSON or a standalone styled HTML page.",
		Run:   runExport,
	}

	cmd.Flags().StringP("format", "f", "json", "Output format: json or html")
	cmd.Flags().StringP("out", "o", "", "Write to file instead of stdout")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	l, cfg, cleanup, err := openLedger()
	if err != nil {
		exitErr("open ledger", err)
	}
	defer cleanup()
	requireAdmin(l)

	snap := export.NewSnapshot(l.Entries(), l.AuditLog(), l.Requests(), time.Now())

	var b []byte
	switch format {
	case "json":
		b, err = snap.JSON()
	case "html":
		b, err = snap.HTML(cfg.Currency)
	default:
		err = fmt.Errorf("unknown format %q (use json or html)", format)
	}
	if err != nil {
		exitErr("export", err)
	}

	if out == "" {
		os.Stdout.Write(b)
		fmt.Println()
		return
	}
	if err := os.WriteFile(out, b, 0o644); err != nil {
		exitErr("write export", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"file":%q}`+"\n", out)
}
