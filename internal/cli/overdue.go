package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mheller/debtbook/internal/ledger"
)

func init() {
	cmd := &cobra.Command{
		Use:   "overdue",
		Short: "List overdue debt entries",
		Long:  "List entries whose due date has passed. Entries without a due date are always overdue.",
		Run:   runOverdue,
	}

	RootCmd.AddCommand(cmd)
}

func runOverdue(cmd *cobra.Command, args []string) {
	l, _, cleanup, err := openLedger()
	if err != nil {
		exitErr("open ledger", err)
	}
	defer cleanup()
	requireAdmin(l)

	today := time.Now().Format("2006-01-02")
	entries := ledger.Overdue(l.Entries(), today)
	if len(entries) == 0 {
		fmt.Println("[]")
		return
	}

	b, _ := json.MarshalIndent(entries, "", "  ")
	fmt.Println(string(b))
}
