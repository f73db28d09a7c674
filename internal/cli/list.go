package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mheller/debtbook/internal/ledger"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List debt entries",
		Long:  "List debt entries, optionally filtered by a free-text search term matching name, amount, date or product.",
		Run:   runList,
	}

	cmd.Flags().StringP("search", "s", "", "Filter by search term")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	term, _ := cmd.Flags().GetString("search")

	l, _, cleanup, err := openLedger()
	if err != nil {
		exitErr("open ledger", err)
	}
	defer cleanup()
	requireAdmin(l)

	entries := ledger.Filter(l.Entries(), term)
	if len(entries) == 0 {
		fmt.Println("[]")
		return
	}

	b, _ := json.MarshalIndent(entries, "", "  ")
	fmt.Println(string(b))
}
