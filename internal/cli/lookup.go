package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "lookup [id]",
		Short: "Look up a debt entry by its 6-character ID",
		Long:  "Exact-match lookup by opaque ID. Open to anyone; no admin access needed.",
		Args:  cobra.ExactArgs(1),
		Run:   runLookup,
	}

	RootCmd.AddCommand(cmd)
}

func runLookup(cmd *cobra.Command, args []string) {
	l, _, cleanup, err := openLedger()
	if err != nil {
		exitErr("open ledger", err)
	}
	defer cleanup()

	entry, err := l.FindByID(args[0])
	if err != nil {
		exitErr("lookup", err)
	}

	b, _ := json.MarshalIndent(entry, "", "  ")
	fmt.Println(string(b))
}
