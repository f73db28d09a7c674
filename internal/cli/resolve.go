package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mheller/debtbook/internal/ledger"
	"github.com/mheller/debtbook/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "resolve [id]",
		Short: "Accept or decline a request",
		Args:  cobra.ExactArgs(1),
		Run:   runResolve,
	}

	cmd.Flags().Bool("accept", false, "Accept the request")
	cmd.Flags().Bool("decline", false, "Decline the request")
	cmd.Flags().StringP("response", "r", "", "Response text shown to the requester")
	cmd.Flags().String("notes", "", "Private admin notes")

	RootCmd.AddCommand(cmd)
}

func runResolve(cmd *cobra.Command, args []string) {
	accept, _ := cmd.Flags().GetBool("accept")
	decline, _ := cmd.Flags().GetBool("decline")
	response, _ := cmd.Flags().GetString("response")
	notes, _ := cmd.Flags().GetString("notes")

	if accept == decline {
		exitErr("resolve", fmt.Errorf("exactly one of --accept or --decline is required"))
	}
	decision := model.StatusAccepted
	if decline {
		decision = model.StatusDeclined
	}

	l, _, cleanup, err := openLedger()
	if err != nil {
		exitErr("open ledger", err)
	}
	defer cleanup()
	requireAdmin(l)

	req, err := l.Resolve(ledger.ResolveParams{
		ID:         args[0],
		Decision:   decision,
		Response:   response,
		AdminNotes: notes,
	})
	if err != nil {
		exitErr("resolve", err)
	}

	b, _ := json.MarshalIndent(req, "", "  ")
	fmt.Println(string(b))
}
