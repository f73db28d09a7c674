package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mheller/debtbook/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "requests",
		Short: "List submitted requests",
		Run:   runRequests,
	}

	cmd.Flags().String("status", "", "Filter by status: pending, accepted, declined")

	RootCmd.AddCommand(cmd)
}

func runRequests(cmd *cobra.Command, args []string) {
	status, _ := cmd.Flags().GetString("status")

	l, _, cleanup, err := openLedger()
	if err != nil {
		exitErr("open ledger", err)
	}
	defer cleanup()
	requireAdmin(l)

	requests := l.Requests()
	if status != "" {
		if !model.ValidStatuses[model.RequestStatus(status)] {
			exitErr("requests", fmt.Errorf("unknown status %q", status))
		}
		var filtered []model.Request
		for _, r := range requests {
			if r.Status == model.RequestStatus(status) {
				filtered = append(filtered, r)
			}
		}
		requests = filtered
	}

	if len(requests) == 0 {
		fmt.Println("[]")
		return
	}

	b, _ := json.MarshalIndent(requests, "", "  ")
	fmt.Println(string(b))
}
