package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mheller/debtbook/internal/ledger"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a debt entry",
		Long:  "Create a debt entry. An existing entry for the same person and product is merged: amounts are summed and quantities concatenated.",
		Run:   runAdd,
	}

	cmd.Flags().StringP("name", "n", "", "Person name (required)")
	cmd.Flags().StringP("product", "p", "Fruit", "Product category")
	cmd.Flags().StringP("quantity", "q", "", "Quantity description, e.g. \"2kg\" (required)")
	cmd.Flags().Float64P("amount", "a", 0, "Amount owed (required)")
	cmd.Flags().StringP("location", "l", "", "Location or coordinates (default from config/environment)")
	cmd.Flags().String("note", "", "Optional note")
	cmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().String("date", "", "Entry date (YYYY-MM-DD, default today)")

	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("quantity")
	cmd.MarkFlagRequired("amount")

	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	name, _ := cmd.Flags().GetString("name")
	product, _ := cmd.Flags().GetString("product")
	quantity, _ := cmd.Flags().GetString("quantity")
	amount, _ := cmd.Flags().GetFloat64("amount")
	location, _ := cmd.Flags().GetString("location")
	note, _ := cmd.Flags().GetString("note")
	due, _ := cmd.Flags().GetString("due")
	date, _ := cmd.Flags().GetString("date")

	l, cfg, cleanup, err := openLedger()
	if err != nil {
		exitErr("open ledger", err)
	}
	defer cleanup()
	requireAdmin(l)

	// Best-effort environment enrichment: only when no explicit location
	// was given.
	if location == "" {
		location = cfg.DefaultLocation
	}

	entry, err := l.Create(ledger.EntryInput{
		PersonName: name,
		Product:    product,
		Quantity:   quantity,
		Amount:     amount,
		Location:   location,
		Note:       note,
		DueDate:    due,
		Date:       date,
	})
	if err != nil {
		exitErr("add", err)
	}

	b, _ := json.MarshalIndent(entry, "", "  ")
	fmt.Println(string(b))
}
