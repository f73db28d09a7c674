package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mheller/debtbook/internal/ledger"
)

func init() {
	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a debt entry",
		Long:  "Replace the fields of an existing entry. Flags not given keep their current value; the id never changes.",
		Args:  cobra.ExactArgs(1),
		Run:   runEdit,
	}

	cmd.Flags().StringP("name", "n", "", "Person name")
	cmd.Flags().StringP("product", "p", "", "Product category")
	cmd.Flags().StringP("quantity", "q", "", "Quantity description")
	cmd.Flags().Float64P("amount", "a", 0, "Amount owed")
	cmd.Flags().StringP("location", "l", "", "Location or coordinates")
	cmd.Flags().String("note", "", "Note")
	cmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().String("date", "", "Entry date (YYYY-MM-DD)")

	RootCmd.AddCommand(cmd)
}

func runEdit(cmd *cobra.Command, args []string) {
	id := args[0]

	l, _, cleanup, err := openLedger()
	if err != nil {
		exitErr("open ledger", err)
	}
	defer cleanup()
	requireAdmin(l)

	current, err := l.FindByID(id)
	if err != nil {
		exitErr("edit", err)
	}

	// Start from the stored entry; overwrite only the flags the caller set.
	in := ledger.EntryInput{
		PersonName: current.PersonName,
		Product:    current.Product,
		Quantity:   current.Quantity,
		Amount:     current.Amount,
		Location:   current.Location,
		Note:       current.Note,
		DueDate:    current.DueDate,
		Date:       current.Date,
	}
	if cmd.Flags().Changed("name") {
		in.PersonName, _ = cmd.Flags().GetString("name")
	}
	if cmd.Flags().Changed("product") {
		in.Product, _ = cmd.Flags().GetString("product")
	}
	if cmd.Flags().Changed("quantity") {
		in.Quantity, _ = cmd.Flags().GetString("quantity")
	}
	if cmd.Flags().Changed("amount") {
		in.Amount, _ = cmd.Flags().GetFloat64("amount")
	}
	if cmd.Flags().Changed("location") {
		in.Location, _ = cmd.Flags().GetString("location")
	}
	if cmd.Flags().Changed("note") {
		in.Note, _ = cmd.Flags().GetString("note")
	}
	if cmd.Flags().Changed("due") {
		in.DueDate, _ = cmd.Flags().GetString("due")
	}
	if cmd.Flags().Changed("date") {
		in.Date, _ = cmd.Flags().GetString("date")
	}

	entry, err := l.Update(id, in)
	if err != nil {
		exitErr("edit", err)
	}

	b, _ := json.MarshalIndent(entry, "", "  ")
	fmt.Println(string(b))
}
