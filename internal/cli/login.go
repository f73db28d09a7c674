package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "login [password]",
		Short: "Unlock admin commands",
		Long:  "Check the password against the shared secret. Success is remembered across sessions.",
		Args:  cobra.ExactArgs(1),
		Run:   runLogin,
	}

	RootCmd.AddCommand(cmd)
}

func runLogin(cmd *cobra.Command, args []string) {
	l, _, cleanup, err := openLedger()
	if err != nil {
		exitErr("open ledger", err)
	}
	defer cleanup()

	ok, err := l.Login(args[0])
	if err != nil {
		exitErr("login", err)
	}
	if !ok {
		exitErr("login", fmt.Errorf("invalid password"))
	}

	fmt.Println(`{"ok":true,"admin":true}`)
}
