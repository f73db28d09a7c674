package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "request [message]",
		Short: "Submit a request to the admin",
		Long:  "Submit a free-text request, e.g. asking for a payment extension. Message can be a positional arg or piped via stdin. Open to anyone.",
		Run:   runRequest,
	}

	RootCmd.AddCommand(cmd)
}

func runRequest(cmd *cobra.Command, args []string) {
	var message string
	if len(args) > 0 {
		message = strings.Join(args, " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			message = string(b)
		}
	}

	l, _, cleanup, err := openLedger()
	if err != nil {
		exitErr("open ledger", err)
	}
	defer cleanup()

	req, err := l.Submit(message)
	if err != nil {
		exitErr("request", err)
	}
	if req == nil {
		exitErr("request", fmt.Errorf("message is required (positional arg or stdin)"))
	}

	b, _ := json.MarshalIndent(req, "", "  ")
	fmt.Println(string(b))
}
