// Package cli implements the debtbook CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mheller/debtbook/internal/config"
	"github.com/mheller/debtbook/internal/ledger"
	"github.com/mheller/debtbook/internal/mirror"
	"github.com/mheller/debtbook/internal/notify"
)

var (
	configPath string
	dbPath     string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "debtbook",
	Short: "Debt ledger for a small produce business",
	Long:  "Track informal customer debts: create, merge, search and export entries, and handle customer requests. SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $DEBTBOOK_DB or ~/.debtbook/debtbook.db)")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg, nil
}

// openLedger builds a session from config: mirror, event logger, ledger.
// The returned cleanup closes all of them.
func openLedger() (*ledger.Ledger, *config.Config, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	m, err := mirror.NewSQLiteMirror(cfg.DBPath)
	if err != nil {
		return nil, nil, nil, err
	}

	log, err := notify.NewLogger(cfg.LogLevel)
	if err != nil {
		m.Close()
		return nil, nil, nil, err
	}

	l, err := ledger.Open(m, ledger.Options{
		Currency:    cfg.Currency,
		AdminSecret: cfg.AdminSecret,
		Products:    cfg.Products,
		Notify:      notify.NewZapSink(log),
	})
	if err != nil {
		log.Sync()
		m.Close()
		return nil, nil, nil, err
	}

	cleanup := func() {
		log.Sync()
		m.Close()
	}
	return l, cfg, cleanup, nil
}

// requireAdmin exits unless a prior login stored the admin flag.
func requireAdmin(l *ledger.Ledger) {
	if !l.IsAdmin() {
		fmt.Fprintln(os.Stderr, "error: admin access required (run: debtbook login)")
		os.Exit(1)
	}
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
