package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wfsort/internal/config"
	"wfsort/internal/errors"
	"wfsort/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded normalization runs",
	Long: `List the normalization runs recorded in the local ledger.

Examples:
  wfsort history
  wfsort history -n 5
  wfsort history show 4fa2c1`,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the recorded output of a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of runs to show")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func openLedger() (*history.DB, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, errors.New(errors.InternalError, "failed to load config", err)
	}
	db, err := history.Open(".", newLogger(cfg))
	if err != nil {
		return nil, errors.New(errors.InternalError, "failed to open run ledger", err)
	}
	return db, nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := openLedger()
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.List(historyLimit)
	if err != nil {
		return errors.New(errors.InternalError, "failed to list runs", err)
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	for _, run := range runs {
		id := run.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Printf("%s  %s  %-30s -> %-30s  groups=%d  %dms\n",
			id,
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.InputPath,
			run.OutputPath,
			run.GroupCount,
			run.Duration.Milliseconds())
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	db, err := openLedger()
	if err != nil {
		return err
	}
	defer db.Close()

	output, err := db.Output(args[0])
	if err != nil {
		return errors.New(errors.InternalError, "failed to load recorded output", err)
	}
	_, writeErr := os.Stdout.Write(output)
	return writeErr
}
