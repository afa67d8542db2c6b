package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "smartcounter",
	Short: "Smart utility counter: light, gas and water billing with RFID settlement",
	Long: `smartcounter reads sensor frames from a microcontroller (serial, MQTT or stdin),
accrues tiered cost per resource and settles the bill when an RFID card is presented.

Current totals are available over HTTP, the Telegram bot and the terminal panel.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config/example.yaml", "Path to the YAML config")

	runCmd.Flags().BoolVar(&withPanel, "panel", false, "Show the terminal panel in the foreground")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(replayCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
