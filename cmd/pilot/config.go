package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/dogfight/internal/config"
)

var (
	flagConfigSection string
	flagListParams    bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after applying the search order
(--config/--arena, ~/.dogfight/configs, ./configs, built-in defaults).

Examples:
  pilot config
  pilot config --section arena --difficulty hard
  pilot config --params`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfigSection, "section", "tuning", "Section to print: tuning or arena")
	configCmd.Flags().BoolVar(&flagListParams, "params", false, "List tuning parameters accepted by sweep")
}

func runConfig(cmd *cobra.Command, args []string) {
	if flagListParams {
		for _, name := range config.ParamNames() {
			fmt.Println(name)
		}
		return
	}

	tuning, arena, err := loadConfigs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var data []byte
	switch flagConfigSection {
	case "tuning":
		data, err = config.MarshalTuning(tuning)
	case "arena":
		data, err = yaml.Marshal(arena)
	default:
		err = fmt.Errorf("unknown section %q (want tuning or arena)", flagConfigSection)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	os.Stdout.Write(data)
}
