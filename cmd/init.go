package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/newsfront/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize newsfront configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure newsfront for your site and writes the config file (.newsfront.yml by default).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
