package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Embedded default configuration, used when no config file is found.
const defaultConfigYAML = `
facts:
  patterns:
    due_date:
      - '(?:AED|DHS)\s+\d+(?:\.\d{1,2})?\s+payment\s+due:?\s*(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})'
      - '(?:AED|DHS)\s+\d+(?:\.\d{1,2})?\s+due\s+date:?\s*(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})'
      - '(?:AED|DHS)\s+\d+(?:\.\d{1,2})?\s+due\s+on:?\s*(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})'
      - '(?:AED|DHS)\s+\d+(?:\.\d{1,2})?\s+payment\s+due\s+(\w+\s+\d{1,2},?\s+\d{4})'
      - '(?:AED|DHS)\s+\d+(?:\.\d{1,2})?\s+due\s+(\w+\s+\d{1,2},?\s+\d{4})'
      - '(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})\s+due\s+for\s+(?:AED|DHS)\s+\d+(?:\.\d{1,2})?'
      - '\d+(?:\.\d{1,2})?\s+(?:AED|DHS)\s+payment\s+due:?\s*(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})'
      - '\d+(?:\.\d{1,2})?\s+(?:AED|DHS)\s+due\s+date:?\s*(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})'
    minimum_payment:
      - 'minimum\s+payment:?\s*(?:AED|DHS)\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)'
      - 'min\s+payment:?\s*(?:AED|DHS)\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)'
      - 'minimum\s+due:?\s*(?:AED|DHS)\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)'
      - 'amount\s+due:?\s*(?:AED|DHS)\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)'
      - 'minimum\s+payment:?\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)\s*(?:AED|DHS)'
      - 'min\s+payment:?\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)\s*(?:AED|DHS)'
      - 'minimum\s+due:?\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)\s*(?:AED|DHS)'
      - 'amount\s+due:?\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)\s*(?:AED|DHS)'
    balance:
      - 'current\s+balance:?\s*(?:AED|DHS)\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)'
      - 'new\s+balance:?\s*(?:AED|DHS)\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)'
      - 'balance:?\s*(?:AED|DHS)\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)'
      - 'statement\s+balance:?\s*(?:AED|DHS)\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)'
      - 'current\s+balance:?\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)\s*(?:AED|DHS)'
      - 'new\s+balance:?\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)\s*(?:AED|DHS)'
      - 'balance:?\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)\s*(?:AED|DHS)'
      - 'statement\s+balance:?\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)\s*(?:AED|DHS)'
pipeline:
  stage_timeout_seconds: 120
  trial_workers: 1
  max_candidates: 0
ocr:
  pdftoppm: pdftoppm
  tesseract: tesseract
  language: eng
  dpi: 300
  psm: 6
  max_pages: 0
reminder:
  late_fee:
    low_threshold: '370'
    high_threshold: '1850'
    low_fee: '110.00'
    base_fee: '145.00'
    high_fee: '180.00'
  optimize:
    minimum_payment: '100'
  default_apr: '0.1999'
`

var (
	cfgFile string
	verbose bool
	rootCmd = &cobra.Command{
		Use:   "kashf [filename]",
		Short: "Extract payment facts from credit card statements",
		Long: `kashf is a utility to extract payment facts (due date, minimum
payment, balance, currency) out of credit card statement PDFs, including
scanned and password-protected ones, and to schedule payment reminders.`,
		Args: cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 1 {
				viper.Set("target", args[0])
				handler(extractCmd, []string{})
				return
			}
			cmd.Help()
		},
	}
)

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default is ./.kashf.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

func initLogging() {
	if !verbose {
		log.SetOutput(io.Discard)
	} else {
		log.SetFlags(log.Ltime | log.Lmsgprefix)
		log.SetPrefix("INFO: ")
	}
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in current directory and home directory
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")  // First check current directory
		viper.AddConfigPath(home) // Then check home directory
		viper.SetConfigName(".kashf")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file found, use embedded default configuration
			if err := viper.ReadConfig(bytes.NewBufferString(defaultConfigYAML)); err != nil {
				fmt.Printf("Error loading embedded configuration: %v\n", err)
				os.Exit(1)
			}
		} else {
			fmt.Printf("Error reading config file: %v\n", err)
			os.Exit(1)
		}
	}
}
