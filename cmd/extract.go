package cmd

import (
	"context"
	"strings"

	"github.com/nbakri/kashf/extractor"
	"github.com/nbakri/kashf/extractor/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	profileName  string
	profilePhone string
	profileDOB   string
	profileCards []string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extracts payment facts from statement(s)",
	Long: `Extracts payment facts from a given statement or statements.
Password-protected documents are decrypted with guesses derived from the
customer profile flags; scanned documents fall back to OCR.`,
	Run: handler,
}

func handler(cmd *cobra.Command, args []string) {
	target := viper.GetString("target")
	extractor.ExecuteAgainstPath(context.Background(), target, profileFromFlags())
}

func profileFromFlags() common.CustomerProfile {
	return common.CustomerProfile{
		NameParts:     strings.Fields(profileName),
		PhoneNumber:   profilePhone,
		DateOfBirth:   profileDOB,
		CardLastFours: profileCards,
	}
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringP("folder", "f", ".", "File or folder in which kashf will scan for statements")
	viper.BindPFlag("target", extractCmd.Flags().Lookup("folder"))

	for _, cmd := range []*cobra.Command{extractCmd, importCmd} {
		cmd.PersistentFlags().StringVar(&profileName, "name", "", "Customer full name (used for password recovery)")
		cmd.PersistentFlags().StringVar(&profilePhone, "phone", "", "Customer phone number")
		cmd.PersistentFlags().StringVar(&profileDOB, "dob", "", "Customer date of birth")
		cmd.PersistentFlags().StringSliceVar(&profileCards, "cards", nil, "Known card last-four digits")
	}
}
