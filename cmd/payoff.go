package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/nbakri/kashf/extractor/common"
	"github.com/nbakri/kashf/extractor/reminder"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	payoffBalance string
	payoffMinimum string
	payoffAPR     string
)

var payoffCmd = &cobra.Command{
	Use:   "payoff",
	Short: "Project payoff time and interest for a card balance",
	Long: `Simulates paying off a balance at the minimum payment and at an
optimized payment (double the minimum, floored at a fixed amount), and
reports the interest saved.`,
	Run: func(cmd *cobra.Command, args []string) {
		log.SetOutput(os.Stdout)

		balance, err := decimal.NewFromString(payoffBalance)
		if err != nil {
			log.Fatalf("error: invalid --balance: %v", err)
		}
		minimum := decimal.Zero
		if payoffMinimum != "" {
			if minimum, err = decimal.NewFromString(payoffMinimum); err != nil {
				log.Fatalf("error: invalid --minimum: %v", err)
			}
		}
		apr := decimal.Zero
		if payoffAPR != "" {
			if apr, err = decimal.NewFromString(payoffAPR); err != nil {
				log.Fatalf("error: invalid --apr: %v", err)
			}
		}

		engine := reminder.New()
		opt, ok := engine.Optimize(common.CreditCard{
			CurrentBalance: balance,
			MinimumPayment: minimum,
			APR:            apr,
		})
		if !ok {
			fmt.Println("{}")
			return
		}

		asJSON, _ := json.Marshal(opt)
		fmt.Println(string(asJSON))
	},
}

func init() {
	rootCmd.AddCommand(payoffCmd)

	payoffCmd.Flags().StringVar(&payoffBalance, "balance", "", "Current balance (required)")
	payoffCmd.Flags().StringVar(&payoffMinimum, "minimum", "", "Minimum monthly payment")
	payoffCmd.Flags().StringVar(&payoffAPR, "apr", "", "Annual percentage rate, e.g. 0.1999")
	payoffCmd.MarkFlagRequired("balance")
}
