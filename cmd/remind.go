package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/nbakri/kashf/extractor/reminder"
	"github.com/nbakri/kashf/integrations/postgres"
	"github.com/spf13/cobra"
)

var (
	remindDBURL     string
	remindCustomer  string
	remindDaysAhead int
	remindMarkSent  string
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "List upcoming and overdue payments for a customer",
	Long: `Computes reminder windows for every card on file for a customer:
upcoming due dates within the lookahead window, overdue payments with
estimated late fees, and the notification message for each.`,
	Run: func(cmd *cobra.Command, args []string) {
		log.SetOutput(os.Stdout)
		log.SetFlags(log.Ltime | log.Lmsgprefix)

		if remindDBURL == "" {
			remindDBURL = os.Getenv("DATABASE_URL")
			if remindDBURL == "" {
				log.Fatal("error: --db-url or DATABASE_URL environment variable is required")
			}
		}
		if remindCustomer == "" && remindMarkSent == "" {
			log.Fatal("error: --customer or --mark-sent is required")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := postgres.Connect(ctx, remindDBURL)
		if err != nil {
			log.Fatalf("error: database connection failed: %v", err)
		}
		defer db.Close()

		if remindMarkSent != "" {
			if err := db.MarkReminderSent(ctx, remindMarkSent); err != nil {
				log.Fatalf("error: could not mark reminder sent: %v", err)
			}
			fmt.Printf("Reminder %s marked as sent\n", remindMarkSent)
			if remindCustomer == "" {
				return
			}
		}

		cards, err := db.ListCards(ctx, remindCustomer)
		if err != nil {
			log.Fatalf("error: %v", err)
		}

		engine := reminder.New()
		today := time.Now()

		upcoming := engine.Upcoming(cards, today, remindDaysAhead)
		overdue := engine.Overdue(cards, today)

		messages := make([]string, 0, len(upcoming)+len(overdue))
		for _, w := range overdue {
			messages = append(messages, reminder.Message(w))
		}
		for _, w := range upcoming {
			messages = append(messages, reminder.Message(w))
		}

		output := struct {
			Upcoming []reminder.Window `json:"upcoming"`
			Overdue  []reminder.Window `json:"overdue"`
			Messages []string          `json:"messages"`
		}{upcoming, overdue, messages}

		asJSON, _ := json.Marshal(output)
		fmt.Println(string(asJSON))
	},
}

func init() {
	rootCmd.AddCommand(remindCmd)

	remindCmd.Flags().StringVar(&remindDBURL, "db-url", "", "PostgreSQL connection URL (or set DATABASE_URL env)")
	remindCmd.Flags().StringVar(&remindCustomer, "customer", "", "Customer ID to list reminders for")
	remindCmd.Flags().IntVar(&remindDaysAhead, "days", 7, "Lookahead window in days")
	remindCmd.Flags().StringVar(&remindMarkSent, "mark-sent", "", "Mark a reminder ID as delivered")
}
