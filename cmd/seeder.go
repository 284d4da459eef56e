package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	paymentmodel "github.com/toxiclabs/payment-alerts/internal/core/datamodel/payment"
	paymentsqlite "github.com/toxiclabs/payment-alerts/internal/payment/sqlite"
	"github.com/toxiclabs/payment-alerts/pkg/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample payments for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			if err := db.Exec("DELETE FROM payments").Error; err != nil {
				log.Fatalf("failed to clear payments: %v", err)
			}
			fmt.Println("Cleared existing payments")
		}

		repo := paymentsqlite.NewPaymentRepository(db)

		samples := []paymentmodel.Payment{
			{ID: "pay_seed_0001", Name: "Asha", Amount: 1500.00, UTR: "227712345678", Time: "01 Jan 2026 10:15 AM"},
			{ID: "pay_seed_0002", Name: "Ravi", Amount: 249.50, UTR: "227787654321", Time: "02 Jan 2026 06:40 PM"},
			{ID: "pay_seed_0003", Name: "Customer", Amount: 99.00, UTR: "N/A", Time: "03 Jan 2026 09:05 AM"},
		}

		for i := range samples {
			inserted, err := repo.InsertIfAbsent(&samples[i])
			if err != nil {
				log.Fatalf("failed to seed payment %s: %v", samples[i].ID, err)
			}
			if inserted {
				fmt.Println("Seeded payment:", samples[i].ID)
			} else {
				fmt.Println("Payment already present, skipped:", samples[i].ID)
			}
		}

		balance, err := repo.TotalBalance()
		if err != nil {
			log.Fatalf("failed to compute balance: %v", err)
		}
		logger.LoggerWrapper().Info("seeding complete", "balance", balance.String())
	},
}
