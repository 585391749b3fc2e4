package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with default categories and sample users for development.`,
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
			if err := db.Exec("DELETE FROM expenses").Error; err != nil {
				log.Fatalf("failed to clear expenses: %v", err)
			}
			if err := db.Exec("DELETE FROM categories WHERE is_default = false").Error; err != nil {
				log.Fatalf("failed to clear categories: %v", err)
			}
			fmt.Println("Cleared existing expense data")
		}

		defaultCategories := []struct {
			Name string
			Icon string
		}{
			{"Fuel", "fuel"},
			{"Rent", "rent"},
			{"Groceries", "groceries"},
			{"Utilities", "utilities"},
			{"Entertainment", "entertainment"},
			{"Dining", "dining"},
			{"Transportation", "transportation"},
			{"Healthcare", "healthcare"},
			{"Education", "education"},
			{"Shopping", "shopping"},
		}

		for _, c := range defaultCategories {
			var exists int
			row := db.Raw("SELECT 1 FROM categories WHERE name = ? AND is_default = true", c.Name).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO categories (name, icon, is_default, user_id, created_at) VALUES (?, ?, true, NULL, now())", c.Name, c.Icon).Error; err != nil {
				log.Fatalf("failed to insert default category %s: %v", c.Name, err)
			}
			fmt.Printf("Seeded default category: %s\n", c.Name)
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.Cost())

		sampleUsers := []struct {
			FirstName string
			LastName  string
			Email     string
		}{
			{"Asha", "Rao", "asha@mail.com"},
			{"Dev", "Patel", "dev@mail.com"},
		}

		for _, u := range sampleUsers {
			var exists int
			row := db.Raw("SELECT 1 FROM users WHERE email = ?", u.Email).Row()
			if err := row.Scan(&exists); err == nil {
				fmt.Printf("user %s already exists; skipping\n", u.Email)
				continue
			}
			if err := db.Exec("INSERT INTO users (first_name, last_name, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now())", u.FirstName, u.LastName, u.Email, string(hash)).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			fmt.Println("Seeded user:", u.Email)
		}

		fmt.Println("Seeding completed successfully")
	},
}
