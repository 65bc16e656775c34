package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/GOALLINNOOUT/backend/config"
	"github.com/GOALLINNOOUT/backend/models"
)

// init loads environment variables
func init() {
	_ = godotenv.Load()
}

// main migrates the schema, creates the admin account and seeds demo catalog
// data. Standalone CLI tool, not part of the main application.
// Usage: go run cmd/seed/main.go
func main() {
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("VELORA SHOP - Seeder")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()

	config.InitDB()
	log.Println("✓ Connected to database")

	if err := config.MigrateDB(config.ShopGorm); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("✓ Schema migrated")

	admin := seedAdmin()
	perfumes := seedPerfumes()
	customers := seedCustomers()
	seedDemoActivity(perfumes, customers)

	fmt.Println()
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("✅ Seed Complete!")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Printf("Admin: %s\n", admin.Email)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("1. Start the server: go run main.go")
	fmt.Println("2. Use the admin credentials to obtain a token")
	fmt.Println("3. Open the analytics dashboard at GET /api/admin/analytics/sales")
	fmt.Println()
}

// seedAdmin creates the admin account from env or prompts for details.
func seedAdmin() models.User {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	name := os.Getenv("SEED_ADMIN_NAME")
	if email == "" || password == "" {
		email, password, name = getAdminCredentials()
	}
	if name == "" {
		name = "Store Admin"
	}

	var existing models.User
	err := config.ShopGorm.Where("email = ?", email).First(&existing).Error
	if err == nil {
		fmt.Printf("⚠️ Admin with email '%s' already exists, skipping\n", email)
		return existing
	}
	if err != gorm.ErrRecordNotFound {
		log.Fatalf("Database error: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	log.Println("✓ Password hashed securely")

	admin := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		Status:       "active",
	}
	if err := config.ShopGorm.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}
	log.Printf("✓ Admin '%s' created", email)
	return admin
}

// seedPerfumes inserts a small demo catalog when the table is empty.
func seedPerfumes() []models.Perfume {
	var existing []models.Perfume
	if err := config.ShopGorm.Find(&existing).Error; err != nil {
		log.Fatalf("Failed to load perfumes: %v", err)
	}
	if len(existing) > 0 {
		fmt.Printf("⚠️ Catalog already has %d products, skipping\n", len(existing))
		return existing
	}

	demo := []models.Perfume{
		{
			Name:        "Amber Noir",
			Description: "Warm amber with smoked oud and vanilla.",
			Price:       24500,
			Stock:       40,
			Categories:  datatypes.NewJSONSlice([]string{"unisex", "oriental"}),
		},
		{
			Name:        "Citrus Veil",
			Description: "Bergamot and neroli over a white musk base.",
			Price:       18000,
			Stock:       60,
			Categories:  datatypes.NewJSONSlice([]string{"women", "fresh"}),
		},
		{
			Name:        "Cedar Line",
			Description: "Dry cedarwood, vetiver and a touch of pepper.",
			Price:       21000,
			Stock:       3,
			Categories:  datatypes.NewJSONSlice([]string{"men", "woody"}),
		},
	}
	for i := range demo {
		if err := config.ShopGorm.Create(&demo[i]).Error; err != nil {
			log.Fatalf("Failed to seed perfume %q: %v", demo[i].Name, err)
		}
	}
	log.Printf("✓ Seeded %d demo perfumes", len(demo))
	return demo
}

// seedCustomers inserts demo shopper accounts when none exist.
func seedCustomers() []models.User {
	var existing []models.User
	if err := config.ShopGorm.Where("role = ?", models.RoleUser).Find(&existing).Error; err != nil {
		log.Fatalf("Failed to load customers: %v", err)
	}
	if len(existing) > 0 {
		fmt.Printf("⚠️ %d customers already exist, skipping\n", len(existing))
		return existing
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	lagos, abuja, rivers := "Lagos", "Abuja", "Rivers"
	demo := []models.User{
		{Name: "Ada Obi", Email: "ada@example.com", PasswordHash: string(hash), Role: models.RoleUser, Status: "active", State: &lagos},
		{Name: "Bola Ade", Email: "bola@example.com", PasswordHash: string(hash), Role: models.RoleUser, Status: "active", State: &abuja},
		{Name: "Chidi Eze", Email: "chidi@example.com", PasswordHash: string(hash), Role: models.RoleUser, Status: "active", State: &rivers},
	}
	for i := range demo {
		if err := config.ShopGorm.Create(&demo[i]).Error; err != nil {
			log.Fatalf("Failed to seed customer %q: %v", demo[i].Email, err)
		}
	}
	log.Printf("✓ Seeded %d demo customers (password: password123)", len(demo))
	return demo
}

// seedDemoActivity writes a spread of sessions, page views, cart actions,
// checkout events and orders over the past two weeks so the analytics
// dashboard has something to show. Skipped when orders already exist.
func seedDemoActivity(perfumes []models.Perfume, customers []models.User) {
	var count int64
	if err := config.ShopGorm.Model(&models.Order{}).Count(&count).Error; err != nil {
		log.Fatalf("Failed to count orders: %v", err)
	}
	if count > 0 {
		fmt.Printf("⚠️ %d orders already exist, skipping demo activity\n", count)
		return
	}
	if len(perfumes) == 0 || len(customers) == 0 {
		fmt.Println("⚠️ No catalog or customers to build demo activity from, skipping")
		return
	}

	campaign := "launch-week"
	spend := 25000.0
	pages := []string{"/", "/perfumes", "/perfumes/amber-noir", "/checkout"}
	sessions, views, carts, checkouts, orders := 0, 0, 0, 0, 0

	for day := 0; day < 14; day++ {
		dayStart := time.Now().AddDate(0, 0, -day).Add(-2 * time.Hour)
		for v := 0; v <= day%3; v++ {
			customer := customers[(day+v)%len(customers)]
			perfume := perfumes[(day+v)%len(perfumes)]
			sessionID := uuid.NewString()
			start := dayStart.Add(time.Duration(v) * time.Hour)
			last := start.Add(8 * time.Minute)

			session := models.SessionLog{
				SessionID:    sessionID,
				IP:           fmt.Sprintf("203.0.113.%d", (day*7+v)%250+1),
				Device:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/126.0",
				StartTime:    start,
				LastActivity: &last,
				EndTime:      &last,
			}
			if err := config.ShopGorm.Create(&session).Error; err != nil {
				log.Fatalf("Failed to seed session: %v", err)
			}
			sessions++

			for p, page := range pages[:day%len(pages)+1] {
				view := models.PageViewLog{
					SessionID: sessionID,
					Email:     &customer.Email,
					IP:        session.IP,
					Device:    session.Device,
					UserAgent: session.Device,
					Page:      page,
					Timestamp: start.Add(time.Duration(p) * time.Minute),
				}
				if err := config.ShopGorm.Create(&view).Error; err != nil {
					log.Fatalf("Failed to seed page view: %v", err)
				}
				views++
			}

			// Every second visit carts something, every third buys
			if (day+v)%2 == 0 {
				cart := models.CartActionLog{
					SessionID: sessionID,
					ProductID: perfume.ID,
					Action:    models.CartActionAdd,
					Quantity:  v%2 + 1,
					Timestamp: start.Add(4 * time.Minute),
				}
				if err := config.ShopGorm.Create(&cart).Error; err != nil {
					log.Fatalf("Failed to seed cart action: %v", err)
				}
				carts++
			}
			if (day+v)%3 == 0 {
				checkout := models.CheckoutEventLog{SessionID: sessionID, Timestamp: start.Add(6 * time.Minute)}
				if err := config.ShopGorm.Create(&checkout).Error; err != nil {
					log.Fatalf("Failed to seed checkout event: %v", err)
				}
				checkouts++

				qty := v%2 + 1
				order := models.Order{
					Customer: datatypes.NewJSONType(models.OrderCustomer{
						Name: customer.Name, Email: customer.Email, Phone: "08000000000",
						Address: "1 Demo Street", State: stateOf(customer), Lga: "Central",
					}),
					Cart: datatypes.NewJSONSlice([]models.OrderCartItem{
						{ID: perfume.ID.String(), Name: perfume.Name, Price: perfume.Price, Quantity: qty},
					}),
					PaystackRef: fmt.Sprintf("demo-%d-%d", day, v),
					Amount:      perfume.Price * float64(qty),
					GrandTotal:  perfume.Price*float64(qty) + 1500,
					DeliveryFee: 1500,
					Status:      models.OrderStatusPaid,
					PaidAt:      start.Add(7 * time.Minute),
					CreatedAt:   start.Add(7 * time.Minute),
					SessionID:   &sessionID,
				}
				if day%4 == 0 {
					order.Campaign = &campaign
					order.CampaignSpend = &spend
				}
				if err := config.ShopGorm.Create(&order).Error; err != nil {
					log.Fatalf("Failed to seed order: %v", err)
				}
				orders++
			}
		}
	}
	log.Printf("✓ Seeded %d sessions, %d page views, %d cart actions, %d checkouts, %d orders",
		sessions, views, carts, checkouts, orders)
}

func stateOf(u models.User) string {
	if u.State != nil {
		return *u.State
	}
	return "Lagos"
}

// getAdminCredentials prompts for admin details
func getAdminCredentials() (email, password, name string) {
	fmt.Println("Enter Admin Details:")
	fmt.Println()

	for {
		fmt.Print("Email: ")
		fmt.Scanln(&email)
		if email != "" {
			break
		}
		fmt.Println("❌ Email cannot be empty")
	}

	for {
		fmt.Print("Name: ")
		fmt.Scanln(&name)
		if name != "" {
			break
		}
		fmt.Println("❌ Name cannot be empty")
	}

	for {
		fmt.Print("Password (min 8 characters): ")
		fmt.Scanln(&password)
		if len(password) < 8 {
			fmt.Println("❌ Password must be at least 8 characters")
			continue
		}
		break
	}

	fmt.Println()
	return email, password, name
}
