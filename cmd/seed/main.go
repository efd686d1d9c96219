package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	catalog_cache "github.com/Treadle-Controls/treadle-cms-backend/cache"
	"github.com/Treadle-Controls/treadle-cms-backend/config"
	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/services"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// init loads environment variables
func init() {
	_ = godotenv.Load()
}

// main creates a super admin account and loads the default catalog
// Usage: go run ./cmd/seed [-email x -name y -password z] [-catalog=false] [-admin=false]
// This is a standalone CLI tool, not part of the main application
func main() {
	email := flag.String("email", "", "super admin email (prompted when empty)")
	name := flag.String("name", "", "super admin name (prompted when empty)")
	password := flag.String("password", "", "super admin password (prompted when empty)")
	withAdmin := flag.Bool("admin", true, "create the super admin")
	withCatalog := flag.Bool("catalog", true, "seed the default options and products")
	replace := flag.Bool("replace", false, "replace existing products instead of merging")
	flag.Parse()

	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("TREADLE CMS - Seeder")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := config.InitLogger(cfg.App.Env); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer config.SyncLogger()

	if err := config.InitDB(cfg.Database, cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer config.CloseDB()
	log.Println("✓ Connected to database")

	if err := config.Migrate(
		&models.Product{},
		&models.Option{},
		&models.Admin{},
		&models.AdminSession{},
		&models.ActivityLog{},
	); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	if *withAdmin {
		e, p, n := getAdminCredentials(*email, *password, *name)
		createSuperAdmin(e, p, n)
	}

	if *withCatalog {
		mode := services.ImportMerge
		if *replace {
			mode = services.ImportReplace
		}
		seedCatalogData(mode)
	}

	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("1. Start the CMS server: go run main.go")
	fmt.Println("2. Login at POST /api/v1/admin/login with email and password")
	fmt.Println("3. Walk the wizard at GET /api/v1/store/wizard/steps")
	fmt.Println()
}

func createSuperAdmin(email, password, name string) {
	// Check if admin already exists
	var existingAdmin models.Admin
	if err := config.CmsGorm.Where("email = ?", email).First(&existingAdmin).Error; err == nil {
		fmt.Printf("❌ Admin with email '%s' already exists, skipping\n", email)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Database error: %v", err)
	}
	log.Printf("✓ Email '%s' is available", email)

	authService := services.GetAdminAuthService()
	passwordHash, err := authService.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	log.Println("✓ Password hashed securely")

	superAdmin := models.Admin{
		ID:           uuid.Must(uuid.NewV7()),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         models.RoleSuperAdmin,
		Status:       models.AdminStatusActive,
	}

	if err := config.CmsGorm.Create(&superAdmin).Error; err != nil {
		log.Fatalf("Failed to create super admin: %v", err)
	}

	fmt.Println()
	fmt.Println("✅ Super Admin Created Successfully!")
	fmt.Printf("ID:    %s\n", superAdmin.ID)
	fmt.Printf("Email: %s\n", superAdmin.Email)
	fmt.Printf("Name:  %s\n", superAdmin.Name)
	fmt.Printf("Role:  %s\n", superAdmin.Role)
	fmt.Println()
}

func seedCatalogData(mode services.ImportMode) {
	options, products, err := parseCatalog(defaultCatalog)
	if err != nil {
		log.Fatalf("Invalid default catalog: %v", err)
	}

	ctx, cancel := config.WithCustomTimeout(60 * time.Second)
	defer cancel()

	// Options are keyed by category + value so re-runs refresh labels and rules
	if err := config.CmsGorm.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category"}, {Name: "value"}},
		DoUpdates: clause.AssignmentColumns([]string{"label", "description", "sort_order", "active", "rules", "updated_at"}),
	}).Create(&options).Error; err != nil {
		log.Fatalf("Failed to seed options: %v", err)
	}
	log.Printf("✓ Seeded %d options", len(options))

	result, err := services.ImportProducts(ctx, products, mode)
	if err != nil {
		log.Fatalf("Failed to seed products: %v", err)
	}
	log.Printf("✓ Seeded %d products (%s, %d removed)", result.Imported, result.Mode, result.Deleted)

	catalog_cache.Invalidate()
	if _, err := services.LoadCatalog(context.Background()); err != nil {
		log.Printf("⚠ Catalog snapshot check failed: %v", err)
	}
}

// getAdminCredentials prompts for any detail not passed as a flag
func getAdminCredentials(email, password, name string) (string, string, string) {
	authService := services.GetAdminAuthService()
	if email != "" && name != "" && authService.ValidatePassword(password) {
		return email, password, name
	}

	fmt.Println("Enter Super Admin Details:")
	fmt.Println()

	for email == "" {
		fmt.Print("Email: ")
		fmt.Scanln(&email)
		if email == "" {
			fmt.Println("❌ Email cannot be empty")
		}
	}

	for name == "" {
		fmt.Print("Name: ")
		fmt.Scanln(&name)
		if name == "" {
			fmt.Println("❌ Name cannot be empty")
		}
	}

	promptedPassword := false
	for !authService.ValidatePassword(password) {
		if password != "" || promptedPassword {
			fmt.Println("❌ Password must be at least 8 characters")
		}
		fmt.Print("Password (min 8 characters): ")
		fmt.Scanln(&password)
		promptedPassword = true
	}

	// Confirm only what was typed interactively
	for promptedPassword {
		fmt.Print("Confirm Password: ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm == password {
			break
		}
		fmt.Println("❌ Passwords do not match")
	}

	fmt.Println()
	return email, password, name
}
