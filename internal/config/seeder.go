package config

import (
	"log"

	"arcadia-pos/internal/adapters/persistence/models"
	"arcadia-pos/internal/core/domain"
	"arcadia-pos/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders. Each seeder is idempotent, so Run is safe
// on every boot.
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedPrinters(); err != nil {
		return err
	}
	if err := s.seedTables(); err != nil {
		return err
	}
	if err := s.seedMenuItems(); err != nil {
		return err
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds the default admin account
// This is for development/testing only
// In production, create admin through secure process
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", string(domain.RoleAdmin)).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash(getEnv("SEED_ADMIN_PASSWORD", "admin123456"))
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:        "System Admin",
		Username:    "admin",
		Email:       "admin@arcadialounge.com",
		Password:    hashedPassword,
		Role:        string(domain.RoleAdmin),
		Permissions: domain.DefaultPermissions(domain.RoleAdmin),
		IsActive:    true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Username)
	return nil
}

// seedPrinters seeds the station printers KOT routing depends on
func (s *Seeder) seedPrinters() error {
	printers := []models.Printer{
		{
			Name:     "kitchen",
			Type:     "kitchen",
			Location: "Kitchen pass",
			IsActive: true,
		},
		{
			Name:     "bar",
			Type:     "bar",
			Location: "Bar counter",
			IsActive: true,
		},
		{
			Name:     "receipt",
			Type:     "receipt",
			Location: "Front desk",
			IsActive: true,
		},
	}

	for _, p := range printers {
		var existing models.Printer
		if err := s.db.Where("name = ?", p.Name).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&p).Error; err != nil {
					return err
				}
				log.Printf("   Created printer: %s", p.Name)
			}
		}
	}
	return nil
}

// seedTables seeds a starter floor layout
func (s *Seeder) seedTables() error {
	plug := func(id string) *string { return &id }

	tables := []models.Table{
		{
			TableNumber: "D-01",
			Name:        "Dining 1",
			Type:        "dining",
			Location:    "Main floor",
			Capacity:    4,
			IsActive:    true,
		},
		{
			TableNumber: "D-02",
			Name:        "Dining 2",
			Type:        "dining",
			Location:    "Main floor",
			Capacity:    4,
			IsActive:    true,
		},
		{
			TableNumber: "D-03",
			Name:        "Dining 3",
			Type:        "dining",
			Location:    "Main floor",
			Capacity:    6,
			IsActive:    true,
		},
		{
			TableNumber: "P-01",
			Name:        "PS5 Station 1",
			Type:        "ps5",
			Location:    "Gaming zone",
			Capacity:    4,
			HourlyRate:  150,
			PlugID:      plug("plug-ps5-01"),
			IsActive:    true,
		},
		{
			TableNumber: "P-02",
			Name:        "PS5 Station 2",
			Type:        "ps5",
			Location:    "Gaming zone",
			Capacity:    4,
			HourlyRate:  150,
			PlugID:      plug("plug-ps5-02"),
			IsActive:    true,
		},
		{
			TableNumber: "S-01",
			Name:        "Snooker 1",
			Type:        "snooker",
			Location:    "Billiards room",
			Capacity:    4,
			HourlyRate:  200,
			PlugID:      plug("plug-snooker-01"),
			IsActive:    true,
		},
		{
			TableNumber: "B-01",
			Name:        "Pool 1",
			Type:        "pool",
			Location:    "Billiards room",
			Capacity:    4,
			HourlyRate:  120,
			PlugID:      plug("plug-pool-01"),
			IsActive:    true,
		},
		{
			TableNumber: "V-01",
			Name:        "VIP Room",
			Type:        "vip",
			Location:    "Upstairs",
			Capacity:    8,
			HourlyRate:  250,
			PlugID:      plug("plug-vip-01"),
			IsActive:    true,
		},
	}

	for _, t := range tables {
		var existing models.Table
		if err := s.db.Where("table_number = ?", t.TableNumber).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&t).Error; err != nil {
					return err
				}
				log.Printf("   Created table: %s (%s)", t.TableNumber, t.Name)
			}
		}
	}
	return nil
}

// seedMenuItems seeds a starter menu
func (s *Seeder) seedMenuItems() error {
	items := []models.MenuItem{
		{
			Name:            "Masala Fries",
			Category:        "starters",
			Price:           120,
			Printer:         "kitchen",
			IsAvailable:     true,
			IsVeg:           true,
			SpiceLevel:      "medium",
			PrepTimeMinutes: 10,
			IsPopular:       true,
		},
		{
			Name:            "Chicken Wings",
			Category:        "starters",
			Price:           240,
			Printer:         "kitchen",
			IsAvailable:     true,
			SpiceLevel:      "hot",
			PrepTimeMinutes: 15,
		},
		{
			Name:        "Margherita Pizza",
			Category:    "mains",
			Price:       280,
			Printer:     "kitchen",
			IsAvailable: true,
			IsVeg:       true,
			Variants: models.VariantList{
				{Name: "Regular", Price: 280},
				{Name: "Large", Price: 420},
			},
			PrepTimeMinutes: 20,
			IsPopular:       true,
		},
		{
			Name:            "Paneer Butter Masala",
			Category:        "mains",
			Subcategory:     "curry",
			Price:           260,
			Printer:         "kitchen",
			IsAvailable:     true,
			IsVeg:           true,
			SpiceLevel:      "mild",
			PrepTimeMinutes: 20,
		},
		{
			Name:            "Cold Coffee",
			Category:        "beverages",
			Price:           140,
			Printer:         "bar",
			IsAvailable:     true,
			IsVeg:           true,
			PrepTimeMinutes: 5,
			IsPopular:       true,
		},
		{
			Name:        "Fresh Lime Soda",
			Category:    "beverages",
			Price:       90,
			Printer:     "bar",
			IsAvailable: true,
			IsVeg:       true,
			Variants: models.VariantList{
				{Name: "Sweet", Price: 90},
				{Name: "Salted", Price: 90},
			},
			PrepTimeMinutes: 5,
		},
		{
			Name:            "Brownie Sundae",
			Category:        "desserts",
			Price:           180,
			Printer:         "kitchen",
			IsAvailable:     true,
			IsVeg:           true,
			PrepTimeMinutes: 10,
		},
	}

	for _, item := range items {
		var existing models.MenuItem
		if err := s.db.Where("name = ?", item.Name).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&item).Error; err != nil {
					return err
				}
				log.Printf("   Created menu item: %s", item.Name)
			}
		}
	}
	return nil
}
