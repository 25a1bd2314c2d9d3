package main

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"tourly/internal/catalog"
	"tourly/internal/promotions"
	"tourly/internal/shared/config"
	"tourly/internal/shared/database"
	"tourly/internal/tours"
	"tourly/internal/users"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Tourly Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"promotion_redemptions",
		"payments",
		"booking_services",
		"bookings",
		"coupons",
		"promotion_targets",
		"promotion_rules",
		"promotions",
		"tour_service_prices",
		"services",
		"tour_instances",
		"tours",
		"categories",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return err
	}

	for _, table := range tables {
		if err := tx.Exec("TRUNCATE TABLE " + table + " RESTART IDENTITY CASCADE").Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll populates reference data plus a small demo dataset
func (s *Seeder) SeedAll() error {
	admin, user, err := s.seedUsers()
	if err != nil {
		return err
	}
	fmt.Printf("   👤 Users seeded (admin: %s, user: %s)\n", admin.Email, user.Email)

	categories, err := s.seedCategories()
	if err != nil {
		return err
	}
	fmt.Printf("   🏷️  %d categories seeded\n", len(categories))

	toursList, instances, err := s.seedTours(admin.ID, categories)
	if err != nil {
		return err
	}
	fmt.Printf("   🗺️  %d tours with %d instances seeded\n", len(toursList), len(instances))

	services, err := s.seedServices(toursList)
	if err != nil {
		return err
	}
	fmt.Printf("   🎒 %d services seeded\n", len(services))

	if err := s.seedPromotions(toursList, categories); err != nil {
		return err
	}
	fmt.Println("   🎟️  Promotions and coupons seeded")

	return nil
}

func (s *Seeder) seedUsers() (*users.User, *users.User, error) {
	admin := &users.User{
		FirstName: "Asha",
		LastName:  "Iyer",
		Email:     "admin@tourly.dev",
		Role:      users.RoleAdmin,
	}
	if err := admin.SetPassword("admin-password-123"); err != nil {
		return nil, nil, err
	}
	if err := s.db.PostgreSQL.Create(admin).Error; err != nil {
		return nil, nil, err
	}

	user := &users.User{
		FirstName: "Diego",
		LastName:  "Morales",
		Email:     "traveler@tourly.dev",
		Role:      users.RoleUser,
	}
	if err := user.SetPassword("user-password-123"); err != nil {
		return nil, nil, err
	}
	if err := s.db.PostgreSQL.Create(user).Error; err != nil {
		return nil, nil, err
	}

	return admin, user, nil
}

func (s *Seeder) seedCategories() ([]tours.Category, error) {
	categories := []tours.Category{
		{Name: "Trekking", Slug: "trekking"},
		{Name: "City Walks", Slug: "city-walks"},
		{Name: "Wildlife Safaris", Slug: "wildlife-safaris"},
		{Name: "Water Sports", Slug: "water-sports"},
	}
	if err := s.db.PostgreSQL.Create(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *Seeder) seedTours(adminID uuid.UUID, categories []tours.Category) ([]tours.Tour, []tours.TourInstance, error) {
	toursList := []tours.Tour{
		{
			Name:        "Annapurna Base Camp Trek",
			Slug:        "annapurna-base-camp-trek",
			Description: "A ten day guided trek through the Annapurna sanctuary.",
			CategoryID:  categories[0].ID,
			IsActive:    true,
			CreatedBy:   adminID,
		},
		{
			Name:        "Old Town Food Walk",
			Slug:        "old-town-food-walk",
			Description: "Three hours of street food, markets, and local history.",
			CategoryID:  categories[1].ID,
			IsActive:    true,
			CreatedBy:   adminID,
		},
		{
			Name:        "Ranthambore Tiger Safari",
			Slug:        "ranthambore-tiger-safari",
			Description: "Two game drives with a naturalist in Ranthambore National Park.",
			CategoryID:  categories[2].ID,
			IsActive:    true,
			CreatedBy:   adminID,
		},
	}
	if err := s.db.PostgreSQL.Create(&toursList).Error; err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	var instances []tours.TourInstance
	for i, tour := range toursList {
		for week := 1; week <= 3; week++ {
			instances = append(instances, tours.TourInstance{
				TourID:    tour.ID,
				DepartsAt: now.AddDate(0, 0, week*7+i),
				Capacity:  10 + i*5,
				PriceBase: 150 + float64(i)*100,
				Currency:  "USD",
				Status:    tours.InstanceStatusOpen,
			})
		}
	}
	if err := s.db.PostgreSQL.Create(&instances).Error; err != nil {
		return nil, nil, err
	}

	return toursList, instances, nil
}

func (s *Seeder) seedServices(toursList []tours.Tour) ([]catalog.Service, error) {
	services := []catalog.Service{
		{Name: "Meal Plan", Price: 25, Currency: "USD", IsActive: true},
		{Name: "Airport Transfer", Price: 40, Currency: "USD", IsActive: true},
		{Name: "Travel Insurance", Price: 15, Currency: "USD", IsActive: true},
		{Name: "Gear Rental", Price: 30, Currency: "USD", IsActive: true},
	}
	if err := s.db.PostgreSQL.Create(&services).Error; err != nil {
		return nil, err
	}

	// Trek charges more for gear rental than the list price
	override := catalog.TourServicePrice{
		TourID:    toursList[0].ID,
		ServiceID: services[3].ID,
		Price:     45,
	}
	if err := s.db.PostgreSQL.Create(&override).Error; err != nil {
		return nil, err
	}

	return services, nil
}

func (s *Seeder) seedPromotions(toursList []tours.Tour, categories []tours.Category) error {
	maxUsesPerUser := 1
	maxDiscount := 100.0
	minSeats := 4

	earlyBird := promotions.Promotion{
		Name:          "Early Bird 10%",
		PromotionType: promotions.PromotionTypeAutomatic,
		IsActive:      true,
		Priority:      10,
		Rules: []promotions.PromotionRule{
			{RuleType: promotions.RuleTypePercent, Value: 10, MaxDiscountAmount: &maxDiscount},
		},
		Targets: []promotions.PromotionTarget{
			{TargetType: promotions.TargetTypeAll},
		},
	}
	if err := s.db.PostgreSQL.Create(&earlyBird).Error; err != nil {
		return err
	}

	groupDeal := promotions.Promotion{
		Name:          "Group Trekking Deal",
		PromotionType: promotions.PromotionTypeAutomatic,
		IsActive:      true,
		Priority:      20,
		MinSeats:      &minSeats,
		Rules: []promotions.PromotionRule{
			{RuleType: promotions.RuleTypeFixed, Value: 80},
		},
		Targets: []promotions.PromotionTarget{
			{TargetType: promotions.TargetTypeCategory, TargetID: &categories[0].ID},
		},
	}
	if err := s.db.PostgreSQL.Create(&groupDeal).Error; err != nil {
		return err
	}

	welcome := promotions.Promotion{
		Name:           "Welcome Coupon",
		PromotionType:  promotions.PromotionTypeCoupon,
		IsActive:       true,
		Priority:       5,
		MaxUsesPerUser: &maxUsesPerUser,
		Rules: []promotions.PromotionRule{
			{RuleType: promotions.RuleTypePercent, Value: 15, MaxDiscountAmount: &maxDiscount},
		},
		Targets: []promotions.PromotionTarget{
			{TargetType: promotions.TargetTypeTour, TargetID: &toursList[1].ID},
		},
		Coupons: []promotions.Coupon{
			{Code: "WELCOME15", IsActive: true},
		},
	}
	if err := s.db.PostgreSQL.Create(&welcome).Error; err != nil {
		return err
	}

	return nil
}
