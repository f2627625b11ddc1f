package main

import (
	"database/sql"
	"log"
	"os"

	"github.com/alexedwards/argon2id"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping DB: %v", err)
	}

	seedUsers(db)
	seedStylists(db)
	seedDiscounts(db)

	log.Println("Seeding completed successfully!")
}

func seedUsers(db *sql.DB) {
	hash, err := argon2id.CreateHash("passord123", argon2id.DefaultParams)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}
	_, err = db.Exec(`
		INSERT INTO users (id, name, email, password_hash)
		VALUES (gen_random_uuid(), 'Kari Nordmann', 'kari@example.no', $1)
		ON CONFLICT (email) DO NOTHING;
	`, hash)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}
	log.Println("Seeded users")
}

func seedStylists(db *sql.DB) {
	stylists := []struct {
		name, slug, bio, city string
		rating                float64
	}{
		{"Frida Haugen", "frida-haugen", "Fargespesialist med ti års erfaring.", "Oslo", 4.8},
		{"Selma Berg", "selma-berg", "Brudestyling og oppsett.", "Bergen", 4.6},
		{"Ida Strand", "ida-strand", "Klipp og keratinbehandling.", "Trondheim", 4.9},
	}
	for _, s := range stylists {
		var stylistID string
		err := db.QueryRow(`
			INSERT INTO stylists (id, name, slug, bio, city, rating)
			VALUES (gen_random_uuid(), $1, $2, $3, $4, $5)
			ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
			RETURNING id;
		`, s.name, s.slug, s.bio, s.city, s.rating).Scan(&stylistID)
		if err != nil {
			log.Fatalf("Failed to seed stylist %s: %v", s.slug, err)
		}
		seedServices(db, stylistID)
	}
	log.Println("Seeded stylists and services")
}

func seedServices(db *sql.DB, stylistID string) {
	services := []struct {
		name, slug  string
		durationMin int
		price       int64
		trialPrice  *int64
	}{
		{"Dameklipp", "dameklipp", 60, 65_000, nil},
		{"Helfarge", "helfarge", 120, 145_000, nil},
		{"Brudestyling", "brudestyling", 180, 350_000, int64Ptr(50_000)},
	}
	for _, s := range services {
		_, err := db.Exec(`
			INSERT INTO services (id, stylist_id, name, slug, duration_minutes, price, trial_price)
			VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6)
			ON CONFLICT (stylist_id, slug) DO NOTHING;
		`, stylistID, s.name, s.slug, s.durationMin, s.price, s.trialPrice)
		if err != nil {
			log.Fatalf("Failed to seed service %s: %v", s.slug, err)
		}
	}
}

func seedDiscounts(db *sql.DB) {
	_, err := db.Exec(`
		INSERT INTO discounts (id, code, description, percent, max_order_amount, valid_from, valid_to)
		VALUES (gen_random_uuid(), 'SOMMER20', '20 % på bestillinger opp til 2 000 kr', 20, 200000,
			now() - interval '1 day', now() + interval '90 days')
		ON CONFLICT (code) DO NOTHING;
	`)
	if err != nil {
		log.Fatalf("Failed to seed discounts: %v", err)
	}
	_, err = db.Exec(`
		INSERT INTO discounts (id, code, description, amount, valid_from, valid_to)
		VALUES (gen_random_uuid(), 'VELKOMMEN100', '100 kr avslag for nye kunder', 10000,
			now() - interval '1 day', now() + interval '365 days')
		ON CONFLICT (code) DO NOTHING;
	`)
	if err != nil {
		log.Fatalf("Failed to seed discounts: %v", err)
	}
	log.Println("Seeded discounts")
}

func int64Ptr(v int64) *int64 { return &v }
