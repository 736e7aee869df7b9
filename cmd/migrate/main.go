// Command migrate applies the raw-SQL migrations in migrations/ in order.
package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/lib/pq"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	dir := flag.String("dir", "migrations", "Directory containing .sql migrations")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`); err != nil {
		log.Fatalf("failed to create migrations table: %v", err)
	}

	entries, err := os.ReadDir(*dir)
	if err != nil {
		log.Fatalf("failed to read migrations directory: %v", err)
	}

	var ups, downs []string
	for _, entry := range entries {
		name := entry.Name()
		switch filepath.Ext(name) {
		case ".sql":
			if len(name) > 9 && name[len(name)-9:] == ".down.sql" {
				downs = append(downs, name)
			} else {
				ups = append(ups, name)
			}
		}
	}
	sort.Strings(ups)
	sort.Strings(downs)

	if *rollback {
		rollbackLast(db, *dir, downs)
		return
	}

	for _, name := range ups {
		var applied bool
		if err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE name = $1)`, name).Scan(&applied); err != nil {
			log.Fatalf("failed to check migration %s: %v", name, err)
		}
		if applied {
			continue
		}

		content, err := os.ReadFile(filepath.Join(*dir, name))
		if err != nil {
			log.Fatalf("failed to read migration %s: %v", name, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			log.Fatalf("failed to apply migration %s: %v", name, err)
		}
		if _, err := db.Exec(`INSERT INTO schema_migrations (name) VALUES ($1)`, name); err != nil {
			log.Fatalf("failed to record migration %s: %v", name, err)
		}
		log.Printf("applied %s", name)
	}
}

func rollbackLast(db *sql.DB, dir string, downs []string) {
	var last string
	err := db.QueryRow(`SELECT name FROM schema_migrations ORDER BY applied_at DESC LIMIT 1`).Scan(&last)
	if err != nil {
		log.Fatalf("no applied migrations to roll back: %v", err)
	}

	down := last[:len(last)-len(".sql")] + ".down.sql"
	found := false
	for _, name := range downs {
		if name == down {
			found = true
			break
		}
	}
	if !found {
		log.Fatalf("no down migration %s for %s", down, last)
	}

	content, err := os.ReadFile(filepath.Join(dir, down))
	if err != nil {
		log.Fatalf("failed to read %s: %v", down, err)
	}
	if _, err := db.Exec(string(content)); err != nil {
		log.Fatalf("failed to apply %s: %v", down, err)
	}
	if _, err := db.Exec(`DELETE FROM schema_migrations WHERE name = $1`, last); err != nil {
		log.Fatalf("failed to unrecord %s: %v", last, err)
	}
	log.Printf("rolled back %s", last)
}
