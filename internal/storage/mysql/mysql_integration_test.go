//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"github.com/AlexeyPevz/Travel-bot-sub002/internal/domain"
	mysqlrepo "github.com/AlexeyPevz/Travel-bot-sub002/internal/storage/mysql"
)

// migrationsDir honors MIGRATIONS_DIR, falling back to the in-repo
// migrations directory.
func migrationsDir(t *testing.T) string {
	t.Helper()
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return filepath.Join("..", "..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir(t)

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir %s: %v", dir, err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=travelbot",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/travelbot?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC", hostPort)

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

func TestRepo_MySQL_OffersUpsert(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	old := int64(9500000)
	start := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	offers := []domain.Offer{
		{
			Provider:    "sunline",
			ProviderID:  "t-1",
			HotelName:   "Sunrise Resort",
			Country:     "turkey",
			Resort:      "Antalya",
			Stars:       5,
			BeachLine:   1,
			Meal:        domain.MealAllInclusive,
			Price:       8950000,
			OldPrice:    &old,
			Currency:    "RUB",
			StartDate:   start,
			EndDate:     start.AddDate(0, 0, 7),
			Nights:      7,
			Rating:      8.7,
			ReviewCount: 214,
			BookingURL:  "https://sunline/t-1",
			Images:      []string{"https://img/a.jpg"},
		},
		{
			Provider:   "sunline",
			ProviderID: "t-2",
			HotelName:  "Grand Palace",
			Country:    "turkey",
			Price:      6000000,
			Currency:   "RUB",
		},
	}
	if err := repo.SaveOffers(ctx, offers); err != nil {
		t.Fatalf("SaveOffers: %v", err)
	}

	// Re-seen offer refreshes, not duplicates.
	offers[0].Price = 8800000
	if err := repo.SaveOffers(ctx, offers[:1]); err != nil {
		t.Fatalf("SaveOffers upsert: %v", err)
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM offers").Scan(&n); err != nil {
		t.Fatalf("count offers: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 rows after upsert, got %d", n)
	}
	var price int64
	if err := db.QueryRow("SELECT price FROM offers WHERE provider = 'sunline' AND provider_id = 't-1'").Scan(&price); err != nil {
		t.Fatalf("read price: %v", err)
	}
	if price != 8800000 {
		t.Fatalf("price not refreshed: %d", price)
	}
}

func TestRepo_MySQL_WeightsAndSearches(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	if _, err := repo.Weights(ctx, 42); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("empty profile: want ErrNotFound, got %v", err)
	}

	if _, err := db.Exec(
		"INSERT INTO profile_weights (user_id, criterion, weight) VALUES (42, ?, 9), (42, ?, 3)",
		domain.CritPrice, domain.CritStars,
	); err != nil {
		t.Fatalf("seed weights: %v", err)
	}
	w, err := repo.Weights(ctx, 42)
	if err != nil {
		t.Fatalf("Weights: %v", err)
	}
	if w[domain.CritPrice] != 9 || w[domain.CritStars] != 3 {
		t.Fatalf("weights: %v", w)
	}

	spec := domain.SearchSpec{Destinations: []string{"turkey"}, Adults: 2, Budget: 10000000}
	if _, err := repo.SaveSearch(ctx, 42, spec); err != nil {
		t.Fatalf("SaveSearch: %v", err)
	}
	// Second save for the same user updates in place.
	spec.Budget = 12000000
	if _, err := repo.SaveSearch(ctx, 42, spec); err != nil {
		t.Fatalf("SaveSearch update: %v", err)
	}

	saved, err := repo.ListSavedSearches(ctx, 10)
	if err != nil {
		t.Fatalf("ListSavedSearches: %v", err)
	}
	if len(saved) != 1 {
		t.Fatalf("expected 1 saved search, got %d", len(saved))
	}
	if saved[0].UserID != 42 || saved[0].Spec.Budget != 12000000 {
		t.Fatalf("saved search: %+v", saved[0])
	}
}
