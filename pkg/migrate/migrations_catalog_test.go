package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/silverempire/commerce-backend/pkg/migrate"
)

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations directory invalid: %v", err)
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestCategoriesMigrationContainsSchema(t *testing.T) {
	content := readMigration(t, "*_create_categories.sql")

	checks := []string{
		"CREATE TABLE categories",
		"parent_id BIGINT REFERENCES categories(id)",
		"CREATE INDEX idx_categories_parent_id",
		"CREATE INDEX idx_categories_sort",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestOrderMigrationsContainSchemas(t *testing.T) {
	orders := readMigration(t, "*_create_orders.sql")
	for _, sub := range []string{
		"CREATE TABLE orders",
		"total_amount NUMERIC(12,2)",
		"shipping_cost NUMERIC(10,2)",
		"CREATE INDEX idx_orders_listing",
	} {
		if !strings.Contains(orders, sub) {
			t.Errorf("orders migration missing %q", sub)
		}
	}

	items := readMigration(t, "*_create_order_items.sql")
	for _, sub := range []string{
		"CREATE TABLE order_items",
		"unit_price NUMERIC(10,2)",
		"CHECK (quantity > 0)",
		"ON DELETE CASCADE",
	} {
		if !strings.Contains(items, sub) {
			t.Errorf("order_items migration missing %q", sub)
		}
	}
}
