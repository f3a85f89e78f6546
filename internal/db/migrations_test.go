package db

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	embeddedmigrations "github.com/terraincognita07/wellnest/migrations"
	"gorm.io/gorm"
)

func TestOpenSQLiteAppliesEmbeddedMigrationsOnCleanDatabase(t *testing.T) {
	database := openSQLiteForTest(t, filepath.Join(t.TempDir(), "wellnest-clean.db"))

	for table, expected := range map[string][]string{
		"users":          {"email", "telegram_chat_id", "reminders_enabled", "reminder_days_before"},
		"cycle_settings": {"start_date", "cycle_length", "menstrual_length", "last_reminder_for"},
		"food_entries":   {"meal", "servings", "calories", "protein_g", "carbs_g", "fat_g", "fiber_g"},
		"daily_routines": {"water_ml", "steps", "sleep_minutes", "workout_minutes"},
		"goals":          {"metric", "period", "target", "active"},
		"goal_progress":  {"period_start", "value", "achieved", "achieved_at"},
	} {
		columns := loadTableColumns(t, database, table)
		for _, column := range expected {
			if _, exists := columns[column]; !exists {
				t.Fatalf("expected %s.%s column to exist after migrations", table, column)
			}
		}
	}

	indexSQL := loadSQLiteObjectSQL(t, database, "index", "idx_users_email_normalized")
	if !strings.Contains(strings.ToLower(strings.Join(strings.Fields(indexSQL), "")), "lower(trim(email))") {
		t.Fatalf("expected normalized email index to use lower(trim(email)), got %q", indexSQL)
	}

	assertAllEmbeddedMigrationsApplied(t, database)
}

func TestOpenSQLiteMigrationBootstrapIsIdempotent(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "wellnest-idempotent.db")

	firstOpen, err := OpenSQLite(databasePath, quietLogger())
	if err != nil {
		t.Fatalf("first open sqlite: %v", err)
	}
	firstRecords := loadMigrationRecords(t, firstOpen)

	firstSQLDB, err := firstOpen.DB()
	if err != nil {
		t.Fatalf("first open sql db: %v", err)
	}
	if err := firstSQLDB.Close(); err != nil {
		t.Fatalf("close first sql db: %v", err)
	}

	secondOpen := openSQLiteForTest(t, databasePath)
	secondRecords := loadMigrationRecords(t, secondOpen)

	if !reflect.DeepEqual(firstRecords, secondRecords) {
		t.Fatalf("expected migration records to remain unchanged between boots, before=%v after=%v", firstRecords, secondRecords)
	}
}

func TestMigratorSkipsColumnsThatAlreadyExist(t *testing.T) {
	database := openBareSQLiteForTest(t)
	if err := database.Exec(`CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT, pinned INTEGER)`).Error; err != nil {
		t.Fatalf("seed table: %v", err)
	}

	source := fstest.MapFS{
		"0001_add_pinned.sql": {Data: []byte("ALTER TABLE notes ADD COLUMN pinned INTEGER;\nALTER TABLE notes ADD COLUMN archived INTEGER NOT NULL DEFAULT 0;")},
		"README.md":           {Data: []byte("not a migration")},
	}
	if err := newMigrator(database, source, logrus.NewEntry(quietLogger())).Apply(); err != nil {
		t.Fatalf("Apply() unexpected error: %v", err)
	}

	columns := loadTableColumns(t, database, "notes")
	if _, ok := columns["archived"]; !ok {
		t.Fatal("expected archived column to be added")
	}
	records := loadMigrationRecords(t, database)
	if len(records) != 1 || records[0].Name != "0001_add_pinned.sql" {
		t.Fatalf("unexpected migration records %v", records)
	}
}

func TestMigratorRollsBackFailedMigration(t *testing.T) {
	database := openBareSQLiteForTest(t)

	source := fstest.MapFS{
		"0001_ok.sql":     {Data: []byte("CREATE TABLE first_table (id INTEGER PRIMARY KEY);")},
		"0002_broken.sql": {Data: []byte("CREATE TABLE second_table (id INTEGER PRIMARY KEY);\nINSERT INTO missing_table VALUES (1);")},
	}
	err := newMigrator(database, source, logrus.NewEntry(quietLogger())).Apply()
	if err == nil || !strings.Contains(err.Error(), "0002_broken.sql") {
		t.Fatalf("expected failure naming the broken migration, got %v", err)
	}

	if !database.Migrator().HasTable("first_table") {
		t.Fatal("expected first migration to stay applied")
	}
	if database.Migrator().HasTable("second_table") {
		t.Fatal("expected broken migration to be rolled back")
	}
	if records := loadMigrationRecords(t, database); len(records) != 1 {
		t.Fatalf("expected only the first migration to be recorded, got %v", records)
	}
}

func TestMigratorRejectsDuplicateVersions(t *testing.T) {
	database := openBareSQLiteForTest(t)

	source := fstest.MapFS{
		"0003_a.sql": {Data: []byte("SELECT 1;")},
		"0003_b.sql": {Data: []byte("SELECT 2;")},
	}
	err := newMigrator(database, source, logrus.NewEntry(quietLogger())).Apply()
	if err == nil || !strings.Contains(err.Error(), "duplicate migration version") {
		t.Fatalf("expected duplicate version error, got %v", err)
	}
}

func TestSplitSQLStatements(t *testing.T) {
	got := splitSQLStatements("CREATE TABLE a (id INTEGER);\n\n ; CREATE INDEX i ON a(id);  ")
	want := []string{"CREATE TABLE a (id INTEGER)", "CREATE INDEX i ON a(id)"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitSQLStatements() = %q, want %q", got, want)
	}
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func openSQLiteForTest(t *testing.T, databasePath string) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(databasePath, quietLogger())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	closeOnCleanup(t, database)
	return database
}

func openBareSQLiteForTest(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)", filepath.Join(t.TempDir(), "bare.db"))
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open bare sqlite: %v", err)
	}
	closeOnCleanup(t, database)
	return database
}

func closeOnCleanup(t *testing.T, database *gorm.DB) {
	t.Helper()

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
}

func assertAllEmbeddedMigrationsApplied(t *testing.T, database *gorm.DB) {
	t.Helper()

	entries, err := fs.ReadDir(embeddedmigrations.Files, ".")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	expectedVersions := make([]string, 0, len(entries))
	for _, entry := range entries {
		if matches := migrationFilePattern.FindStringSubmatch(entry.Name()); len(matches) == 2 {
			expectedVersions = append(expectedVersions, matches[1])
		}
	}
	sort.Strings(expectedVersions)

	actualVersions := make([]string, 0)
	for _, record := range loadMigrationRecords(t, database) {
		actualVersions = append(actualVersions, record.Version)
	}

	if !reflect.DeepEqual(expectedVersions, actualVersions) {
		t.Fatalf("unexpected applied migration versions: expected=%v actual=%v", expectedVersions, actualVersions)
	}
}

type migrationRecord struct {
	Version   string `gorm:"column:version"`
	Name      string `gorm:"column:name"`
	AppliedAt string `gorm:"column:applied_at"`
}

func loadMigrationRecords(t *testing.T, database *gorm.DB) []migrationRecord {
	t.Helper()

	records := make([]migrationRecord, 0)
	if err := database.Raw(
		`SELECT version, name, applied_at FROM schema_migrations ORDER BY version ASC`,
	).Scan(&records).Error; err != nil {
		t.Fatalf("load migration records: %v", err)
	}
	return records
}

func loadTableColumns(t *testing.T, database *gorm.DB, tableName string) map[string]struct{} {
	t.Helper()

	var rows []struct {
		Name string `gorm:"column:name"`
	}
	if err := database.Raw(fmt.Sprintf(`PRAGMA table_info("%s")`, tableName)).Scan(&rows).Error; err != nil {
		t.Fatalf("load table columns for %s: %v", tableName, err)
	}

	columns := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		columns[strings.ToLower(row.Name)] = struct{}{}
	}
	return columns
}

func loadSQLiteObjectSQL(t *testing.T, database *gorm.DB, objectType string, name string) string {
	t.Helper()

	var row struct {
		SQL string `gorm:"column:sql"`
	}
	if err := database.Raw(
		`SELECT sql FROM sqlite_master WHERE type = ? AND name = ?`,
		objectType,
		name,
	).Scan(&row).Error; err != nil {
		t.Fatalf("load sqlite %s %s: %v", objectType, name, err)
	}
	return row.SQL
}
