package database

import (
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver ("pgx")
	"github.com/kunena/forumadmin/internal/config"
	"github.com/kunena/forumadmin/internal/installer/model"
	_ "github.com/lib/pq"  // PostgreSQL驱动 ("postgres")
	_ "modernc.org/sqlite" // embedded installs and tests ("sqlite")
)

// Database wraps the CMS database connection together with its table prefix.
type Database struct {
	db     *sql.DB
	driver string
	prefix string
	mu     sync.RWMutex
}

// Open prepares a connection pool without contacting the server. Connections
// are made on first use, so a database that is down at startup is picked up
// once it comes back.
func Open(cfg *config.DatabaseConfig) (*Database, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = "postgres"
	}

	db, err := sql.Open(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}

	return NewWithDB(db, driver, cfg.Prefix), nil
}

// New opens and pings the configured database.
func New(cfg *config.DatabaseConfig) (*Database, error) {
	d, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := d.Ping(); err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return d, nil
}

// NewWithDB wraps an already opened connection.
func NewWithDB(db *sql.DB, driver, prefix string) *Database {
	return &Database{db: db, driver: driver, prefix: prefix}
}

// GetDB 获取数据库连接（供repo使用）
func (d *Database) GetDB() *sql.DB {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.db
}

// Prefix is the CMS-wide table prefix.
func (d *Database) Prefix() string { return d.prefix }

// Driver is the database/sql driver name in use.
func (d *Database) Driver() string { return d.driver }

func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

func (d *Database) Ping() error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.db.Ping()
}

// placeholder returns the n-th (1-based) bind parameter for the driver.
func (d *Database) placeholder(n int) string {
	if d.driver == "sqlite" {
		return "?"
	}
	return "$" + strconv.Itoa(n)
}

var identRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// quoteName quotes a table identifier after checking it is a plain name.
func quoteName(name string) (string, error) {
	if !identRe.MatchString(name) {
		return "", fmt.Errorf("%w: %q", model.ErrInvalidTableName, name)
	}
	return `"` + name + `"`, nil
}
