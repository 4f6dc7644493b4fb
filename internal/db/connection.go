package db

import (
	"database/sql"
	"fmt"
	"net/url"

	"github.com/dohalabs/bankgen/internal/config"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Connection represents a database connection
type Connection struct {
	DB     *sql.DB
	Config *config.Config
}

// NewConnection opens and pings a database connection built from config
func NewConnection(cfg *config.Config) (*Connection, error) {
	if err := cfg.ValidateDatabase(); err != nil {
		return nil, err
	}

	driverName, dsn := BuildDSN(cfg.Database)

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Connection{
		DB:     db,
		Config: cfg,
	}, nil
}

// BuildDSN returns the database/sql driver name and connection string
// for the configured provider.
func BuildDSN(dbc config.Database) (string, string) {
	switch dbc.Provider {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
			dbc.User, dbc.Password, dbc.Host, dbc.Port, dbc.Name)
		return "mysql", dsn
	case "sqlite", "sqlite3":
		// DB_NAME is the database file path
		return "sqlite3", dbc.Name
	default: // postgresql, postgres
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(dbc.User, dbc.Password),
			Host:   fmt.Sprintf("%s:%d", dbc.Host, dbc.Port),
			Path:   "/" + dbc.Name,
		}
		return "pgx", u.String()
	}
}

// Close closes the database connection
func (c *Connection) Close() error {
	return c.DB.Close()
}

// ServerVersion returns the database server version string
func (c *Connection) ServerVersion() (string, error) {
	var query string
	switch c.Config.Database.Provider {
	case "mysql":
		query = "SELECT VERSION()"
	case "sqlite", "sqlite3":
		query = "SELECT sqlite_version()"
	default:
		query = "SELECT version()"
	}

	var version string
	if err := c.DB.QueryRow(query).Scan(&version); err != nil {
		return "", fmt.Errorf("failed to query server version: %w", err)
	}

	return version, nil
}
