// Package database provides relational database configuration options.
package database

import (
	"fmt"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/spf13/pflag"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Supported drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Options defines configuration options for the relational database.
type Options struct {
	Driver                string        `json:"driver" mapstructure:"driver"`
	Host                  string        `json:"host" mapstructure:"host"`
	Port                  int           `json:"port" mapstructure:"port"`
	Username              string        `json:"username" mapstructure:"username"`
	Password              string        `json:"-" mapstructure:"password"`
	Database              string        `json:"database" mapstructure:"database"`
	Path                  string        `json:"path" mapstructure:"path"`
	MaxIdleConnections    int           `json:"max-idle-connections" mapstructure:"max-idle-connections"`
	MaxOpenConnections    int           `json:"max-open-connections" mapstructure:"max-open-connections"`
	MaxConnectionLifeTime time.Duration `json:"max-connection-life-time" mapstructure:"max-connection-life-time"`
	LogLevel              int           `json:"log-level" mapstructure:"log-level"`
}

// NewOptions creates a new Options object with default values.
func NewOptions() *Options {
	return &Options{
		Driver:                DriverSQLite,
		Host:                  "127.0.0.1",
		Port:                  5432,
		Path:                  "casegate.db",
		MaxIdleConnections:    10,
		MaxOpenConnections:    100,
		MaxConnectionLifeTime: 10 * time.Second,
		LogLevel:              int(gormlogger.Silent),
	}
}

// AddFlags adds flags for database options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Driver, "db.driver", o.Driver, "Database driver (mysql|postgres|sqlite)")
	fs.StringVar(&o.Host, "db.host", o.Host, "Database host")
	fs.IntVar(&o.Port, "db.port", o.Port, "Database port")
	fs.StringVar(&o.Username, "db.username", o.Username, "Database username")
	fs.StringVar(&o.Database, "db.database", o.Database, "Database name")
	fs.StringVar(&o.Path, "db.path", o.Path, "SQLite database file path")
	fs.IntVar(&o.MaxIdleConnections, "db.max-idle-connections", o.MaxIdleConnections, "Max idle connections")
	fs.IntVar(&o.MaxOpenConnections, "db.max-open-connections", o.MaxOpenConnections, "Max open connections")
	fs.DurationVar(&o.MaxConnectionLifeTime, "db.max-connection-life-time", o.MaxConnectionLifeTime, "Max connection life time")
	fs.IntVar(&o.LogLevel, "db.log-level", o.LogLevel, "GORM log level (1=silent 2=error 3=warn 4=info)")
}

// Validate checks if the options are valid. The password is only accepted
// from the environment so it never shows up in process listings.
func (o *Options) Validate() error {
	switch o.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", o.Driver)
	}
	if o.Password == "" {
		o.Password = os.Getenv("CASEGATE_DB_PASSWORD")
	}
	if o.Driver != DriverSQLite && o.Database == "" {
		return fmt.Errorf("database name is required for driver %q", o.Driver)
	}
	return nil
}

func (o *Options) dialector() gorm.Dialector {
	switch o.Driver {
	case DriverMySQL:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			o.Username, o.Password, o.Host, o.Port, o.Database)
		return mysql.Open(dsn)
	case DriverPostgres:
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			o.Host, o.Port, o.Username, o.Password, o.Database)
		return postgres.Open(dsn)
	default:
		return sqlite.Open(o.Path)
	}
}

// NewDB opens the database connection described by the options.
// TranslateError is on so duplicate-key and not-found conditions surface as
// gorm sentinel errors regardless of driver.
func (o *Options) NewDB() (*gorm.DB, error) {
	db, err := gorm.Open(o.dialector(), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.LogLevel(o.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", o.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(o.MaxIdleConnections)
	sqlDB.SetMaxOpenConns(o.MaxOpenConnections)
	sqlDB.SetConnMaxLifetime(o.MaxConnectionLifeTime)
	return db, nil
}
