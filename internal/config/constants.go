package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the SQLite book database
	DefaultDatabasePath = "./books.db"

	// DefaultEnvFile is loaded into the environment before configuration is read
	DefaultEnvFile = ".env"
)

// Supported storage engines
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Application environments
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)
