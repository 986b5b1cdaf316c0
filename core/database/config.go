package database

// Config holds configuration for the database connection.
type Config struct {
	// Driver is the database driver (sqlite, mysql).
	Driver string `mapstructure:"driver" default:"sqlite"`
	// Host is the database host (mysql only).
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port (mysql only).
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user (mysql only).
	User string `mapstructure:"user" default:"root"`
	// Password is the database password (mysql only).
	Password string `mapstructure:"password" default:""`
	// Name is the database name for mysql, or the database file path for sqlite.
	Name string `mapstructure:"name" default:"craftdex.db"`
	// TimeoutSeconds is the connection/IO timeout in seconds (mysql only).
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
