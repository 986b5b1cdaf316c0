package transfer

// Config holds configuration for the import/export feature.
type Config struct {
	// DefaultFormat is the codec used when a request or command names none.
	DefaultFormat string `mapstructure:"default_format" default:"json"`
	// DefaultStrategy is the merge strategy used when a request or command
	// names none.
	DefaultStrategy string `mapstructure:"default_strategy" default:"skip"`
	// AppVersion is stamped into export metadata.
	AppVersion string `mapstructure:"app_version" default:"0.1.0"`
	// BackupObject is the object name backups are written to in the storage
	// bucket.
	BackupObject string `mapstructure:"backup_object" default:"craftdex-backup.json"`
}
