// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly
// configure SQLite or MySQL connections based on the application's configuration.
// SQLite is the default: Craftdex is an offline companion tool and a local file
// is the normal deployment.
//
// # Connect
//
// The Connect function establishes a connection to the configured database,
// enabling foreign key enforcement on SQLite and error translation so that
// duplicate-key violations surface as gorm.ErrDuplicatedKey regardless of driver.
//
// # Schema Inspection
//
// The package includes tools to inspect the database schema. The start command
// uses MissingTables to warn when the catalog tables are absent, before the
// first import call would fail against them.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "resources")
package database
