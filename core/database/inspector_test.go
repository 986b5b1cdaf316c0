package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestGetTableColumns(t *testing.T) {
	// Setup in-memory DB
	cfg := Config{
		Driver: "sqlite",
		Name:   ":memory:",
	}
	db, err := Connect(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, db)

	// SQLite specific types: INTEGER, TEXT.
	err = db.Exec("CREATE TABLE resources (id INTEGER PRIMARY KEY, name TEXT, category TEXT)").Error
	assert.NoError(t, err)

	columns, err := GetTableColumns(db, "resources")
	assert.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}

	assert.Equal(t, "integer", colMap["id"])
	assert.Equal(t, "text", colMap["name"])
	assert.Equal(t, "text", colMap["category"])

	// PRAGMA table_info returns an empty result for a non-existent table,
	// so no error but empty columns.
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestGetTableColumns_MySQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	assert.NoError(t, err)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("id", "INT", "NO", "PRI", nil, "auto_increment").
		AddRow("name", "VARCHAR(120)", "NO", "UNI", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `crafting_recipes`").WillReturnRows(rows)

	columns, err := GetTableColumns(db, "crafting_recipes")
	assert.NoError(t, err)
	assert.Len(t, columns, 2)
	assert.Equal(t, "int", columns[0].Type)
	assert.Equal(t, "varchar(120)", columns[1].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMissingTables(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	assert.NoError(t, err)

	err = db.Exec("CREATE TABLE resources (id INTEGER PRIMARY KEY)").Error
	assert.NoError(t, err)

	missing := MissingTables(db, []string{"resources", "crafting_recipes", "recipe_ingredients"})
	assert.ElementsMatch(t, []string{"crafting_recipes", "recipe_ingredients"}, missing)
}
