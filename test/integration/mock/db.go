package mock

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var once sync.Once
var db *Db

type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

// NewDb opens the shared in-memory database once and migrates models into it.
// models is keyed by table name.
func NewDb(models map[string]any) *Db {
	once.Do(
		func() {
			db = open(models)
		},
	)

	return db
}

func open(models map[string]any) *Db {
	dbConn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	sqlDB, err := dbConn.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	newDbMock := &Db{
		DbConn: dbConn,
		models: models,
	}

	if err := newDbMock.init(); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	return newDbMock
}

func (d *Db) init() error {
	if err := d.DbConn.AutoMigrate(d.modelList()...); err != nil {
		return err
	}

	for table, model := range d.models {
		if !d.DbConn.Migrator().HasTable(model) {
			return fmt.Errorf("table %s was not created", table)
		}
	}
	return nil
}

// ClearDB deletes every row, children before parents.
func (d *Db) ClearDB() error {
	if err := d.DbConn.Exec("PRAGMA foreign_keys = OFF").Error; err != nil {
		return err
	}
	defer d.DbConn.Exec("PRAGMA foreign_keys = ON")

	for _, table := range d.tables() {
		if err := d.DbConn.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
		err := d.DbConn.Exec("DELETE FROM sqlite_sequence WHERE name = ?", table).Error
		if err != nil && !strings.Contains(err.Error(), "no such table: sqlite_sequence") {
			return err
		}
	}
	return nil
}

func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}

func (d *Db) tables() []string {
	tables := make([]string, 0, len(d.models))
	for table := range d.models {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	return tables
}

func (d *Db) modelList() []any {
	list := make([]any, 0, len(d.models))
	for _, table := range d.tables() {
		list = append(list, d.models[table])
	}
	return list
}
