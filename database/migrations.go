/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"sort"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// MigrationManager coordinates schema migrations and data initialization.
type MigrationManager struct {
	db          *bun.DB
	logger      Logger
	registry    ModelRegistry
	migrate     DataMigrateConfig
	dataInit    DataInitConfig
	foreignKeys *ForeignKeyManager
}

// Migration represents an applied migration record stored in the database.
type Migration struct {
	bun.BaseModel `bun:"table:schema_migrations"`

	Version     string    `bun:"version,pk"`
	Name        string    `bun:"name,notnull"`
	AppliedAt   time.Time `bun:"applied_at,notnull"`
	Description string    `bun:"description"`
}

// MigrationFunc is a migration step executed within a transaction.
type MigrationFunc func(ctx context.Context, db bun.IDB) error

// MigrationItem describes a single migration version.
type MigrationItem struct {
	Version     string
	Name        string
	Description string
	Up          MigrationFunc
}

// NewMigrationManager constructs a MigrationManager over the default model
// registry and the code-defined foreign keys.
func NewMigrationManager(db *bun.DB, logger Logger, cfg DataMigrateConfig) *MigrationManager {
	if logger == nil {
		logger = GetLogger()
	}
	return &MigrationManager{
		db:          db,
		logger:      logger,
		registry:    defaultRegistry,
		migrate:     cfg,
		dataInit:    DataInitConfig{Filepath: "configs/sql", Environment: "dev"},
		foreignKeys: NewConfigurableForeignKeyManager(logger, cfg.ForeignKeyFile).ForeignKeyManager,
	}
}

// SetRegistry replaces the model registry the tables are created from.
func (mm *MigrationManager) SetRegistry(registry ModelRegistry) {
	mm.registry = registry
}

// SetDataInit sets the seed configuration used by InitData and by the
// seed migration.
func (mm *MigrationManager) SetDataInit(cfg DataInitConfig) {
	if cfg.Filepath == "" {
		cfg.Filepath = mm.dataInit.Filepath
	}
	if cfg.Environment == "" {
		cfg.Environment = mm.dataInit.Environment
	}
	mm.dataInit = cfg
}

// RunMigrations creates the migration tracking table if needed and executes
// the pending migrations in ascending version order.
func (mm *MigrationManager) RunMigrations(ctx context.Context) error {
	if mm.db == nil {
		return errors.New("database not initialized")
	}
	if _, ok := os.LookupEnv("BUNDEBUG_MIGRATION"); !ok {
		EnableBunSqlSilent(true)
		defer EnableBunSqlSilent(false)
	}

	if err := mm.createMigrationTable(ctx); err != nil {
		return errors.Wrap(err, "failed to create migrations table")
	}

	migrations := mm.getAllMigrations()
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	for _, migration := range migrations {
		if err := mm.runMigration(ctx, migration); err != nil {
			return errors.Wrapf(err, "failed to execute migration %s", migration.Version)
		}
	}

	mm.logger.Info("Database migrations completed")
	return nil
}

func (mm *MigrationManager) createMigrationTable(ctx context.Context) error {
	_, err := mm.db.NewCreateTable().
		Model((*Migration)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

func (mm *MigrationManager) getAllMigrations() []MigrationItem {
	migrations := []MigrationItem{
		{
			Version:     "001",
			Name:        "create_tables",
			Description: "Create portal tables",
			Up:          mm.createTables,
		},
	}
	if mm.migrate.EnableForeignKey {
		migrations = append(migrations, MigrationItem{
			Version:     "002",
			Name:        "add_foreign_keys",
			Description: "Add foreign key constraints with their on-delete actions",
			Up:          mm.addForeignKeys,
		})
	}
	if mm.migrate.EnableIndexes {
		migrations = append(migrations, MigrationItem{
			Version:     "003",
			Name:        "create_indexes",
			Description: "Index lifecycle flags and foreign key columns",
			Up:          mm.createIndexes,
		})
	}
	if mm.dataInit.AutoInitOnMigration {
		migrations = append(migrations, MigrationItem{
			Version:     "004",
			Name:        "seed_initial_data",
			Description: "Seed initial data",
			Up:          mm.seedInitialData,
		})
	}
	return migrations
}

func (mm *MigrationManager) runMigration(ctx context.Context, migration MigrationItem) error {
	exists, err := mm.db.NewSelect().
		Model((*Migration)(nil)).
		Where("version = ?", migration.Version).
		Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	err = RunInSession(ctx, mm.db, func(ctx context.Context, s *Session) error {
		if err := migration.Up(ctx, s.DB()); err != nil {
			return err
		}
		_, err := s.DB().NewInsert().
			Model(&Migration{
				Version:     migration.Version,
				Name:        migration.Name,
				AppliedAt:   time.Now(),
				Description: migration.Description,
			}).
			Exec(ctx)
		return err
	})
	if err != nil {
		return err
	}
	mm.logger.Info("Migration executed successfully", "version", migration.Version, "name", migration.Name)
	return nil
}

func (mm *MigrationManager) createTables(ctx context.Context, db bun.IDB) error {
	for _, model := range instancesOf(mm.registry) {
		_, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return errors.Wrapf(err, "failed to create table %s", modelName(model))
		}
	}
	return nil
}

func (mm *MigrationManager) addForeignKeys(ctx context.Context, db bun.IDB) error {
	if errs := mm.foreignKeys.ValidateConstraints(); len(errs) > 0 {
		for _, err := range errs {
			mm.logger.Debug("Foreign key constraint validation failed", "error", err.Error())
		}
		return errors.Newf("foreign key constraint validation failed, %d errors in total", len(errs))
	}
	return mm.foreignKeys.AddAllForeignKeys(ctx, db)
}

// createIndexes adds an index on the lifecycle flag of every table and on
// each foreign key column.
func (mm *MigrationManager) createIndexes(ctx context.Context, db bun.IDB) error {
	isMySQL := db.Dialect().Name() == dialect.MySQL
	for _, model := range instancesOf(mm.registry) {
		table := mm.db.Table(structType(model))
		columns := []string{"active"}
		for _, fk := range mm.foreignKeys.GetConstraintsByTable(table.Name) {
			columns = append(columns, fk.Column)
		}
		for _, column := range columns {
			if _, ok := table.FieldMap[column]; !ok {
				continue
			}
			q := db.NewCreateIndex().
				Model(model).
				Index(fmt.Sprintf("idx_%s_%s", table.Name, column)).
				Column(column)
			if !isMySQL {
				q = q.IfNotExists()
			}
			if _, err := q.Exec(ctx); err != nil {
				if ok, code := IsSqlError(err); ok && code == ExistIndexErr {
					continue
				}
				return errors.Wrapf(err, "failed to index %s.%s", table.Name, column)
			}
		}
	}
	return nil
}

// InitData runs the SQL seed files outside of the migration bookkeeping.
func (mm *MigrationManager) InitData(ctx context.Context) error {
	if mm.db == nil {
		return errors.New("database not initialized")
	}
	return mm.seedInitialData(ctx, mm.db)
}

func (mm *MigrationManager) seedInitialData(ctx context.Context, db bun.IDB) error {
	sqlManager := NewSQLInitManager(db, mm.dataInit.Environment)
	sqlManager.SetSQLRootPath(mm.dataInit.Filepath)
	sqlManager.SetLogger(mm.logger)

	mm.logger.Info("Starting data initialization using SQL files", "environment", mm.dataInit.Environment)
	if err := sqlManager.ExecuteInitialization(ctx); err != nil {
		return errors.Wrap(err, "SQL file initialization failed")
	}
	return nil
}

// GetAppliedMigrations returns migration records ordered by version.
func (mm *MigrationManager) GetAppliedMigrations(ctx context.Context) ([]Migration, error) {
	var migrations []Migration
	err := mm.db.NewSelect().
		Model(&migrations).
		Order("version ASC").
		Scan(ctx)
	return migrations, err
}

func structType(model interface{}) reflect.Type {
	t := reflect.TypeOf(model)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
