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
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"gopkg.in/yaml.v3"
)

const (
	OnDeleteRestrict = "RESTRICT"
	OnDeleteCascade  = "CASCADE"
	OnDeleteSetNull  = "SET NULL"
	OnDeleteNoAction = "NO ACTION"
)

var validActions = []string{OnDeleteCascade, OnDeleteRestrict, OnDeleteSetNull, OnDeleteNoAction}

// ForeignKeyConstraint describes a foreign key relationship between tables.
type ForeignKeyConstraint struct {
	Table           string
	Column          string
	ReferenceTable  string
	ReferenceColumn string
	OnDelete        string
	OnUpdate        string
	ConstraintName  string
}

// GenerateConstraintName returns the explicit name or a derived name.
func (fk *ForeignKeyConstraint) GenerateConstraintName() string {
	if fk.ConstraintName != "" {
		return fk.ConstraintName
	}
	return fmt.Sprintf("fk_%s_%s", fk.Table, fk.Column)
}

// GenerateSQL returns the ALTER TABLE statement to add the constraint.
func (fk *ForeignKeyConstraint) GenerateSQL() string {
	sql := fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s(%s)",
		fk.Table, fk.GenerateConstraintName(), fk.Column, fk.ReferenceTable, fk.ReferenceColumn)
	if fk.OnDelete != "" {
		sql += " ON DELETE " + strings.ToUpper(fk.OnDelete)
	}
	if fk.OnUpdate != "" {
		sql += " ON UPDATE " + strings.ToUpper(fk.OnUpdate)
	}
	return sql
}

func ref(table, column, referenceTable, onDelete string) ForeignKeyConstraint {
	return ForeignKeyConstraint{
		Table:           table,
		Column:          column,
		ReferenceTable:  referenceTable,
		ReferenceColumn: "id",
		OnDelete:        onDelete,
	}
}

// PortalForeignKeys lists every relationship of the portal schema with its
// on-delete action. The audit actor columns (created_by, updated_by,
// deleted_by) are plain integers and intentionally absent.
func PortalForeignKeys() []ForeignKeyConstraint {
	return []ForeignKeyConstraint{
		ref("teams", "team_manager_id", "users", OnDeleteRestrict),
		ref("users", "user_team_id", "teams", OnDeleteRestrict),

		ref("reports", "report_team_responsible_id", "teams", OnDeleteRestrict),
		ref("reports", "report_owner_id", "users", OnDeleteRestrict),
		ref("reports", "report_status_changed_by_id", "users", OnDeleteSetNull),

		ref("projects", "project_team_responsible_id", "teams", OnDeleteRestrict),
		ref("projects", "project_manager_id", "users", OnDeleteRestrict),
		ref("projects", "project_status_changed_by_id", "users", OnDeleteSetNull),

		ref("tickets", "ticket_client_id", "users", OnDeleteRestrict),
		ref("tickets", "ticket_form_id", "forms", OnDeleteRestrict),
		ref("tickets", "ticket_project_id", "projects", OnDeleteRestrict),
		ref("tickets", "ticket_report_id", "reports", OnDeleteRestrict),
		ref("tickets", "ticket_status_changed_by_id", "users", OnDeleteSetNull),
		ref("tickets", "ticket_closed_by_id", "users", OnDeleteSetNull),

		ref("chats", "chat_ticket_id", "tickets", OnDeleteCascade),
		ref("messages", "message_chat_id", "chats", OnDeleteCascade),
		ref("messages", "message_user_id", "users", OnDeleteRestrict),

		ref("project_approvals", "project_id", "projects", OnDeleteRestrict),
		ref("project_approvals", "approver_id", "users", OnDeleteRestrict),
		ref("project_analysts", "project_id", "projects", OnDeleteRestrict),
		ref("project_analysts", "user_id", "users", OnDeleteRestrict),
		ref("project_sponsors", "project_id", "projects", OnDeleteRestrict),
		ref("project_sponsors", "user_id", "users", OnDeleteRestrict),
		ref("project_owners", "project_id", "projects", OnDeleteRestrict),
		ref("project_owners", "user_id", "users", OnDeleteRestrict),
		ref("project_clients", "project_id", "projects", OnDeleteRestrict),
		ref("project_clients", "user_id", "users", OnDeleteRestrict),
		ref("project_allowed_users", "project_id", "projects", OnDeleteRestrict),
		ref("project_allowed_users", "user_id", "users", OnDeleteRestrict),
		ref("ticket_attendants", "ticket_id", "tickets", OnDeleteRestrict),
		ref("ticket_attendants", "user_id", "users", OnDeleteRestrict),
		ref("ticket_teams", "ticket_id", "tickets", OnDeleteRestrict),
		ref("ticket_teams", "team_id", "teams", OnDeleteRestrict),
		ref("report_allowed_users", "report_id", "reports", OnDeleteRestrict),
		ref("report_allowed_users", "user_id", "users", OnDeleteRestrict),
		ref("user_report_follows", "user_id", "users", OnDeleteRestrict),
		ref("user_report_follows", "report_id", "reports", OnDeleteRestrict),
		ref("user_project_follows", "user_id", "users", OnDeleteRestrict),
		ref("user_project_follows", "project_id", "projects", OnDeleteRestrict),
		ref("user_ticket_follows", "user_id", "users", OnDeleteRestrict),
		ref("user_ticket_follows", "ticket_id", "tickets", OnDeleteRestrict),
	}
}

// ForeignKeyManager manages adding and validating foreign key constraints.
type ForeignKeyManager struct {
	constraints []ForeignKeyConstraint
	logger      Logger
}

// NewForeignKeyManager creates a manager with the portal constraints.
func NewForeignKeyManager(logger Logger) *ForeignKeyManager {
	return &ForeignKeyManager{
		constraints: PortalForeignKeys(),
		logger:      logger,
	}
}

// AddAllForeignKeys adds every constraint. SQLite cannot add constraints to
// existing tables, so nothing is done there. Failures are logged per
// constraint and do not stop the others.
func (fkm *ForeignKeyManager) AddAllForeignKeys(ctx context.Context, db bun.IDB) error {
	if db.Dialect().Name() == dialect.SQLite {
		fkm.debug("Skipping foreign keys on SQLite", "count", len(fkm.constraints))
		return nil
	}
	for _, constraint := range fkm.constraints {
		if _, err := db.ExecContext(ctx, constraint.GenerateSQL()); err != nil {
			fkm.debug("Failed to add foreign key constraint", "constraint", constraint.GenerateConstraintName(), "error", err.Error())
			continue
		}
		fkm.debug("Added foreign key constraint", "constraint", constraint.GenerateConstraintName())
	}
	return nil
}

// RemoveForeignKey drops a named foreign key from a table.
func (fkm *ForeignKeyManager) RemoveForeignKey(ctx context.Context, db bun.IDB, tableName, constraintName string) error {
	sql := fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s", tableName, constraintName)
	if db.Dialect().Name() == dialect.MySQL {
		sql = fmt.Sprintf("ALTER TABLE %s DROP FOREIGN KEY %s", tableName, constraintName)
	}
	_, err := db.ExecContext(ctx, sql)
	return err
}

// GetConstraintsByTable returns the constraints defined for a table.
func (fkm *ForeignKeyManager) GetConstraintsByTable(tableName string) []ForeignKeyConstraint {
	var result []ForeignKeyConstraint
	for _, constraint := range fkm.constraints {
		if strings.EqualFold(constraint.Table, tableName) {
			result = append(result, constraint)
		}
	}
	return result
}

// ListAllConstraints returns all configured constraints.
func (fkm *ForeignKeyManager) ListAllConstraints() []ForeignKeyConstraint {
	return fkm.constraints
}

// ValidateConstraints checks the configured constraints for common issues.
func (fkm *ForeignKeyManager) ValidateConstraints() []error {
	var errs []error
	for _, c := range fkm.constraints {
		switch {
		case c.Table == "":
			errs = append(errs, errors.New("table name cannot be empty"))
		case c.Column == "":
			errs = append(errs, errors.Newf("column name cannot be empty: %s", c.Table))
		case c.ReferenceTable == "":
			errs = append(errs, errors.Newf("reference table name cannot be empty: %s.%s", c.Table, c.Column))
		case c.ReferenceColumn == "":
			errs = append(errs, errors.Newf("reference column name cannot be empty: %s.%s -> %s", c.Table, c.Column, c.ReferenceTable))
		}
		for _, action := range []string{c.OnDelete, c.OnUpdate} {
			if action != "" && !isValidAction(action) {
				errs = append(errs, errors.Newf("invalid referential action: %s, constraint: %s", action, c.GenerateConstraintName()))
			}
		}
	}
	return errs
}

func isValidAction(action string) bool {
	for _, valid := range validActions {
		if strings.EqualFold(action, valid) {
			return true
		}
	}
	return false
}

func (fkm *ForeignKeyManager) debug(msg string, fields ...interface{}) {
	if fkm.logger != nil {
		fkm.logger.Debug(msg, fields...)
	}
}

// ForeignKeyConfig is the YAML structure that lists foreign key constraints.
type ForeignKeyConfig struct {
	ForeignKeys []ForeignKeyConstraintConfig `yaml:"foreign_keys"`
}

// ForeignKeyConstraintConfig describes a single foreign key in configuration.
type ForeignKeyConstraintConfig struct {
	Table           string `yaml:"table"`
	Column          string `yaml:"column"`
	ReferenceTable  string `yaml:"reference_table"`
	ReferenceColumn string `yaml:"reference_column"`
	OnDelete        string `yaml:"on_delete,omitempty"`
	OnUpdate        string `yaml:"on_update,omitempty"`
	ConstraintName  string `yaml:"constraint_name,omitempty"`
	Description     string `yaml:"description,omitempty"`
}

func (fkc *ForeignKeyConstraintConfig) toConstraint() ForeignKeyConstraint {
	return ForeignKeyConstraint{
		Table:           fkc.Table,
		Column:          fkc.Column,
		ReferenceTable:  fkc.ReferenceTable,
		ReferenceColumn: fkc.ReferenceColumn,
		OnDelete:        fkc.OnDelete,
		OnUpdate:        fkc.OnUpdate,
		ConstraintName:  fkc.ConstraintName,
	}
}

// ConfigurableForeignKeyManager loads constraints from a YAML file and falls
// back to PortalForeignKeys when the file is missing or unreadable.
type ConfigurableForeignKeyManager struct {
	*ForeignKeyManager
	configPath string
}

func NewConfigurableForeignKeyManager(logger Logger, configPath string) *ConfigurableForeignKeyManager {
	manager := &ConfigurableForeignKeyManager{
		ForeignKeyManager: NewForeignKeyManager(logger),
		configPath:        configPath,
	}
	if configPath == "" {
		return manager
	}
	if err := manager.ReloadConfig(); err != nil {
		manager.debug("Using code-defined foreign keys", "error", err.Error(), "config_path", configPath)
	}
	return manager
}

// ReloadConfig replaces the constraints with the ones in the YAML file.
func (cfm *ConfigurableForeignKeyManager) ReloadConfig() error {
	data, err := os.ReadFile(cfm.configPath)
	if err != nil {
		return errors.Wrapf(err, "failed to read foreign key config %s", cfm.configPath)
	}
	var config ForeignKeyConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return errors.Wrap(err, "failed to parse foreign key config")
	}
	constraints := make([]ForeignKeyConstraint, 0, len(config.ForeignKeys))
	for _, fk := range config.ForeignKeys {
		constraints = append(constraints, fk.toConstraint())
	}
	cfm.constraints = constraints
	return nil
}

// ExportToConfig writes the current constraints as YAML to outputPath,
// creating directories as needed.
func (cfm *ConfigurableForeignKeyManager) ExportToConfig(outputPath string) error {
	config := ForeignKeyConfig{ForeignKeys: make([]ForeignKeyConstraintConfig, 0, len(cfm.constraints))}
	for _, c := range cfm.constraints {
		config.ForeignKeys = append(config.ForeignKeys, ForeignKeyConstraintConfig{
			Table:           c.Table,
			Column:          c.Column,
			ReferenceTable:  c.ReferenceTable,
			ReferenceColumn: c.ReferenceColumn,
			OnDelete:        c.OnDelete,
			OnUpdate:        c.OnUpdate,
			ConstraintName:  c.ConstraintName,
			Description:     fmt.Sprintf("%s.%s -> %s.%s", c.Table, c.Column, c.ReferenceTable, c.ReferenceColumn),
		})
	}

	data, err := yaml.Marshal(&config)
	if err != nil {
		return errors.Wrap(err, "failed to serialize foreign key config")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}
	return errors.Wrap(os.WriteFile(outputPath, data, 0644), "failed to write foreign key config")
}

func (cfm *ConfigurableForeignKeyManager) GetConfigPath() string {
	return cfm.configPath
}
