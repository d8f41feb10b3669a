package sortablerepo

import (
	"fmt"

	"sortable/internal/core/domain/model/sortable"
	"sortable/internal/pkg/errs"

	"gorm.io/gorm"
)

// ResolveConfig checks cfg against the table schema and fills an empty Key
// with the table's primary key column. Tables without a primary key, or with
// a composite one, need an explicit Key.
func ResolveConfig(db *gorm.DB, table string, cfg sortable.Config) (sortable.Config, error) {
	cfg = cfg.WithDefaults()
	m := db.Migrator()

	if !m.HasTable(table) {
		return cfg, errs.NewConfigurationError("table", fmt.Sprintf("table `%s` does not exist", table))
	}
	if !m.HasColumn(table, cfg.Column) {
		return cfg, errs.NewConfigurationError("column", fmt.Sprintf("invalid sortable column `%s`", cfg.Column))
	}
	for _, attr := range cfg.Restrictions {
		if !m.HasColumn(table, attr) {
			return cfg, errs.NewConfigurationError("restrictions",
				fmt.Sprintf("restriction column `%s` does not exist in `%s`", attr, table))
		}
	}

	if cfg.Key != "" {
		if !m.HasColumn(table, cfg.Key) {
			return cfg, errs.NewConfigurationError("key", fmt.Sprintf("key column `%s` does not exist", cfg.Key))
		}
		return cfg, cfg.Validate()
	}

	columns, err := m.ColumnTypes(table)
	if err != nil {
		return cfg, errs.NewConfigurationErrorWithCause("key", "cannot read table columns", err)
	}
	var primary []string
	for _, col := range columns {
		if pk, ok := col.PrimaryKey(); ok && pk {
			primary = append(primary, col.Name())
		}
	}
	switch len(primary) {
	case 1:
		cfg.Key = primary[0]
	case 0:
		return cfg, errs.NewConfigurationError("key",
			fmt.Sprintf("table `%s` has no primary key; set the key attribute explicitly", table))
	default:
		return cfg, errs.NewConfigurationError("key",
			fmt.Sprintf("table `%s` has a composite primary key; set the key attribute explicitly", table))
	}

	return cfg, cfg.Validate()
}
