package sortable

import (
	"fmt"
	"strings"

	"sortable/internal/pkg/errs"
)

const (
	DefaultColumn     = "sortOrder"
	DefaultItemsParam = "sortItems"
)

// Config describes how one record type is ordered.
type Config struct {
	// Column is the position attribute.
	Column string
	// Key is the identifying attribute. Empty means "the single primary key",
	// which storage adapters resolve before the engine sees the config.
	Key string
	// Restrictions lists the attributes that partition the ordering space.
	Restrictions []string
	// ItemsParam names the request field carrying ordered keys. Only the
	// transport layer reads it.
	ItemsParam string
	// LockOnInsert closes the insert race by locking the scope before reading
	// the current maximum position.
	LockOnInsert bool
}

// WithDefaults fills unset fields with their defaults.
func (c Config) WithDefaults() Config {
	if c.Column == "" {
		c.Column = DefaultColumn
	}
	if c.ItemsParam == "" {
		c.ItemsParam = DefaultItemsParam
	}
	return c
}

// Validate checks the config is usable by the engine. A Key must be resolved by now.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Column) == "" {
		return errs.NewConfigurationError("column", "position column is not set")
	}
	if strings.TrimSpace(c.Key) == "" {
		return errs.NewConfigurationError("key", "key attribute is not resolved")
	}
	seen := make(map[string]struct{}, len(c.Restrictions))
	for _, attr := range c.Restrictions {
		switch {
		case strings.TrimSpace(attr) == "":
			return errs.NewConfigurationError("restrictions", "empty attribute name")
		case attr == c.Column:
			return errs.NewConfigurationError("restrictions",
				fmt.Sprintf("position column `%s` cannot restrict itself", attr))
		}
		if _, dup := seen[attr]; dup {
			return errs.NewConfigurationError("restrictions",
				fmt.Sprintf("attribute `%s` listed twice", attr))
		}
		seen[attr] = struct{}{}
	}
	return nil
}

// NewRestrictions returns an empty restriction set for this config.
func (c Config) NewRestrictions() Restrictions {
	return NewRestrictions(c.Restrictions...)
}

// KeyOf returns the record key, or ok=false when the record lacks it.
func (c Config) KeyOf(r Record) (any, bool) {
	v, ok := r.Attribute(c.Key)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// PositionOf returns the record position. Unset or non-numeric positions read as 0.
func (c Config) PositionOf(r Record) int {
	v, ok := r.Attribute(c.Column)
	if !ok {
		return 0
	}
	n, _ := IntValue(v)
	return int(n)
}
