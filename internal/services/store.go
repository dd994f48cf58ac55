package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// findByID loads a row by primary key with the given preloads. A missing row
// becomes a not-found error carrying notFoundMsg.
func findByID[T any](ctx context.Context, db *gorm.DB, id uuid.UUID, entity, notFoundMsg string, preloads ...string) (*T, error) {
	var out T
	q := db.WithContext(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.First(&out, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError(entity, notFoundMsg)
		}
		return nil, fmt.Errorf("find %s %s: %w", entity, id, err)
	}
	return &out, nil
}

// exists reports whether any row of model matches the conditions.
func exists(ctx context.Context, db *gorm.DB, model any, query string, args ...any) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(model).Where(query, args...).Limit(1).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// whereContains adds a case-insensitive substring match on column when value
// is not blank.
func whereContains(q *gorm.DB, column, value string) *gorm.DB {
	value = strings.TrimSpace(value)
	if value == "" {
		return q
	}
	pattern := "%" + likeEscaper.Replace(strings.ToLower(value)) + "%"
	return q.Where("LOWER("+column+") LIKE ? ESCAPE '\\'", pattern)
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// blank reports whether s is empty after trimming.
func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// requireFields returns a validation error for the first blank field.
// fields alternates column names and values.
func requireFields(entity string, fields ...string) error {
	for i := 0; i+1 < len(fields); i += 2 {
		if blank(fields[i+1]) {
			return validationError(entity, fields[i], fmt.Sprintf("O campo %s é obrigatório", fields[i]))
		}
	}
	return nil
}

// applyString overwrites dst with a supplied value. Supplied blank values for
// required fields are rejected.
func applyString(entity, field string, dst *string, src *string) error {
	if src == nil {
		return nil
	}
	v := strings.TrimSpace(*src)
	if v == "" {
		return validationError(entity, field, fmt.Sprintf("O campo %s não pode ser vazio", field))
	}
	*dst = v
	return nil
}
