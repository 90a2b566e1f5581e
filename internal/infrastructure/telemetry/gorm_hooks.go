package telemetry

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// gormHook binds one GORM operation processor to the SQL verb it maps to.
// An empty verb means the statement must be inspected (row/raw queries).
type gormHook struct {
	op     string
	verb   string
	before func(name string, fn func(*gorm.DB)) error
	after  func(name string, fn func(*gorm.DB)) error
}

// gormHooks enumerates the registration points for every operation type.
// The tracing and metrics plugins share this table so neither has to spell
// out six near-identical registration blocks.
func gormHooks(db *gorm.DB) []gormHook {
	cb := db.Callback()
	return []gormHook{
		{"create", "INSERT", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"query", "SELECT", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"update", "UPDATE", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", "DELETE", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"row", "", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"raw", "", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}
}

type queryStartKeyType struct{}

var queryStartKey queryStartKeyType

// markQueryStart stamps the statement context so after-callbacks can
// compute the query duration.
func markQueryStart(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}
	db.Statement.Context = context.WithValue(ctx, queryStartKey, time.Now())
}

// queryElapsed returns the time since markQueryStart ran, or zero when the
// start stamp is missing.
func queryElapsed(ctx context.Context) time.Duration {
	if ctx == nil {
		return 0
	}
	start, ok := ctx.Value(queryStartKey).(time.Time)
	if !ok {
		return 0
	}
	return time.Since(start)
}
