package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"fieldops/internal/errors"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestGormSlogLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	l := newGormSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)), nil)
	transition := func() (string, int64) {
		return "UPDATE discount_requests SET state = 'APPROVED' WHERE id = 'x' AND state = 'REQUESTED'", 0
	}
	ctx := context.Background()

	l.Trace(ctx, time.Now(), transition, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	l.Trace(ctx, time.Now(), transition, nil)
	assert.Empty(t, buf.String(), "fast statements stay quiet below debug")

	l.Trace(ctx, time.Now().Add(-time.Second), transition, nil)
	assert.Contains(t, buf.String(), "GORM slow query")
	assert.Contains(t, buf.String(), `"component":"postgres"`)

	buf.Reset()
	l.Trace(ctx, time.Now(), transition, errors.New("connection reset"))
	assert.Contains(t, buf.String(), "GORM query failed")
	assert.Contains(t, buf.String(), "connection reset")
}
