package entity

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("field_agent")
	assert.True(t, ok)
	assert.Equal(t, RoleFieldAgent, role)

	role, ok = ParseRole(" ADMIN ")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, role)

	_, ok = ParseRole("supervisor")
	assert.False(t, ok)

	_, ok = ParseRole("")
	assert.False(t, ok)
}

func TestValidCoordinates(t *testing.T) {
	assert.True(t, ValidCoordinates(25.03, 121.56))
	assert.True(t, ValidCoordinates(-90, 180))
	assert.False(t, ValidCoordinates(90.1, 0))
	assert.False(t, ValidCoordinates(0, -180.5))
	assert.False(t, ValidCoordinates(math.NaN(), 0))
	assert.False(t, ValidCoordinates(0, math.Inf(1)))
}

func TestLocationPing_NewerThan(t *testing.T) {
	now := time.Now()
	older := LocationPing{UserID: "a", Timestamp: now.Add(-time.Second)}
	newer := LocationPing{UserID: "a", Timestamp: now}

	assert.True(t, newer.NewerThan(older))
	assert.False(t, older.NewerThan(newer))
	assert.True(t, newer.NewerThan(newer))
}

func TestNotification_Target(t *testing.T) {
	toUser := &Notification{TargetUserID: "agent-1"}
	toRole := &Notification{TargetRole: RoleAdmin}
	both := &Notification{TargetUserID: "agent-1", TargetRole: RoleAdmin}
	none := &Notification{}

	assert.True(t, toUser.HasValidTarget())
	assert.True(t, toRole.HasValidTarget())
	assert.False(t, both.HasValidTarget())
	assert.False(t, none.HasValidTarget())

	assert.True(t, toUser.VisibleTo("agent-1", RoleFieldAgent))
	assert.False(t, toUser.VisibleTo("agent-2", RoleFieldAgent))
	assert.True(t, toRole.VisibleTo("admin-9", RoleAdmin))
	assert.False(t, toRole.VisibleTo("agent-1", RoleFieldAgent))
}

func TestDiscountState_IsTerminal(t *testing.T) {
	assert.False(t, DiscountStateRequested.IsTerminal())
	assert.True(t, DiscountStateApproved.IsTerminal())
	assert.True(t, DiscountStateRejected.IsTerminal())
}
