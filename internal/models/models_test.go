package models

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderScheduleOffset(t *testing.T) {
	tests := []struct {
		schedule ReminderSchedule
		offset   time.Duration
		fixed    bool
	}{
		{ScheduleDayBefore, 24 * time.Hour, true},
		{ScheduleHourBefore, time.Hour, true},
		{ScheduleWeekBefore, 168 * time.Hour, true},
		{ScheduleCustom, 0, false},
		{"fortnight", 0, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.schedule), func(t *testing.T) {
			offset, fixed := tt.schedule.Offset()
			assert.Equal(t, tt.offset, offset)
			assert.Equal(t, tt.fixed, fixed)
		})
	}
}

func TestAttendanceStatusCountsAsPresent(t *testing.T) {
	assert.True(t, AttendancePresent.CountsAsPresent())
	assert.True(t, AttendanceLate.CountsAsPresent())
	assert.False(t, AttendanceAbsent.CountsAsPresent())
	assert.False(t, AttendanceExcused.CountsAsPresent())
}

func TestBookingOverlapsIsHalfOpen(t *testing.T) {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	booking := ResourceBooking{From: base, To: base.Add(2 * time.Hour)}

	assert.True(t, booking.Overlaps(base.Add(time.Hour), base.Add(3*time.Hour)))
	assert.True(t, booking.Overlaps(base.Add(-time.Hour), base.Add(time.Minute)))
	assert.False(t, booking.Overlaps(base.Add(2*time.Hour), base.Add(3*time.Hour)))
	assert.False(t, booking.Overlaps(base.Add(-time.Hour), base))
}

func TestProgrammeIsFull(t *testing.T) {
	capacity := 2
	assert.False(t, Programme{CurrentAttendees: 100}.IsFull())
	assert.False(t, Programme{Capacity: &capacity, CurrentAttendees: 1}.IsFull())
	assert.True(t, Programme{Capacity: &capacity, CurrentAttendees: 2}.IsFull())
}

func TestKPIProgress(t *testing.T) {
	assert.Equal(t, float64(0), ProgrammeKPI{Actual: 5}.Progress())
	assert.Equal(t, 50.0, ProgrammeKPI{Target: 40, Actual: 20}.Progress())
	assert.Equal(t, 125.0, ProgrammeKPI{Target: 8, Actual: 10}.Progress())
}

func TestActorRoles(t *testing.T) {
	assert.True(t, Actor{Role: RoleAdmin}.CanManage())
	assert.True(t, Actor{Role: RoleLeader}.CanManage())
	assert.False(t, Actor{Role: RoleMember}.CanManage())
	assert.True(t, SystemActor.CanManage())

	var claims *JWTClaims
	assert.Equal(t, Actor{}, claims.Actor())
	claims = &JWTClaims{UserID: "u-1", Role: RoleLeader, Name: "Grace"}
	assert.Equal(t, Actor{UserID: "u-1", Role: RoleLeader, Name: "Grace"}, claims.Actor())
}

func TestNewID(t *testing.T) {
	id := NewID(PrefixReminder)
	require.True(t, strings.HasPrefix(id, "rem-"))
	_, err := uuid.Parse(strings.TrimPrefix(id, "rem-"))
	require.NoError(t, err)
	assert.NotEqual(t, id, NewID(PrefixReminder))
}
