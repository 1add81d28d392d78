package abort

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbmaian/chatdl/internal/chatdl/model"
)

func TestCompile_OrsGroupsAndsPredicates(t *testing.T) {
	f, directives, err := Compile([]string{
		`min_time_until_scheduled_start_time:01:00 & file_exists:/tmp/does-not-exist-chatdl-test`,
		`changed_scheduled_start_time:%Y-%m-%d`,
	})
	require.NoError(t, err)
	require.Empty(t, directives)
	require.Len(t, f.Groups, 2)
	assert.Len(t, f.Groups[0].Predicates, 2)
	assert.Len(t, f.Groups[1].Predicates, 1)
}

func TestCompile_RejectsEmpty(t *testing.T) {
	_, _, err := Compile([]string{""})
	require.Error(t, err)
}

func TestCompile_RejectsTrailingBackslash(t *testing.T) {
	_, _, err := Compile([]string{`file_exists:/tmp/x\`})
	require.Error(t, err)
}

func TestCompile_EscapedAmpersandStaysInOnePredicate(t *testing.T) {
	f, _, err := Compile([]string{`file_exists:/tmp/a\&b`})
	require.NoError(t, err)
	require.Len(t, f.Groups, 1)
	require.Len(t, f.Groups[0].Predicates, 1)
	fe := f.Groups[0].Predicates[0].(*fileExists)
	assert.Equal(t, "/tmp/a&b", fe.path)
}

func TestCompile_SignalDirectiveMustBeSole(t *testing.T) {
	_, _, err := Compile([]string{`SIGINT:disable & file_exists:/tmp/x`})
	require.Error(t, err)
}

func TestCompile_SignalDirectiveAlone(t *testing.T) {
	f, directives, err := Compile([]string{`SIGINT:disable`})
	require.NoError(t, err)
	assert.True(t, f.Empty())
	require.Len(t, directives, 1)
	assert.Equal(t, "SIGINT", directives[0].SignalName)
	assert.Equal(t, "disable", directives[0].Policy)
}

func TestCompile_DuplicatePredicateInGroupRejected(t *testing.T) {
	_, _, err := Compile([]string{`file_exists:/a & file_exists:/b`})
	require.Error(t, err)
}

func TestMinTimeUntilScheduledStart_Fires(t *testing.T) {
	f, _, err := Compile([]string{`min_time_until_scheduled_start_time:01:00`})
	require.NoError(t, err)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	scheduled := now.Add(2 * time.Hour)
	state := &model.AbortState{ScheduledStartTime: &scheduled}

	err = f.Check(state, now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secs >= 3600 secs")
}

func TestMinTimeUntilScheduledStart_DoesNotFireBeforeThreshold(t *testing.T) {
	f, _, err := Compile([]string{`min_time_until_scheduled_start_time:01:00`})
	require.NoError(t, err)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	scheduled := now.Add(30 * time.Minute)
	state := &model.AbortState{ScheduledStartTime: &scheduled}

	assert.NoError(t, f.Check(state, now))
}

func TestMinTimeUntilScheduledStart_UnknownStateDoesNotFire(t *testing.T) {
	f, _, err := Compile([]string{`min_time_until_scheduled_start_time:01:00`})
	require.NoError(t, err)
	assert.NoError(t, f.Check(&model.AbortState{}, time.Now()))
}

func TestChangedScheduledStartTime_FiresOnChange(t *testing.T) {
	f, _, err := Compile([]string{`changed_scheduled_start_time:%Y-%m-%d`})
	require.NoError(t, err)

	orig := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	later := orig.AddDate(0, 0, 1)
	state := &model.AbortState{OrigScheduledStartTime: &orig, ScheduledStartTime: &later}

	assert.Error(t, f.Check(state, time.Now()))
}

func TestChangedScheduledStartTime_DirectionFilter(t *testing.T) {
	f, _, err := Compile([]string{`changed_scheduled_start_time:+%Y-%m-%d`})
	require.NoError(t, err)

	orig := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	earlier := orig.AddDate(0, 0, -1)
	state := &model.AbortState{OrigScheduledStartTime: &orig, ScheduledStartTime: &earlier}

	// Moved earlier, but the '+' direction only fires on later moves.
	assert.NoError(t, f.Check(state, time.Now()))
}

func TestChangedScheduledStartTime_RejectsNonRoundTrippingFormat(t *testing.T) {
	_, _, err := Compile([]string{`changed_scheduled_start_time:%Q`})
	require.Error(t, err)
}

func TestFileExists_FiresWhenPresent(t *testing.T) {
	tmp := t.TempDir() + "/marker"
	require.NoError(t, os.WriteFile(tmp, []byte("x"), 0o600))

	f, _, err := Compile([]string{`file_exists:` + tmp})
	require.NoError(t, err)

	err = f.Check(&model.AbortState{}, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ctime=")
}

func TestFileExists_DoesNotFireWhenAbsent(t *testing.T) {
	f, _, err := Compile([]string{`file_exists:/nonexistent/chatdl-test-path`})
	require.NoError(t, err)
	assert.NoError(t, f.Check(&model.AbortState{}, time.Now()))
}
