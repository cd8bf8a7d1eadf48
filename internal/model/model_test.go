package model

import (
	"database/sql/driver"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// database/sql only honors these through the driver.Valuer and sql.Scanner
// interfaces, so losing either breaks every write of the JSON columns.
var (
	_ driver.Valuer = JSONList{}
	_ driver.Valuer = DiffList{}
)

func TestJSONListValueRoundTrip(t *testing.T) {
	v, err := JSONList{"music", "walks"}.Value()
	require.NoError(t, err)
	require.Equal(t, `["music","walks"]`, v)

	var back JSONList
	require.NoError(t, back.Scan(v))
	require.Equal(t, JSONList{"music", "walks"}, back)
}

func TestJSONListValueNil(t *testing.T) {
	v, err := JSONList(nil).Value()
	require.NoError(t, err)
	require.Equal(t, "[]", v)
}

func TestDiffListValueRoundTrip(t *testing.T) {
	diff := DiffList{{Action: "reschedule", StepID: "s1", SuggestedDay: "Monday"}}

	v, err := diff.Value()
	require.NoError(t, err)

	var back DiffList
	require.NoError(t, back.Scan(v))
	require.Equal(t, diff, back)
}

func TestDiffListValueNil(t *testing.T) {
	v, err := DiffList(nil).Value()
	require.NoError(t, err)
	require.Equal(t, "[]", v)
}

// API responses use snake_case field names, matching the request bodies.
func TestStepMarshalsSnakeCase(t *testing.T) {
	b, err := json.Marshal(&Step{ID: "s1", GoalID: "g1", EstimateMinutes: 30, SuggestedDay: "Monday"})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	require.Contains(t, m, "estimate_minutes")
	require.Contains(t, m, "suggested_day")
	require.NotContains(t, m, "EstimateMinutes")
	require.NotContains(t, m, "milestone_id") // omitted when nil
}

func TestGoalMarshalsSnakeCase(t *testing.T) {
	b, err := json.Marshal(&Goal{ID: "g1", UserID: "u1", JoySources: JSONList{"music"}, AutoAdapt: true})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	require.Contains(t, m, "joy_sources")
	require.Contains(t, m, "auto_adapt")
	require.Contains(t, m, "beta_guide_seen")
	require.NotContains(t, m, "JoySources")
}
