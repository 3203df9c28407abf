package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/playbell/pkg/domain/model"
)

func TestStats(t *testing.T) {
	stats := model.Stats{
		"web1": {OK: 5, Changed: 2},
		"db1":  {OK: 3, Unreachable: 1},
		"app1": {OK: 1},
	}

	t.Run("Hosts are sorted", func(t *testing.T) {
		hosts := stats.Hosts()
		gt.Equal(t, len(hosts), 3)
		gt.Equal(t, hosts[0], "app1")
		gt.Equal(t, hosts[1], "db1")
		gt.Equal(t, hosts[2], "web1")
	})

	t.Run("Rows follow host order", func(t *testing.T) {
		rows := stats.Rows()
		gt.Equal(t, len(rows), 3)
		gt.Equal(t, rows[1][0], "db1")
		gt.Equal(t, rows[1][1], "3")
		gt.Equal(t, rows[1][3], "1")
		gt.Equal(t, rows[2][0], "web1")
		gt.Equal(t, rows[2][2], "2")
	})

	t.Run("Summarize unknown host", func(t *testing.T) {
		gt.Equal(t, stats.Summarize("nope"), model.HostSummary{})
	})
}

func TestStatsStatus(t *testing.T) {
	testCases := []struct {
		name  string
		stats model.Stats
		want  model.RunStatus
		color string
	}{
		{
			name:  "all ok",
			stats: model.Stats{"web1": {OK: 5, Changed: 2}},
			want:  model.RunStatusSuccess,
			color: "green",
		},
		{
			name:  "unreachable",
			stats: model.Stats{"web1": {OK: 5}, "db1": {Unreachable: 1}},
			want:  model.RunStatusFailure,
			color: "red",
		},
		{
			name:  "failures",
			stats: model.Stats{"web1": {OK: 4, Failures: 1}},
			want:  model.RunStatusFailure,
			color: "red",
		},
		{
			name:  "empty",
			stats: model.Stats{},
			want:  model.RunStatusSuccess,
			color: "green",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status := tc.stats.Status()
			gt.Equal(t, status, tc.want)
			gt.Equal(t, status.Color(), tc.color)
		})
	}
}

func TestOutcome(t *testing.T) {
	ok := model.Delivered()
	gt.True(t, ok.Delivered())
	gt.NoError(t, ok.Reason())

	failed := model.Failed(errors.New("connection refused"))
	gt.False(t, failed.Delivered())
	gt.Error(t, failed.Reason())
}
