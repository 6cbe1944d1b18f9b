package replay_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/stacklok/viewport-sync/internal/config"
	"github.com/stacklok/viewport-sync/internal/replay"
	"github.com/stacklok/viewport-sync/internal/telemetry"
)

// axialConfig links three series of 10, 10 and 6 images in one group
func axialConfig(steps ...config.StepConfig) *config.Config {
	return &config.Config{
		Loader: config.LoaderConfig{
			MaxTries:        2,
			InitialInterval: "1ms",
		},
		Scenario: config.ScenarioConfig{
			Name: "axial",
			Viewports: []config.ViewportConfig{
				{ID: "a", Series: &config.SeriesConfig{Count: 10, Spacing: 2.5}},
				{ID: "b", Series: &config.SeriesConfig{Count: 10, Spacing: 2.5}},
				{ID: "c", Series: &config.SeriesConfig{Count: 6, Spacing: 5}},
			},
			Groups: []config.GroupConfig{
				{Name: "axial", Both: []string{"a", "b", "c"}},
			},
			Steps: steps,
		},
	}
}

func scroll(vp string, delta int) config.StepConfig {
	return config.StepConfig{Action: config.ActionScroll, Viewport: vp, Delta: delta}
}

func assertViewport(t *testing.T, report *replay.Report, id string, index int, imageID string) {
	t.Helper()
	vp, ok := report.Viewport(id)
	require.True(t, ok, "viewport %s missing from report", id)
	assert.Equal(t, index, vp.Index, "index of %s", id)
	assert.Equal(t, imageID, vp.ImageID, "image of %s", id)
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		steps  []config.StepConfig
		verify func(t *testing.T, report *replay.Report)
	}{
		{
			name: "no steps keeps initial positions",
			verify: func(t *testing.T, report *replay.Report) {
				t.Helper()
				assertViewport(t, report, "a", 0, "a-0")
				assertViewport(t, report, "b", 0, "b-0")
				assertViewport(t, report, "c", 0, "c-0")

				group, ok := report.Group("axial")
				require.True(t, ok)
				assert.True(t, group.Enabled)
				assert.Equal(t, []string{"a", "b", "c"}, group.Sources)
				assert.Equal(t, []string{"a", "b", "c"}, group.Targets)
				assert.Equal(t, 6, group.Distances)
			},
		},
		{
			name:  "scroll propagates with registration offsets",
			steps: []config.StepConfig{scroll("a", 5)},
			verify: func(t *testing.T, report *replay.Report) {
				t.Helper()
				assertViewport(t, report, "a", 5, "a-5")
				assertViewport(t, report, "b", 6, "b-6")
				assertViewport(t, report, "c", 5, "c-5")
				assert.Empty(t, report.Failures)
			},
		},
		{
			name: "jump propagates",
			steps: []config.StepConfig{
				{Action: config.ActionJump, Viewport: "b", Index: 3},
			},
			verify: func(t *testing.T, report *replay.Report) {
				t.Helper()
				assertViewport(t, report, "a", 2, "a-2")
				assertViewport(t, report, "b", 3, "b-3")
				assertViewport(t, report, "c", 4, "c-4")
			},
		},
		{
			name: "failed load leaves target untouched",
			steps: []config.StepConfig{
				{Action: config.ActionFail, Image: "c-5", Error: "corrupt"},
				scroll("a", 5),
			},
			verify: func(t *testing.T, report *replay.Report) {
				t.Helper()
				assertViewport(t, report, "b", 6, "b-6")
				assertViewport(t, report, "c", 0, "c-0")

				require.Len(t, report.Failures, 1)
				assert.Equal(t, "c", report.Failures[0].Viewport)
				assert.Equal(t, "c-5", report.Failures[0].ImageID)
				assert.Contains(t, report.Failures[0].Error, "corrupt")
			},
		},
		{
			name: "disabled synchronizer does not propagate until enabled",
			steps: []config.StepConfig{
				{Action: config.ActionDisableSync, Group: "axial"},
				scroll("a", 2),
				{Action: config.ActionEnable, Group: "axial"},
				scroll("a", 1),
			},
			verify: func(t *testing.T, report *replay.Report) {
				t.Helper()
				assertViewport(t, report, "a", 3, "a-3")
				assertViewport(t, report, "b", 4, "b-4")
				assertViewport(t, report, "c", 5, "c-5")

				group, _ := report.Group("axial")
				assert.True(t, group.Enabled)
			},
		},
		{
			name: "removed viewport stops following",
			steps: []config.StepConfig{
				{Action: config.ActionRemove, Viewport: "b", Group: "axial"},
				scroll("a", 4),
			},
			verify: func(t *testing.T, report *replay.Report) {
				t.Helper()
				assertViewport(t, report, "b", 0, "b-0")
				assertViewport(t, report, "c", 5, "c-5")

				group, _ := report.Group("axial")
				assert.Equal(t, []string{"a", "c"}, group.Sources)
				assert.Equal(t, []string{"a", "c"}, group.Targets)
				assert.Equal(t, 2, group.Distances)
			},
		},
		{
			name: "disabled viewport leaves every group",
			steps: []config.StepConfig{
				{Action: config.ActionDisable, Viewport: "c"},
				scroll("a", 1),
			},
			verify: func(t *testing.T, report *replay.Report) {
				t.Helper()
				vp, _ := report.Viewport("c")
				assert.False(t, vp.Enabled)
				assert.Empty(t, vp.ImageID)
				assertViewport(t, report, "b", 2, "b-2")

				group, _ := report.Group("axial")
				assert.Equal(t, []string{"a", "b"}, group.Sources)
				assert.Equal(t, []string{"a", "b"}, group.Targets)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			report, err := replay.NewRunner(axialConfig(tt.steps...)).Run(context.Background())
			require.NoError(t, err)
			require.NotNil(t, report)

			assert.NotEmpty(t, report.RunID)
			assert.Equal(t, "axial", report.Scenario)
			assert.Equal(t, len(tt.steps), report.Steps)
			tt.verify(t, report)
		})
	}
}

func TestRunner_Run_NewImageTrigger(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Loader: config.LoaderConfig{InitialInterval: "1ms"},
		Scenario: config.ScenarioConfig{
			Viewports: []config.ViewportConfig{
				{ID: "a", Series: &config.SeriesConfig{Count: 5}},
				{ID: "b", Series: &config.SeriesConfig{Count: 5}},
			},
			Groups: []config.GroupConfig{
				{Name: "display", Events: "viewport:newimage", Sources: []string{"a"}, Targets: []string{"b"}},
			},
			Steps: []config.StepConfig{scroll("a", 2)},
		},
	}

	report, err := replay.NewRunner(cfg).Run(context.Background())
	require.NoError(t, err)

	assertViewport(t, report, "a", 2, "a-2")
	assertViewport(t, report, "b", 2, "b-2")

	b, _ := report.Viewport("b")
	assert.Equal(t, 1, b.Displays)
}

func TestRunner_Run_ChainedGroups(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		latency string
	}{
		{name: "immediate loads"},
		{name: "slow loads", latency: "5ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// The target of the first group is the source of the second one,
			// which only fires once the first group's load displays in b
			cfg := &config.Config{
				Loader: config.LoaderConfig{InitialInterval: "1ms", Latency: tt.latency},
				Scenario: config.ScenarioConfig{
					Viewports: []config.ViewportConfig{
						{ID: "a", Series: &config.SeriesConfig{Count: 8}},
						{ID: "b", Series: &config.SeriesConfig{Count: 8}},
						{ID: "c", Series: &config.SeriesConfig{Count: 8}},
					},
					Groups: []config.GroupConfig{
						{Name: "scroll", Events: "stack:scroll", Sources: []string{"a"}, Targets: []string{"b"}},
						{Name: "follow", Events: "viewport:newimage", Sources: []string{"b"}, Targets: []string{"c"}},
					},
					Steps: []config.StepConfig{scroll("a", 3), scroll("a", 2)},
				},
			}

			report, err := replay.NewRunner(cfg).Run(context.Background())
			require.NoError(t, err)

			assertViewport(t, report, "a", 5, "a-5")
			assertViewport(t, report, "b", 5, "b-5")
			assertViewport(t, report, "c", 5, "c-5")

			c, _ := report.Viewport("c")
			assert.Equal(t, 2, c.Displays)
			assert.Empty(t, report.Failures)
		})
	}
}

func TestRunner_Run_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		step    config.StepConfig
		wantErr string
	}{
		{
			name:    "unknown action",
			step:    config.StepConfig{Action: "zoom", Viewport: "a"},
			wantErr: "step[0] (zoom): unknown action 'zoom'",
		},
		{
			name:    "scroll without stack",
			step:    scroll("missing", 1),
			wantErr: "viewport has no stack",
		},
		{
			name:    "enable unknown group",
			step:    config.StepConfig{Action: config.ActionEnable, Group: "sagittal"},
			wantErr: "unknown group 'sagittal'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			report, err := replay.NewRunner(axialConfig(tt.step)).Run(context.Background())
			require.Error(t, err)
			assert.Nil(t, report)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRunner_Run_RecordsMetrics(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	metrics, err := telemetry.NewSyncMetrics(mp)
	require.NoError(t, err)

	_, err = replay.NewRunner(axialConfig(scroll("a", 1)), replay.WithMetrics(metrics)).Run(context.Background())
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	// Only the scroll round reaches targets, rounds fired while the session
	// is torn down have no pairs
	var fanouts int64
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != "viewport_sync_fanouts_total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				if pairs, ok := dp.Attributes.Value("pairs"); ok && pairs.AsInt64() == 3 {
					fanouts += dp.Value
				}
			}
		}
	}
	assert.Equal(t, int64(1), fanouts)
}
