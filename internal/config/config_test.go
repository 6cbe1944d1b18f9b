package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/viewport-sync/internal/telemetry"
	"github.com/stacklok/viewport-sync/internal/versions"
)

const validScenario = `
scenario:
  name: linked-axial
  viewports:
    - id: a
      series:
        count: 10
        spacing: 2.5
    - id: b
      currentIndex: 1
      images:
        - id: b-0
          position: [0, 0, 0]
        - id: b-1
          position: [0, 0, 3]
  groups:
    - name: axial
      both: [a, b]
  steps:
    - action: scroll
      viewport: a
      delta: 2
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		yamlContent string
		check       func(t *testing.T, cfg *Config)
		wantErr     string
	}{
		{
			name:        "valid_scenario",
			yamlContent: validScenario,
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "linked-axial", cfg.Scenario.Name)
				require.Len(t, cfg.Scenario.Viewports, 2)
				assert.Equal(t, 10, cfg.Scenario.Viewports[0].Series.Count)
				assert.Equal(t, []string{"a", "b"}, cfg.Scenario.Groups[0].Both)
				assert.Equal(t, StepConfig{Action: ActionScroll, Viewport: "a", Delta: 2}, cfg.Scenario.Steps[0])
				assert.Equal(t, DefaultLogLevel, cfg.GetLogLevel())
				assert.Nil(t, cfg.Telemetry)
			},
		},
		{
			name: "full_config",
			yamlContent: `
logging:
  level: debug
  development: true
synchronizer:
  events: "stack:scroll viewport:newimage"
loader:
  maxTries: 5
  initialInterval: 10ms
  latency: 2ms
telemetry:
  enabled: true
  serviceName: viewer
  tracing:
    enabled: true
    sampling: 0.25
` + validScenario,
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "debug", cfg.GetLogLevel())
				assert.True(t, cfg.Logging.Development)
				assert.Equal(t, "stack:scroll viewport:newimage", cfg.GetEvents(&cfg.Scenario.Groups[0]))
				assert.Equal(t, 5, cfg.Loader.GetMaxTries())
				assert.Equal(t, 10*time.Millisecond, cfg.Loader.GetInitialInterval())
				assert.Equal(t, 2*time.Millisecond, cfg.Loader.GetLatency())
				require.NotNil(t, cfg.Telemetry)
				assert.Equal(t, "viewer", cfg.Telemetry.GetServiceName())
				assert.InDelta(t, 0.25, cfg.Telemetry.Tracing.GetSampling(), 0)
			},
		},
		{
			name:        "invalid_yaml",
			yamlContent: "scenario: [",
			wantErr:     "failed to parse YAML config",
		},
		{
			name: "invalid_duration",
			yamlContent: `
loader:
  latency: soon
` + validScenario,
			wantErr: "loader.latency must be a valid duration",
		},
		{
			name: "invalid_telemetry",
			yamlContent: `
telemetry:
  enabled: true
  tracing:
    enabled: true
    sampling: 2
` + validScenario,
			wantErr: "telemetry:",
		},
		{
			name: "invalid_min_version",
			yamlContent: `
scenario:
  minVersion: "next"
  viewports:
    - id: a
      series: {count: 1}
  groups:
    - name: g
      both: [a]
`,
			wantErr: "scenario.minVersion must be a semantic version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := LoadConfig(WithConfigPath(writeConfig(t, tt.yamlContent)))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfig_PathErrors(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig()
	assert.EqualError(t, err, "path is required")

	_, err = LoadConfig(WithConfigPath(""))
	assert.EqualError(t, err, "path is required")

	_, err = LoadConfig(WithConfigPath(filepath.Join(t.TempDir(), "missing.yaml")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to evaluate symlinks")
}

//nolint:paralleltest // Modifies environment variables
func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("VIEWPORT_SYNC_LOGGING_LEVEL", "warn")
	t.Setenv("VIEWPORT_SYNC_LOADER_MAXTRIES", "7")
	t.Setenv("VIEWPORT_SYNC_TELEMETRY_ENABLED", "true")
	t.Setenv("VIEWPORT_SYNC_TELEMETRY_ENDPOINT", "collector:4318")

	cfg, err := LoadConfig(WithConfigPath(writeConfig(t, validScenario)))
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.GetLogLevel())
	assert.Equal(t, 7, cfg.Loader.GetMaxTries())
	require.NotNil(t, cfg.Telemetry)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "collector:4318", cfg.Telemetry.GetEndpoint())
}

func TestScenarioValidate(t *testing.T) {
	t.Parallel()

	series := &SeriesConfig{Count: 3}
	viewports := []ViewportConfig{{ID: "a", Series: series}, {ID: "b", Series: series}}
	groups := []GroupConfig{{Name: "g", Sources: []string{"a"}, Targets: []string{"b"}}}

	tests := []struct {
		name     string
		scenario ScenarioConfig
		wantErr  string
	}{
		{
			name:     "valid",
			scenario: ScenarioConfig{Viewports: viewports, Groups: groups},
		},
		{
			name:     "missing viewport id",
			scenario: ScenarioConfig{Viewports: []ViewportConfig{{Series: series}}},
			wantErr:  "viewport[0]: id is required",
		},
		{
			name:     "duplicate viewport",
			scenario: ScenarioConfig{Viewports: []ViewportConfig{{ID: "a", Series: series}, {ID: "a", Series: series}}},
			wantErr:  "viewport[1]: duplicate viewport id 'a'",
		},
		{
			name:     "no images",
			scenario: ScenarioConfig{Viewports: []ViewportConfig{{ID: "a"}}},
			wantErr:  "one of images or series must be specified",
		},
		{
			name: "images and series",
			scenario: ScenarioConfig{Viewports: []ViewportConfig{
				{ID: "a", Series: series, Images: []ImageConfig{{ID: "x"}}},
			}},
			wantErr: "only one of images or series can be specified",
		},
		{
			name: "bad position",
			scenario: ScenarioConfig{Viewports: []ViewportConfig{
				{ID: "a", Images: []ImageConfig{{ID: "x", Position: []float64{1, 2}}}},
			}},
			wantErr: "images[0].position must have 3 components",
		},
		{
			name:     "current index out of range",
			scenario: ScenarioConfig{Viewports: []ViewportConfig{{ID: "a", Series: series, CurrentIndex: 3}}},
			wantErr:  "currentIndex 3 is out of range",
		},
		{
			name: "group without target",
			scenario: ScenarioConfig{
				Viewports: viewports,
				Groups:    []GroupConfig{{Name: "g", Sources: []string{"a"}}},
			},
			wantErr: "group[0] (g): at least one target is required",
		},
		{
			name: "group with unknown viewport",
			scenario: ScenarioConfig{
				Viewports: viewports,
				Groups:    []GroupConfig{{Name: "g", Both: []string{"a", "z"}}},
			},
			wantErr: "unknown viewport 'z'",
		},
		{
			name: "step with unknown action",
			scenario: ScenarioConfig{
				Viewports: viewports, Groups: groups,
				Steps: []StepConfig{{Action: "zoom", Viewport: "a"}},
			},
			wantErr: "step[0]: unknown action 'zoom'",
		},
		{
			name: "scroll of unknown viewport",
			scenario: ScenarioConfig{
				Viewports: viewports, Groups: groups,
				Steps: []StepConfig{{Action: ActionScroll, Viewport: "z"}},
			},
			wantErr: "scroll requires a known viewport",
		},
		{
			name: "enable of unknown group",
			scenario: ScenarioConfig{
				Viewports: viewports, Groups: groups,
				Steps: []StepConfig{{Action: ActionEnable, Group: "nope"}},
			},
			wantErr: "enable requires a known group",
		},
		{
			name: "fail without image",
			scenario: ScenarioConfig{
				Viewports: viewports, Groups: groups,
				Steps: []StepConfig{{Action: ActionFail}},
			},
			wantErr: "fail requires an image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.scenario.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCheckMinVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		minVersion string
		current    string
		wantErr    string
	}{
		{name: "no requirement", current: "v0.1.0"},
		{name: "older requirement", minVersion: "0.1.0", current: "v0.2.0"},
		{name: "same version", minVersion: "0.2.0", current: "v0.2.0"},
		{name: "newer requirement", minVersion: "1.0.0", current: "v0.2.0", wantErr: "requires viewport-sync 1.0.0 or newer"},
		{name: "development build", minVersion: "1.0.0", current: "build-0123abcd"},
		{name: "invalid requirement", minVersion: "latest", current: "v0.2.0", wantErr: "must be a semantic version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := checkMinVersion(tt.minVersion, versions.VersionInfo{Version: tt.current})
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestViewportConfig_Stack(t *testing.T) {
	t.Parallel()

	vp := ViewportConfig{ID: "ct", Series: &SeriesConfig{Count: 3, Spacing: 1.5, Origin: []float64{10, 20, 30}}}
	assert.Equal(t, []string{"ct-0", "ct-1", "ct-2"}, vp.ImageIDs())
	assert.Equal(t, [][]float64{{10, 20, 30}, {10, 20, 31.5}, {10, 20, 33}}, vp.Positions())

	explicit := ViewportConfig{ID: "mr", Images: []ImageConfig{{ID: "x", Position: []float64{1, 2, 3}}, {ID: "y"}}}
	assert.Equal(t, []string{"x", "y"}, explicit.ImageIDs())
	assert.Equal(t, [][]float64{{1, 2, 3}, nil}, explicit.Positions())
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	assert.Equal(t, DefaultTriggerEvents, cfg.GetEvents(nil))
	assert.Equal(t, DefaultTriggerEvents, cfg.GetEvents(&GroupConfig{Events: "  "}))
	assert.Equal(t, DefaultMaxTries, cfg.Loader.GetMaxTries())
	assert.Equal(t, 100*time.Millisecond, cfg.Loader.GetInitialInterval())
	assert.Equal(t, time.Duration(0), cfg.Loader.GetLatency())

	cfg.Synchronizer.Events = "viewport:newimage"
	assert.Equal(t, "viewport:newimage", cfg.GetEvents(&GroupConfig{}))
	assert.Equal(t, "stack:scroll", cfg.GetEvents(&GroupConfig{Events: "stack:scroll"}))

	var tel *telemetry.Config
	assert.NoError(t, tel.Validate())
}
