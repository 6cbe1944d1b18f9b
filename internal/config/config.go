// Package config provides configuration loading and management for viewport-sync.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/viewport-sync/internal/telemetry"
	"github.com/stacklok/viewport-sync/internal/versions"
)

// EnvPrefix is the prefix of environment variables overriding configuration keys,
// e.g. VIEWPORT_SYNC_LOGGING_LEVEL for logging.level
const EnvPrefix = "VIEWPORT_SYNC"

const (
	// DefaultLogLevel is used when logging.level is not set
	DefaultLogLevel = "info"

	// DefaultTriggerEvents is used by groups that do not list their own events
	DefaultTriggerEvents = "stack:scroll"

	// DefaultMaxTries is the default number of attempts per image load
	DefaultMaxTries = 3

	// DefaultInitialInterval is the default delay before the first load retry
	DefaultInitialInterval = "100ms"
)

// Step actions understood by the replay runner
const (
	ActionScroll      = "scroll"
	ActionJump        = "jump"
	ActionDisable     = "disable"
	ActionRemove      = "remove"
	ActionEnable      = "enable"
	ActionDisableSync = "disableSync"
	ActionFail        = "fail"
)

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration
type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// Resolve symlinks; this also cleans the path
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		if !filepath.IsAbs(realPath) {
			if !filepath.IsLocal(realPath) {
				return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
			}
		}

		cfg.path = realPath
		return nil
	}
}

// Config represents the root configuration structure
type Config struct {
	Logging      LoggingConfig      `yaml:"logging"`
	Synchronizer SynchronizerConfig `yaml:"synchronizer"`
	Loader       LoaderConfig       `yaml:"loader"`
	Telemetry    *telemetry.Config  `yaml:"telemetry,omitempty"`
	Scenario     ScenarioConfig     `yaml:"scenario"`
}

// LoggingConfig configures the process logger
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level,omitempty"`

	// Development switches to human readable console output
	Development bool `yaml:"development,omitempty"`
}

// SynchronizerConfig holds defaults applied to every synchronizer group
type SynchronizerConfig struct {
	// Events is the space separated list of trigger events
	Events string `yaml:"events,omitempty"`
}

// LoaderConfig configures image loading
type LoaderConfig struct {
	// MaxTries is the number of attempts per image, including the first one
	MaxTries int `yaml:"maxTries,omitempty"`

	// InitialInterval is the delay before the first retry
	InitialInterval string `yaml:"initialInterval,omitempty"`

	// Latency simulates fetch latency in the in-memory image store
	Latency string `yaml:"latency,omitempty"`
}

// ScenarioConfig describes a replay scenario
type ScenarioConfig struct {
	// Name labels the scenario in reports
	Name string `yaml:"name,omitempty"`

	// MinVersion is the minimum viewport-sync version able to replay the scenario
	MinVersion string `yaml:"minVersion,omitempty"`

	Viewports []ViewportConfig `yaml:"viewports"`
	Groups    []GroupConfig    `yaml:"groups"`
	Steps     []StepConfig     `yaml:"steps,omitempty"`
}

// ViewportConfig describes one viewport and its image stack
type ViewportConfig struct {
	ID string `yaml:"id"`

	// Images lists the stack explicitly
	Images []ImageConfig `yaml:"images,omitempty"`

	// Series generates the stack when Images is empty
	Series *SeriesConfig `yaml:"series,omitempty"`

	// CurrentIndex is the initially displayed stack position
	CurrentIndex int `yaml:"currentIndex,omitempty"`

	// PreventCache loads the stack's images without caching
	PreventCache bool `yaml:"preventCache,omitempty"`
}

// ImageConfig describes one image
type ImageConfig struct {
	ID string `yaml:"id"`

	// Position is the image position in patient space, three components
	Position []float64 `yaml:"position,omitempty"`
}

// SeriesConfig generates a stack of evenly spaced images along Z
type SeriesConfig struct {
	Count   int       `yaml:"count"`
	Spacing float64   `yaml:"spacing,omitempty"`
	Origin  []float64 `yaml:"origin,omitempty"`
}

// GroupConfig links viewports through one synchronizer
type GroupConfig struct {
	Name string `yaml:"name"`

	// Events overrides synchronizer.events for this group
	Events string `yaml:"events,omitempty"`

	Sources []string `yaml:"sources,omitempty"`
	Targets []string `yaml:"targets,omitempty"`

	// Both lists viewports acting as source and target
	Both []string `yaml:"both,omitempty"`

	// Disabled creates the synchronizer with fan-out turned off
	Disabled bool `yaml:"disabled,omitempty"`
}

// StepConfig is one scripted action of a scenario
type StepConfig struct {
	Action   string `yaml:"action"`
	Viewport string `yaml:"viewport,omitempty"`
	Group    string `yaml:"group,omitempty"`
	Delta    int    `yaml:"delta,omitempty"`
	Index    int    `yaml:"index,omitempty"`

	// Image and Error configure the fail action
	Image string `yaml:"image,omitempty"`
	Error string `yaml:"error,omitempty"`
}

// LoadConfig loads and parses configuration from a YAML file. Scalar settings
// may be overridden through VIEWPORT_SYNC_* environment variables.
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	if loaderCfg.path == "" {
		return nil, fmt.Errorf("path is required")
	}

	data, err := os.ReadFile(loaderCfg.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	applyEnvOverrides(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyEnvOverrides overrides scalar settings from the environment
func applyEnvOverrides(c *Config) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if v.IsSet("logging.level") {
		c.Logging.Level = v.GetString("logging.level")
	}
	if v.IsSet("synchronizer.events") {
		c.Synchronizer.Events = v.GetString("synchronizer.events")
	}
	if v.IsSet("loader.maxTries") {
		c.Loader.MaxTries = v.GetInt("loader.maxTries")
	}
	if v.IsSet("loader.latency") {
		c.Loader.Latency = v.GetString("loader.latency")
	}
	if v.IsSet("telemetry.enabled") {
		if c.Telemetry == nil {
			c.Telemetry = &telemetry.Config{}
		}
		c.Telemetry.Enabled = v.GetBool("telemetry.enabled")
	}
	if v.IsSet("telemetry.endpoint") && c.Telemetry != nil {
		c.Telemetry.Endpoint = v.GetString("telemetry.endpoint")
	}
}

// GetLogLevel returns the log level, using "info" if not specified
func (c *Config) GetLogLevel() string {
	if c.Logging.Level == "" {
		return DefaultLogLevel
	}
	return c.Logging.Level
}

// GetEvents returns the trigger events of group, falling back to the
// synchronizer defaults
func (c *Config) GetEvents(group *GroupConfig) string {
	if group != nil && strings.TrimSpace(group.Events) != "" {
		return group.Events
	}
	if strings.TrimSpace(c.Synchronizer.Events) != "" {
		return c.Synchronizer.Events
	}
	return DefaultTriggerEvents
}

// GetMaxTries returns the number of attempts per image load
func (l *LoaderConfig) GetMaxTries() int {
	if l.MaxTries <= 0 {
		return DefaultMaxTries
	}
	return l.MaxTries
}

// GetInitialInterval returns the delay before the first retry
func (l *LoaderConfig) GetInitialInterval() time.Duration {
	interval := l.InitialInterval
	if interval == "" {
		interval = DefaultInitialInterval
	}
	d, err := time.ParseDuration(interval)
	if err != nil {
		return 0
	}
	return d
}

// GetLatency returns the simulated fetch latency
func (l *LoaderConfig) GetLatency() time.Duration {
	if l.Latency == "" {
		return 0
	}
	d, err := time.ParseDuration(l.Latency)
	if err != nil {
		return 0
	}
	return d
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := validateLoader(&c.Loader); err != nil {
		return err
	}

	if err := c.Telemetry.Validate(); err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}

	return c.Scenario.validate()
}

func validateLoader(l *LoaderConfig) error {
	if l.MaxTries < 0 {
		return fmt.Errorf("loader.maxTries must not be negative")
	}
	for key, value := range map[string]string{
		"loader.initialInterval": l.InitialInterval,
		"loader.latency":         l.Latency,
	} {
		if value == "" {
			continue
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%s must be a valid duration (e.g., '100ms', '1s'): %w", key, err)
		}
		if d < 0 {
			return fmt.Errorf("%s must not be negative", key)
		}
	}
	return nil
}

// validate checks the scenario against the running version and its own references
func (s *ScenarioConfig) validate() error {
	if err := checkMinVersion(s.MinVersion, versions.GetVersionInfo()); err != nil {
		return err
	}

	viewports := make(map[string]bool, len(s.Viewports))
	for i := range s.Viewports {
		vp := &s.Viewports[i]
		if vp.ID == "" {
			return fmt.Errorf("viewport[%d]: id is required", i)
		}
		if viewports[vp.ID] {
			return fmt.Errorf("viewport[%d]: duplicate viewport id '%s'", i, vp.ID)
		}
		viewports[vp.ID] = true

		if err := validateViewport(vp, fmt.Sprintf("viewport[%d] (%s)", i, vp.ID)); err != nil {
			return err
		}
	}

	groups := make(map[string]bool, len(s.Groups))
	for i := range s.Groups {
		group := &s.Groups[i]
		if group.Name == "" {
			return fmt.Errorf("group[%d]: name is required", i)
		}
		if groups[group.Name] {
			return fmt.Errorf("group[%d]: duplicate group name '%s'", i, group.Name)
		}
		groups[group.Name] = true

		if err := validateGroup(group, viewports, fmt.Sprintf("group[%d] (%s)", i, group.Name)); err != nil {
			return err
		}
	}

	for i := range s.Steps {
		if err := validateStep(&s.Steps[i], viewports, groups, fmt.Sprintf("step[%d]", i)); err != nil {
			return err
		}
	}

	return nil
}

// checkMinVersion rejects scenarios requiring a newer release than current.
// Development builds replay any scenario.
func checkMinVersion(minVersion string, current versions.VersionInfo) error {
	if minVersion == "" {
		return nil
	}
	if _, err := semver.NewVersion(minVersion); err != nil {
		return fmt.Errorf("scenario.minVersion must be a semantic version: %w", err)
	}
	if current.IsRelease() && versions.IsNewerVersion(minVersion, current.Version) {
		return fmt.Errorf("scenario requires viewport-sync %s or newer, running %s", minVersion, current.Version)
	}
	return nil
}

func validateViewport(vp *ViewportConfig, prefix string) error {
	count := len(vp.Images)
	switch {
	case count > 0 && vp.Series != nil:
		return fmt.Errorf("%s: only one of images or series can be specified", prefix)
	case count == 0 && vp.Series == nil:
		return fmt.Errorf("%s: one of images or series must be specified", prefix)
	case vp.Series != nil:
		if vp.Series.Count <= 0 {
			return fmt.Errorf("%s: series.count must be positive", prefix)
		}
		if vp.Series.Origin != nil && len(vp.Series.Origin) != 3 {
			return fmt.Errorf("%s: series.origin must have 3 components", prefix)
		}
		count = vp.Series.Count
	}

	for j, img := range vp.Images {
		if img.ID == "" {
			return fmt.Errorf("%s: images[%d].id is required", prefix, j)
		}
		if img.Position != nil && len(img.Position) != 3 {
			return fmt.Errorf("%s: images[%d].position must have 3 components", prefix, j)
		}
	}

	if vp.CurrentIndex < 0 || vp.CurrentIndex >= count {
		return fmt.Errorf("%s: currentIndex %d is out of range [0, %d)", prefix, vp.CurrentIndex, count)
	}
	return nil
}

func validateGroup(group *GroupConfig, viewports map[string]bool, prefix string) error {
	if len(group.Sources)+len(group.Both) == 0 {
		return fmt.Errorf("%s: at least one source is required", prefix)
	}
	if len(group.Targets)+len(group.Both) == 0 {
		return fmt.Errorf("%s: at least one target is required", prefix)
	}
	for _, list := range [][]string{group.Sources, group.Targets, group.Both} {
		for _, id := range list {
			if !viewports[id] {
				return fmt.Errorf("%s: unknown viewport '%s'", prefix, id)
			}
		}
	}
	return nil
}

func validateStep(step *StepConfig, viewports, groups map[string]bool, prefix string) error {
	requireViewport := func() error {
		if !viewports[step.Viewport] {
			return fmt.Errorf("%s: %s requires a known viewport, got '%s'", prefix, step.Action, step.Viewport)
		}
		return nil
	}

	switch step.Action {
	case ActionScroll, ActionJump, ActionDisable:
		return requireViewport()
	case ActionRemove:
		if err := requireViewport(); err != nil {
			return err
		}
		if step.Group != "" && !groups[step.Group] {
			return fmt.Errorf("%s: unknown group '%s'", prefix, step.Group)
		}
		return nil
	case ActionEnable, ActionDisableSync:
		if !groups[step.Group] {
			return fmt.Errorf("%s: %s requires a known group, got '%s'", prefix, step.Action, step.Group)
		}
		return nil
	case ActionFail:
		if step.Image == "" {
			return fmt.Errorf("%s: fail requires an image", prefix)
		}
		return nil
	case "":
		return fmt.Errorf("%s: action is required", prefix)
	default:
		return fmt.Errorf("%s: unknown action '%s'", prefix, step.Action)
	}
}

// ImageIDs returns the image ids of the viewport's stack in order
func (vp *ViewportConfig) ImageIDs() []string {
	if len(vp.Images) > 0 {
		ids := make([]string, len(vp.Images))
		for i, img := range vp.Images {
			ids[i] = img.ID
		}
		return ids
	}
	if vp.Series == nil {
		return nil
	}
	ids := make([]string, vp.Series.Count)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s-%d", vp.ID, i)
	}
	return ids
}

// Positions returns the image position of every image of the viewport's stack,
// nil entries marking images without a position
func (vp *ViewportConfig) Positions() [][]float64 {
	if len(vp.Images) > 0 {
		positions := make([][]float64, len(vp.Images))
		for i, img := range vp.Images {
			positions[i] = img.Position
		}
		return positions
	}
	if vp.Series == nil {
		return nil
	}
	origin := vp.Series.Origin
	if origin == nil {
		origin = []float64{0, 0, 0}
	}
	positions := make([][]float64, vp.Series.Count)
	for i := range positions {
		positions[i] = []float64{origin[0], origin[1], origin[2] + float64(i)*vp.Series.Spacing}
	}
	return positions
}
