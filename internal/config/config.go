package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	perrors "github.com/zhubert/parley/internal/errors"
)

// Defaults applied to fields left empty in the config file.
const (
	DefaultTheme          = "dark-purple"
	DefaultTimeLayout     = "15:04"
	DefaultReadDateLayout = "02/01/06 15:04"
	DefaultPeerName       = "Ada"

	DefaultScrollSettleMs = 300
	DefaultMoveSettleMs   = 350

	// MaxSettleMs bounds the settle delays; longer waits make the list feel
	// stuck.
	MaxSettleMs = 5000
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Config holds the application configuration
type Config struct {
	Theme             string `json:"theme,omitempty"`               // UI theme name (e.g., "dark-purple", "nord")
	MineBubbleColor   string `json:"mine_bubble_color,omitempty"`   // Hex background of our bubbles, overrides the theme
	TheirsBubbleColor string `json:"theirs_bubble_color,omitempty"` // Hex background of their bubbles, overrides the theme

	TimeLayout     string `json:"time_layout,omitempty"`      // Go layout of the time label under bubbles
	ReadDateLayout string `json:"read_date_layout,omitempty"` // Go layout of the date in the read marker

	ScrollSettleMs int `json:"scroll_settle_ms,omitempty"` // Delay before scrolling after an insert
	MoveSettleMs   int `json:"move_settle_ms,omitempty"`   // Delay before reloading a committed row

	PeerName             string `json:"peer_name,omitempty"`             // Name of the other participant in the demo chat
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty"` // Desktop notifications on incoming messages
	Strict               bool   `json:"strict,omitempty"`                // Panic on data source contract violations

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".parley"), nil
}

// DefaultPath returns the path to the config file
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from the default path, or returns defaults if the
// file doesn't exist
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, perrors.ConfigLoadFailed("~/.parley", err)
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path, or returns defaults if the file doesn't
// exist. Save writes back to the same path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.ensureInitialized()
		return cfg, nil
	}
	if err != nil {
		return nil, perrors.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, perrors.ConfigLoadFailed(path, err)
	}

	// Defaults must be filled before Validate() since Validate() only reads
	cfg.ensureInitialized()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Defaults returns an in-memory config with every default applied. It has no
// path, so Save fails.
func Defaults() *Config {
	cfg := &Config{}
	cfg.ensureInitialized()
	return cfg
}

// ensureInitialized fills empty fields with defaults.
//
// Thread-safety: This method is NOT thread-safe and must only be called
// during single-threaded initialization (i.e., from LoadFrom() before the
// Config is shared across goroutines).
func (c *Config) ensureInitialized() {
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.TimeLayout == "" {
		c.TimeLayout = DefaultTimeLayout
	}
	if c.ReadDateLayout == "" {
		c.ReadDateLayout = DefaultReadDateLayout
	}
	if c.ScrollSettleMs == 0 {
		c.ScrollSettleMs = DefaultScrollSettleMs
	}
	if c.MoveSettleMs == 0 {
		c.MoveSettleMs = DefaultMoveSettleMs
	}
	if c.PeerName == "" {
		c.PeerName = DefaultPeerName
	}
}

// Validate checks that the config is internally consistent.
// This is a read-only operation - call ensureInitialized() first if needed.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for name, color := range map[string]string{
		"mine_bubble_color":   c.MineBubbleColor,
		"theirs_bubble_color": c.TheirsBubbleColor,
	} {
		if err := ValidateColor(color); err != nil {
			return perrors.ConfigInvalid(fmt.Sprintf("%s %v", name, err))
		}
	}

	for name, ms := range map[string]int{
		"scroll_settle_ms": c.ScrollSettleMs,
		"move_settle_ms":   c.MoveSettleMs,
	} {
		if ms < 0 || ms > MaxSettleMs {
			return perrors.ConfigInvalid(fmt.Sprintf("%s must be between 0 and %d, got %d", name, MaxSettleMs, ms))
		}
	}

	if c.TimeLayout == "" || c.ReadDateLayout == "" {
		return perrors.ConfigInvalid("time layouts must not be empty")
	}

	return nil
}

// ValidateColor checks a bubble color. Empty means the theme's color.
func ValidateColor(color string) error {
	if color != "" && !hexColor.MatchString(color) {
		return fmt.Errorf("must be a #RRGGBB color, got %q", color)
	}
	return nil
}

// ValidateLayout checks that a time layout contains at least one time field.
// Empty keeps the current layout.
func ValidateLayout(layout string) error {
	if layout == "" {
		return nil
	}
	// Every field differs from the reference time's
	probe := time.Date(2001, time.November, 30, 9, 7, 9, 0, time.UTC)
	if probe.Format(layout) == layout {
		return fmt.Errorf("layout %q has no time fields", layout)
	}
	return nil
}

// ParseSettleMs parses a settle delay in milliseconds.
func ParseSettleMs(s string) (int, error) {
	ms, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("must be a number of milliseconds")
	}
	if ms < 0 || ms > MaxSettleMs {
		return 0, fmt.Errorf("must be between 0 and %d", MaxSettleMs)
	}
	return ms, nil
}

// Path returns the file the config is saved to.
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// Save writes the config to disk. The file is replaced atomically so a crash
// never leaves a truncated config behind.
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.filePath == "" {
		return perrors.ConfigSaveFailed("", fmt.Errorf("config has no path"))
	}

	dir := filepath.Dir(c.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return perrors.ConfigSaveFailed(c.filePath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return perrors.ConfigSaveFailed(c.filePath, err)
	}
	if err := os.Rename(tmpName, c.filePath); err != nil {
		os.Remove(tmpName)
		return perrors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// GetTheme returns the UI theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the UI theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetBubbleColors returns the bubble color overrides; empty means the theme's
// color.
func (c *Config) GetBubbleColors() (mine, theirs string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.MineBubbleColor, c.TheirsBubbleColor
}

// SetBubbleColors sets the bubble color overrides.
func (c *Config) SetBubbleColors(mine, theirs string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.MineBubbleColor = mine
	c.TheirsBubbleColor = theirs
}

// GetTimeLayout returns the layout of the time label under bubbles
func (c *Config) GetTimeLayout() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.TimeLayout
}

// GetReadDateLayout returns the layout of the date in the read marker
func (c *Config) GetReadDateLayout() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ReadDateLayout
}

// SetLayouts sets the time and read date layouts. Empty values are left
// unchanged.
func (c *Config) SetLayouts(timeLayout, readDateLayout string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if timeLayout != "" {
		c.TimeLayout = timeLayout
	}
	if readDateLayout != "" {
		c.ReadDateLayout = readDateLayout
	}
}

// ScrollSettleDelay returns the delay before scrolling after an insert
func (c *Config) ScrollSettleDelay() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.ScrollSettleMs) * time.Millisecond
}

// MoveSettleDelay returns the delay before reloading a committed row
func (c *Config) MoveSettleDelay() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.MoveSettleMs) * time.Millisecond
}

// SetSettleDelays sets both settle delays in milliseconds
func (c *Config) SetSettleDelays(scrollMs, moveMs int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ScrollSettleMs = scrollMs
	c.MoveSettleMs = moveMs
}

// GetPeerName returns the name of the other participant
func (c *Config) GetPeerName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.PeerName
}

// SetPeerName sets the name of the other participant
func (c *Config) SetPeerName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.PeerName = name
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetStrict returns whether contract violations panic
func (c *Config) GetStrict() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Strict
}

// SetStrict sets whether contract violations panic
func (c *Config) SetStrict(strict bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Strict = strict
}
