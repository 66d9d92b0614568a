package core

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

const (
	// BaseDirName is the config directory under the user's home.
	BaseDirName    = ".config/americano"
	ConfigFileName = "config.hcl"

	// DefaultInterval is how often the target is checked when neither
	// the config file nor the command line says otherwise.
	DefaultInterval = 60 * time.Second
)

// Config is the global configuration instance
var Config *Configuration

// Configuration represents the complete americano configuration
type Configuration struct {
	ConfigPath   string        // Directory containing the config file
	Verbose      int           // Verbosity level
	Interval     time.Duration // Delay between liveness checks
	DisplaySleep bool          // Keep the display awake too
}

// HCL parsing structs

type hclConfig struct {
	Verbose *int        `hcl:"verbose,optional"`
	Monitor *hclMonitor `hcl:"monitor,block"`
	Inhibit *hclInhibit `hcl:"inhibit,block"`
}

type hclMonitor struct {
	Interval string `hcl:"interval,optional"`
}

type hclInhibit struct {
	DisplaySleep *bool `hcl:"display_sleep,optional"`
}

// GetDefaultConfig returns a Configuration with default values
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Interval: DefaultInterval,
	}
}

// LoadConfig loads the HCL configuration file from dir and returns a
// clean Configuration struct. A missing file is not an error; defaults
// apply.
func LoadConfig(dir string) (*Configuration, error) {
	cfg := GetDefaultConfig()
	cfg.ConfigPath = dir

	filename := filepath.Join(dir, ConfigFileName)
	if !ConfigExists(filename) {
		return cfg, nil
	}

	var hclCfg hclConfig
	if err := hclsimple.DecodeFile(filename, nil, &hclCfg); err != nil {
		return nil, fmt.Errorf("failed to parse HCL config: %w", err)
	}

	if hclCfg.Verbose != nil {
		cfg.Verbose = *hclCfg.Verbose
	}
	if hclCfg.Monitor != nil && hclCfg.Monitor.Interval != "" {
		interval, err := time.ParseDuration(hclCfg.Monitor.Interval)
		if err != nil {
			return nil, fmt.Errorf("invalid monitor.interval in %s: %w", filename, err)
		}
		if interval <= 0 {
			return nil, fmt.Errorf("monitor.interval in %s must be positive, got %q", filename, hclCfg.Monitor.Interval)
		}
		cfg.Interval = interval
	}
	if hclCfg.Inhibit != nil && hclCfg.Inhibit.DisplaySleep != nil {
		cfg.DisplaySleep = *hclCfg.Inhibit.DisplaySleep
	}

	return cfg, nil
}

// InitializeConfig loads the configuration for this run and installs
// it as the global Config. On first run the config directory and a
// commented starter file are created so there is something to edit.
func InitializeConfig(configPath string) error {
	if err := ensureStarterConfig(configPath); err != nil {
		return err
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}
	Config = cfg
	return nil
}

const starterConfig = `# americano configuration

# verbose = 0

# monitor {
#   interval = "60s"
# }

# inhibit {
#   display_sleep = false
# }
`

func ensureStarterConfig(dir string) error {
	filename := filepath.Join(dir, ConfigFileName)
	if ConfigExists(filename) {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config path: %w", err)
	}
	if err := os.WriteFile(filename, []byte(starterConfig), 0o644); err != nil {
		return fmt.Errorf("writing starter config: %w", err)
	}
	return nil
}

// ConfigExists checks if a config file exists
func ConfigExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
