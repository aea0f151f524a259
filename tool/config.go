package tool

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/moyoez/filestation-go/types"
)

var (
	ConfigPath    = "config.yaml" // be aware that it can be changed, default to ./config.yaml
	CurrentConfig types.AppConfig
)

func DefaultConfig() types.AppConfig {
	return types.AppConfig{
		Server:             "http://127.0.0.1:8080",
		UploadPath:         "/upload",
		ListingPath:        "/",
		Expiration:         "24", // the server falls back to 24 hours as well
		FinalizeDelayMs:    800,
		ProgressIntervalMs: 100,
		MaxConcurrent:      0,
		ControlPort:        53318,
		NotifyWS:           true,
		HistoryTTLMinutes:  60,
	}
}

func LoadConfig(path string) (types.AppConfig, error) {
	if path == "" {
		path = ConfigPath
	}
	ConfigPath = path

	cfg := DefaultConfig()

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if writeErr := writeConfig(path, cfg); writeErr != nil {
				return cfg, fmt.Errorf("config file not found, and failed to generate default config: %v", writeErr)
			}
			DefaultLogger.Infof("Created new config file at %s", path)
			CurrentConfig = cfg
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %v", err)
	}
	if info.IsDir() {
		return cfg, fmt.Errorf("config file path is a directory: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %v", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %v", err)
	}
	if cfg.Server == "" {
		return cfg, fmt.Errorf("config file %s: server must not be empty", path)
	}
	if cfg.FinalizeDelayMs < 0 {
		DefaultLogger.Warnf("Negative finalizeDelayMs %d, using 0", cfg.FinalizeDelayMs)
		cfg.FinalizeDelayMs = 0
	}

	CurrentConfig = cfg
	return cfg, nil
}

// ApplyFlagOverrides merges CLI overrides into cfg.
func ApplyFlagOverrides(cfg *types.AppConfig, flags types.Config) {
	if flags.UseServer != "" {
		cfg.Server = flags.UseServer
	}
	if flags.UseExpiration != "" {
		cfg.Expiration = flags.UseExpiration
	}
	if flags.UseMaxConcurrent >= 0 {
		cfg.MaxConcurrent = flags.UseMaxConcurrent
	}
	if flags.UseFinalizeDelay >= 0 {
		cfg.FinalizeDelayMs = flags.UseFinalizeDelay
	}
	if flags.UseControlPort > 0 {
		cfg.ControlPort = flags.UseControlPort
	}
}

func writeConfig(path string, cfg types.AppConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func GetCurrentConfig() *types.AppConfig {
	return &CurrentConfig
}

func Milliseconds(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
