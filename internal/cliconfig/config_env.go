package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (BITFRAME_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	if err := s.setIntFromString("workers", os.Getenv("BITFRAME_WORKERS"), &cfg.Workers); err != nil {
		return err
	}
	if err := s.setIntFromString("threshold", os.Getenv("BITFRAME_THRESHOLD"), &cfg.Threshold); err != nil {
		return err
	}
	s.setString("compression", os.Getenv("BITFRAME_COMPRESSION"), &cfg.Compression)
	s.setString("image-format", os.Getenv("BITFRAME_IMAGE_FORMAT"), &cfg.ImageFormat)
	s.setString("log-level", os.Getenv("BITFRAME_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-format", os.Getenv("BITFRAME_LOG_FORMAT"), &cfg.LogFormat)

	return s.setDuration("debounce", os.Getenv("BITFRAME_DEBOUNCE"), &cfg.Debounce)
}
