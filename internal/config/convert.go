package config

func toFile(cfg Config) fileConfig {
	return fileConfig{
		MaxBodyBytes: cfg.MaxBodyBytes,
		DialTimeout:  cfg.DialTimeout.String(),
		IOTimeout:    cfg.IOTimeout.String(),
		LogLevel:     cfg.LogLevel,
		TrackerAddr:  cfg.TrackerAddr,
	}
}
