package config

import "fmt"

const minLineBytes = 64

type AppConfig struct {
	Server ServerConfig
	Log    LogConfig
}

func LoadApp() (AppConfig, error) {
	logCfg, err := LoadLog()
	if err != nil {
		return AppConfig{}, err
	}
	serverCfg, err := LoadServer()
	if err != nil {
		return AppConfig{}, err
	}
	if serverCfg.OutboundQueueSize < 1 {
		return AppConfig{}, fmt.Errorf("OUTBOUND_QUEUE_SIZE must be positive, got %d", serverCfg.OutboundQueueSize)
	}
	if serverCfg.MaxLineBytes < minLineBytes {
		return AppConfig{}, fmt.Errorf("MAX_LINE_BYTES must be at least %d, got %d", minLineBytes, serverCfg.MaxLineBytes)
	}
	return AppConfig{
		Server: serverCfg,
		Log:    logCfg,
	}, nil
}
