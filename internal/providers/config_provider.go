package providers

import (
	"fmt"
	"github.com/spf13/viper"
	"path/filepath"
	"profiled/internal/structures"
	"strings"
	"time"
)

const (
	defaultFetchTimeout = 10 * time.Second
	defaultCacheTTL     = 60 * time.Second
	defaultLang         = "en"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("storage.driver", "memory")
	v.SetDefault("history.fetchTimeout", defaultFetchTimeout)
	v.SetDefault("history.defaultLang", defaultLang)
	v.SetDefault("cache.ttl", defaultCacheTTL)

	v.BindEnv("logger.level", "PROFILED_LOG_LEVEL")
	v.BindEnv("storage.driver", "PROFILED_STORAGE_DRIVER")
	v.BindEnv("storage.path", "PROFILED_STORAGE_PATH")
	v.BindEnv("persistence.saveInterval", "PROFILED_SAVE_INTERVAL")
	v.BindEnv("cache.enabled", "PROFILED_CACHE_ENABLED")
	v.BindEnv("cache.size", "PROFILED_CACHE_SIZE")
	v.BindEnv("history.defaultLang", "PROFILED_DEFAULT_LANG")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "ProfileHistoryDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
