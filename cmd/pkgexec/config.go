package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/crafted-tech/pkgexec/installer"
)

const (
	configBaseName   = "pkgexec"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	envPrefix = "PKGEXEC"

	monitorWarmUpKey   = "monitor.warmup"
	monitorIntervalKey = "monitor.interval"
	monitorTickKey     = "monitor.tick"

	logDirKey        = "log.dir"
	logLevelKey      = "log.level"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"
	logConsoleKey    = "log.console"

	varsKey = "vars"

	lockNameKey = "lock.name"

	defaultLogLevel      = "info"
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
	defaultLockName      = "pkgexec.install"
)

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	def := installer.DefaultMonitorConfig()
	viper.SetDefault(monitorWarmUpKey, def.WarmUp)
	viper.SetDefault(monitorIntervalKey, def.Interval)
	viper.SetDefault(monitorTickKey, def.Tick)

	viper.SetDefault(logDirKey, "")
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)
	viper.SetDefault(logConsoleKey, false)
	viper.SetDefault(lockNameKey, defaultLockName)
}

// loadConfig reads pkgexec.yaml if present. A missing file is not an error.
func loadConfig() error {
	if _, err := os.Stat(viper.ConfigFileUsed()); err != nil {
		return nil
	}
	return viper.ReadInConfig()
}

func monitorConfig() installer.MonitorConfig {
	return installer.MonitorConfig{
		WarmUp:   viper.GetDuration(monitorWarmUpKey),
		Interval: viper.GetDuration(monitorIntervalKey),
		Tick:     viper.GetDuration(monitorTickKey),
	}.Normalize()
}

func variables() map[string]string {
	return viper.GetStringMapString(varsKey)
}

func newLogger() (*installer.Logger, error) {
	opts := installer.LogOptions{
		Dir:        viper.GetString(logDirKey),
		MaxSizeMB:  viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAgeDays: viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
		Level:      installer.ParseLevel(viper.GetString(logLevelKey)),
	}
	if viper.GetBool(logConsoleKey) {
		opts.Console = os.Stderr
	}
	return installer.NewLogger(configBaseName, opts)
}
