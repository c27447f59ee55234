package pkgexec

import "github.com/crafted-tech/pkgexec/installer"

// Config holds the configuration for creating a new Executor.
type Config struct {
	Logger    *installer.Logger       // optional; nil disables logging
	Monitor   installer.MonitorConfig // hang monitor cadence
	Inspector installer.Inspector     // nil = native platform inspector
	Resolver  installer.Resolver      // nil = installer.VariableResolver
	Launcher  installer.Launcher      // nil = installer.ExecLauncher
	Variables map[string]string       // extra %NAME% placeholders for the default resolver
}

// Option is a function that configures an Executor.
type Option func(*Config)

// WithLogger sets the logger used by every component.
func WithLogger(log *installer.Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

// WithMonitor sets the hang monitor cadence. Zero fields keep their defaults.
func WithMonitor(cfg installer.MonitorConfig) Option {
	return func(c *Config) {
		c.Monitor = cfg
	}
}

// WithInspector replaces the process/window inspector used by the hang monitor.
func WithInspector(insp installer.Inspector) Option {
	return func(c *Config) {
		c.Inspector = insp
	}
}

// WithResolver replaces the command line resolver.
func WithResolver(r installer.Resolver) Option {
	return func(c *Config) {
		c.Resolver = r
	}
}

// WithLauncher replaces the process launcher.
func WithLauncher(l installer.Launcher) Option {
	return func(c *Config) {
		c.Launcher = l
	}
}

// WithVariables adds placeholder values for the default resolver, e.g.
// {"DriverStore": `C:\Windows\System32\DriverStore`}.
func WithVariables(vars map[string]string) Option {
	return func(c *Config) {
		if c.Variables == nil {
			c.Variables = make(map[string]string, len(vars))
		}
		for k, v := range vars {
			c.Variables[k] = v
		}
	}
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Monitor: installer.DefaultMonitorConfig(),
	}
}
