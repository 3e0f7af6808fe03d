package config

const (
	defaultWorkDir          = "~/.local/share/slaved/work"
	defaultLogDir           = "~/.local/share/slaved/logs"
	defaultStaticDir        = "~/.local/share/slaved/static"
	defaultWebBind          = "0.0.0.0:8081"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultTailDefaultLines = 50
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:   defaultWorkDir,
			LogDir:    defaultLogDir,
			StaticDir: defaultStaticDir,
			WebBind:   defaultWebBind,
		},
		Web: Web{
			DevMode:          false,
			TailDefaultLines: defaultTailDefaultLines,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
