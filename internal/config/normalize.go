package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeWeb()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StaticDir) == "" {
		c.Paths.StaticDir = defaultStaticDir
	}
	if c.Paths.StaticDir, err = expandPath(c.Paths.StaticDir); err != nil {
		return fmt.Errorf("paths.static_dir: %w", err)
	}
	if trimmed := strings.TrimSpace(c.Paths.TemplateDir); trimmed != "" {
		if c.Paths.TemplateDir, err = expandPath(trimmed); err != nil {
			return fmt.Errorf("paths.template_dir: %w", err)
		}
	} else {
		c.Paths.TemplateDir = ""
	}
	c.Paths.WebBind = strings.TrimSpace(c.Paths.WebBind)
	if c.Paths.WebBind == "" {
		c.Paths.WebBind = defaultWebBind
	}
	return nil
}

func (c *Config) normalizeWeb() {
	if c.Web.TailDefaultLines <= 0 {
		c.Web.TailDefaultLines = defaultTailDefaultLines
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
