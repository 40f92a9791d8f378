package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTokenize(); err != nil {
		return err
	}
	if err := c.validateBootstrap(); err != nil {
		return err
	}
	if c.Selection.Skip < 0 {
		return errors.New("selection.skip must not be negative")
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.InputRoot == "" {
		return missingSetting("paths.input_root", "JUDGEBOOT_INPUT_ROOT")
	}
	if c.Paths.VocabularyFile == "" {
		return missingSetting("paths.vocabulary_file", "JUDGEBOOT_VOCABULARY")
	}
	if c.Paths.OutputRoot == c.Paths.InputRoot {
		return errors.New("paths.output_root must differ from paths.input_root")
	}
	return nil
}

func missingSetting(key, env string) error {
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = "~/.config/judgeboot/config.toml"
	}
	return fmt.Errorf("%s is required. Set %s env var or edit %s (create with 'judgeboot config init')", key, env, defaultPath)
}

func (c *Config) validateTokenize() error {
	if c.Tokenize.SentenceDelimiter == "" {
		return errors.New("tokenize.sentence_delimiter must not be empty")
	}
	return nil
}

func (c *Config) validateBootstrap() error {
	if c.Bootstrap.Samples < 1 {
		return errors.New("bootstrap.samples must be at least 1")
	}
	pattern := c.Bootstrap.FilePattern
	if strings.Count(pattern, "%d") != 1 || strings.Count(pattern, "%") != 1 {
		return fmt.Errorf("bootstrap.file_pattern %q must contain exactly one %%d verb", pattern)
	}
	if strings.ContainsAny(pattern, `/\`) {
		return fmt.Errorf("bootstrap.file_pattern %q must be a file name, not a path", pattern)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
