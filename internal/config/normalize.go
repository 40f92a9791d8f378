package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTokenize()
	c.normalizeSelection()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	envFallback(&c.Paths.InputRoot, "JUDGEBOOT_INPUT_ROOT")
	envFallback(&c.Paths.OutputRoot, "JUDGEBOOT_OUTPUT_ROOT")
	envFallback(&c.Paths.VocabularyFile, "JUDGEBOOT_VOCABULARY")

	if strings.TrimSpace(c.Paths.OutputRoot) == "" {
		c.Paths.OutputRoot = defaultOutputRoot
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}

	var err error
	if c.Paths.InputRoot, err = expandPath(strings.TrimSpace(c.Paths.InputRoot)); err != nil {
		return fmt.Errorf("paths.input_root: %w", err)
	}
	if c.Paths.OutputRoot, err = expandPath(strings.TrimSpace(c.Paths.OutputRoot)); err != nil {
		return fmt.Errorf("paths.output_root: %w", err)
	}
	if c.Paths.VocabularyFile, err = expandPath(strings.TrimSpace(c.Paths.VocabularyFile)); err != nil {
		return fmt.Errorf("paths.vocabulary_file: %w", err)
	}
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

// envFallback fills an unset field from the environment.
func envFallback(field *string, key string) {
	if strings.TrimSpace(*field) != "" {
		return
	}
	if value, ok := os.LookupEnv(key); ok {
		*field = strings.TrimSpace(value)
	}
}

func (c *Config) normalizeTokenize() {
	words := make([]string, 0, len(c.Tokenize.StopWords))
	seen := make(map[string]struct{}, len(c.Tokenize.StopWords))
	for _, word := range c.Tokenize.StopWords {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		words = append(words, word)
	}
	c.Tokenize.StopWords = words
}

func (c *Config) normalizeSelection() {
	judges := make([]string, 0, len(c.Selection.Judges))
	for _, name := range c.Selection.Judges {
		if name = strings.TrimSpace(name); name != "" {
			judges = append(judges, name)
		}
	}
	c.Selection.Judges = judges
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
