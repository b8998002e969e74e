package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Rows              int     `yaml:"rows"`
	Columns           int     `yaml:"columns"`
	MaxImageWidth     float64 `yaml:"max_image_width"`
	MaxImageHeight    float64 `yaml:"max_image_height"`
	AnimationDuration float64 `yaml:"animation_duration"`
	SolveRandom       bool    `yaml:"solve_random"`
	HintsEnabled      bool    `yaml:"hints"`
	ScaleMultiplier   float64 `yaml:"scale_multiplier"`
	FrameRate         int     `yaml:"frame_rate"`
	PlacementAttempts int     `yaml:"placement_attempts"`
	Seed              uint64  `yaml:"seed"`
	Sound             bool    `yaml:"sound"`
	ExportDirectory   string  `yaml:"export_directory"`
	LogFile           string  `yaml:"log_file"`
}

func defaultConfig() Config {
	return Config{
		Rows:              defaultRows,
		Columns:           defaultColumns,
		MaxImageWidth:     defaultMaxImageWidth,
		MaxImageHeight:    defaultMaxImageHeight,
		AnimationDuration: defaultAnimationDuration,
		SolveRandom:       defaultSolveRandom,
		HintsEnabled:      defaultHintsEnabled,
		ScaleMultiplier:   defaultScaleMultiplier,
		FrameRate:         defaultFrameRate,
		PlacementAttempts: defaultPlacementAttempts,
	}
}

// loadConfig returns the defaults overlaid with ~/.jigsawrc, when present.
func loadConfig() *Config {
	config := defaultConfig()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return &config
	}

	file, err := os.Open(filepath.Join(homeDir, ".jigsawrc"))
	if err != nil {
		return &config
	}
	defer file.Close()

	if err := config.parseRC(file, homeDir); err != nil {
		log.WithError(err).Warn("ignoring ~/.jigsawrc")
	}
	return &config
}

// LoadFile overlays the config file at path. Files ending in .yaml or .yml
// are YAML; anything else uses the key=value format of ~/.jigsawrc.
func (c *Config) LoadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(file).Decode(c); err != nil && err != io.EOF {
			return fmt.Errorf("decode %s: %w", path, err)
		}
		return nil
	default:
		homeDir, _ := os.UserHomeDir()
		return c.parseRC(file, homeDir)
	}
}

func (c *Config) parseRC(r io.Reader, homeDir string) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		var err error
		switch strings.ToLower(key) {
		case "rows":
			c.Rows, err = strconv.Atoi(value)
		case "columns", "cols":
			c.Columns, err = strconv.Atoi(value)
		case "maximagewidth", "max_image_width":
			c.MaxImageWidth, err = strconv.ParseFloat(value, 64)
		case "maximageheight", "max_image_height":
			c.MaxImageHeight, err = strconv.ParseFloat(value, 64)
		case "animationduration", "animation_duration", "duration":
			c.AnimationDuration, err = strconv.ParseFloat(value, 64)
		case "solverandom", "solve_random":
			c.SolveRandom = strings.ToLower(value) == "true"
		case "hints", "hintsenabled", "hints_enabled":
			c.HintsEnabled = strings.ToLower(value) == "true"
		case "scale", "scalemultiplier", "scale_multiplier":
			c.ScaleMultiplier, err = strconv.ParseFloat(value, 64)
		case "framerate", "frame_rate", "fps":
			c.FrameRate, err = strconv.Atoi(value)
		case "placementattempts", "placement_attempts":
			c.PlacementAttempts, err = strconv.Atoi(value)
		case "seed":
			c.Seed, err = strconv.ParseUint(value, 10, 64)
		case "sound":
			c.Sound = strings.ToLower(value) == "true"
		case "exportdirectory", "export_directory", "exportdir":
			c.ExportDirectory = expandPath(value, homeDir)
		case "logfile", "log_file", "log":
			c.LogFile = expandPath(value, homeDir)
		}
		if err != nil {
			return fmt.Errorf("line %d: %s: %w", lineNo, key, err)
		}
	}
	return scanner.Err()
}

func expandPath(value, homeDir string) string {
	if strings.HasPrefix(value, "~") && homeDir != "" {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

// Validate rejects configurations that would make the grid or the
// placement geometry undefined. An animation duration below the minimum
// is raised to it.
func (c *Config) Validate() error {
	if c.Rows <= 0 || c.Columns <= 0 {
		return fmt.Errorf("%w: rows=%d columns=%d", ErrInvalidGrid, c.Rows, c.Columns)
	}
	if c.MaxImageWidth <= 0 || c.MaxImageWidth > 100 {
		return fmt.Errorf("max image width %.1f%% out of range (0,100]", c.MaxImageWidth)
	}
	if c.MaxImageHeight <= 0 || c.MaxImageHeight > 100 {
		return fmt.Errorf("max image height %.1f%% out of range (0,100]", c.MaxImageHeight)
	}
	if c.ScaleMultiplier <= 0 {
		return fmt.Errorf("scale multiplier %.2f must be positive", c.ScaleMultiplier)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("frame rate %d must be positive", c.FrameRate)
	}
	if c.AnimationDuration < minAnimationDuration {
		c.AnimationDuration = minAnimationDuration
	}
	return nil
}

func (c *Config) GetExportPath(filename string) (string, error) {
	if c.ExportDirectory == "" {
		return filename, nil
	}
	if err := os.MkdirAll(c.ExportDirectory, 0755); err != nil {
		return "", fmt.Errorf("export directory: %w", err)
	}
	return filepath.Join(c.ExportDirectory, filename), nil
}
