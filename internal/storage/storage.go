// Package storage persists the life configuration in the application
// preferences and moves it in and out of JSON and YAML files.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/lifeconfig"
	"gopkg.in/yaml.v3"
)

// Preferences is the subset of fyne.Preferences used to keep the
// configuration between runs.
type Preferences interface {
	String(key string) string
	SetString(key string, value string)
}

// Format is a file encoding for Import and Export.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// ErrUnknownFormat is returned for file names whose extension is neither
// JSON nor YAML.
var ErrUnknownFormat = errors.New(config.ErrUnknownExt)

// FormatOf picks the format from a file name extension.
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case config.ExtJSON:
		return FormatJSON, nil
	case config.ExtYAML, config.ExtYML:
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Load returns the stored configuration. It reports false when nothing is
// stored or the stored value does not validate; the caller then falls back to
// the sample configuration.
func Load(p Preferences) (lifeconfig.LifeConfig, bool) {
	if p == nil {
		return lifeconfig.LifeConfig{}, false
	}
	data := p.String(config.PrefLifeConfig)
	if data == "" {
		slog.Debug(config.MsgConfigDefault, config.LogKeyComponent, config.CompStorage)
		return lifeconfig.LifeConfig{}, false
	}

	cfg, err := lifeconfig.Parse([]byte(data))
	if err != nil {
		slog.Warn(config.MsgConfigInvalid,
			config.LogKeyComponent, config.CompStorage,
			config.LogKeyError, err)
		return lifeconfig.LifeConfig{}, false
	}

	slog.Debug(config.MsgConfigLoaded,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyPeriods, len(cfg.Periods),
		config.LogKeyMarkers, len(cfg.Dates))
	return cfg, true
}

// Save stores cfg in the versioned envelope. A configuration Load would
// reject is refused with lifeconfig.ErrTotalYears.
func Save(p Preferences, cfg lifeconfig.LifeConfig) error {
	if p == nil {
		return errors.New(config.ErrPrefsUnavailable)
	}
	if err := cfg.CheckWritable(); err != nil {
		return err
	}
	data, err := json.Marshal(lifeconfig.Stored(cfg))
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrConfigEncode, err)
	}
	p.SetString(config.PrefLifeConfig, string(data))

	slog.Debug(config.MsgConfigSaved,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeySizeBytes, len(data))
	return nil
}

// Import reads a configuration file. The format is chosen from name.
// Documents with the wrong shape yield lifeconfig.ErrInvalidConfig.
func Import(r io.Reader, name string) (lifeconfig.LifeConfig, error) {
	format, err := FormatOf(name)
	if err != nil {
		return lifeconfig.LifeConfig{}, err
	}

	data, err := io.ReadAll(io.LimitReader(r, config.MaxDecodedSize+1))
	if err != nil {
		return lifeconfig.LifeConfig{}, fmt.Errorf("%s: %w", config.ErrReadFile, err)
	}
	if len(data) > config.MaxDecodedSize {
		return lifeconfig.LifeConfig{}, lifeconfig.ErrInvalidConfig
	}

	var cfg lifeconfig.LifeConfig
	switch format {
	case FormatYAML:
		cfg, err = lifeconfig.ParseYAML(data)
	default:
		cfg, err = lifeconfig.Parse(data)
	}
	if err != nil {
		return lifeconfig.LifeConfig{}, err
	}

	slog.Info(config.MsgConfigImported,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyFile, name,
		config.LogKeyPeriods, len(cfg.Periods),
		config.LogKeyMarkers, len(cfg.Dates))
	return cfg, nil
}

// Export writes cfg in the versioned envelope, indented, in the format chosen
// from name.
func Export(w io.Writer, cfg lifeconfig.LifeConfig, name string) error {
	format, err := FormatOf(name)
	if err != nil {
		return err
	}

	data, err := Marshal(cfg, format)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%s: %w", config.ErrWriteFile, err)
	}

	slog.Info(config.MsgConfigExported,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyFile, name)
	return nil
}

// Marshal encodes the versioned envelope of cfg.
func Marshal(cfg lifeconfig.LifeConfig, format Format) ([]byte, error) {
	if err := cfg.CheckWritable(); err != nil {
		return nil, err
	}
	stored := lifeconfig.Stored(cfg)

	var buf bytes.Buffer
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(len(config.JSONIndent))
		if err := enc.Encode(stored); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrConfigEncode, err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrConfigEncode, err)
		}
	default:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", config.JSONIndent)
		if err := enc.Encode(stored); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrConfigEncode, err)
		}
	}
	return buf.Bytes(), nil
}
