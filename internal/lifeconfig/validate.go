package lifeconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/tartampluch/go-lifeweeks/internal/config"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig reports data that decoded fine but does not have the
// configuration shape.
var ErrInvalidConfig = errors.New(config.ErrInvalidConfig)

// ErrTotalYears reports a grid height the validator would refuse to read back.
var ErrTotalYears = errors.New(config.ErrTotalYears)

// CheckWritable returns ErrTotalYears when c could be written but not read
// back: Validate bounds totalYears to 0..MaxTotalYears.
func (c LifeConfig) CheckWritable() error {
	if c.TotalYears < 0 || c.TotalYears > config.MaxTotalYears {
		return ErrTotalYears
	}
	return nil
}

// Validate reports whether raw, a value produced by decoding JSON into an
// interface{}, has the LifeConfig shape. Validation is all or nothing.
func Validate(raw any) bool {
	obj, ok := raw.(map[string]any)
	if !ok {
		return false
	}
	if _, ok := obj["birthdate"].(string); !ok {
		return false
	}
	if !validTotalYears(obj["totalYears"]) {
		return false
	}

	periods, ok := obj["periods"].([]any)
	if !ok {
		return false
	}
	for _, p := range periods {
		if !validEntry(p, "label", "start", "end") {
			return false
		}
	}

	if v, present := obj["dates"]; present {
		dates, ok := v.([]any)
		if !ok {
			return false
		}
		for _, d := range dates {
			if !validEntry(d, "date", "title") {
				return false
			}
		}
	}

	if v, present := obj["showToday"]; present {
		if _, ok := v.(bool); !ok {
			return false
		}
	}
	return true
}

// validEntry checks that v is an object whose required keys are strings and
// whose optional color, when present, is a string too.
func validEntry(v any, required ...string) bool {
	obj, ok := v.(map[string]any)
	if !ok {
		return false
	}
	for _, key := range required {
		if _, ok := obj[key].(string); !ok {
			return false
		}
	}
	if c, present := obj["color"]; present {
		if _, ok := c.(string); !ok {
			return false
		}
	}
	return true
}

func validTotalYears(v any) bool {
	n, ok := v.(float64)
	if !ok {
		return false
	}
	return n == math.Trunc(n) && n >= 0 && n <= config.MaxTotalYears
}

// Normalize rebuilds a LifeConfig from data that passed Validate.
// Colors are dropped when absent or empty, a missing dates list becomes empty,
// and showToday is kept only when the source carried a boolean.
func Normalize(raw any) LifeConfig {
	obj, _ := raw.(map[string]any)

	cfg := LifeConfig{
		Birthdate: stringField(obj, "birthdate"),
		Periods:   []LifePeriod{},
		Dates:     []DateMarker{},
	}
	if n, ok := obj["totalYears"].(float64); ok {
		cfg.TotalYears = int(n)
	}

	periods, _ := obj["periods"].([]any)
	for _, p := range periods {
		m, _ := p.(map[string]any)
		cfg.Periods = append(cfg.Periods, LifePeriod{
			Label: stringField(m, "label"),
			Start: stringField(m, "start"),
			End:   stringField(m, "end"),
			Color: stringField(m, "color"),
		})
	}

	dates, _ := obj["dates"].([]any)
	for _, d := range dates {
		m, _ := d.(map[string]any)
		cfg.Dates = append(cfg.Dates, DateMarker{
			Date:  stringField(m, "date"),
			Title: stringField(m, "title"),
			Color: stringField(m, "color"),
		})
	}

	if b, ok := obj["showToday"].(bool); ok {
		cfg.ShowToday = Bool(b)
	}
	return cfg
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

// Parse decodes a JSON document (with or without the version envelope),
// validates it and returns the normalized configuration.
// Syntax errors are wrapped; shape errors are ErrInvalidConfig.
func Parse(data []byte) (LifeConfig, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return LifeConfig{}, fmt.Errorf("%s: %w", config.ErrConfigParse, err)
	}
	if !Validate(raw) {
		return LifeConfig{}, ErrInvalidConfig
	}
	return Normalize(raw), nil
}

// ParseYAML accepts the same document written as YAML. The document is
// re-encoded as JSON so that the JSON validator stays the only gate.
func ParseYAML(data []byte) (LifeConfig, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return LifeConfig{}, fmt.Errorf("%s: %w", config.ErrYAMLParse, err)
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(raw); err != nil {
		return LifeConfig{}, fmt.Errorf("%s: %w", config.ErrYAMLParse, err)
	}
	return Parse(buf.Bytes())
}
