// Package config assembles component configurations from CLI inputs.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go-bank-reconciler/internal/matcher"
	"go-bank-reconciler/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// DefaultToleranceFile is probed in the working directory when no explicit
// tolerance file is given.
const DefaultToleranceFile = "config.txt"

// LoadTolerances builds a MatchingConfig from an optional key=value file.
//
// The file format is one `Key=Value` per line with `#` comments; keys are
// case-insensitive. A missing file, a malformed file or an unparseable value
// never fails the process: each entry that cannot be used silently keeps its
// default. Negative day tolerances are floored at 0 and negative amount
// tolerances are absolute-valued.
func LoadTolerances(path string) *matcher.MatchingConfig {
	cfg := matcher.DefaultMatchingConfig()
	log := logger.WithComponent("config")

	if path == "" {
		candidate := filepath.Join(".", DefaultToleranceFile)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}
	if path == "" {
		return cfg
	}
	if _, err := os.Stat(path); err != nil {
		log.WithField("file", path).Debug("Tolerance file not found, using defaults")
		return cfg
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		log.WithError(err).WithField("file", path).Warn("Could not read tolerance file, using defaults")
		return cfg
	}

	if d, ok := intValue(v, "Rule2DateToleranceDays"); ok {
		cfg.Rule2DateToleranceDays = d
	}
	if a, ok := decimalValue(v, "Rule3AmountTolerance"); ok {
		cfg.Rule3AmountTolerance = a
	}
	if d, ok := intValue(v, "Rule4DateToleranceDays"); ok {
		cfg.Rule4DateToleranceDays = d
	}
	if a, ok := decimalValue(v, "Rule4AmountTolerance"); ok {
		cfg.Rule4AmountTolerance = a
	}
	cfg.Normalize()

	log.WithFields(logger.Fields{
		"file":      path,
		"effective": cfg.String(),
	}).Debug("Loaded matching tolerances")

	return cfg
}

// intValue reads one key as an integer, reporting ok=false for missing or
// unparseable values so the caller keeps the default.
func intValue(v *viper.Viper, key string) (int, bool) {
	s := strings.TrimSpace(v.GetString(key))
	if s == "" {
		return 0, false
	}
	d, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return d, true
}

func decimalValue(v *viper.Viper, key string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(v.GetString(key))
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
