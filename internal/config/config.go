// Package config loads the JSON configuration file spec.md §6
// describes, grounded on
// original_source/src/gaussian_mean_hypotheses/config.hpp, and resolves
// it into the concrete model and threshold grids internal/xsprt needs.
package config

import (
	"encoding/json"
	"os"

	"gohyposeq/internal/model"
	"gohyposeq/internal/xerr"
	"gohyposeq/internal/xsprt"
)

// modelSpec mirrors the "model" object in the config file.
type modelSpec struct {
	Type                  string  `json:"type"`
	WeakestSignalStrength float64 `json:"weakest signal strength"`
}

// thresholdSpec is a (alt, null) pair of spacing generators, matching
// config.hpp's thresholds_type pair.
type thresholdSpec [2]Spacing

// raw is the as-written shape of the config file.
type raw struct {
	Simulations           int           `json:"simulations"`
	Model                 modelSpec     `json:"model"`
	AnticipatedSampleSize [2]float64    `json:"anticipated sample size"`
	ASPRTThresholds       thresholdSpec `json:"ASPRT thresholds"`
	GSPRTThresholds       thresholdSpec `json:"GSPRT thresholds"`
}

// Config is the resolved, validated configuration: a constructed Model
// and exploded threshold grids, ready to hand to xsprt.New.
type Config struct {
	Simulations                    int
	Model                          model.Model
	AnticipatedSampleSizeUnderNull float64
	AnticipatedSampleSizeUnderAlt  float64
	ASPRTThresholds                xsprt.Thresholds
	GSPRTThresholds                xsprt.Thresholds
}

// Load reads and validates the config file at path. Failure to open or
// read the file returns an error carrying xerr.ErrConfigUnreadable;
// failure to parse JSON or to validate the parsed value returns an
// error carrying xerr.ErrConfigUnparseable. Callers map these to the
// exit codes spec.md §6 specifies.
func Load(path string) (*Config, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, xerr.ConfigUnreadable("could not read config file "+path, err)
	}

	var r raw
	if err := json.Unmarshal(bytes, &r); err != nil {
		return nil, xerr.ConfigUnparseable("config file is not valid JSON", err)
	}

	return resolve(r)
}

func resolve(r raw) (*Config, error) {
	if r.Simulations <= 0 {
		return nil, xerr.ConfigUnparseable("simulations must be a positive integer", nil)
	}
	if r.AnticipatedSampleSize[0] < 0 || r.AnticipatedSampleSize[1] < 0 {
		return nil, xerr.ConfigUnparseable("anticipated sample size entries must be >= 0", nil)
	}

	m, err := model.New(r.Model.WeakestSignalStrength)
	if err != nil {
		return nil, xerr.ConfigUnparseable("invalid model", err)
	}

	asprt, err := resolveThresholds(r.ASPRTThresholds)
	if err != nil {
		return nil, xerr.ConfigUnparseable("invalid ASPRT thresholds", err)
	}
	gsprt, err := resolveThresholds(r.GSPRTThresholds)
	if err != nil {
		return nil, xerr.ConfigUnparseable("invalid GSPRT thresholds", err)
	}

	return &Config{
		Simulations:                    r.Simulations,
		Model:                          m,
		AnticipatedSampleSizeUnderNull: r.AnticipatedSampleSize[0],
		AnticipatedSampleSizeUnderAlt:  r.AnticipatedSampleSize[1],
		ASPRTThresholds:                asprt,
		GSPRTThresholds:                gsprt,
	}, nil
}

func resolveThresholds(spec thresholdSpec) (xsprt.Thresholds, error) {
	for _, s := range spec {
		if err := s.Validate(); err != nil {
			return xsprt.Thresholds{}, err
		}
	}
	return xsprt.Thresholds{
		Alt:  spec[0].Explode(),
		Null: spec[1].Explode(),
	}, nil
}
