package main

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/jiapei100/fcl"
)

// sceneConfig holds the demo scene's tunable parameters, loadable from a
// TOML file via the -config flag. defaultSceneConfig holds the built-in
// defaults.
type sceneConfig struct {
	Solver struct {
		MaxIterations int     `toml:"max_iterations"`
		TErr          float64 `toml:"t_err"`
		AbsErr        float64 `toml:"abs_err"`
		RelErr        float64 `toml:"rel_err"`
	} `toml:"solver"`
}

func defaultSceneConfig() sceneConfig {
	var cfg sceneConfig
	cfg.Solver.TErr = 1e-6
	cfg.Solver.MaxIterations = fcl.MaxIterationsFor(cfg.Solver.TErr)
	cfg.Solver.AbsErr = 1e-6
	cfg.Solver.RelErr = 1e-6
	return cfg
}

// loadSceneConfig reads path as TOML, falling back to defaultSceneConfig
// for any field the file doesn't set.
func loadSceneConfig(path string) (sceneConfig, error) {
	cfg := defaultSceneConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
