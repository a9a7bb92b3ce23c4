package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/janssenerikw/Geothermal-SWM-Pond-Thermal-Mitigation/pond"
	"github.com/janssenerikw/Geothermal-SWM-Pond-Thermal-Mitigation/roots"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	configName = "pondcalc"
	envPrefix  = "POND"
)

// configuration keys
const (
	keySolverMethod           = "solver.method"
	keySolverOffset           = "solver.offset"
	keySolverLowFlowOffset    = "solver.low_flow_offset"
	keySolverLowFlowThreshold = "solver.low_flow_threshold"
	keySolverTolerance        = "solver.tolerance"
	keySolverMaxIter          = "solver.max_iter"
	keySweepWorkers           = "sweep.workers"
	keyServerAddr             = "server.addr"
	keyLogLevel               = "log.level"
)

func setDefaults(v *viper.Viper) {
	d := pond.DefaultSettings()
	v.SetDefault(keySolverMethod, roots.MethodNewton)
	v.SetDefault(keySolverOffset, d.Offset)
	v.SetDefault(keySolverLowFlowOffset, d.LowFlowOffset)
	v.SetDefault(keySolverLowFlowThreshold, d.LowFlowThreshold)
	v.SetDefault(keySolverTolerance, d.Tolerance)
	v.SetDefault(keySolverMaxIter, 0)
	v.SetDefault(keySweepWorkers, 0)
	v.SetDefault(keyServerAddr, "127.0.0.1:8080")
	v.SetDefault(keyLogLevel, "warning")
}

/*
loadConfig builds the configuration from defaults, the config file and the
environment, in increasing priority.

	Args:
		path: config file; when empty pondcalc.toml is searched in the working
		      directory and in $HOME/.config/pondcalc, and may be absent
*/
func loadConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		log.WithField("file", v.ConfigFileUsed()).Debug("config loaded")
	}
	return v, nil
}

func newSolver(v *viper.Viper) (*pond.Solver, error) {
	finder, err := roots.ByName(v.GetString(keySolverMethod))
	if err != nil {
		return nil, err
	}

	if n := v.GetInt(keySolverMaxIter); n > 0 {
		switch f := finder.(type) {
		case *roots.Newton:
			f.MaxIter = n
		case *roots.Brent:
			f.MaxIter = n
		case *roots.Bisection:
			f.MaxIter = n
		}
	}

	return pond.NewSolver(pond.Settings{
		Finder:           finder,
		Offset:           v.GetFloat64(keySolverOffset),
		LowFlowOffset:    v.GetFloat64(keySolverLowFlowOffset),
		LowFlowThreshold: v.GetFloat64(keySolverLowFlowThreshold),
		Tolerance:        v.GetFloat64(keySolverTolerance),
	}), nil
}

func setupLog(v *viper.Viper, out io.Writer) error {
	level, err := log.ParseLevel(v.GetString(keyLogLevel))
	if err != nil {
		return fmt.Errorf("%s: %w", keyLogLevel, err)
	}
	log.SetOutput(out)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(level)
	return nil
}
