package inspiral

import (
	"fmt"
	"os"
	"sync"

	"github.com/ChristopherRabotin/inspiral/integrator"
	"github.com/spf13/viper"
)

// ConfigEnv is the environment variable holding the directory of conf.toml.
const ConfigEnv = "INSPIRAL_CONFIG"

var (
	cfgMu     sync.Mutex
	cfgLoaded = false
	config    = _inspiralconfig{}
)

// _inspiralconfig is a "hidden" struct, just use `inspiralConfig`
type _inspiralconfig struct {
	Samples      int     // Number of evaluation points per evolution.
	EccTolerance float64 // Below which a final eccentricity is circular.
	MinSMA       float64 // Final semimajor axis (solar radii) above which a system has not plunged.
	outputDir    string
}

func defaultConfig() _inspiralconfig {
	return _inspiralconfig{Samples: integrator.DefaultSamples, EccTolerance: 1e-8, MinSMA: 2, outputDir: "."}
}

// inspiralConfig returns the inspiral configuration.
// Without INSPIRAL_CONFIG, the defaults are used.
func inspiralConfig() _inspiralconfig {
	cfgMu.Lock()
	defer cfgMu.Unlock()
	if cfgLoaded {
		return config
	}
	confPath := os.Getenv(ConfigEnv)
	if confPath == "" {
		config = defaultConfig()
		cfgLoaded = true
		return config
	}
	conf, err := loadConfig(confPath)
	if err != nil {
		panic(err)
	}
	config = conf
	cfgLoaded = true
	return config
}

// loadConfig reads conf.toml from the provided directory.
func loadConfig(confPath string) (_inspiralconfig, error) {
	def := defaultConfig()
	v := viper.New()
	v.SetConfigName("conf")
	v.SetConfigType("toml")
	v.AddConfigPath(confPath)
	v.SetDefault("integrator.samples", def.Samples)
	v.SetDefault("circularization.ecc_tolerance", def.EccTolerance)
	v.SetDefault("circularization.min_sma", def.MinSMA)
	v.SetDefault("general.output_path", def.outputDir)
	if err := v.ReadInConfig(); err != nil {
		return def, fmt.Errorf("%s/conf.toml: %w", confPath, err)
	}
	conf := _inspiralconfig{
		Samples:      v.GetInt("integrator.samples"),
		EccTolerance: v.GetFloat64("circularization.ecc_tolerance"),
		MinSMA:       v.GetFloat64("circularization.min_sma"),
		outputDir:    v.GetString("general.output_path"),
	}
	if conf.Samples < 2 {
		return def, fmt.Errorf("%s/conf.toml: %w (integrator.samples=%d)", confPath, ErrSamples, conf.Samples)
	}
	if conf.EccTolerance < 0 {
		return def, fmt.Errorf("%s/conf.toml: circularization.ecc_tolerance must be positive", confPath)
	}
	return conf, nil
}
