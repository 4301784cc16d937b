package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ChristopherRabotin/inspiral"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/spf13/viper"
)

// This code reads a scenario file and evolves the binary it describes.

const (
	defaultScenario = "~~unset~~"
)

var (
	scenario string
	verbose  bool
)

func init() {
	// Read flags
	flag.StringVar(&scenario, "scenario", defaultScenario, "inspiral scenario TOML file")
	flag.BoolVar(&verbose, "verbose", false, "really verbose (esp. for configuration)")
}

func main() {
	flag.Parse()
	// Load scenario
	if scenario == defaultScenario {
		log.Fatal("no scenario provided")
	}
	scenario = strings.Replace(scenario, ".toml", "", 1)
	viper.AddConfigPath(".")
	viper.SetConfigName(scenario)
	err := viper.ReadInConfig()
	if err != nil {
		log.Fatalf("./%s.toml: Error %s", scenario, err)
	}

	bss, err := binaryFromConfig()
	if err != nil {
		log.Fatalf("could not create the binary: %s", err)
	}
	if verbose {
		log.Printf("[conf] binary: %s (β=%e km^4/s, weight=%f)", bss, bss.Beta(), bss.Weight())
	}

	ct := bss.CoalescenceTime()
	fmt.Printf("coalescence time: %f Gyr\n", ct)

	span := viper.GetFloat64("evolution.span")
	if span <= 0 {
		span = ct
	}
	traj := bss.EvolveUntil(0, inspiral.GigayearsToSeconds(span))
	if t, a, e, ok := traj.Final(); ok {
		fmt.Printf("%s after %d samples: t=%f Gyr a=%f R☉ e=%f\n", traj.Reason, traj.Len(), t, a, e)
	} else {
		fmt.Printf("%s before the first sample\n", traj.Reason)
	}
	if viper.GetBool("evolution.circularization") {
		fmt.Printf("circularizes: %t\n", bss.Circularizes())
	}

	conf := inspiral.ExportConfig{
		Filename:  viper.GetString("export.filename"),
		AsCSV:     viper.GetBool("export.csv"),
		Timestamp: viper.GetBool("export.timestamp"),
	}
	if viper.IsSet("export.epoch") {
		conf.Epoch = confReadJDEorTime("export.epoch")
	}
	if conf.Filename == "" {
		conf.Filename = scenario
	}
	if err := traj.Export(conf); err != nil {
		log.Fatalf("export failed: %s", err)
	}
}

// binaryFromConfig reads the binary from the scenario. A period takes precedence over the semimajor axis.
func binaryFromConfig() (*inspiral.BinarySystem, error) {
	m1 := viper.GetFloat64("binary.m1")
	m2 := viper.GetFloat64("binary.m2")
	e0 := viper.GetFloat64("binary.e0")
	extra := map[string]float64{}
	for _, key := range []string{inspiral.WeightKey, inspiral.EvolutionAgeKey, inspiral.RejuvenationAgeKey} {
		if viper.IsSet("binary." + key) {
			extra[key] = viper.GetFloat64("binary." + key)
		}
	}
	if viper.IsSet("binary.period") {
		period := viper.GetDuration("binary.period")
		if verbose {
			log.Printf("[conf] period: %s", period)
		}
		return inspiral.NewBinarySystemFromPeriod(m1, m2, period, e0, extra)
	}
	return inspiral.NewBinarySystem(m1, m2, viper.GetFloat64("binary.a0"), e0, extra)
}

func confReadJDEorTime(key string) (dt time.Time) {
	jde := viper.GetFloat64(key)
	if jde == 0 {
		dt = viper.GetTime(key)
	} else {
		dt = julian.JDToTime(jde)
	}
	return
}
