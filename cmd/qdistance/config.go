package qdistancecmder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/theapemachine/qdistance"
)

/*
initViper layers configuration, highest precedence first:
 1. CLI flags
 2. Environment variables (QDISTANCE_SHOTS, QDISTANCE_BREAKER_MAX_FAILURES, ...)
 3. The config file (--config, or qdistance.toml in the working directory)
 4. Defaults from qdistance.NewConfig()
*/
func initViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	setViperDefaults(v)

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("qdistance")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		// Missing config files are fine, defaults apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix("QDISTANCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, flag := range map[string]string{
		"shots":          "shots",
		"seed":           "seed",
		"norm_tolerance": "norm-tolerance",
	} {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag %s: %w", flag, err)
			}
		}
	}

	return v, nil
}

func setViperDefaults(v *viper.Viper) {
	d := qdistance.NewConfig()

	v.SetDefault("shots", d.Shots)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("norm_tolerance", d.NormTolerance)

	v.SetDefault("breaker.max_failures", d.BreakerMaxFailures)
	v.SetDefault("breaker.reset_timeout", d.BreakerResetTimeout)
	v.SetDefault("breaker.half_open_max", d.BreakerHalfOpenMax)
}

func configFromViper(v *viper.Viper) *qdistance.Config {
	return &qdistance.Config{
		Shots:               v.GetInt("shots"),
		Seed:                v.GetUint64("seed"),
		NormTolerance:       v.GetFloat64("norm_tolerance"),
		BreakerMaxFailures:  v.GetInt("breaker.max_failures"),
		BreakerResetTimeout: v.GetDuration("breaker.reset_timeout"),
		BreakerHalfOpenMax:  v.GetInt("breaker.half_open_max"),
	}
}

// parseVector reads "x,y" into a validated feature vector.
func parseVector(raw string, tol float64) (qdistance.FeatureVector, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return qdistance.FeatureVector{}, fmt.Errorf("vector %q: want x,y", raw)
	}

	var coords [2]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return qdistance.FeatureVector{}, fmt.Errorf("vector %q: %w", raw, err)
		}
		coords[i] = f
	}

	return qdistance.NewFeatureVectorWithin(coords[0], coords[1], tol)
}

// trainingSet returns the default set, or one whose label-1 vector comes from --train.
func trainingSet(cmd *cobra.Command, tol float64) (qdistance.TrainingSet, error) {
	raw, _ := cmd.Flags().GetString("train")
	if raw == "" {
		return qdistance.DefaultTrainingSet(), nil
	}

	second, err := parseVector(raw, tol)
	if err != nil {
		return qdistance.TrainingSet{}, err
	}

	defaults := qdistance.DefaultTrainingSet()
	return qdistance.NewTrainingSet(
		defaults.First(),
		qdistance.Example{Vector: second, Label: qdistance.Label1},
	)
}
