package cmd

import (
	"fmt"
	"io"
	"strings"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/paw-chain/pawswap/internal/api"
	"github.com/paw-chain/pawswap/internal/telemetry"
)

const (
	envPrefix = "SWAPSIM"

	flagConfig          = "config"
	flagLogLevel        = "log-level"
	flagLogFormat       = "log-format"
	flagTraceEnabled    = "trace.enabled"
	flagTraceEndpoint   = "trace.endpoint"
	flagTraceSampleRate = "trace.sample-rate"
	flagMetricsEnabled  = "metrics.enabled"
	flagListen          = "api.listen"
	flagCORSOrigins     = "api.cors-origins"
	flagRateLimit       = "api.rate-limit"
	flagRateBurst       = "api.rate-burst"
)

// Config is the resolved tool configuration: defaults, then the config file,
// then SWAPSIM_* environment variables, then flags.
type Config struct {
	LogLevel  string
	LogFormat string
	Telemetry telemetry.Config
	API       api.Config
}

// newViper returns a viper instance reading SWAPSIM_* variables, with "."
// and "-" in keys mapped to "_".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// loadConfig reads the optional config file and resolves every setting.
func loadConfig(v *viper.Viper) (Config, error) {
	if path := v.GetString(flagConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	rate, err := cast.ToFloat64E(v.Get(flagRateLimit))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", flagRateLimit, err)
	}
	sampleRate, err := cast.ToFloat64E(v.Get(flagTraceSampleRate))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", flagTraceSampleRate, err)
	}

	return Config{
		LogLevel:  v.GetString(flagLogLevel),
		LogFormat: v.GetString(flagLogFormat),
		Telemetry: telemetry.Config{
			Enabled:     v.GetBool(flagTraceEnabled),
			Endpoint:    v.GetString(flagTraceEndpoint),
			SampleRate:  sampleRate,
			Environment: "swapsim",

			MetricsEnabled: v.GetBool(flagMetricsEnabled),
		},
		API: api.Config{
			ListenAddr:        v.GetString(flagListen),
			CORSOrigins:       stringList(v.Get(flagCORSOrigins)),
			RequestsPerSecond: rate,
			Burst:             cast.ToInt(v.Get(flagRateBurst)),
		},
	}, nil
}

// stringList accepts a list or a comma separated string.
func stringList(raw interface{}) []string {
	if s, ok := raw.(string); ok {
		raw = strings.Split(s, ",")
	}
	var out []string
	for _, item := range cast.ToStringSlice(raw) {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// newLogger builds the process logger from cfg.
func newLogger(cfg Config, w io.Writer) (log.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	opts := []log.Option{log.LevelOption(level)}
	switch cfg.LogFormat {
	case "json":
		opts = append(opts, log.OutputJSONOption())
	case "plain", "":
		opts = append(opts, log.ColorOption(false))
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}
	return log.NewLogger(w, opts...), nil
}
