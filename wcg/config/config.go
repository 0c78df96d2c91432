package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	internal "github.com/ZanzyTHEbar/wikigraph/wcg"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Taxonomy TaxonomyConfig `mapstructure:"taxonomy"`
	Sources  SourcesConfig  `mapstructure:"sources"`
	Log      LogConfig      `mapstructure:"log"`
	Query    QueryConfig    `mapstructure:"query"`
}

// TaxonomyConfig selects the category the taxonomy is rooted at.
type TaxonomyConfig struct {
	Root string `mapstructure:"root"`
}

// SourcesConfig names the two tab-separated exports. Paths ending in .gz are
// decompressed on read.
type SourcesConfig struct {
	Pages         string `mapstructure:"pages"`
	CategoryLinks string `mapstructure:"categoryLinks"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// QueryConfig tunes batch queries.
type QueryConfig struct {
	Workers int  `mapstructure:"workers"`
	Trace   bool `mapstructure:"trace"`
}

// LoadConfig reads configuration from file or environment variables.
// An empty configPath searches the usual locations; finding nothing there is
// not an error.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join("etc", internal.DefaultAppName))
		v.AddConfigPath(internal.DefaultConfigPath)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetDefault("taxonomy.root", internal.DefaultRootCategory)
	v.SetDefault("sources.pages", internal.DefaultPagesFile)
	v.SetDefault("sources.categoryLinks", internal.DefaultCategoryLinks)
	v.SetDefault("log.level", internal.DefaultLogLevel)
	v.SetDefault("query.workers", runtime.NumCPU())
	v.SetDefault("query.trace", internal.DefaultQueryTraceFlag)

	// WCG_SOURCES_PAGES overrides sources.pages, and so on.
	v.SetEnvPrefix(internal.DefaultEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return &cfg, nil
}
