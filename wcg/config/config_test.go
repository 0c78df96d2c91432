package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	internal "github.com/ZanzyTHEbar/wikigraph/wcg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ConfigTestSuite tests the config package functionality
type ConfigTestSuite struct {
	suite.Suite
	tempDir string
	origDir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) SetupTest() {
	var err error
	suite.origDir, err = os.Getwd()
	require.NoError(suite.T(), err)

	suite.tempDir = suite.T().TempDir()
	require.NoError(suite.T(), os.Chdir(suite.tempDir))
}

func (suite *ConfigTestSuite) TearDownTest() {
	if suite.origDir != "" {
		os.Chdir(suite.origDir)
	}
}

func (suite *ConfigTestSuite) TestLoadConfigWithDefaults() {
	cfg, err := LoadConfig("")
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), cfg)

	assert.Equal(suite.T(), internal.DefaultRootCategory, cfg.Taxonomy.Root)
	assert.Equal(suite.T(), internal.DefaultPagesFile, cfg.Sources.Pages)
	assert.Equal(suite.T(), internal.DefaultCategoryLinks, cfg.Sources.CategoryLinks)
	assert.Equal(suite.T(), internal.DefaultLogLevel, cfg.Log.Level)
	assert.Equal(suite.T(), runtime.NumCPU(), cfg.Query.Workers)
	assert.False(suite.T(), cfg.Query.Trace)
}

func (suite *ConfigTestSuite) TestLoadConfigWithFile() {
	configContent := `
taxonomy:
  root: "'Desserts'"
sources:
  pages: /data/pages.tsv.gz
  categoryLinks: /data/categorylinks.tsv.gz
log:
  level: debug
query:
  workers: 3
  trace: true
`
	configFile := filepath.Join(suite.tempDir, "config.yaml")
	require.NoError(suite.T(), os.WriteFile(configFile, []byte(configContent), 0o644))

	cfg, err := LoadConfig(configFile)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), "'Desserts'", cfg.Taxonomy.Root)
	assert.Equal(suite.T(), "/data/pages.tsv.gz", cfg.Sources.Pages)
	assert.Equal(suite.T(), "/data/categorylinks.tsv.gz", cfg.Sources.CategoryLinks)
	assert.Equal(suite.T(), "debug", cfg.Log.Level)
	assert.Equal(suite.T(), 3, cfg.Query.Workers)
	assert.True(suite.T(), cfg.Query.Trace)
}

func (suite *ConfigTestSuite) TestLoadConfigFromWorkingDirectory() {
	require.NoError(suite.T(), os.WriteFile("config.yaml", []byte("taxonomy:\n  root: Soups\n"), 0o644))

	cfg, err := LoadConfig("")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Soups", cfg.Taxonomy.Root)
	assert.Equal(suite.T(), internal.DefaultPagesFile, cfg.Sources.Pages)
}

func (suite *ConfigTestSuite) TestEnvironmentOverrides() {
	suite.T().Setenv("WCG_TAXONOMY_ROOT", "Breads")
	suite.T().Setenv("WCG_QUERY_WORKERS", "7")

	cfg, err := LoadConfig("")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Breads", cfg.Taxonomy.Root)
	assert.Equal(suite.T(), 7, cfg.Query.Workers)
}

func (suite *ConfigTestSuite) TestLoadConfigInvalidFile() {
	// An explicit path that does not exist is an error.
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
}

func (suite *ConfigTestSuite) TestLoadConfigMalformedFile() {
	configFile := filepath.Join(suite.tempDir, "malformed.yaml")
	require.NoError(suite.T(), os.WriteFile(configFile, []byte("taxonomy:\n  root: [unclosed\n"), 0o644))

	cfg, err := LoadConfig(configFile)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
}
