package deps

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"

	"contentpackage.run/internal/packages/resource"
)

const (
	// SettingsEnvPrefix prefixes environment overrides, e.g. CONTENT_PACKAGE_S3_REGION.
	SettingsEnvPrefix = "CONTENT_PACKAGE"
	// SettingsFileEnv points to a settings file outside the working directory.
	SettingsFileEnv = SettingsEnvPrefix + "_CONFIG"
	// DefaultSettingsFile is read from the working directory when present.
	DefaultSettingsFile = "content-package.yaml"
)

// Settings are persistent defaults shared by all commands.
type Settings struct {
	OutputDir   string     `mapstructure:"output_dir"`
	MetricsFile string     `mapstructure:"metrics_file"`
	CreatedBy   string     `mapstructure:"created_by"`
	HeaderLines []string   `mapstructure:"header_lines"`
	LogLevel    string     `mapstructure:"log_level"`
	LogFormat   string     `mapstructure:"log_format"`
	S3          S3Settings `mapstructure:"s3"`
}

type S3Settings struct {
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	PathStyle       bool   `mapstructure:"path_style"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

func (s S3Settings) LoaderConfig() resource.S3Config {
	return resource.S3Config{
		Region:          s.Region,
		Endpoint:        s.Endpoint,
		UsePathStyle:    s.PathStyle,
		AccessKeyID:     s.AccessKeyID,
		SecretAccessKey: s.SecretAccessKey,
	}
}

func ProvideSettings() (Settings, error) {
	return LoadSettings(os.Getenv(SettingsFileEnv))
}

// LoadSettings merges defaults, the settings file and environment overrides.
// An empty path falls back to DefaultSettingsFile if it exists.
func LoadSettings(path string) (Settings, error) {
	v := viper.New()

	v.SetDefault("output_dir", "")
	v.SetDefault("metrics_file", "")
	v.SetDefault("created_by", "")
	v.SetDefault("header_lines", []string{})
	v.SetDefault("log_level", "error")
	v.SetDefault("log_format", "console")
	v.SetDefault("s3.region", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.path_style", false)
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")

	v.SetEnvPrefix(SettingsEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		if _, err := os.Stat(DefaultSettingsFile); err == nil {
			path = DefaultSettingsFile
		} else if !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("checking settings file: %w", err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("reading settings file %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decoding settings: %w", err)
	}

	return s, nil
}
