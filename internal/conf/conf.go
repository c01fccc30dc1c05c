package conf

import (
	"errors"
	"fmt"
	"time"

	"github.com/gookit/validate"
	"github.com/spf13/viper"
)

// Config carries every per-run parameter as an explicit value. Nothing here
// is ambient state: target year, self identity, and paths are threaded into
// constructors so a run can never silently diverge from its configuration.
type Config struct {
	// TargetYear is the single calendar year statistics are aggregated for.
	TargetYear int `mapstructure:"target_year" validate:"required|min:2010|max:2100"`

	// SelfID is the export owner's participant identity, used to attribute
	// DM labels to the other participant. Required for the run mode only.
	SelfID string `mapstructure:"self_id"`

	// ExportDir is the root of the per-conversation folder tree.
	ExportDir string `mapstructure:"export_dir" validate:"required"`

	// DBPath is the analysis database location.
	DBPath string `mapstructure:"db_path" validate:"required"`

	// ReportPath is where the generated report document is written.
	ReportPath string `mapstructure:"report_path" validate:"required"`

	// ProgressEvery is the progress-line interval in conversations.
	ProgressEvery int `mapstructure:"progress_every" validate:"required|min:1"`
}

// Load reads configuration from an optional recap.yaml in the working
// directory, layered under RECAP_* environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("recap")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("target_year", time.Now().Year())
	v.SetDefault("self_id", "")
	v.SetDefault("export_dir", "./Messages")
	v.SetDefault("db_path", "discord_analysis.db")
	v.SetDefault("report_path", "discord_stats.html")
	v.SetDefault("progress_every", 50)

	v.BindEnv("target_year", "RECAP_TARGET_YEAR")
	v.BindEnv("self_id", "RECAP_SELF_ID")
	v.BindEnv("export_dir", "RECAP_EXPORT_DIR")
	v.BindEnv("db_path", "RECAP_DB_PATH")
	v.BindEnv("report_path", "RECAP_REPORT_PATH")
	v.BindEnv("progress_every", "RECAP_PROGRESS_EVERY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	vd := validate.Struct(&cfg)
	if !vd.Validate() {
		return nil, fmt.Errorf("invalid config: %s", vd.Errors.One())
	}
	return &cfg, nil
}
