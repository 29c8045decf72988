package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/provost/internal/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "PROVOST"

// LoadOptions overrides where Load looks for its files. Zero values use
// provost.yaml in the working directory or ~/.provost, and ./.env.
type LoadOptions struct {
	ConfigFile string
	EnvFile    string
}

// Load builds the configuration. A missing config or .env file is not an
// error; a malformed one is.
func Load(opts LoadOptions) (*Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("provost")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".provost"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".provost", "provost.db")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// loadEnvFile exports .env entries without overriding variables already set.
func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// setDefaults registers every scalar key so environment variables can
// override it and so a config with no file matches the domain defaults.
func setDefaults(v *viper.Viper) {
	v.SetDefault("db_path", "")
	v.SetDefault("log.enabled", false)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("batch.concurrency", DefaultBatchConcurrency)
	v.SetDefault("metrics.file", "")

	standing := domain.DefaultStandingPolicy()
	v.SetDefault("policies.standing.good_standing_min_gpa", standing.GoodStandingMinGPA)
	v.SetDefault("policies.standing.probation_max_terms", standing.ProbationMaxTerms)
	v.SetDefault("policies.standing.suspension_duration_terms", standing.SuspensionDurationTerms)
	v.SetDefault("policies.standing.max_suspensions", standing.MaxSuspensions)

	sap := domain.DefaultSapPolicy()
	v.SetDefault("policies.sap.minimum_gpa", sap.MinimumGPA)
	v.SetDefault("policies.sap.minimum_pace", sap.MinimumPace)
	v.SetDefault("policies.sap.max_timeframe_percentage", sap.MaxTimeframePercentage)
	v.SetDefault("policies.sap.warning_period_enabled", sap.WarningPeriodEnabled)

	grad := domain.DefaultGraduationPolicy()
	v.SetDefault("policies.graduation.minimum_total_credits", grad.MinimumTotalCredits)
	v.SetDefault("policies.graduation.minimum_institutional_credits", grad.MinimumInstitutionalCredits)
	v.SetDefault("policies.graduation.minimum_cumulative_gpa", grad.MinimumCumulativeGPA)
	v.SetDefault("policies.graduation.max_financial_balance", grad.MaxFinancialBalance)
	v.SetDefault("policies.graduation.require_library_clearance", grad.RequireLibraryClearance)
	v.SetDefault("policies.graduation.require_department_clearance", grad.RequireDepartmentClearance)
	v.SetDefault("policies.graduation.require_exit_counseling", grad.RequireExitCounseling)
	v.SetDefault("policies.graduation.require_sevis_update", grad.RequireSevisUpdate)
	v.SetDefault("policies.graduation.require_minor_declaration", grad.RequireMinorDeclaration)

	honors := domain.DefaultLatinHonorsConfig()
	v.SetDefault("policies.honors.cum_laude_threshold", honors.CumLaudeThreshold)
	v.SetDefault("policies.honors.magna_cum_laude_threshold", honors.MagnaCumLaudeThreshold)
	v.SetDefault("policies.honors.summa_cum_laude_threshold", honors.SummaCumLaudeThreshold)
	v.SetDefault("policies.honors.minimum_total_credits", honors.MinimumTotalCredits)
	v.SetDefault("policies.honors.minimum_institutional_credits", honors.MinimumInstitutionalCredits)
	v.SetDefault("policies.honors.use_institutional_gpa", honors.UseInstitutionalGPA)
	v.SetDefault("policies.honors.integrity_violation_disqualifies", honors.IntegrityViolationDisqualifies)
}
