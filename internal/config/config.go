package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/depdash/internal/aggregate"
	"github.com/KaramelBytes/depdash/internal/dashboard"
	"github.com/KaramelBytes/depdash/internal/dataset"
	"github.com/KaramelBytes/depdash/internal/enrich"
	"github.com/KaramelBytes/depdash/internal/utils"
)

// Global configuration structure.
type Global struct {
	DataPath  string `mapstructure:"data_path" yaml:"data_path"`
	Sheet     string `mapstructure:"sheet" yaml:"sheet"`
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`

	Columns dashboard.Columns `mapstructure:"columns" yaml:"columns"`

	// Ordinal score subjects
	ScorePrefixes []string       `mapstructure:"score_prefixes" yaml:"score_prefixes"`
	ScoreLevels   map[string]int `mapstructure:"score_levels" yaml:"score_levels"`

	// Provision classification
	ProvisionRules   []enrich.Rule `mapstructure:"provision_rules" yaml:"provision_rules"`
	DefaultProvision string        `mapstructure:"default_provision" yaml:"default_provision"`

	AttendanceBandWidth          float64                     `mapstructure:"attendance_band_width" yaml:"attendance_band_width"`
	AttendanceMax                float64                     `mapstructure:"attendance_max" yaml:"attendance_max"`
	MultipleDeprivationThreshold int                         `mapstructure:"multiple_deprivation_threshold" yaml:"multiple_deprivation_threshold"`
	NationalAverages             []dashboard.NationalAverage `mapstructure:"national_averages" yaml:"national_averages"`
}

// DefaultPath returns ~/.depdash/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".depdash", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.depdash/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. A .env file in the working
// directory, when present, is loaded into the environment first.
func Load(cfgFile string) (*Global, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("DEPDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		path, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(path))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.fillDefaults()
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_path", "")
	v.SetDefault("sheet", "")
	v.SetDefault("delimiter", "")
	v.SetDefault("log_level", "info")
	cols := dashboard.DefaultColumns()
	for k, val := range columnKeys(&cols) {
		v.SetDefault("columns."+k, *val)
	}
	v.SetDefault("default_provision", enrich.DefaultProvision)
	v.SetDefault("attendance_band_width", aggregate.DefaultAttendanceBands.Width)
	v.SetDefault("attendance_max", aggregate.DefaultAttendanceBands.Max)
	v.SetDefault("multiple_deprivation_threshold", 3)
}

// fillDefaults covers list and map settings, which viper cannot merge
// element-wise with a file value.
func (c *Global) fillDefaults() {
	if len(c.ScorePrefixes) == 0 {
		c.ScorePrefixes = dashboard.DefaultScorePrefixes()
	}
	if len(c.ScoreLevels) == 0 {
		c.ScoreLevels = aggregate.DefaultScoreLevels()
	}
	if len(c.ProvisionRules) == 0 {
		c.ProvisionRules = enrich.DefaultRules()
	}
	if len(c.NationalAverages) == 0 {
		c.NationalAverages = dashboard.DefaultNationalAverages()
	}
}

type columnField struct {
	role  string
	field *string
}

// columnFields lists the columns.* keys of c in display order.
func columnFields(c *dashboard.Columns) []columnField {
	return []columnField{
		{"year_group", &c.YearGroup},
		{"disadvantaged", &c.Disadvantaged},
		{"disadvantage_count", &c.DisadvantageCount},
		{"fsm", &c.FSM},
		{"pupil_premium", &c.PupilPremium},
		{"sen", &c.SEN},
		{"young_carer", &c.YoungCarer},
		{"looked_after", &c.LookedAfter},
		{"child_protection", &c.ChildProtection},
		{"l3_response", &c.L3Response},
		{"reg_form", &c.RegForm},
		{"attendance", &c.Attendance},
		{"suspensions", &c.Suspensions},
	}
}

// columnKeys maps each columns.* key to its field in c.
func columnKeys(c *dashboard.Columns) map[string]*string {
	fields := columnFields(c)
	m := make(map[string]*string, len(fields))
	for _, f := range fields {
		m[f.role] = f.field
	}
	return m
}

// ColumnRoles returns the role names accepted as columns.<role>.
func ColumnRoles() []string {
	var c dashboard.Columns
	fields := columnFields(&c)
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.role
	}
	return out
}

// Validate reports settings that would make every render meaningless.
func (c *Global) Validate() error {
	if c.AttendanceBandWidth <= 0 {
		return fmt.Errorf("attendance_band_width must be positive, got %v", c.AttendanceBandWidth)
	}
	if c.AttendanceMax <= 0 {
		return fmt.Errorf("attendance_max must be positive, got %v", c.AttendanceMax)
	}
	if c.MultipleDeprivationThreshold < 0 {
		return fmt.Errorf("multiple_deprivation_threshold must not be negative, got %d", c.MultipleDeprivationThreshold)
	}
	if _, err := dataset.ParseDelimiter(c.Delimiter); err != nil {
		return err
	}
	for i, r := range c.ProvisionRules {
		if strings.TrimSpace(r.Match) == "" || strings.TrimSpace(r.Provision) == "" {
			return fmt.Errorf("provision_rules[%d]: match and provision are required", i)
		}
	}
	settings := c.Settings()
	for i, n := range c.NationalAverages {
		if _, err := settings.Marker(n.Marker); err != nil {
			return fmt.Errorf("national_averages[%d]: %w", i, err)
		}
	}
	return nil
}

// LoadOptions returns the dataset read options.
func (c *Global) LoadOptions() (dataset.Options, error) {
	d, err := dataset.ParseDelimiter(c.Delimiter)
	if err != nil {
		return dataset.Options{}, err
	}
	return dataset.Options{Delimiter: d, Sheet: c.Sheet}, nil
}

// Settings converts the configuration into render settings.
func (c *Global) Settings() dashboard.Settings {
	return dashboard.Settings{
		Columns:                      c.Columns,
		ProvisionRules:               c.ProvisionRules,
		DefaultProvision:             c.DefaultProvision,
		ScorePrefixes:                c.ScorePrefixes,
		ScoreLevels:                  c.ScoreLevels,
		AttendanceBands:              aggregate.Bands{Width: c.AttendanceBandWidth, Max: c.AttendanceMax},
		MultipleDeprivationThreshold: c.MultipleDeprivationThreshold,
		National:                     c.NationalAverages,
	}
}

// Set assigns a scalar configuration key from its string form. Column roles
// are addressed as columns.<role>.
func (c *Global) Set(key, value string) error {
	switch key {
	case "data_path":
		c.DataPath = value
	case "sheet":
		c.Sheet = value
	case "delimiter":
		if _, err := dataset.ParseDelimiter(value); err != nil {
			return err
		}
		c.Delimiter = value
	case "log_level":
		c.LogLevel = value
	case "default_provision":
		c.DefaultProvision = value
	case "attendance_band_width":
		return setFloat(&c.AttendanceBandWidth, key, value)
	case "attendance_max":
		return setFloat(&c.AttendanceMax, key, value)
	case "multiple_deprivation_threshold":
		n, err := aggregate.ParseInt(key, value)
		if err != nil {
			return err
		}
		c.MultipleDeprivationThreshold = n
	case "score_prefixes":
		var ps []string
		for _, p := range strings.Split(value, ",") {
			if p = strings.TrimSpace(p); p != "" {
				ps = append(ps, p)
			}
		}
		c.ScorePrefixes = ps
	default:
		role, ok := strings.CutPrefix(key, "columns.")
		if !ok {
			return fmt.Errorf("unknown key: %s", key)
		}
		field, ok := columnKeys(&c.Columns)[role]
		if !ok {
			return fmt.Errorf("unknown column role: %s", role)
		}
		*field = value
	}
	return nil
}

func setFloat(dst *float64, key, value string) error {
	f, err := aggregate.ParseFloat(key, value)
	if err != nil {
		return err
	}
	*dst = f
	return nil
}
