package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Rana718/Roster/internal/seeder"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	FileName = "roster.config.json"
	envFile  = ".env"
)

type Config struct {
	Version      string     `json:"version" mapstructure:"version"`
	RawDir       string     `json:"raw_dir" mapstructure:"raw_dir" validate:"required"`
	CleanDir     string     `json:"clean_dir" mapstructure:"clean_dir" validate:"required,nefield=RawDir"`
	ExportPath   string     `json:"export_path" mapstructure:"export_path" validate:"required"`
	RulesFile    string     `json:"rules_file,omitempty" mapstructure:"rules_file"`
	SurnamesFile string     `json:"surnames_file,omitempty" mapstructure:"surnames_file"`
	Database     Database   `json:"database" mapstructure:"database"`
	Generation   Generation `json:"generation" mapstructure:"generation"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider" validate:"oneof=postgresql postgres mysql sqlite sqlite3"`
	URLEnv   string `json:"url_env" mapstructure:"url_env" validate:"required"`
}

type Generation struct {
	Seed                  int64    `json:"seed" mapstructure:"seed"`
	MaxClassSize          int      `json:"max_class_size" mapstructure:"max_class_size" validate:"gte=1"`
	MaxSectionsPerTeacher int      `json:"max_sections_per_teacher" mapstructure:"max_sections_per_teacher" validate:"gte=1"`
	BackfillStaffing      bool     `json:"backfill_staffing" mapstructure:"backfill_staffing"`
	Families              Families `json:"families" mapstructure:"families"`
}

type Families struct {
	OnlyChildren int `json:"only_children" mapstructure:"only_children" validate:"gte=0"`
	Pairs        int `json:"pairs" mapstructure:"pairs" validate:"gte=0"`
	Trios        int `json:"trios" mapstructure:"trios" validate:"gte=0"`
	Quads        int `json:"quads" mapstructure:"quads" validate:"gte=0"`
	Quints       int `json:"quints" mapstructure:"quints" validate:"gte=0"`
	TwinSets     int `json:"twin_sets" mapstructure:"twin_sets" validate:"gte=0"`
	TripletSets  int `json:"triplet_sets" mapstructure:"triplet_sets" validate:"gte=0"`
}

func DefaultConfig() *Config {
	seed := seeder.DefaultSeedConfig()
	return &Config{
		Version:    "1",
		RawDir:     "data/raw",
		CleanDir:   "data/clean",
		ExportPath: "data/export",
		Database: Database{
			Provider: "sqlite",
			URLEnv:   "DATABASE_URL",
		},
		Generation: Generation{
			Seed:                  seed.Seed,
			MaxClassSize:          seed.MaxClassSize,
			MaxSectionsPerTeacher: seed.MaxSectionsPerTeacher,
			BackfillStaffing:      seed.BackfillStaffing,
			Families: Families{
				OnlyChildren: seed.Families.OnlyChildren,
				Pairs:        seed.Families.Pairs,
				Trios:        seed.Families.Trios,
				Quads:        seed.Families.Quads,
				Quints:       seed.Families.Quints,
				TwinSets:     seed.Families.TwinSets,
				TripletSets:  seed.Families.TripletSets,
			},
		},
	}
}

// Load reads the viper state populated by the root command and fills every
// key the config file leaves unset from DefaultConfig.
func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	def := DefaultConfig()
	if cfg.Version == "" {
		cfg.Version = def.Version
	}
	if cfg.RawDir == "" {
		cfg.RawDir = def.RawDir
	}
	if cfg.CleanDir == "" {
		cfg.CleanDir = def.CleanDir
	}
	if cfg.ExportPath == "" {
		cfg.ExportPath = def.ExportPath
	}
	if cfg.Database.Provider == "" {
		cfg.Database.Provider = def.Database.Provider
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = def.Database.URLEnv
	}

	gen := &cfg.Generation
	if !viper.IsSet("generation.seed") {
		gen.Seed = def.Generation.Seed
	}
	if gen.MaxClassSize == 0 {
		gen.MaxClassSize = def.Generation.MaxClassSize
	}
	if gen.MaxSectionsPerTeacher == 0 {
		gen.MaxSectionsPerTeacher = def.Generation.MaxSectionsPerTeacher
	}
	if !viper.IsSet("generation.backfill_staffing") {
		gen.BackfillStaffing = def.Generation.BackfillStaffing
	}
	if !viper.IsSet("generation.families") {
		gen.Families = def.Generation.Families
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			first := errs[0]
			return fmt.Errorf("invalid config: %s failed on '%s' (value %v)", first.Namespace(), first.Tag(), first.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

func (c *Config) EnsureDirectories() error {
	dirs := []string{c.RawDir, c.CleanDir, c.ExportPath}

	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// SeedConfig maps the generation section onto the generator settings,
// loading the surname pool from surnames_file when one is configured.
func (c *Config) SeedConfig() (seeder.SeedConfig, error) {
	g := c.Generation
	cfg := seeder.SeedConfig{
		Seed:                  g.Seed,
		MaxClassSize:          g.MaxClassSize,
		MaxSectionsPerTeacher: g.MaxSectionsPerTeacher,
		BackfillStaffing:      g.BackfillStaffing,
		Families: seeder.FamilyPlan{
			OnlyChildren: g.Families.OnlyChildren,
			Pairs:        g.Families.Pairs,
			Trios:        g.Families.Trios,
			Quads:        g.Families.Quads,
			Quints:       g.Families.Quints,
			TwinSets:     g.Families.TwinSets,
			TripletSets:  g.Families.TripletSets,
		},
	}

	if c.SurnamesFile != "" {
		data, err := os.ReadFile(c.SurnamesFile)
		if err != nil {
			return cfg, fmt.Errorf("failed to read surnames file: %w", err)
		}
		cfg.Surnames = seeder.ParseSurnames(string(data))
		if len(cfg.Surnames) == 0 {
			return cfg, fmt.Errorf("surnames file %s has no names", c.SurnamesFile)
		}
	}
	return cfg, nil
}

func IsInitialized() bool {
	_, err := os.Stat(FileName)
	return err == nil
}

// InitializeProject writes the default config file, a .env stub when none
// exists, and the data directories. It refuses to overwrite a config file.
func InitializeProject() error {
	if IsInitialized() {
		return fmt.Errorf("%s already exists", FileName)
	}

	cfg := DefaultConfig()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(FileName, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to create %s: %w", FileName, err)
	}

	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		stub := fmt.Sprintf("# connection string used by roster export --postgres / --mysql\n%s=\n", cfg.Database.URLEnv)
		if err := os.WriteFile(envFile, []byte(stub), 0644); err != nil {
			return fmt.Errorf("failed to create %s: %w", envFile, err)
		}
	}

	return cfg.EnsureDirectories()
}
