package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/bulksheet-generator/internal/domain"
	"github.com/vfg2006/bulksheet-generator/internal/usecases/bulksheet"
)

// Perfis de layout da planilha de pesquisa
const (
	ProfileClassic   = "classic"
	ProfilePlacement = "placement"
)

type Config struct {
	App      App      `mapstructure:",squash"`
	Server   Server   `mapstructure:",squash"`
	Auth     Auth     `mapstructure:",squash"`
	Survey   Survey   `mapstructure:",squash"`
	Output   Output   `mapstructure:",squash"`
	Defaults Defaults `mapstructure:",squash"`
	Inbox    Inbox    `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	UploadMaxBytes int64    `mapstructure:"upload_max_bytes"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Auth struct {
	Enabled   bool     `mapstructure:"auth_enabled"`
	Secret    string   `mapstructure:"auth_secret"`
	Operators []string `mapstructure:"auth_operators"` // nome:hash-bcrypt
}

type Survey struct {
	Profile             string `mapstructure:"survey_profile"`
	Sheet               string `mapstructure:"survey_sheet"`
	CampaignColumn      string `mapstructure:"survey_campaign_column"`
	KeywordColumnStart  int    `mapstructure:"survey_keyword_column_start"` // base 1, 0 = padrão do perfil
	KeywordColumnEnd    int    `mapstructure:"survey_keyword_column_end"`   // base 1 inclusivo, 0 = padrão do perfil
	AsinStrategy        string `mapstructure:"survey_asin_strategy"`
	PlacementAdjustment string `mapstructure:"survey_placement_adjustment"` // vazio = padrão do perfil
}

type Output struct {
	Locale string `mapstructure:"output_locale"`
}

type Defaults struct {
	CPC         string `mapstructure:"default_cpc"`
	SKU         string `mapstructure:"default_sku"`
	GroupBid    string `mapstructure:"default_group_bid"`
	DailyBudget string `mapstructure:"default_daily_budget"`
	Placement   string `mapstructure:"default_placement"`
	Percentage  string `mapstructure:"default_percentage"`
}

type Inbox struct {
	Dir          string `mapstructure:"inbox_dir"`
	OutboxDir    string `mapstructure:"outbox_dir"`
	ArchiveDir   string `mapstructure:"archive_dir"`
	CronSchedule string `mapstructure:"inbox_sweep_cron"`
	Enabled      bool   `mapstructure:"inbox_sweep_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("UPLOAD_MAX_BYTES", 32<<20) // 32 MiB
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("AUTH_ENABLED", false)
	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_OPERATORS", "")

	viper.SetDefault("SURVEY_PROFILE", ProfilePlacement)
	viper.SetDefault("SURVEY_SHEET", "")
	viper.SetDefault("SURVEY_CAMPAIGN_COLUMN", "")
	viper.SetDefault("SURVEY_KEYWORD_COLUMN_START", 0)
	viper.SetDefault("SURVEY_KEYWORD_COLUMN_END", 0)
	viper.SetDefault("SURVEY_ASIN_STRATEGY", "")
	viper.SetDefault("SURVEY_PLACEMENT_ADJUSTMENT", "")

	viper.SetDefault("OUTPUT_LOCALE", domain.LocaleZH)

	// Valores vazios mantêm os padrões do motor
	viper.SetDefault("DEFAULT_CPC", "")
	viper.SetDefault("DEFAULT_SKU", "")
	viper.SetDefault("DEFAULT_GROUP_BID", "")
	viper.SetDefault("DEFAULT_DAILY_BUDGET", "")
	viper.SetDefault("DEFAULT_PLACEMENT", "")
	viper.SetDefault("DEFAULT_PERCENTAGE", "")

	viper.SetDefault("INBOX_DIR", "data/inbox")
	viper.SetDefault("OUTBOX_DIR", "data/outbox")
	viper.SetDefault("ARCHIVE_DIR", "data/archive")
	viper.SetDefault("INBOX_SWEEP_CRON", "*/5 * * * *") // A cada 5 minutos
	viper.SetDefault("INBOX_SWEEP_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env): ", err)
	} else {
		logrus.Debug("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.Survey.Profile {
	case ProfileClassic, ProfilePlacement:
	default:
		return fmt.Errorf("config: unknown survey profile %q", c.Survey.Profile)
	}

	if c.Auth.Enabled && strings.TrimSpace(c.Auth.Secret) == "" {
		return fmt.Errorf("config: AUTH_SECRET is required when AUTH_ENABLED is true")
	}

	if _, err := c.Auth.OperatorHashes(); err != nil {
		return err
	}

	if c.Server.UploadMaxBytes <= 0 {
		return fmt.Errorf("config: UPLOAD_MAX_BYTES must be positive")
	}

	return nil
}

// OperatorHashes interpreta AUTH_OPERATORS ("ana:$2a$10$...,bruno:$2a$10$...")
func (a Auth) OperatorHashes() (map[string]string, error) {
	operators := make(map[string]string, len(a.Operators))
	for _, entry := range a.Operators {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		name, hash, ok := strings.Cut(entry, ":")
		if !ok || strings.TrimSpace(name) == "" || strings.TrimSpace(hash) == "" {
			return nil, fmt.Errorf("config: AUTH_OPERATORS entry %q must be name:hash", entry)
		}
		operators[strings.TrimSpace(name)] = strings.TrimSpace(hash)
	}
	return operators, nil
}

// EngineOptions monta a configuração do motor a partir do perfil e das sobrescritas
func (c *Config) EngineOptions() (bulksheet.Options, error) {
	var opts bulksheet.Options
	switch c.Survey.Profile {
	case ProfileClassic:
		opts = bulksheet.ClassicOptions()
	case ProfilePlacement, "":
		opts = bulksheet.DefaultOptions()
	default:
		return opts, fmt.Errorf("config: unknown survey profile %q", c.Survey.Profile)
	}

	if c.Survey.CampaignColumn != "" {
		opts.CampaignColumn = c.Survey.CampaignColumn
	}

	// Colunas em base 1 inclusiva, convertidas para o intervalo semiaberto do motor
	if c.Survey.KeywordColumnStart > 0 {
		opts.KeywordColumns.Start = c.Survey.KeywordColumnStart - 1
	}
	if c.Survey.KeywordColumnEnd > 0 {
		opts.KeywordColumns.End = c.Survey.KeywordColumnEnd
	}
	if opts.KeywordColumns.End <= opts.KeywordColumns.Start {
		return opts, fmt.Errorf("config: keyword columns %d..%d are empty",
			opts.KeywordColumns.Start+1, opts.KeywordColumns.End)
	}

	if c.Survey.AsinStrategy != "" {
		opts.AsinStrategy = c.Survey.AsinStrategy
	}

	if c.Survey.PlacementAdjustment != "" {
		enabled, err := strconv.ParseBool(c.Survey.PlacementAdjustment)
		if err != nil {
			return opts, fmt.Errorf("config: SURVEY_PLACEMENT_ADJUSTMENT: %w", err)
		}
		opts.PlacementAdjustment = enabled
	}

	if c.Output.Locale != "" {
		labels, err := domain.LabelsFor(c.Output.Locale)
		if err != nil {
			return opts, fmt.Errorf("config: %w", err)
		}
		opts.Labels = labels
	}

	opts.Defaults = c.Defaults.apply(opts.Defaults)

	return opts, nil
}

func (d Defaults) apply(base domain.CampaignParams) domain.CampaignParams {
	override := func(target *string, value string) {
		if strings.TrimSpace(value) != "" {
			*target = strings.TrimSpace(value)
		}
	}

	override(&base.CPC, d.CPC)
	override(&base.SKU, d.SKU)
	override(&base.GroupBid, d.GroupBid)
	override(&base.DailyBudget, d.DailyBudget)
	override(&base.Placement, d.Placement)
	override(&base.Percentage, d.Percentage)

	return base
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Debug("Arquivo .env carregado de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
