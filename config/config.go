package config

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeySheetsBaseURL   = "sheets.base_url"
	KeySheetsTimeout   = "sheets.timeout"
	KeySheetsUserAgent = "sheets.user_agent"
	KeyInfoSheetIDEnv  = "sheets.info.sheet_id_env"
	KeyInfoGIDEnv      = "sheets.info.gid_env"
	KeyServerPort      = "server.port"
	KeyLogLevel        = "log.level"
	KeyLogFormat       = "log.format"
	KeyPages           = "pages"
)

const (
	SectionServices = "services"
	SectionProducts = "products"
)

type Config struct {
	Sheets SheetsConfig `mapstructure:"sheets"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Pages  []Page       `mapstructure:"pages" validate:"dive"`
}

type SheetsConfig struct {
	BaseURL   string        `mapstructure:"base_url" validate:"required,url"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gte=0"`
	UserAgent string        `mapstructure:"user_agent"`
	Info      SheetRef      `mapstructure:"info"`
}

// SheetRef names a spreadsheet tab either directly or through environment
// variables. Direct values win.
type SheetRef struct {
	SheetID    string `mapstructure:"sheet_id"`
	GID        string `mapstructure:"gid"`
	SheetIDEnv string `mapstructure:"sheet_id_env"`
	GIDEnv     string `mapstructure:"gid_env"`
}

type ServerConfig struct {
	Port int `mapstructure:"port" validate:"min=1,max=65535"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

type Page struct {
	Section     string      `mapstructure:"section" validate:"required"`
	ServiceType string      `mapstructure:"service_type" validate:"required"`
	Data        SheetRef    `mapstructure:"data"`
	DefaultInfo DefaultInfo `mapstructure:"default_info"`
}

type DefaultInfo struct {
	Title       string `mapstructure:"title" validate:"required"`
	Description string `mapstructure:"description"`
	ContactCTA  string `mapstructure:"contact_cta"`
	// ShowPrices accepts a YAML bool or the strings "true"/"false".
	ShowPrices any `mapstructure:"show_prices"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validatePages(cfg.Pages); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeySheetsBaseURL, defaultBaseURL)
	v.SetDefault(KeySheetsTimeout, defaultTimeout)
	v.SetDefault(KeySheetsUserAgent, defaultUserAgent)
	v.SetDefault(KeyInfoSheetIDEnv, defaultInfoSheetIDEnv)
	v.SetDefault(KeyInfoGIDEnv, defaultInfoGIDEnv)
	v.SetDefault(KeyServerPort, defaultPort)
	v.SetDefault(KeyLogLevel, defaultLogLevel)
	v.SetDefault(KeyLogFormat, defaultLogFormat)
	v.SetDefault(KeyPages, defaultPages())
}

func validatePages(pages []Page) error {
	validSections := map[string]bool{
		SectionServices: true,
		SectionProducts: true,
	}
	seen := make(map[string]struct{}, len(pages))
	for i, page := range pages {
		section := strings.ToLower(strings.TrimSpace(page.Section))
		if !validSections[section] {
			return fmt.Errorf(
				"validation failed: pages[%d].section %q is not supported (valid: services, products)",
				i,
				page.Section,
			)
		}
		key := page.Key()
		if _, exists := seen[key]; exists {
			return fmt.Errorf("validation failed: duplicate page %q", key)
		}
		seen[key] = struct{}{}

		if strings.TrimSpace(page.Data.SheetID) == "" && strings.TrimSpace(page.Data.SheetIDEnv) == "" {
			return fmt.Errorf("validation failed: pages[%d] requires data.sheet_id or data.sheet_id_env", i)
		}
		if !validShowPrices(page.DefaultInfo.ShowPrices) {
			return fmt.Errorf(
				"validation failed: pages[%d].default_info.show_prices must be a bool or \"true\"/\"false\"",
				i,
			)
		}
	}
	return nil
}

func validShowPrices(value any) bool {
	switch v := value.(type) {
	case nil, bool:
		return true
	case string:
		return v == "true" || v == "false"
	}
	return false
}
