package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Vault   VaultConfig       `yaml:"vault"`
	SQLite  SQLiteConfig      `yaml:"sqlite"`
	AI      AIConfig          `yaml:"ai"`
	OCR     OCRConfig         `yaml:"ocr"`
	Article ArticleConfig     `yaml:"article"`
	Auth    AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Vault.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.AI.Validate(); err != nil {
		return err
	}
	if err := c.Article.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration for serve mode.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns the HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// VaultConfig holds the vault location and its directory layout. All
// directories are relative to Path.
type VaultConfig struct {
	Path        string `yaml:"path"`
	DailyDir    string `yaml:"daily_dir"`
	DailyPDFDir string `yaml:"daily_pdf_dir"`
	WeeklyDir   string `yaml:"weekly_dir"`
	FleetingDir string `yaml:"fleeting_dir"`
	BookmarkDir string `yaml:"bookmark_dir"`
	BooksDir    string `yaml:"books_dir"`
}

// Validate validates the vault configuration.
func (c *VaultConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.DailyDir, validation.Required),
		validation.Field(&c.DailyPDFDir, validation.Required),
		validation.Field(&c.WeeklyDir, validation.Required),
		validation.Field(&c.FleetingDir, validation.Required),
		validation.Field(&c.BookmarkDir, validation.Required),
		validation.Field(&c.BooksDir, validation.Required),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AIConfig holds generative-text service configuration. With Mock set the
// canned offline client is used and no API key is needed.
type AIConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
	Mock   bool   `yaml:"mock"`
}

// Validate validates the AI configuration.
func (c *AIConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Model, validation.Required),
	); err != nil {
		return err
	}
	if !c.Mock && c.APIKey == "" {
		return fmt.Errorf("ai: api_key is required unless mock is enabled")
	}
	return nil
}

// OCRConfig holds OCR configuration.
type OCRConfig struct {
	Lang string `yaml:"lang"`
	Mock bool   `yaml:"mock"`
}

// ArticleConfig holds article-fetch configuration.
type ArticleConfig struct {
	TimeoutSeconds int  `yaml:"timeout_seconds"`
	Mock           bool `yaml:"mock"`
}

// Validate validates the article-fetch configuration.
func (c *ArticleConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.TimeoutSeconds, validation.Required, validation.Min(1), validation.Max(600)),
	)
}

// AuthConfig holds authentication configuration for serve mode.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local use.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values. The
// directory layout matches the vault conventions the pipelines grew out of.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Vault: VaultConfig{
			Path:        "./vault",
			DailyDir:    "50_daily",
			DailyPDFDir: "50_daily_pdf",
			WeeklyDir:   "60_weekly",
			FleetingDir: "10_fleeting",
			BookmarkDir: "20_inputs/Resource_Raindrop",
			BooksDir:    "20_inputs/Resource_Kindle読書",
		},
		SQLite: SQLiteConfig{
			Path: "./ansuz.db",
		},
		AI: AIConfig{
			Model: "gemini-2.0-flash",
			Mock:  false,
		},
		OCR: OCRConfig{
			Lang: "jpn",
		},
		Article: ArticleConfig{
			TimeoutSeconds: 30,
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
