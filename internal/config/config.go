package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	Database   Database   `mapstructure:",squash"`
	Auth       Auth       `mapstructure:",squash"`
	Redis      Redis      `mapstructure:",squash"`
	Cloudinary Cloudinary `mapstructure:",squash"`
	Mailer     Mailer     `mapstructure:",squash"`
	Catalog    Catalog    `mapstructure:",squash"`
}

type App struct {
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Auth struct {
	Secret       string        `mapstructure:"auth_secret"`
	SessionTTL   time.Duration `mapstructure:"auth_session_ttl"`
	AdminViewTTL time.Duration `mapstructure:"auth_admin_view_ttl"`
}

type Redis struct {
	Enabled  bool   `mapstructure:"redis_enabled"`
	Addr     string `mapstructure:"redis_addr"`
	Username string `mapstructure:"redis_username"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

type Cloudinary struct {
	CloudName string `mapstructure:"cloudinary_cloud_name"`
	APIKey    string `mapstructure:"cloudinary_api_key"`
	APISecret string `mapstructure:"cloudinary_api_secret"`
	Folder    string `mapstructure:"cloudinary_folder"`
}

// Enabled indica se as credenciais do Cloudinary foram informadas
func (c Cloudinary) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

type Mailer struct {
	ResendAPIKey   string   `mapstructure:"resend_api_key"`
	From           string   `mapstructure:"mail_from"`
	LeadRecipients []string `mapstructure:"mail_lead_recipients"`
}

type Catalog struct {
	LeadCapture       bool          `mapstructure:"catalog_lead_capture"`
	RedirectDelay     time.Duration `mapstructure:"catalog_redirect_delay"`
	CouponAckDuration time.Duration `mapstructure:"catalog_coupon_ack_duration"`
	FeaturedPageSize  int           `mapstructure:"catalog_featured_page_size"`
	DeleteConfirmTTL  time.Duration `mapstructure:"catalog_delete_confirm_ttl"`
	CacheTTL          time.Duration `mapstructure:"catalog_cache_ttl"`
	SnapshotEnabled   bool          `mapstructure:"catalog_snapshot_enabled"`
	SnapshotCron      string        `mapstructure:"catalog_snapshot_cron"`
}

func SetDefaults() {
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "debug")

	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/benefits?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AUTH_SECRET", "your_secret_key") // ONLY LOCAL
	viper.SetDefault("AUTH_SESSION_TTL", "24h")
	viper.SetDefault("AUTH_ADMIN_VIEW_TTL", "30m")

	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_USERNAME", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	viper.SetDefault("CLOUDINARY_API_KEY", "")
	viper.SetDefault("CLOUDINARY_API_SECRET", "")
	viper.SetDefault("CLOUDINARY_FOLDER", "benefit-logos")

	viper.SetDefault("RESEND_API_KEY", "")
	viper.SetDefault("MAIL_FROM", "Clube de Benefícios <beneficios@pagaleve.com.br>")
	viper.SetDefault("MAIL_LEAD_RECIPIENTS", "")

	viper.SetDefault("CATALOG_LEAD_CAPTURE", true)
	viper.SetDefault("CATALOG_REDIRECT_DELAY", "1500ms")     // Tempo entre a confirmação e o redirecionamento
	viper.SetDefault("CATALOG_COUPON_ACK_DURATION", "3s")    // Tempo do aviso de cupom copiado
	viper.SetDefault("CATALOG_FEATURED_PAGE_SIZE", 8)        // Empresas por página no carrossel de tiers
	viper.SetDefault("CATALOG_DELETE_CONFIRM_TTL", "5m")     // Validade do token de confirmação de exclusão
	viper.SetDefault("CATALOG_CACHE_TTL", "10m")             // Validade do cache de benefícios ativos
	viper.SetDefault("CATALOG_SNAPSHOT_ENABLED", false)      // Regenerar o catálogo público a partir do banco
	viper.SetDefault("CATALOG_SNAPSHOT_CRON", "*/15 * * * *") // A cada 15 minutos
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
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

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Validate verifica valores que impediriam o funcionamento do serviço
func (c *Config) Validate() error {
	if c.Auth.Secret == "" {
		return fmt.Errorf("AUTH_SECRET é obrigatório")
	}
	if c.Catalog.RedirectDelay < 0 {
		return fmt.Errorf("CATALOG_REDIRECT_DELAY não pode ser negativo")
	}
	if c.Catalog.FeaturedPageSize <= 0 {
		return fmt.Errorf("CATALOG_FEATURED_PAGE_SIZE deve ser maior que zero")
	}
	if c.Catalog.SnapshotEnabled && c.Catalog.SnapshotCron == "" {
		return fmt.Errorf("CATALOG_SNAPSHOT_CRON é obrigatório quando o snapshot está habilitado")
	}
	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
