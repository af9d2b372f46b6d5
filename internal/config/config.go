package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	DB       DBConfig       `mapstructure:"db"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Billing  BillingConfig  `mapstructure:"billing"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Referral ReferralConfig `mapstructure:"referral"`
	Cron     CronConfig     `mapstructure:"cron"`
	Feed     FeedConfig     `mapstructure:"feed"`
}

type AppConfig struct {
	Env   string `mapstructure:"env"`
	Brand string `mapstructure:"brand"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
	Issuer    string        `mapstructure:"issuer"`
}

type CacheConfig struct {
	// Backend is "redis" or "memory".
	Backend  string `mapstructure:"backend"`
	RedisURL string `mapstructure:"redis_url"`

	LeaderboardTTL time.Duration `mapstructure:"leaderboard_ttl"`
	OracleTTL      time.Duration `mapstructure:"oracle_ttl"`
}

type BillingConfig struct {
	// Mode selects the checkout provider implementation at wiring time:
	// "stripe" or "mock". Webhook signature verification does not depend on it.
	Mode             string        `mapstructure:"mode"`
	SecretKey        string        `mapstructure:"secret_key"`
	WebhookSecret    string        `mapstructure:"webhook_secret"`
	WebhookTolerance time.Duration `mapstructure:"webhook_tolerance"`
	PriceMonthly     string        `mapstructure:"price_monthly"`
	PriceYearly      string        `mapstructure:"price_yearly"`
	CheckoutBaseURL  string        `mapstructure:"checkout_base_url"`
	SuccessURL       string        `mapstructure:"success_url"`
	CancelURL        string        `mapstructure:"cancel_url"`
}

type AdminConfig struct {
	Emails []string `mapstructure:"emails"`
}

type ReferralConfig struct {
	ProThreshold int    `mapstructure:"pro_threshold"`
	LinkBase     string `mapstructure:"link_base"`
}

type CronConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	SubscriptionSweep  string `mapstructure:"subscription_sweep"`
	LeaderboardRefresh string `mapstructure:"leaderboard_refresh"`
	NotificationPurge  string `mapstructure:"notification_purge"`
}

type FeedConfig struct {
	BufferSize int `mapstructure:"buffer_size"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	v.SetDefault("app.env", "dev")
	v.SetDefault("app.brand", "TradeFlex")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("auth.issuer", "tradeflex")
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.leaderboard_ttl", "60s")
	v.SetDefault("cache.oracle_ttl", "15s")
	v.SetDefault("billing.mode", "mock")
	v.SetDefault("billing.webhook_tolerance", "5m")
	v.SetDefault("billing.checkout_base_url", "https://checkout.stripe.com")
	v.SetDefault("billing.success_url", "http://localhost:3000/profile")
	v.SetDefault("billing.cancel_url", "http://localhost:3000/pricing")
	v.SetDefault("referral.pro_threshold", 3)
	v.SetDefault("referral.link_base", "https://tradeflex.app")
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.subscription_sweep", "@every 1h")
	v.SetDefault("cron.leaderboard_refresh", "@every 5m")
	v.SetDefault("cron.notification_purge", "@daily")
	v.SetDefault("feed.buffer_size", 64)

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
