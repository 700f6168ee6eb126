package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀
const EnvPrefix = "STUDENTDOC"

var (
	// GlobalConfig 全局配置实例
	GlobalConfig *Config

	// DefaultRoleListKeywords 角色列表默认保留的角色名关键字(医生、普通用户)
	DefaultRoleListKeywords = []string{"医生", "用户"}
)

// LoadConfig 加载配置文件
// configPath: 配置文件目录，如果为空则使用默认路径
// env: 环境标识，支持 development, test, production
func LoadConfig(configPath, env string) (*Config, error) {
	// .env 文件只作为环境变量的补充，不存在时忽略
	if err := loadDotEnv(configPath); err != nil {
		return nil, err
	}

	if env == "" {
		env = getEnvFromEnvironment()
	}
	if configPath == "" {
		configPath = getDefaultConfigPath()
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(getConfigFileName(configPath, env))

	// 设置环境变量前缀
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)
	bindEnvironmentVariables(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if len(config.App.RoleListKeywords) == 0 {
		config.App.RoleListKeywords = slices.Clone(DefaultRoleListKeywords)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	GlobalConfig = &config
	return &config, nil
}

// loadDotEnv 加载 .env 文件(当前目录或配置目录上一级)
func loadDotEnv(configPath string) error {
	candidates := []string{".env"}
	if configPath != "" {
		candidates = append(candidates, filepath.Join(filepath.Dir(filepath.Clean(configPath)), ".env"))
	}
	for _, file := range candidates {
		err := godotenv.Load(file)
		if err == nil {
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load env file %s: %w", file, err)
		}
	}
	return nil
}

// setDefaults 默认值，配置文件缺省字段时生效
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("session.store", "memory")
	v.SetDefault("monitor.metrics.path", "/metrics")
	v.SetDefault("app.name", "studentdocument")
	v.SetDefault("app.environment", "development")
}

// getEnvFromEnvironment 从环境变量获取环境标识
func getEnvFromEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = os.Getenv("GO_ENV")
	}
	if env == "" {
		env = "development"
	}
	return env
}

// getDefaultConfigPath 获取默认配置文件路径
func getDefaultConfigPath() string {
	if configPath := os.Getenv(EnvPrefix + "_CONFIG_PATH"); configPath != "" {
		return configPath
	}
	return "configs"
}

// getConfigFileName 根据环境获取配置文件名
func getConfigFileName(configPath, env string) string {
	var configFile string

	switch env {
	case "production", "prod":
		configFile = filepath.Join(configPath, "config.prod.yaml")
	case "test", "testing":
		configFile = filepath.Join(configPath, "config.test.yaml")
	default:
		configFile = filepath.Join(configPath, "config.yaml")
	}

	// 环境专属文件不存在时回退到 config.yaml
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		defaultConfig := filepath.Join(configPath, "config.yaml")
		if _, err := os.Stat(defaultConfig); err == nil {
			return defaultConfig
		}
	}

	return configFile
}

// bindEnvironmentVariables 绑定环境变量
func bindEnvironmentVariables(v *viper.Viper) {
	// 数据库配置
	_ = v.BindEnv("database.driver", EnvPrefix+"_DB_DRIVER")
	_ = v.BindEnv("database.mysql.host", EnvPrefix+"_MYSQL_HOST")
	_ = v.BindEnv("database.mysql.port", EnvPrefix+"_MYSQL_PORT")
	_ = v.BindEnv("database.mysql.username", EnvPrefix+"_MYSQL_USERNAME")
	_ = v.BindEnv("database.mysql.password", EnvPrefix+"_MYSQL_PASSWORD")
	_ = v.BindEnv("database.mysql.database", EnvPrefix+"_MYSQL_DATABASE")

	_ = v.BindEnv("database.postgres.host", EnvPrefix+"_POSTGRES_HOST")
	_ = v.BindEnv("database.postgres.port", EnvPrefix+"_POSTGRES_PORT")
	_ = v.BindEnv("database.postgres.username", EnvPrefix+"_POSTGRES_USERNAME")
	_ = v.BindEnv("database.postgres.password", EnvPrefix+"_POSTGRES_PASSWORD")
	_ = v.BindEnv("database.postgres.database", EnvPrefix+"_POSTGRES_DATABASE")

	_ = v.BindEnv("database.redis.host", EnvPrefix+"_REDIS_HOST")
	_ = v.BindEnv("database.redis.port", EnvPrefix+"_REDIS_PORT")
	_ = v.BindEnv("database.redis.password", EnvPrefix+"_REDIS_PASSWORD")

	// JWT配置
	_ = v.BindEnv("security.jwt.secret", EnvPrefix+"_JWT_SECRET")
	_ = v.BindEnv("security.jwt.access_token_expire", EnvPrefix+"_JWT_ACCESS_TOKEN_EXPIRE")
	_ = v.BindEnv("security.jwt.refresh_token_expire", EnvPrefix+"_JWT_REFRESH_TOKEN_EXPIRE")

	// 服务器配置
	_ = v.BindEnv("server.host", EnvPrefix+"_SERVER_HOST")
	_ = v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT")
	_ = v.BindEnv("server.mode", EnvPrefix+"_SERVER_MODE")

	_ = v.BindEnv("app.environment", EnvPrefix+"_APP_ENVIRONMENT")
	_ = v.BindEnv("session.store", EnvPrefix+"_SESSION_STORE")
}

// validateConfig 验证配置
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if !slices.Contains([]string{"debug", "release", "test"}, config.Server.Mode) {
		return fmt.Errorf("invalid server mode: %s", config.Server.Mode)
	}

	switch config.Database.Driver {
	case "mysql":
		if config.Database.MySQL.Host == "" {
			return fmt.Errorf("mysql host is required")
		}
		if config.Database.MySQL.Database == "" {
			return fmt.Errorf("mysql database name is required")
		}
	case "postgres":
		if config.Database.Postgres.Host == "" {
			return fmt.Errorf("postgres host is required")
		}
		if config.Database.Postgres.Database == "" {
			return fmt.Errorf("postgres database name is required")
		}
	default:
		return fmt.Errorf("invalid database driver: %s", config.Database.Driver)
	}

	if len(config.Security.JWT.Secret) < 32 {
		return fmt.Errorf("jwt secret must be at least 32 characters long")
	}

	if !slices.Contains([]string{"debug", "info", "warn", "error", "fatal", "panic"}, config.Log.Level) {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if !slices.Contains([]string{"json", "text"}, config.Log.Format) {
		return fmt.Errorf("invalid log format: %s", config.Log.Format)
	}
	if !slices.Contains([]string{"stdout", "stderr", "file"}, config.Log.Output) {
		return fmt.Errorf("invalid log output: %s", config.Log.Output)
	}
	if config.Log.Output == "file" && config.Log.FilePath == "" {
		return fmt.Errorf("log file path is required when output is file")
	}

	if !slices.Contains([]string{"memory", "redis"}, config.Session.Store) {
		return fmt.Errorf("invalid session store: %s", config.Session.Store)
	}
	if config.Session.Store == "redis" && config.Database.Redis.Host == "" {
		return fmt.Errorf("redis host is required when session store is redis")
	}

	return nil
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	return GlobalConfig
}

