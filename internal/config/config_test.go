package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigContent = `
server:
  host: "localhost"
  port: 8080
  mode: "test"
  read_timeout: 30s
  write_timeout: 30s

database:
  driver: "mysql"
  mysql:
    host: "localhost"
    port: 3306
    username: "test_user"
    password: "test_password"
    database: "student_document"
    charset: "utf8mb4"
    parse_time: true
    loc: "Local"
  redis:
    host: "localhost"
    port: 6379

log:
  level: "info"
  format: "json"
  output: "stdout"

security:
  jwt:
    secret: "test_jwt_secret_key_at_least_32_chars"
    issuer: "studentdoc-test"
    access_token_expire: 1h
    refresh_token_expire: 168h
  rate_limit:
    enabled: true
    requests_per_second: 20
    burst_size: 40

session:
  store: "memory"

app:
  name: "studentdocument"
  environment: "test"
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	return dir
}

// TestLoadConfig 测试配置加载功能
func TestLoadConfig(t *testing.T) {
	dir := writeConfig(t, "config.yaml", testConfigContent)

	cfg, err := LoadConfig(dir, "development")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "student_document", cfg.Database.MySQL.Database)
	assert.Equal(t, time.Hour, cfg.Security.JWT.AccessTokenExpire)
	assert.Equal(t, 20.0, cfg.Security.RateLimit.RequestsPerSecond)
	assert.Equal(t, "/metrics", cfg.Monitor.Metrics.Path)
	assert.Equal(t, []string{"医生", "用户"}, cfg.App.RoleListKeywords)
	assert.Same(t, cfg, GetConfig())
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := writeConfig(t, "config.yaml", testConfigContent)
	t.Setenv("STUDENTDOC_SERVER_PORT", "9090")
	t.Setenv("STUDENTDOC_MYSQL_DATABASE", "from_env")

	cfg, err := LoadConfig(dir, "")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "from_env", cfg.Database.MySQL.Database)
}

func TestLoadConfigFallsBackToDefaultFile(t *testing.T) {
	dir := writeConfig(t, "config.yaml", testConfigContent)

	cfg, err := LoadConfig(dir, "production")
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.App.Environment)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "short jwt secret",
			content: strings.Replace(testConfigContent, "test_jwt_secret_key_at_least_32_chars", "short", 1),
			wantErr: "jwt secret",
		},
		{
			name: "unknown driver",
			content: `
database:
  driver: "oracle"
security:
  jwt:
    secret: "test_jwt_secret_key_at_least_32_chars"
`,
			wantErr: "invalid database driver",
		},
		{
			name: "postgres requires host",
			content: `
database:
  driver: "postgres"
security:
  jwt:
    secret: "test_jwt_secret_key_at_least_32_chars"
`,
			wantErr: "postgres host is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeConfig(t, "config.yaml", tt.content)
			_, err := LoadConfig(dir, "development")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfigCustomRoleKeywords(t *testing.T) {
	dir := writeConfig(t, "config.yaml", testConfigContent+`  role_list_keywords: ["教师"]
`)

	cfg, err := LoadConfig(dir, "development")
	require.NoError(t, err)
	assert.Equal(t, []string{"教师"}, cfg.App.RoleListKeywords)
}

func TestGetDSN(t *testing.T) {
	mysqlCfg := MySQLConfig{Host: "db", Port: 3306, Username: "u", Password: "p", Database: "d", Charset: "utf8mb4", ParseTime: true, Loc: "Local"}
	assert.Equal(t, "u:p@tcp(db:3306)/d?charset=utf8mb4&parseTime=true&loc=Local", mysqlCfg.GetMySQLDSN())

	pgCfg := PostgresConfig{Host: "pg", Port: 5432, Username: "u", Password: "p", Database: "d"}
	assert.Equal(t, "host=pg port=5432 user=u password=p dbname=d sslmode=disable TimeZone=Asia/Shanghai", pgCfg.GetPostgresDSN())
}

func TestConfigWatcherReload(t *testing.T) {
	dir := writeConfig(t, "config.yaml", testConfigContent)
	_, err := LoadConfig(dir, "development")
	require.NoError(t, err)

	watcher, err := NewConfigWatcher(dir, "development")
	require.NoError(t, err)

	reloaded := make(chan string, 1)
	watcher.AddCallback(func(oldConfig, newConfig *Config) error {
		select {
		case reloaded <- newConfig.Log.Level:
		default:
		}
		return nil
	})
	require.NoError(t, watcher.Start())
	defer watcher.Stop()

	content := strings.Replace(testConfigContent, `level: "info"`, `level: "debug"`, 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	select {
	case level := <-reloaded:
		assert.Equal(t, "debug", level)
	case <-time.After(5 * time.Second):
		t.Fatal("config reload callback not invoked")
	}
}
