package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // 容器镜像可能缺少 zoneinfo

	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Feature  FeatureConfig  `mapstructure:"feature"`
	Calendar CalendarConfig `mapstructure:"calendar"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port           int        `mapstructure:"port"`
	BodyLimitBytes int64      `mapstructure:"body_limit_bytes"`
	CORS           CORSConfig `mapstructure:"cors"`
}

// CORSConfig 跨域配置
// AllowOrigins 含 "*" 时放行任意来源（前端开发环境默认如此）
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig PostgreSQL 数据库配置
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // 分钟
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // 分钟
}

// DSN 生成 PostgreSQL 连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis 配置（Token 黑名单与登录限流）
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig JWT 认证配置
type AuthConfig struct {
	JWTSecret      string        `mapstructure:"jwt_secret"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// FeatureConfig 功能开关配置
type FeatureConfig struct {
	// RequireAuth 为 true 时业务路由要求 Bearer Token 并按角色鉴权
	RequireAuth bool `mapstructure:"require_auth"`
	// LoginRateLimit 每个 IP 每分钟允许的登录次数，0 表示不限流
	LoginRateLimit int `mapstructure:"login_rate_limit"`
}

// CalendarConfig 课表日历导出配置
type CalendarConfig struct {
	Timezone string `mapstructure:"timezone"`
	// PairTimes 第 N 节课的起止时间，格式 "08:30-10:00"，下标 0 对应第 1 节
	PairTimes []string `mapstructure:"pair_times"`
}

// MaxPairNumber 每天最多的课节数
const MaxPairNumber = 8

// DefaultPairTimes 默认作息时间
var DefaultPairTimes = []string{
	"08:30-10:00",
	"10:10-11:40",
	"11:50-13:20",
	"13:50-15:20",
	"15:30-17:00",
	"17:10-18:40",
	"18:50-20:20",
	"20:30-22:00",
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 5191)
	v.SetDefault("server.body_limit_bytes", 1<<20)
	v.SetDefault("server.cors.allow_origins", []string{"*"})

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "decanat")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Europe/Moscow")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.conn_max_idle_time", 30)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.access_token_ttl", "12h")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("feature.require_auth", false)
	v.SetDefault("feature.login_rate_limit", 10)

	v.SetDefault("calendar.timezone", "Europe/Moscow")
	v.SetDefault("calendar.pair_times", DefaultPairTimes)

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("DECANAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 不能为空")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 长度不能少于 16 字符")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	if len(c.Calendar.PairTimes) != MaxPairNumber {
		return fmt.Errorf("配置校验失败: calendar.pair_times 必须包含 %d 项", MaxPairNumber)
	}
	for i, pt := range c.Calendar.PairTimes {
		if _, _, err := ParsePairTime(pt); err != nil {
			return fmt.Errorf("配置校验失败: calendar.pair_times[%d]: %w", i, err)
		}
	}
	if _, err := time.LoadLocation(c.Calendar.Timezone); err != nil {
		return fmt.Errorf("配置校验失败: calendar.timezone 无效: %w", err)
	}
	return nil
}

// ParsePairTime 解析 "HH:MM-HH:MM"，返回自零点起的开始与结束偏移
func ParsePairTime(s string) (time.Duration, time.Duration, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("格式应为 HH:MM-HH:MM: %q", s)
	}
	start, err := time.Parse("15:04", strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("开始时间无效 %q: %w", parts[0], err)
	}
	end, err := time.Parse("15:04", strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("结束时间无效 %q: %w", parts[1], err)
	}
	startOff := time.Duration(start.Hour())*time.Hour + time.Duration(start.Minute())*time.Minute
	endOff := time.Duration(end.Hour())*time.Hour + time.Duration(end.Minute())*time.Minute
	if endOff <= startOff {
		return 0, 0, fmt.Errorf("结束时间必须晚于开始时间: %q", s)
	}
	return startOff, endOff, nil
}
