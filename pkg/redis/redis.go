package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"decanat/config"
)

// Client Redis 客户端封装
// 用于 Token 黑名单与登录限流；连接失败时调用方以 nil 降级运行
type Client struct {
	rdb    goredis.UniversalClient
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	c := NewFromUniversal(goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}), logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return c, nil
}

// NewFromUniversal 包装已有的 go-redis 客户端（测试或自定义部署时使用）
func NewFromUniversal(rdb goredis.UniversalClient, logger *zap.Logger) *Client {
	return &Client{rdb: rdb, logger: logger}
}

// ── Token 黑名单 ──

const blacklistPrefix = "decanat:token:blacklist:"

// BlacklistToken 将 JWT ID 加入黑名单，TTL 与 Token 剩余有效期一致
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // 已过期
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted 检查 JWT ID 是否在黑名单中
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── 账号级 Token 失效 ──

const revokedPrefix = "decanat:token:revoked_before:"

// RevokeUserTokens 使该账号此刻之前签发的 Token 全部失效
// ttl 取 Token 有效期，过期后旧 Token 自然无效，记录随之清除
func (c *Client) RevokeUserTokens(ctx context.Context, userID int, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	key := revokedPrefix + strconv.Itoa(userID)
	return c.rdb.Set(ctx, key, time.Now().Unix(), ttl).Err()
}

// TokensRevokedAt 返回账号 Token 的失效时间点，未设置时返回零值
func (c *Client) TokensRevokedAt(ctx context.Context, userID int) (time.Time, error) {
	sec, err := c.rdb.Get(ctx, revokedPrefix+strconv.Itoa(userID)).Int64()
	if errors.Is(err, goredis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(sec, 0), nil
}

// ── 限流 ──

const rateLimitPrefix = "decanat:rate_limit:"

// CheckRateLimit 滑动窗口限流：窗口内请求数未超过 limit 时返回 true
// 使用有序集合记录请求时间戳，先清理窗口外记录再计数
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	fullKey := rateLimitPrefix + key
	windowStart := now.Add(-window).UnixNano()

	pipe := c.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, fullKey, "0", strconv.FormatInt(windowStart, 10))
	// 同一纳秒内的并发请求也需各占一条记录
	pipe.ZAdd(ctx, fullKey, goredis.Z{Score: float64(now.UnixNano()), Member: uuid.NewString()})
	card := pipe.ZCard(ctx, fullKey)
	pipe.Expire(ctx, fullKey, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return card.Val() <= int64(limit), nil
}

// Ping 健康检查
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
