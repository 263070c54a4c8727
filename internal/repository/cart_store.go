package repository

import (
	"context"
	"errors"
	"time"

	"github.com/freshgo-shop/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CartStore 购物车字节键值存储端口
// 一个 key 保存一个浏览会话的完整序列化载荷，写入整条覆盖。
// key 不存在时 Load 返回 (nil, nil)，由上层决定空载荷语义。
type CartStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
	Delete(ctx context.Context, key string) error
}

// GormCartStore GORM 实现（cart_records 键值表）
type GormCartStore struct {
	db *gorm.DB
}

// NewGormCartStore 创建数据库购物车存储
func NewGormCartStore(db *gorm.DB) *GormCartStore {
	return &GormCartStore{db: db}
}

// Load 读取载荷
func (s *GormCartStore) Load(ctx context.Context, key string) ([]byte, error) {
	var record models.CartRecord
	if err := s.db.WithContext(ctx).Where("key = ?", key).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record.Payload, nil
}

// Save 整条覆盖写入
func (s *GormCartStore) Save(ctx context.Context, key string, payload []byte) error {
	record := models.CartRecord{
		Key:       key,
		Payload:   payload,
		UpdatedAt: time.Now(),
	}
	db := s.db.WithContext(ctx)
	var existing models.CartRecord
	err := db.Where("key = ?", key).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(&record).Error
	}
	if err != nil {
		return err
	}
	return db.Model(&models.CartRecord{}).Where("key = ?", key).Updates(map[string]interface{}{
		"payload":    record.Payload,
		"updated_at": record.UpdatedAt,
	}).Error
}

// Delete 删除 key
func (s *GormCartStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("key = ?", key).Delete(&models.CartRecord{}).Error
}

// RedisCartStore Redis 实现
type RedisCartStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCartStore 创建 Redis 购物车存储
func NewRedisCartStore(client *redis.Client, prefix string, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Load 读取载荷
func (s *RedisCartStore) Load(ctx context.Context, key string) ([]byte, error) {
	if s.client == nil {
		return nil, errors.New("redis client not initialized")
	}
	payload, err := s.client.Get(ctx, s.buildKey(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// Save 整条覆盖写入
func (s *RedisCartStore) Save(ctx context.Context, key string, payload []byte) error {
	if s.client == nil {
		return errors.New("redis client not initialized")
	}
	return s.client.Set(ctx, s.buildKey(key), payload, s.ttl).Err()
}

// Delete 删除 key
func (s *RedisCartStore) Delete(ctx context.Context, key string) error {
	if s.client == nil {
		return errors.New("redis client not initialized")
	}
	return s.client.Del(ctx, s.buildKey(key)).Err()
}

func (s *RedisCartStore) buildKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}
