package models

import "time"

// CartRecord 购物车持久化记录（键值对存储，整条覆盖写）
// 一个 key 对应一个浏览会话的完整序列化载荷。
type CartRecord struct {
	Key       string    `gorm:"primarykey;type:varchar(128)" json:"key"` // 存储键
	Payload   []byte    `gorm:"type:blob" json:"payload"`                // 序列化内容
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`                 // 更新时间
}

// TableName 指定表名
func (CartRecord) TableName() string {
	return "cart_records"
}
