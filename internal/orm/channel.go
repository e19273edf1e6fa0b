package orm

import (
	"context"
	"time"
)

type ChannelType string

const (
	ChannelTypeText  ChannelType = "TEXT"
	ChannelTypeAudio ChannelType = "AUDIO"
	ChannelTypeVideo ChannelType = "VIDEO"
)

// ChannelTypes lists every accepted channel type in display order.
var ChannelTypes = []ChannelType{
	ChannelTypeText,
	ChannelTypeAudio,
	ChannelTypeVideo,
}

func (t ChannelType) Valid() bool {
	switch t {
	case ChannelTypeText, ChannelTypeAudio, ChannelTypeVideo:
		return true
	}
	return false
}

type Channel struct {
	ID        uint        `gorm:"primaryKey"`
	Name      string      `gorm:"not null"`
	Type      ChannelType `gorm:"type:varchar(16);not null;default:'TEXT'"`
	ServerID  uint        `gorm:"not null;index"`
	ProfileID uint        `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Channel) TableName() string {
	return "channel"
}

func (c *PostgresClient) InsertChannel(ctx context.Context, channel *Channel) error {
	tx := c.database.WithContext(ctx).Create(channel)
	return tx.Error
}

func (c *PostgresClient) CountChannelsByServerID(ctx context.Context, serverID uint) (int64, error) {
	var count int64
	tx := c.database.WithContext(ctx).
		Model(&Channel{}).
		Where("server_id = ?", serverID).
		Count(&count)
	return count, tx.Error
}
