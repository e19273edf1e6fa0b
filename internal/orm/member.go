package orm

import (
	"context"
	"time"
)

type MemberRole string

const (
	MemberRoleAdmin     MemberRole = "ADMIN"
	MemberRoleModerator MemberRole = "MODERATOR"
	MemberRoleGuest     MemberRole = "GUEST"
)

var MemberRoles = []MemberRole{
	MemberRoleAdmin,
	MemberRoleModerator,
	MemberRoleGuest,
}

type Member struct {
	ID        uint       `gorm:"primaryKey"`
	Role      MemberRole `gorm:"type:varchar(16);not null;default:'GUEST'"`
	ProfileID uint       `gorm:"not null;uniqueIndex:idx_member_profile_server"`
	ServerID  uint       `gorm:"not null;uniqueIndex:idx_member_profile_server;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m *Member) TableName() string {
	return "member"
}

func (c *PostgresClient) SelectMember(ctx context.Context, profileID uint, serverID uint) (*Member, error) {
	var member Member
	tx := c.database.WithContext(ctx).
		Where("profile_id = ? AND server_id = ?", profileID, serverID).
		First(&member)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return &member, nil
}

func (c *PostgresClient) InsertMember(ctx context.Context, member *Member) error {
	tx := c.database.WithContext(ctx).Create(member)
	return tx.Error
}
