package orm

import (
	"context"
	"time"
)

type Server struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"not null"`
	ImageURL   string
	InviteCode string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	ProfileID  uint      `gorm:"not null;index"`
	Profile    *Profile  `gorm:"foreignKey:ProfileID"`
	Channels   []Channel `gorm:"foreignKey:ServerID"`
	Members    []Member  `gorm:"foreignKey:ServerID"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (s *Server) TableName() string {
	return "server"
}

func (c *PostgresClient) SelectServerByID(ctx context.Context, id uint) (*Server, error) {
	var server Server
	tx := c.database.WithContext(ctx).
		Where("id = ?", id).
		First(&server)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return &server, nil
}

func (c *PostgresClient) SelectServerByInviteCode(ctx context.Context, inviteCode string) (*Server, error) {
	var server Server
	tx := c.database.WithContext(ctx).
		Where("invite_code = ?", inviteCode).
		First(&server)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return &server, nil
}

// SelectServerWithRelations loads the server with its channels and members.
func (c *PostgresClient) SelectServerWithRelations(ctx context.Context, id uint) (*Server, error) {
	var server Server
	tx := c.database.WithContext(ctx).
		Preload("Channels", orderByCreation).
		Preload("Members", orderByCreation).
		Where("id = ?", id).
		First(&server)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return &server, nil
}

// SelectMemberServerWithRelations is SelectServerWithRelations restricted to
// servers the profile belongs to. Non-members get gorm.ErrRecordNotFound.
func (c *PostgresClient) SelectMemberServerWithRelations(ctx context.Context, id uint, profileID uint) (*Server, error) {
	var server Server
	tx := c.database.WithContext(ctx).
		Preload("Channels", orderByCreation).
		Preload("Members", orderByCreation).
		Where("id = ?", id).
		Where(
			"EXISTS (SELECT 1 FROM member WHERE member.server_id = server.id AND member.profile_id = ?)",
			profileID,
		).
		First(&server)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return &server, nil
}

func (c *PostgresClient) SelectServersByMemberEmail(ctx context.Context, email string) ([]*Server, error) {
	var servers []*Server
	tx := c.database.WithContext(ctx).
		Joins("JOIN member ON member.server_id = server.id").
		Joins("JOIN profile ON profile.id = member.profile_id").
		Where("profile.email = ?", email).
		Order("server.created_at ASC").
		Order("server.id ASC").
		Find(&servers)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return servers, nil
}

func (c *PostgresClient) InsertServer(ctx context.Context, server *Server) error {
	tx := c.database.WithContext(ctx).Omit("Profile", "Channels", "Members").Create(server)
	return tx.Error
}

// UpdateServer writes name and image only. The invite code has its own writer
// so a profile edit never resurrects a rotated code.
func (c *PostgresClient) UpdateServer(ctx context.Context, server *Server) error {
	tx := c.database.WithContext(ctx).
		Model(server).
		Select("name", "image_url").
		Updates(server)
	return tx.Error
}

func (c *PostgresClient) UpdateServerInviteCode(ctx context.Context, server *Server) error {
	tx := c.database.WithContext(ctx).
		Model(server).
		Update("invite_code", server.InviteCode)
	return tx.Error
}
