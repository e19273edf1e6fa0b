package orm

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Profile struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"type:varchar(320);not null;uniqueIndex"`
	Name      string
	ImageURL  string
	Servers   []Server `gorm:"foreignKey:ProfileID"`
	Members   []Member `gorm:"foreignKey:ProfileID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Profile) TableName() string {
	return "profile"
}

func (c *PostgresClient) SelectProfileByID(ctx context.Context, id uint) (*Profile, error) {
	var profile Profile
	tx := c.database.WithContext(ctx).
		Where("id = ?", id).
		First(&profile)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return &profile, nil
}

func (c *PostgresClient) SelectProfileByEmail(ctx context.Context, email string) (*Profile, error) {
	var profile Profile
	tx := c.database.WithContext(ctx).
		Where("email = ?", email).
		First(&profile)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return &profile, nil
}

func (c *PostgresClient) SelectProfileByIDWithServers(ctx context.Context, id uint) (*Profile, error) {
	var profile Profile
	tx := c.database.WithContext(ctx).
		Preload("Servers", orderByCreation).
		Preload("Servers.Channels", orderByCreation).
		Where("id = ?", id).
		First(&profile)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return &profile, nil
}

func (c *PostgresClient) SelectProfileByEmailWithServers(ctx context.Context, email string) (*Profile, error) {
	var profile Profile
	tx := c.database.WithContext(ctx).
		Preload("Servers", orderByCreation).
		Preload("Servers.Channels", orderByCreation).
		Where("email = ?", email).
		First(&profile)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return &profile, nil
}

func (c *PostgresClient) InsertProfile(ctx context.Context, profile *Profile) error {
	tx := c.database.WithContext(ctx).Create(profile)
	return tx.Error
}

func orderByCreation(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}
