package postgres

import (
	"context"

	"github.com/campus-hq/portal-service/internal/models"
	"github.com/campus-hq/portal-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ===== OTP =====

type OTPPostgreSQL struct {
	db *gorm.DB
}

func NewOTPPostgreSQL(db *gorm.DB) repositories.OTPRepository {
	return &OTPPostgreSQL{db: db}
}

func (o *OTPPostgreSQL) Create(ctx context.Context, otp *models.OTP) error {
	return o.db.WithContext(ctx).Create(otp).Error
}

func (o *OTPPostgreSQL) GetLatestByEmail(ctx context.Context, email string) (*models.OTP, error) {
	var otp models.OTP
	err := o.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at desc").
		First(&otp).Error
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

func (o *OTPPostgreSQL) MarkUsed(ctx context.Context, id uint) error {
	return o.db.WithContext(ctx).Model(&models.OTP{}).
		Where("id = ?", id).
		Update("used", true).Error
}

// ===== PUSH =====

type PushPostgreSQL struct {
	db *gorm.DB
}

func NewPushPostgreSQL(db *gorm.DB) repositories.PushRepository {
	return &PushPostgreSQL{db: db}
}

// CreateSubscription upserts on endpoint: re-subscribing a known endpoint
// refreshes its keys and reactivates it.
func (p *PushPostgreSQL) CreateSubscription(ctx context.Context, sub *models.PushSubscription) error {
	return p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"keys", "owner_id", "owner_type", "is_active", "updated_at"}),
	}).Create(sub).Error
}

func (p *PushPostgreSQL) GetSubscriptionByEndpoint(ctx context.Context, endpoint string) (*models.PushSubscription, error) {
	var sub models.PushSubscription
	err := p.db.WithContext(ctx).Where("endpoint = ?", endpoint).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (p *PushPostgreSQL) ListActiveSubscriptions(ctx context.Context) ([]*models.PushSubscription, error) {
	var subs []*models.PushSubscription
	err := p.db.WithContext(ctx).Where("is_active = ?", true).Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (p *PushPostgreSQL) DeactivateSubscription(ctx context.Context, id uint) error {
	return p.db.WithContext(ctx).Model(&models.PushSubscription{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (p *PushPostgreSQL) DeleteSubscriptionByEndpoint(ctx context.Context, endpoint string) error {
	return p.db.WithContext(ctx).
		Where("endpoint = ?", endpoint).
		Delete(&models.PushSubscription{}).Error
}

func (p *PushPostgreSQL) CreateLog(ctx context.Context, n *models.PushNotification) error {
	return p.db.WithContext(ctx).Create(n).Error
}

func (p *PushPostgreSQL) ListLogs(ctx context.Context, limit int) ([]*models.PushNotification, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}
	var logs []*models.PushNotification
	err := p.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// DeleteLog is idempotent: deleting an ID that no longer exists is not an
// error.
func (p *PushPostgreSQL) DeleteLog(ctx context.Context, id uint) error {
	return p.db.WithContext(ctx).Delete(&models.PushNotification{}, id).Error
}

// ===== AD SETTINGS =====

type SettingsPostgreSQL struct {
	db *gorm.DB
}

func NewSettingsPostgreSQL(db *gorm.DB) repositories.SettingsRepository {
	return &SettingsPostgreSQL{db: db}
}

// The toggle lives in a single row with a fixed primary key.
const adSettingsRowID = 1

func (s *SettingsPostgreSQL) GetAds(ctx context.Context) (*models.AdSettings, error) {
	var settings models.AdSettings
	err := s.db.WithContext(ctx).First(&settings, adSettingsRowID).Error
	if err != nil {
		if repositories.IsNotFoundError(err) {
			// Never-written toggle reads as off.
			return &models.AdSettings{ID: adSettingsRowID, Enabled: false}, nil
		}
		return nil, err
	}
	return &settings, nil
}

func (s *SettingsPostgreSQL) UpsertAds(ctx context.Context, enabled bool) (*models.AdSettings, error) {
	settings := models.AdSettings{ID: adSettingsRowID, Enabled: enabled}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"enabled", "updated_at"}),
	}).Create(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}
