package database

import (
	"errors"

	"github.com/yeremiapane/restaurant-backoffice/models"
	"gorm.io/gorm"
)

// SessionStore is the durable side of the console: the backend session
// token and small preferences, read once at startup and kept in sync on
// change. Only the sign-in/out flow writes the token row.
type SessionStore struct {
	DB *gorm.DB
}

func NewSessionStore(db *gorm.DB) (*SessionStore, error) {
	if err := db.AutoMigrate(&models.Session{}, &models.Preference{}); err != nil {
		return nil, err
	}
	return &SessionStore{DB: db}, nil
}

// LoadSession returns the persisted session, or nil when signed out.
func (s *SessionStore) LoadSession() (*models.Session, error) {
	var session models.Session
	err := s.DB.First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// SaveSession replaces whatever session existed with the new one.
func (s *SessionStore) SaveSession(token, username, role string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Session{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.Session{
			Token:    token,
			Username: username,
			Role:     role,
		}).Error
	})
}

// ClearSession removes the stored token on sign-out.
func (s *SessionStore) ClearSession() error {
	return s.DB.Where("1 = 1").Delete(&models.Session{}).Error
}

// GetPreference reads one preference value, empty string when unset.
func (s *SessionStore) GetPreference(key string) (string, error) {
	var pref models.Preference
	err := s.DB.Where("pref_key = ?", key).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return pref.Value, nil
}

// SetPreference upserts one preference value.
func (s *SessionStore) SetPreference(key, value string) error {
	var pref models.Preference
	err := s.DB.Where("pref_key = ?", key).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.DB.Create(&models.Preference{Key: key, Value: value}).Error
	}
	if err != nil {
		return err
	}
	pref.Value = value
	return s.DB.Save(&pref).Error
}
