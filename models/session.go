package models

import "time"

// Session is the single durable credential row in the local store: the
// backend token obtained at sign-in. Written only by the sign-in/out
// flow, read once at startup.
type Session struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Token     string `gorm:"type:text;not null" json:"token"`
	Username  string `gorm:"type:varchar(255)" json:"username"`
	Role      string `gorm:"type:varchar(50)" json:"role"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Preference holds small console state that survives restarts, such as
// the last active menu label.
type Preference struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Key       string `gorm:"column:pref_key;type:varchar(100);uniqueIndex;not null" json:"key"`
	Value     string `gorm:"type:varchar(255)" json:"value"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

const PrefCurrentMenu = "currentMenu"
