package domain

import "time"

type User struct {
	ID        UserID    `gorm:"type:uuid;primaryKey" db:"id" json:"id"`
	Name      string    `gorm:"not null" db:"name" json:"name"`
	Email     string    `gorm:"type:citext;uniqueIndex:ux_users_email" db:"email" json:"email"`
	Phone     string    `gorm:"not null;index:ix_users_phone" db:"phone" json:"phone"`
	CreatedAt time.Time `gorm:"not null" db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" db:"updated_at" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// TrustedContact is an owned value on its parent user: it has no lifecycle of
// its own, and its identity is its position within the parent's list. The
// contact may or may not correspond to a registered user; resolution happens
// lazily at dispatch time.
type TrustedContact struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID       UserID    `gorm:"type:uuid;not null;uniqueIndex:ux_contacts_user_pos,priority:1" json:"-"`
	Position     int       `gorm:"not null;uniqueIndex:ux_contacts_user_pos,priority:2" json:"-"`
	Name         string    `gorm:"not null" json:"name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	Relationship string    `json:"relationship"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
}

func (TrustedContact) TableName() string { return "trusted_contacts" }
