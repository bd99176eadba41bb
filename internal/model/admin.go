package model

import "golang.org/x/crypto/bcrypt"

// Admin is the credential record consulted at login. The core never mutates
// it except for the session token version.
type Admin struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Password     string `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	TokenVersion string `gorm:"type:varchar(64);default:''" json:"-"`
}

func (Admin) TableName() string {
	return "admin"
}

// SetPassword hashes and sets the admin's password
func (a *Admin) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (a *Admin) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password))
	return err == nil
}
