package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee doubles as the login account. Back-office staff are provisioned
// directly; there is no self-service signup.
type Employee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	FullName     string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(50);not null;default:'EMPLOYEE'"`
	HireDate     time.Time `gorm:"type:date;not null"`
	IsActive     bool      `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
