package entity

import (
	"github.com/google/uuid"
)

type LoginLog struct {
	BaseSimple
	UserID    uuid.UUID `db:"user_id"`
	IPAddress string    `db:"ip_address"`
	UserAgent string    `db:"user_agent"`
}
