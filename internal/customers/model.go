package customers

import (
	"time"

	"github.com/google/uuid"

	"github.com/retailcore/pos-register-backend/pkg/enums"
)

// Customer is a directory entry referenced by carts and transactions by ID.
type Customer struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	Email     string             `json:"email,omitempty"`
	Phone     string             `json:"phone,omitempty"`
	Tier      enums.CustomerTier `json:"tier"`
	CreatedAt time.Time          `json:"created_at"`
}
