package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the order ledger schema. Intended to replace adapter-level
// automigrate so the repository never mutates the schema on its own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&customerRecord{},
		&orderRecord{},
	)
}

// Customer schema mirrors the ordering Postgres adapter. The phone unique
// index is what settles concurrent first placements for the same customer.
type customerRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name"`
	Phone     string    `gorm:"column:phone;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (customerRecord) TableName() string { return "customers" }

// Order schema mirrors the ordering Postgres adapter.
type orderRecord struct {
	ID          int64          `gorm:"primaryKey;column:id"`
	CustomerID  int64          `gorm:"column:customer_id;index"`
	Items       []byte         `gorm:"column:items;type:jsonb"`
	ItemNames   pq.StringArray `gorm:"column:item_names;type:text[]"`
	TotalAmount float64        `gorm:"column:total_amount"`
	Status      string         `gorm:"column:status;type:varchar(32);index"`
	PickupTime  *time.Time     `gorm:"column:pickup_time"`
	CreatedAt   time.Time      `gorm:"column:created_at;index"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }
