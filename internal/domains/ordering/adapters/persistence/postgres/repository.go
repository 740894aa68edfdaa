package postgres

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/spicehouse/storefront-api/internal/domains/ordering/domain"
	"github.com/spicehouse/storefront-api/internal/domains/ordering/ports"
	"github.com/spicehouse/storefront-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// ErrNotConnected is returned while the order ledger database has not been
// bound yet. Startup connects in the background, so the repository can exist
// before its backing store does.
var ErrNotConnected = errors.New("order ledger database not connected")

// Repository persists customers and orders in PostgreSQL using GORM-mapped
// columns. Placement runs as a single transaction so the customer upsert and
// the order insert commit or roll back together.
type Repository struct {
	db atomic.Pointer[gorm.DB]
}

// NewRepository wires a PostgreSQL-backed repository. A nil db is allowed;
// Bind attaches the handle once the background connect succeeds.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{}
	if db != nil {
		repo.db.Store(db)
	}
	return repo
}

// Bind attaches the database handle. Called once from the startup goroutine
// after connect and migration succeed.
func (r *Repository) Bind(db *gorm.DB) {
	r.db.Store(db)
}

// DB returns the bound handle, or nil while disconnected. The owner uses it
// to close the connection pool on shutdown.
func (r *Repository) DB() *gorm.DB {
	return r.db.Load()
}

type customerRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name"`
	Phone     string    `gorm:"column:phone;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (customerRecord) TableName() string { return "customers" }

type orderRecord struct {
	ID          int64             `gorm:"primaryKey;column:id"`
	CustomerID  int64             `gorm:"column:customer_id;index"`
	Items       []domain.LineItem `gorm:"column:items;serializer:json"`
	ItemNames   pq.StringArray    `gorm:"column:item_names;type:text[]"`
	TotalAmount float64           `gorm:"column:total_amount"`
	Status      string            `gorm:"column:status;type:varchar(32);index"`
	PickupTime  *time.Time        `gorm:"column:pickup_time"`
	CreatedAt   time.Time         `gorm:"column:created_at;index"`
	UpdatedAt   time.Time         `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// PlaceOrder finds or creates the customer by phone and inserts the order in
// one transaction. A concurrent first placement for the same phone is settled
// by the unique index: the conflict path updates the name and reuses the row.
func (r *Repository) PlaceOrder(ctx context.Context, placement domain.Placement) (*ports.OrderWithCustomer, error) {
	db, err := r.handle()
	if err != nil {
		return nil, err
	}
	var (
		customer customerRecord
		order    orderRecord
	)
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.First(&customer, "phone = ?", placement.CustomerPhone).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			customer = customerRecord{Name: placement.CustomerName, Phone: placement.CustomerPhone}
			if createErr := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "phone"}},
				DoUpdates: clause.Assignments(map[string]any{
					"name":       placement.CustomerName,
					"updated_at": gorm.Expr("NOW()"),
				}),
			}).Create(&customer).Error; createErr != nil {
				return createErr
			}
		case findErr != nil:
			return findErr
		case customer.Name != placement.CustomerName:
			if updateErr := tx.Model(&customer).Update("name", placement.CustomerName).Error; updateErr != nil {
				return updateErr
			}
		}
		order = newOrderRecord(placement, customer.ID)
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &ports.OrderWithCustomer{
		Order:    order.toProjection(),
		Customer: customer.toProjection(),
	}, nil
}

// GetOrderByID fetches an order together with its owning customer.
func (r *Repository) GetOrderByID(ctx context.Context, id int64) (*ports.OrderWithCustomer, error) {
	db, err := r.handle()
	if err != nil {
		return nil, err
	}
	var order orderRecord
	if err := db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	result := &ports.OrderWithCustomer{Order: order.toProjection()}
	var customer customerRecord
	if err := db.WithContext(ctx).First(&customer, "id = ?", order.CustomerID).Error; err == nil {
		result.Customer = customer.toProjection()
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return result, nil
}

// FindOrdersByPhone resolves the customer and returns their orders newest
// first.
func (r *Repository) FindOrdersByPhone(ctx context.Context, phone string) ([]*projection.Projection[*domain.Order], error) {
	db, err := r.handle()
	if err != nil {
		return nil, err
	}
	var customer customerRecord
	if err := db.WithContext(ctx).First(&customer, "phone = ?", phone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrCustomerNotFound
		}
		return nil, err
	}
	var records []orderRecord
	if err := db.WithContext(ctx).
		Where("customer_id = ?", customer.ID).
		Order("created_at DESC, id DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*projection.Projection[*domain.Order], 0, len(records))
	for i := range records {
		list = append(list, records[i].toProjection())
	}
	return list, nil
}

// UpdateOrderStatus writes the new status (and pickup time, when set) to a
// single order row.
func (r *Repository) UpdateOrderStatus(ctx context.Context, id int64, status domain.Status, pickupTime *time.Time) (*projection.Projection[*domain.Order], error) {
	db, err := r.handle()
	if err != nil {
		return nil, err
	}
	updates := map[string]any{
		"status":     string(status),
		"updated_at": gorm.Expr("NOW()"),
	}
	if pickupTime != nil {
		updates["pickup_time"] = *pickupTime
	}
	result := db.WithContext(ctx).Model(&orderRecord{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	var record orderRecord
	if err := db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return record.toProjection(), nil
}

func newOrderRecord(placement domain.Placement, customerID int64) orderRecord {
	return orderRecord{
		CustomerID:  customerID,
		Items:       append([]domain.LineItem{}, placement.Items...),
		ItemNames:   pq.StringArray(placement.ItemNames()),
		TotalAmount: placement.TotalAmount,
		Status:      string(domain.StatusPending),
	}
}

func (rec *orderRecord) toProjection() *projection.Projection[*domain.Order] {
	order := &domain.Order{
		ID:          rec.ID,
		CustomerID:  rec.CustomerID,
		Items:       append([]domain.LineItem{}, rec.Items...),
		TotalAmount: rec.TotalAmount,
		Status:      domain.Status(rec.Status),
	}
	if rec.PickupTime != nil {
		pickup := *rec.PickupTime
		order.PickupTime = &pickup
	}
	return &projection.Projection[*domain.Order]{
		Entity:   order,
		Metadata: projection.Metadata{CreatedAt: rec.CreatedAt, UpdatedAt: rec.UpdatedAt},
	}
}

func (rec *customerRecord) toProjection() *projection.Projection[*domain.Customer] {
	return &projection.Projection[*domain.Customer]{
		Entity: &domain.Customer{
			ID:    rec.ID,
			Name:  rec.Name,
			Phone: rec.Phone,
		},
		Metadata: projection.Metadata{CreatedAt: rec.CreatedAt, UpdatedAt: rec.UpdatedAt},
	}
}

func (r *Repository) handle() (*gorm.DB, error) {
	db := r.db.Load()
	if db == nil {
		return nil, ErrNotConnected
	}
	return db, nil
}
