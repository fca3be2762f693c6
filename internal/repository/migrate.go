package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates the three persisted regions (rooms, pending
// orders, settled orders) plus the user table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&roomModel{},
		&pendingOrderModel{},
		&settledOrderModel{},
	)
}
