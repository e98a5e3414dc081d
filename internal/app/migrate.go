package app

import (
	"go-fleetops/internal/attachment"
	"go-fleetops/internal/client"
	"go-fleetops/internal/driver"
	"go-fleetops/internal/fuel"
	"go-fleetops/internal/invoice"
	"go-fleetops/internal/job"
	"go-fleetops/internal/messaging/kafka"
	"go-fleetops/internal/product"
	"go-fleetops/internal/settings"
	"go-fleetops/internal/shared/counter"
	"go-fleetops/internal/shift"
	"go-fleetops/internal/vehicle"

	"gorm.io/gorm"
)

// autoMigrate keeps the schema in sync with the entity structs. Parent tables
// are listed before their children so foreign keys resolve on a cold start.
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&counter.Counter{},
		&kafka.OutboxEventModel{},
		&settings.Setting{},
		&driver.Driver{},
		&vehicle.Vehicle{},
		&vehicle.ServiceRecord{},
		&client.Client{},
		&product.Product{},
		&shift.Shift{},
		&job.Job{},
		&job.JobLine{},
		&invoice.Invoice{},
		&invoice.InvoiceItem{},
		&fuel.FuelPurchase{},
		&attachment.Attachment{},
	)
}
