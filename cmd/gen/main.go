package main

import (
	"fieldops/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.DiscountRequestModel{},
		model.DiscountGrantModel{},
		model.NotificationModel{},
		model.NotificationReceiptModel{},
		model.UserDeviceModel{},
		model.DirectoryUserModel{},
		model.ClientModel{},
		model.FieldActivityModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
		Mode:    gen.WithDefaultQuery | gen.WithQueryInterface,
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
