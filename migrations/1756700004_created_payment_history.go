package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		payments, err := app.FindCollectionByNameOrId("payments")
		if err != nil {
			return err
		}

		// Append-only audit trail: records are created by the payment
		// status transition and never updated.
		collection := core.NewBaseCollection("payment_history")
		collection.Fields.Add(
			&core.RelationField{
				Name:         "payment",
				CollectionId: payments.Id,
				Required:     true,
				MaxSelect:    1,
			},
			&core.TextField{
				Name: "old_status",
			},
			&core.TextField{
				Name:     "new_status",
				Required: true,
			},
			&core.AutodateField{
				Name:     "created",
				OnCreate: true,
			},
		)

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("payment_history")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
