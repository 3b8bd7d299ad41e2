package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		events, err := app.FindCollectionByNameOrId("events")
		if err != nil {
			return err
		}
		registrations, err := app.FindCollectionByNameOrId("registrations")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("payments")
		collection.Fields.Add(
			&core.RelationField{
				Name:         "event",
				CollectionId: events.Id,
				Required:     true,
				MaxSelect:    1,
			},
			&core.RelationField{
				Name:         "registration",
				CollectionId: registrations.Id,
				MaxSelect:    1,
			},
			&core.NumberField{
				Name: "amount",
				Min:  types.Pointer(0.0),
			},
			&core.SelectField{
				Name:      "status",
				Values:    []string{"unpaid", "paid", "cancelled", "refunded"},
				MaxSelect: 1,
			},
			&core.TextField{
				Name: "payer_name",
			},
			&core.EmailField{
				Name: "payer_email",
			},
			&core.AutodateField{
				Name:     "created",
				OnCreate: true,
			},
			&core.AutodateField{
				Name:     "updated",
				OnCreate: true,
				OnUpdate: true,
			},
		)

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("payments")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
