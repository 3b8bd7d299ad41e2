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

		collection := core.NewBaseCollection("tickets")
		collection.Fields.Add(
			&core.RelationField{
				Name:         "event",
				CollectionId: events.Id,
				Required:     true,
				MaxSelect:    1,
			},
			&core.TextField{
				Name:     "name",
				Required: true,
			},
			&core.NumberField{
				Name: "price",
				Min:  types.Pointer(0.0),
			},
			&core.NumberField{
				Name:    "total",
				OnlyInt: true,
				Min:     types.Pointer(0.0),
			},
			// The registration flow mutates remaining with a conditional
			// UPDATE, never below zero.
			&core.NumberField{
				Name:    "remaining",
				OnlyInt: true,
				Min:     types.Pointer(0.0),
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
		collection, err := app.FindCollectionByNameOrId("tickets")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
