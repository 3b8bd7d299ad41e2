package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		registrations, err := app.FindCollectionByNameOrId("registrations")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("attendance_history")
		collection.Fields.Add(
			&core.RelationField{
				Name:         "registration",
				CollectionId: registrations.Id,
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
			&core.TextField{
				Name: "note",
			},
			&core.AutodateField{
				Name:     "created",
				OnCreate: true,
			},
		)

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("attendance_history")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
