package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		events, err := app.FindCollectionByNameOrId("events")
		if err != nil {
			return err
		}
		tickets, err := app.FindCollectionByNameOrId("tickets")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("registrations")
		collection.Fields.Add(
			&core.RelationField{
				Name:         "event",
				CollectionId: events.Id,
				Required:     true,
				MaxSelect:    1,
			},
			&core.RelationField{
				Name:         "ticket",
				CollectionId: tickets.Id,
				Required:     true,
				MaxSelect:    1,
			},
			&core.TextField{
				Name:     "name",
				Required: true,
			},
			&core.EmailField{
				Name:     "email",
				Required: true,
			},
			&core.JSONField{
				Name:    "extra",
				MaxSize: 5000,
			},
			&core.SelectField{
				Name:      "status",
				Values:    []string{"confirmed", "cancelled"},
				MaxSelect: 1,
			},
			&core.SelectField{
				Name:      "attendance_status",
				Values:    []string{"present", "absent", "late", "early_leave"},
				MaxSelect: 1,
			},
			&core.TextField{
				Name: "attendance_note",
			},
			&core.TextField{
				Name:   "checkin_hash",
				Hidden: true,
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
		collection, err := app.FindCollectionByNameOrId("registrations")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
