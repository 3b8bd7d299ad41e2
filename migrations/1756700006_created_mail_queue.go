package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("mail_queue")
		collection.Fields.Add(
			&core.EmailField{
				Name:     "recipient",
				Required: true,
			},
			&core.TextField{
				Name: "subject",
			},
			&core.TextField{
				Name: "body",
				Max:  50000,
			},
			&core.SelectField{
				Name:      "status",
				Values:    []string{"pending", "sent", "failed"},
				MaxSelect: 1,
			},
			&core.NumberField{
				Name:    "attempts",
				OnlyInt: true,
			},
			&core.TextField{
				Name: "last_error",
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
		collection, err := app.FindCollectionByNameOrId("mail_queue")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
