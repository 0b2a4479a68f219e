package validators

import "go.mongodb.org/mongo-driver/bson"

// AvailabilityValidator guards the per-(date, restaurant) slot rows. Slot
// labels are free-form keys of the slots document; counts must never be
// negative at rest.
var AvailabilityValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"date",
			"name",
			"slots",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"date": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{2}\.\d{2}\.\d{4}$`,
			},

			"name": bson.M{
				"bsonType": "string",
			},

			"location": bson.M{
				"bsonType": "string",
			},

			"address": bson.M{
				"bsonType": "string",
			},

			"phone": bson.M{
				"bsonType": "string",
			},

			"slots": bson.M{
				"bsonType": "object",
				"additionalProperties": bson.M{
					"bsonType": "int",
					"minimum":  0,
				},
			},
		},
	},
}
