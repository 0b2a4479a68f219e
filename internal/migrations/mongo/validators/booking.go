package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"date",
			"customer_name",
			"customer_email",
			"customer_phone",
			"restaurant_name",
			"party_size",
			"time_slot",
			"tables_reserved",
			"status",
			"created_at",
			"updated_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 8,
				"maxLength": 8,
			},

			"date": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{2}\.\d{2}\.\d{4}$`,
			},

			"customer_name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"customer_email": bson.M{
				"bsonType": "string",
			},

			"customer_phone": bson.M{
				"bsonType": "string",
			},

			"restaurant_name": bson.M{
				"bsonType": "string",
			},

			"restaurant_address": bson.M{
				"bsonType": "string",
			},

			"party_size": bson.M{
				"bsonType": "int",
				"minimum":  1,
			},

			"time_slot": bson.M{
				"bsonType": "string",
			},

			"tables_reserved": bson.M{
				"bsonType": "int",
				"minimum":  1,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"confirmed",
					"cancelled",
					"cancelled (tracker error)",
				},
			},

			"special_requests": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
