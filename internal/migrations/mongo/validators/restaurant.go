package validators

import "go.mongodb.org/mongo-driver/bson"

var RestaurantValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"location",
			"address",
			"phone",
			"max_party_size",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 200,
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

			"cuisines": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"approx_cost": bson.M{
				"bsonType": "int",
				"minimum":  0,
			},

			"rating": bson.M{
				"bsonType": "double",
				"minimum":  0,
				"maximum":  5,
			},

			"max_party_size": bson.M{
				"bsonType": "int",
				"minimum":  1,
			},
		},
	},
}
