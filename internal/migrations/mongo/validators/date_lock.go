package validators

import "go.mongodb.org/mongo-driver/bson"

// DateLockValidator guards the advisory slot locks. The _id is the composite
// lock key "date|restaurant|slot"; expiry is enforced by a TTL index.
var DateLockValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"expires_at",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"expires_at": bson.M{
				"bsonType": "date",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
