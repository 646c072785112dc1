package validators

import "go.mongodb.org/mongo-driver/bson"

var UserProfileValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"phone",
			"updated_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 128,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"phone": bson.M{
				"bsonType":  "string",
				"minLength": 4,
				"maxLength": 20,
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
