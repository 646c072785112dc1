package validators

import "go.mongodb.org/mongo-driver/bson"

var AdminUserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"email",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"email": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 254,
			},

			"note": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},
		},
	},
}
