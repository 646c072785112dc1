package validators

import "go.mongodb.org/mongo-driver/bson"

var GroundValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"city",
			"location",
			"price_per_hour",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"city": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 50,
			},

			"location": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 200,
			},

			"price_per_hour": bson.M{
				"bsonType":         []string{"double", "int", "long", "decimal"},
				"exclusiveMinimum": true,
				"minimum":          0,
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 2000,
			},

			"image_url": bson.M{
				"bsonType": "string",
			},

			"surface_type": bson.M{
				"bsonType":  "string",
				"maxLength": 50,
			},

			"capacity": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},

			"dimensions": bson.M{
				"bsonType":  "string",
				"maxLength": 50,
			},

			"category": bson.M{
				"bsonType":  "string",
				"maxLength": 50,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
