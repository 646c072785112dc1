package validators

import "go.mongodb.org/mongo-driver/bson"

var OperatingHoursValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"ground_id",
			"day_of_week",
			"is_closed",
			"updated_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"ground_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"day_of_week": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
				"maximum":  6,
			},

			"is_closed": bson.M{
				"bsonType": "bool",
			},

			"start_time": bson.M{
				"bsonType": "string",
				"pattern":  "^([01][0-9]|2[0-3]):[0-5][0-9]$",
			},

			"end_time": bson.M{
				"bsonType": "string",
				"pattern":  "^([01][0-9]|2[0-3]):[0-5][0-9]$",
			},

			"slot_duration_minutes": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  15,
				"maximum":  480,
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
