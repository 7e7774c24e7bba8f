package pipelines

import "go.mongodb.org/mongo-driver/bson"

// LookupCreatedByUser joins the deck's creator from the users collection,
// projecting only the fields exposed to clients.
func LookupCreatedByUser() bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from": "users",
		"let":  bson.M{"createdBy": "$createdBy"},
		"pipeline": bson.A{
			bson.D{{Key: "$match", Value: bson.M{
				"$expr": bson.M{"$eq": bson.A{"$_id", "$$createdBy"}},
			}}},
			bson.D{{Key: "$limit", Value: 1}},
			bson.D{{Key: "$project", Value: bson.M{
				"_id":       1,
				"firstName": 1,
				"lastName":  1,
				"email":     1,
			}}},
		},
		"as": "createdUsers",
	}}}
}

func SetCreatedByUser() bson.D {
	return bson.D{{Key: "$set", Value: bson.M{
		"createdByUser": bson.M{"$arrayElemAt": bson.A{"$createdUsers", 0}},
	}}}
}

func UnsetCreatedUsers() bson.D {
	return bson.D{{Key: "$unset", Value: "createdUsers"}}
}
