// Package trashfilter translates a models.TrashFilter into the query
// fragments understood by each record store.
package trashfilter

import (
	"github.com/dmitrijs2005/scanmed/internal/server/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// SQL returns the condition to append to a WHERE clause, including the
// leading AND, or "" for TrashAll.
func SQL(f models.TrashFilter) string {
	switch f {
	case models.TrashAll:
		return ""
	case models.TrashOnly:
		return " AND deleted_at IS NOT NULL"
	default:
		return " AND deleted_at IS NULL"
	}
}

// Mongo returns the document filter selecting userID's records in f.
// Missing deleted_at fields count as active.
func Mongo(userID string, f models.TrashFilter) bson.M {
	filter := bson.M{"user_id": userID}
	switch f {
	case models.TrashAll:
	case models.TrashOnly:
		filter["deleted_at"] = bson.M{"$ne": nil}
	default:
		filter["deleted_at"] = nil
	}
	return filter
}
