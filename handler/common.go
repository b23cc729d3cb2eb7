package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// listLimit caps result sets; ordering is whatever the store returns.
const listLimit = 1000

var resourceMethods = []string{"PUT", "GET", "POST", "DELETE", "PATCH", "OPTIONS"}

// docToResponse converts a stored document for the API: _id becomes id (hex).
func docToResponse(doc bson.M) bson.M {
	if doc == nil {
		return doc
	}
	if id, ok := doc["_id"].(bson.ObjectID); ok {
		delete(doc, "_id")
		doc["id"] = id.Hex()
	}
	return doc
}

// parseObjectID validates a path identifier before any storage access,
// answering 400 when it is malformed.
func parseObjectID(c *gin.Context, raw string) (bson.ObjectID, bool) {
	id, err := bson.ObjectIDFromHex(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid ID format"})
		return bson.ObjectID{}, false
	}
	return id, true
}

// optionsProbe answers the static capability descriptor for a resource.
func optionsProbe(c *gin.Context) {
	c.Header("Allow", strings.Join(resourceMethods, ", "))
	c.JSON(http.StatusOK, gin.H{"allowed_methods": resourceMethods})
}
