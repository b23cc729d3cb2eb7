package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/ksriramreddy/procurement-ai/db"
	"github.com/ksriramreddy/procurement-ai/model"
)

// InternalVendorHandler serves imported vendor profiles. The collection is
// read-only through this API and mixes two schema generations, so lookups
// try both document shapes.
type InternalVendorHandler struct {
	coll *mongo.Collection
}

func NewInternalVendorHandler(database *db.Mongo) *InternalVendorHandler {
	return &InternalVendorHandler{coll: database.InternalVendors()}
}

func (h *InternalVendorHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/internal-vendors")
	g.GET("", h.List)
	g.GET("/by-vendor-id/:vid", h.GetByVendorID)
	g.GET("/search/all-ids", h.ListVendorIDs)
	g.GET("/:id", h.Get)
}

func (h *InternalVendorHandler) List(c *gin.Context) {
	cursor, err := h.coll.Find(c.Request.Context(), bson.M{}, options.Find().SetLimit(listLimit))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	docs := []bson.M{}
	if err := cursor.All(c.Request.Context(), &docs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	for i := range docs {
		docs[i] = docToResponse(docs[i])
	}
	c.JSON(http.StatusOK, docs)
}

func (h *InternalVendorHandler) Get(c *gin.Context) {
	id, ok := parseObjectID(c, c.Param("id"))
	if !ok {
		return
	}

	var doc bson.M
	err := h.coll.FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Internal vendor not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, docToResponse(doc))
}

// GetByVendorID searches the vendor id at the top level first, then nested
// under vendor_profile. A missing profile yields the placeholder payload
// with a 200, never a 404.
func (h *InternalVendorHandler) GetByVendorID(c *gin.Context) {
	vid := c.Param("vid")
	ctx := c.Request.Context()

	var doc bson.M
	err := h.coll.FindOne(ctx, bson.M{"vendor_id": vid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		err = h.coll.FindOne(ctx, bson.M{"vendor_profile.vendor_id": vid}).Decode(&doc)
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusOK, model.InternalVendorPlaceholder(vid))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, docToResponse(doc))
}

// ListVendorIDs scans both document shapes and returns every vendor id in
// the collection.
func (h *InternalVendorHandler) ListVendorIDs(c *gin.Context) {
	cursor, err := h.coll.Find(c.Request.Context(), bson.M{}, options.Find().SetLimit(listLimit))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	docs := []bson.M{}
	if err := cursor.All(c.Request.Context(), &docs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	vendorIDs := []string{}
	for _, doc := range docs {
		if id, ok := model.InternalVendorID(doc); ok {
			vendorIDs = append(vendorIDs, id)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total":      len(vendorIDs),
		"vendor_ids": vendorIDs,
		"collection": "internal_vendors",
	})
}
