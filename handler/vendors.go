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

type VendorHandler struct {
	coll     *mongo.Collection
	internal *mongo.Collection
}

func NewVendorHandler(database *db.Mongo) *VendorHandler {
	return &VendorHandler{
		coll:     database.Vendors(),
		internal: database.InternalVendors(),
	}
}

func (h *VendorHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/vendors")
	g.PUT("", h.Create)
	g.GET("", h.List)
	g.GET("/by-vendor-id/:vid", h.GetByVendorID)
	g.GET("/profile/:vid", h.GetProfile)
	g.GET("/:id", h.Get)
	g.POST("/:id", h.Replace)
	g.PATCH("/:id", h.Patch)
	g.DELETE("/:id", h.Delete)
	g.OPTIONS("", optionsProbe)
}

// Create inserts a new vendor. vendor_id carries a unique index, so a
// duplicate natural key is a conflict.
func (h *VendorHandler) Create(c *gin.Context) {
	var data model.VendorCreate
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	data.ApplyDefaults()

	result, err := h.coll.InsertOne(c.Request.Context(), data)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"detail": "Vendor with this vendor_id already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	var doc bson.M
	if err := h.coll.FindOne(c.Request.Context(), bson.M{"_id": result.InsertedID}).Decode(&doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, docToResponse(doc))
}

func (h *VendorHandler) List(c *gin.Context) {
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

func (h *VendorHandler) Get(c *gin.Context) {
	id, ok := parseObjectID(c, c.Param("id"))
	if !ok {
		return
	}

	var doc bson.M
	err := h.coll.FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Vendor not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, docToResponse(doc))
}

// GetByVendorID looks a vendor up by its natural key.
func (h *VendorHandler) GetByVendorID(c *gin.Context) {
	var doc bson.M
	err := h.coll.FindOne(c.Request.Context(), bson.M{"vendor_id": c.Param("vid")}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Vendor not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, docToResponse(doc))
}

// GetProfile resolves a vendor profile across the vendors and
// internal-vendors collections (both schema shapes). A missing profile is a
// placeholder payload, not a 404, so agent flows can render an empty profile.
func (h *VendorHandler) GetProfile(c *gin.Context) {
	vid := c.Param("vid")
	ctx := c.Request.Context()

	var doc bson.M
	err := h.coll.FindOne(ctx, bson.M{"vendor_id": vid}).Decode(&doc)
	if err == nil {
		c.JSON(http.StatusOK, docToResponse(doc))
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	err = h.internal.FindOne(ctx, bson.M{"vendor_id": vid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		err = h.internal.FindOne(ctx, bson.M{"vendor_profile.vendor_id": vid}).Decode(&doc)
	}
	if err == nil {
		c.JSON(http.StatusOK, docToResponse(doc))
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.InternalVendorPlaceholder(vid))
}

// Replace fully replaces the vendor's fields, preserving its ID.
func (h *VendorHandler) Replace(c *gin.Context) {
	id, ok := parseObjectID(c, c.Param("id"))
	if !ok {
		return
	}

	var data model.VendorCreate
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	data.ApplyDefaults()

	result, err := h.coll.ReplaceOne(c.Request.Context(), bson.M{"_id": id}, data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Vendor not found"})
		return
	}

	var doc bson.M
	if err := h.coll.FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, docToResponse(doc))
}

// Patch merges only the supplied fields. An empty patch never reaches
// storage.
func (h *VendorHandler) Patch(c *gin.Context) {
	id, ok := parseObjectID(c, c.Param("id"))
	if !ok {
		return
	}

	var data model.VendorUpdate
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	set := data.SetMap()
	if len(set) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "No fields to update"})
		return
	}

	result, err := h.coll.UpdateOne(c.Request.Context(), bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Vendor not found"})
		return
	}

	var doc bson.M
	if err := h.coll.FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, docToResponse(doc))
}

func (h *VendorHandler) Delete(c *gin.Context) {
	id, ok := parseObjectID(c, c.Param("id"))
	if !ok {
		return
	}

	result, err := h.coll.DeleteOne(c.Request.Context(), bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Vendor not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vendor deleted successfully"})
}
