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

type VendorComplianceHandler struct {
	coll *mongo.Collection
}

func NewVendorComplianceHandler(database *db.Mongo) *VendorComplianceHandler {
	return &VendorComplianceHandler{coll: database.VendorCompliances()}
}

func (h *VendorComplianceHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/vendor-compliances")
	g.PUT("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("/:id", h.Replace)
	g.PATCH("/:id", h.Patch)
	g.DELETE("/:id", h.Delete)
	g.OPTIONS("", optionsProbe)
}

func (h *VendorComplianceHandler) Create(c *gin.Context) {
	var data model.VendorComplianceCreate
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	data.ApplyDefaults()

	result, err := h.coll.InsertOne(c.Request.Context(), data)
	if err != nil {
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

func (h *VendorComplianceHandler) List(c *gin.Context) {
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

func (h *VendorComplianceHandler) Get(c *gin.Context) {
	id, ok := parseObjectID(c, c.Param("id"))
	if !ok {
		return
	}

	var doc bson.M
	err := h.coll.FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Vendor compliance not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, docToResponse(doc))
}

func (h *VendorComplianceHandler) Replace(c *gin.Context) {
	id, ok := parseObjectID(c, c.Param("id"))
	if !ok {
		return
	}

	var data model.VendorComplianceCreate
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
		c.JSON(http.StatusNotFound, gin.H{"detail": "Vendor compliance not found"})
		return
	}

	var doc bson.M
	if err := h.coll.FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, docToResponse(doc))
}

func (h *VendorComplianceHandler) Patch(c *gin.Context) {
	id, ok := parseObjectID(c, c.Param("id"))
	if !ok {
		return
	}

	var data model.VendorComplianceUpdate
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
		c.JSON(http.StatusNotFound, gin.H{"detail": "Vendor compliance not found"})
		return
	}

	var doc bson.M
	if err := h.coll.FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, docToResponse(doc))
}

func (h *VendorComplianceHandler) Delete(c *gin.Context) {
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
		c.JSON(http.StatusNotFound, gin.H{"detail": "Vendor compliance not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vendor compliance deleted successfully"})
}
