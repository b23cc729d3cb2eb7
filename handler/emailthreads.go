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

type EmailThreadHandler struct {
	coll *mongo.Collection
}

func NewEmailThreadHandler(database *db.Mongo) *EmailThreadHandler {
	return &EmailThreadHandler{coll: database.EmailThreads()}
}

func (h *EmailThreadHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/email-threads")
	g.PUT("", h.Create)
	g.PUT("/cert-status", h.UpdateCertStatus)
	g.GET("", h.List)
	g.GET("/by-vendor", h.ListByVendor)
	g.GET("/:id", h.Get)
	g.POST("/:id", h.Replace)
	g.PATCH("/:id", h.Patch)
	g.DELETE("/:id", h.Delete)
	g.OPTIONS("", optionsProbe)
}

func (h *EmailThreadHandler) Create(c *gin.Context) {
	var data model.EmailThreadCreate
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
	c.JSON(http.StatusOK, docToResponse(model.NormalizeThreadDoc(doc)))
}

func (h *EmailThreadHandler) List(c *gin.Context) {
	h.list(c, bson.M{})
}

// ListByVendor takes the vendor id as a query parameter because vendor ids
// are often URLs.
func (h *EmailThreadHandler) ListByVendor(c *gin.Context) {
	vendorID := c.Query("vendor_id")
	if vendorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "vendor_id query parameter is required"})
		return
	}
	h.list(c, bson.M{"vendor_id": vendorID})
}

func (h *EmailThreadHandler) list(c *gin.Context, filter bson.M) {
	cursor, err := h.coll.Find(c.Request.Context(), filter, options.Find().SetLimit(listLimit))
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
		docs[i] = docToResponse(model.NormalizeThreadDoc(docs[i]))
	}
	c.JSON(http.StatusOK, docs)
}

func (h *EmailThreadHandler) Get(c *gin.Context) {
	id, ok := parseObjectID(c, c.Param("id"))
	if !ok {
		return
	}

	var doc bson.M
	err := h.coll.FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Email thread not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, docToResponse(model.NormalizeThreadDoc(doc)))
}

func (h *EmailThreadHandler) Replace(c *gin.Context) {
	id, ok := parseObjectID(c, c.Param("id"))
	if !ok {
		return
	}

	var data model.EmailThreadCreate
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
		c.JSON(http.StatusNotFound, gin.H{"detail": "Email thread not found"})
		return
	}

	var doc bson.M
	if err := h.coll.FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, docToResponse(model.NormalizeThreadDoc(doc)))
}

func (h *EmailThreadHandler) Patch(c *gin.Context) {
	id, ok := parseObjectID(c, c.Param("id"))
	if !ok {
		return
	}

	var data model.EmailThreadUpdate
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
		c.JSON(http.StatusNotFound, gin.H{"detail": "Email thread not found"})
		return
	}

	var doc bson.M
	if err := h.coll.FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, docToResponse(model.NormalizeThreadDoc(doc)))
}

func (h *EmailThreadHandler) Delete(c *gin.Context) {
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
		c.JSON(http.StatusNotFound, gin.H{"detail": "Email thread not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email thread deleted successfully"})
}

// UpdateCertStatus sets one certification entry's submission status inside a
// thread, matched by thread_id and certificate name. The positional operator
// touches only the matched entry.
func (h *EmailThreadHandler) UpdateCertStatus(c *gin.Context) {
	var req model.UpdateCertStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if req.Field != "mandatory" && req.Field != "good_to_have" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "field must be 'mandatory' or 'good_to_have'"})
		return
	}

	result, err := h.coll.UpdateOne(c.Request.Context(),
		bson.M{"thread_id": req.ThreadID, req.Field + ".certificate": req.Certificate},
		bson.M{"$set": bson.M{req.Field + ".$.is_submitted": req.IsSubmitted}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Thread or certificate not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Certificate status updated",
		"thread_id":    req.ThreadID,
		"certificate":  req.Certificate,
		"is_submitted": req.IsSubmitted,
	})
}
