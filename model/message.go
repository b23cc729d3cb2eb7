package model

import "go.mongodb.org/mongo-driver/v2/bson"

// MessageCreate is one message inside an email thread. Attachments are raw
// URLs or storage keys depending on which upload path produced them.
type MessageCreate struct {
	Message    string   `json:"message" bson:"message" binding:"required"`
	Attachment []string `json:"attachment" bson:"attachment"`
	ThreadID   string   `json:"thread_id" bson:"thread_id" binding:"required"`
	Sender     string   `json:"sender" bson:"sender"`
}

func (m *MessageCreate) ApplyDefaults() {
	if m.Attachment == nil {
		m.Attachment = []string{}
	}
	if m.Sender == "" {
		m.Sender = "vendor"
	}
}

type MessageUpdate struct {
	Message    *string   `json:"message"`
	Attachment *[]string `json:"attachment"`
	ThreadID   *string   `json:"thread_id"`
	Sender     *string   `json:"sender"`
}

// SetMap returns the $set document holding only the supplied fields.
func (u *MessageUpdate) SetMap() bson.M {
	set := bson.M{}
	if u.Message != nil {
		set["message"] = *u.Message
	}
	if u.Attachment != nil {
		set["attachment"] = *u.Attachment
	}
	if u.ThreadID != nil {
		set["thread_id"] = *u.ThreadID
	}
	if u.Sender != nil {
		set["sender"] = *u.Sender
	}
	return set
}
