package models

import "time"

// Response is an admin reply to one feedback item. UserID is a snapshot of the
// feedback author's id taken when the response is created, so notification
// queries never need a join.
type Response struct {
	ID         string    `json:"id" bson:"id"`
	FeedbackID string    `json:"feedbackId" bson:"feedbackId"`
	UserID     string    `json:"userId" bson:"userId"`
	AdminID    string    `json:"adminId" bson:"adminId"`
	Content    string    `json:"content" bson:"content"`
	IsRead     bool      `json:"isRead" bson:"isRead"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}
