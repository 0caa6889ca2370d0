package notifications

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification type constants
const (
	TypeNewReport        = "new_report"
	TypeReportAssigned   = "report_assigned"
	TypeReportClassified = "report_classified"
	TypeDecisionMade     = "decision_made"
	TypeDeadlineWarning  = "deadline_warning"
	TypeDeadlineOverdue  = "deadline_overdue"
)

// Priority constants, highest first
const (
	PriorityUrgent = "urgent"
	PriorityHigh   = "high"
	PriorityNormal = "normal"
)

// Notification is one in-app message addressed to a single staff member.
type Notification struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecipientID primitive.ObjectID `bson:"recipientId" json:"recipientId"`
	Type        string             `bson:"type" json:"type"`
	Title       string             `bson:"title" json:"title"`
	Message     string             `bson:"message" json:"message"`
	ReportID    primitive.ObjectID `bson:"reportId" json:"reportId"`
	ReportRef   string             `bson:"reportRef" json:"reportRef"`
	Priority    string             `bson:"priority" json:"priority"`
	IsRead      bool               `bson:"isRead" json:"isRead"`
	Link        string             `bson:"link,omitempty" json:"link,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Request DTOs

type ListQuery struct {
	Page       int  `form:"page,default=1" binding:"min=1"`
	Limit      int  `form:"limit,default=20" binding:"min=1,max=50"`
	UnreadOnly bool `form:"unreadOnly"`
}

// Response DTOs

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unreadCount"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
