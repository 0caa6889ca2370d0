package routes

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hbenali/childguard/internal/config"
	"github.com/hbenali/childguard/internal/features/auth"
	"github.com/hbenali/childguard/internal/features/notifications"
	"github.com/hbenali/childguard/internal/features/reports"
	"github.com/hbenali/childguard/internal/pkg/storage"
	"github.com/hbenali/childguard/internal/realtime"
)

// reportNotifierAdapter adapts notifications.Service to reports.Notifier so
// the two features stay decoupled.
type reportNotifierAdapter struct {
	service *notifications.Service
}

func reportEvent(r *reports.Report) notifications.ReportEvent {
	return notifications.ReportEvent{
		ReportID:    r.ID,
		ReportRef:   r.ReportID,
		Village:     r.Village,
		Urgency:     string(r.Urgency),
		ChildName:   r.ChildName,
		DeclarantID: r.DeclarantID,
		AssigneeID:  r.AssignedTo,
		Status:      string(r.Status),
	}
}

func (a *reportNotifierAdapter) ReportCreated(ctx context.Context, r *reports.Report) error {
	return a.service.ReportCreated(ctx, reportEvent(r))
}

func (a *reportNotifierAdapter) ReportClassified(ctx context.Context, r *reports.Report) error {
	return a.service.ReportClassified(ctx, reportEvent(r))
}

func (a *reportNotifierAdapter) ReportAssigned(ctx context.Context, r *reports.Report) error {
	return a.service.ReportAssigned(ctx, reportEvent(r))
}

func (a *reportNotifierAdapter) DecisionMade(ctx context.Context, r *reports.Report) error {
	ev := reportEvent(r)
	if r.Decision != nil {
		ev.Decision = string(r.Decision.Type)
	}
	return a.service.DecisionMade(ctx, ev)
}

func SetupRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config, hub *realtime.Hub) {
	api := router.Group("/api/v1")

	// Attachment storage is optional; without credentials the API still
	// runs and rejects uploads.
	uploader, err := storage.NewService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.UploadFolder)
	if err != nil {
		log.Printf("attachment storage disabled: %v", err)
		uploader = nil
	}

	notifier := &reportNotifierAdapter{service: notifications.GetService(db, hub)}

	auth.RegisterRoutes(api, db, cfg)
	reports.RegisterRoutes(api, db, cfg, notifier, uploader)
	notifications.RegisterRoutes(api, db, cfg)

	// The websocket handshake lives at the root, outside the API prefix.
	realtime.RegisterRoutes(&router.RouterGroup, hub, auth.NewRepository(db), cfg)
}
