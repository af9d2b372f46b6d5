package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"tradeflex/internal/models"
	"tradeflex/internal/repository"
)

// Notifier writes in-app notification rows. Delivery is best effort: a failed
// insert is logged and swallowed so it never fails the action that caused it.
type Notifier struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

func (n *Notifier) Notify(ctx context.Context, userID, kind, title, body string, data map[string]any) {
	if n == nil || n.Repo == nil || userID == "" {
		return
	}
	item := &models.Notification{
		UserID: userID,
		Kind:   kind,
		Title:  title,
		Body:   body,
	}
	if len(data) > 0 {
		if b, err := json.Marshal(data); err == nil {
			item.Data = b
		}
	}
	if err := n.Repo.InsertNotification(ctx, item); err != nil && n.Logger != nil {
		n.Logger.Warn("notification insert failed",
			zap.String("user_id", userID),
			zap.String("kind", kind),
			zap.Error(err))
	}
}
