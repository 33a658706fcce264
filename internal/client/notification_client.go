package client

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/Mohmmed-Zaid/jobluu-client/internal/model"
)

// NotificationClient handles communication with the notification endpoints
type NotificationClient struct {
	api    *Client
	logger *zap.Logger
}

// NewNotificationClient creates a new notification client
func NewNotificationClient(api *Client, logger *zap.Logger) *NotificationClient {
	return &NotificationClient{api: api, logger: logger}
}

// All retrieves every notification for a user
func (c *NotificationClient) All(ctx context.Context, userID int) ([]model.Notification, error) {
	var notifications []model.Notification
	if err := c.api.get(ctx, fmt.Sprintf("/notification/all/%d", userID), &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// Unread retrieves only the unread notifications for a user
func (c *NotificationClient) Unread(ctx context.Context, userID int) ([]model.Notification, error) {
	var notifications []model.Notification
	if err := c.api.get(ctx, fmt.Sprintf("/notification/unread/%d", userID), &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// Count retrieves the unread count for a user
func (c *NotificationClient) Count(ctx context.Context, userID int) (int, error) {
	var resp model.NotificationCountResponse
	if err := c.api.get(ctx, fmt.Sprintf("/notification/count/%d", userID), &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// ByAction retrieves notifications for a user filtered by action category
func (c *NotificationClient) ByAction(ctx context.Context, userID int, action string) ([]model.Notification, error) {
	var notifications []model.Notification
	path := fmt.Sprintf("/notification/type/%d/%s", userID, url.PathEscape(action))
	if err := c.api.get(ctx, path, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// Send posts a new notification and returns it with its assigned id
func (c *NotificationClient) Send(ctx context.Context, create model.NotificationCreate) (*model.Notification, error) {
	var n model.Notification
	if err := c.api.do(ctx, "POST", "/notification/send", create, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// MarkRead marks a single notification as read
func (c *NotificationClient) MarkRead(ctx context.Context, id int) error {
	return c.api.do(ctx, "PUT", fmt.Sprintf("/notification/mark-read/%d", id), nil, nil)
}

// MarkAllRead marks every notification for a user as read
func (c *NotificationClient) MarkAllRead(ctx context.Context, userID int) error {
	return c.api.do(ctx, "PUT", fmt.Sprintf("/notification/mark-all-read/%d", userID), nil, nil)
}

// Delete removes a single notification
func (c *NotificationClient) Delete(ctx context.Context, id int) error {
	return c.api.do(ctx, "DELETE", fmt.Sprintf("/notification/delete/%d", id), nil, nil)
}

// DeleteAll removes every notification for a user
func (c *NotificationClient) DeleteAll(ctx context.Context, userID int) error {
	return c.api.do(ctx, "DELETE", fmt.Sprintf("/notification/delete-all/%d", userID), nil, nil)
}
