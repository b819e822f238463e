package notification

import (
	"context"
	"fmt"

	"google.golang.org/api/fcm/v1"
	"google.golang.org/api/option"
)

// FCMSender delivers push notifications through the FCM v1 API using a
// service account credential
type FCMSender struct {
	svc     *fcm.Service
	project string
}

// NewFCMSender creates an FCMSender for the given Firebase project. The
// credentials JSON is the service account key the project was provisioned
// with.
func NewFCMSender(ctx context.Context, projectID, credentialsJSON string) (*FCMSender, error) {
	svc, err := fcm.NewService(ctx, option.WithCredentialsJSON([]byte(credentialsJSON)))
	if err != nil {
		return nil, fmt.Errorf("init fcm service: %w", err)
	}
	return &FCMSender{svc: svc, project: projectID}, nil
}

func (s *FCMSender) Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
	req := &fcm.SendMessageRequest{
		Message: &fcm.Message{
			Token: deviceToken,
			Notification: &fcm.Notification{
				Title: title,
				Body:  body,
			},
			Data: data,
			Android: &fcm.AndroidConfig{
				Priority: "high",
				Notification: &fcm.AndroidNotification{
					Sound:     "default",
					ChannelId: "workspace_invites",
				},
			},
		},
	}

	_, err := s.svc.Projects.Messages.Send("projects/"+s.project, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("send fcm message: %w", err)
	}
	return nil
}
