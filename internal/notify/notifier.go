package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tazhibayda/habits-service/internal/log"
	"github.com/tazhibayda/habits-service/internal/queue"
	"go.uber.org/zap"
)

// Notifier turns habit events into human-readable notifications.
type Notifier struct {
	Log *zap.Logger
}

func New(logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{Log: logger}
}

// Handle never asks for a redelivery: a body that cannot be decoded now will not decode later.
func (n *Notifier) Handle(ctx context.Context, d queue.Delivery) error {
	l := log.WithDD(ctx, n.Log, zap.String("key", d.Key), zap.String("request_id", d.RequestID))

	msg, err := render(d.Key, d.Body)
	if err != nil {
		l.Error("drop event", zap.Error(err))
		return nil
	}
	if msg == "" {
		l.Warn("unknown event key")
		return nil
	}
	l.Info("notification", zap.String("text", msg))
	return nil
}

func render(key string, body []byte) (string, error) {
	switch key {
	case queue.KeyUserRegistered:
		var e queue.UserRegistered
		if err := decode(body, &e); err != nil {
			return "", err
		}
		return fmt.Sprintf("welcome %s <%s>", e.Username, e.Email), nil
	case queue.KeyGroupCreated:
		var e queue.GroupCreated
		if err := decode(body, &e); err != nil {
			return "", err
		}
		return fmt.Sprintf("group %q created by %s with %d member(s)", e.Name, e.OwnerID.Hex(), len(e.MemberIDs)), nil
	case queue.KeyHabitCreated:
		var e queue.HabitCreated
		if err := decode(body, &e); err != nil {
			return "", err
		}
		return fmt.Sprintf("new habit %q for %s %s", e.Title, e.AssigneeType, e.AssigneeID.Hex()), nil
	case queue.KeyUserEntryLogged:
		var e queue.UserEntryLogged
		if err := decode(body, &e); err != nil {
			return "", err
		}
		return fmt.Sprintf("user %s marked habit %s %s on %s", e.UserID.Hex(), e.HabitID.Hex(), e.Status, e.Date.Format("2006-01-02")), nil
	case queue.KeyGroupEntryLogged:
		var e queue.GroupEntryLogged
		if err := decode(body, &e); err != nil {
			return "", err
		}
		return fmt.Sprintf("group %s: habit %s checked by %d member(s) on %s", e.GroupID.Hex(), e.HabitID.Hex(), len(e.CheckedBy), e.Date.Format("2006-01-02")), nil
	}
	return "", nil
}

func decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %T: %w", v, err)
	}
	return nil
}
