package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tazhibayda/habits-service/internal/queue"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed() (*Notifier, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return New(zap.New(core)), logs
}

func delivery(t *testing.T, key string, ev any) queue.Delivery {
	t.Helper()
	b, err := json.Marshal(ev)
	require.NoError(t, err)
	return queue.Delivery{Key: key, RequestID: "rid-1", Body: b}
}

func TestHandle_RendersKnownEvents(t *testing.T) {
	uid := primitive.NewObjectID()
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		key  string
		ev   any
		want string
	}{
		{queue.KeyUserRegistered, queue.UserRegistered{UserID: uid, Username: "a", Email: "a@x.com"}, "welcome a <a@x.com>"},
		{queue.KeyGroupCreated, queue.GroupCreated{Name: "crew", OwnerID: uid, MemberIDs: []primitive.ObjectID{uid}},
			`group "crew" created by ` + uid.Hex() + " with 1 member(s)"},
		{queue.KeyHabitCreated, queue.HabitCreated{Title: "read", AssigneeType: "user", AssigneeID: uid},
			`new habit "read" for user ` + uid.Hex()},
		{queue.KeyUserEntryLogged, queue.UserEntryLogged{UserID: uid, HabitID: uid, Date: day, Status: "completed"},
			"user " + uid.Hex() + " marked habit " + uid.Hex() + " completed on 2024-01-01"},
		{queue.KeyGroupEntryLogged, queue.GroupEntryLogged{GroupID: uid, HabitID: uid, Date: day},
			"group " + uid.Hex() + ": habit " + uid.Hex() + " checked by 0 member(s) on 2024-01-01"},
	}

	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			n, logs := observed()
			require.NoError(t, n.Handle(context.Background(), delivery(t, tc.key, tc.ev)))

			entries := logs.FilterMessage("notification").All()
			require.Len(t, entries, 1)
			ctx := entries[0].ContextMap()
			assert.Equal(t, tc.want, ctx["text"])
			assert.Equal(t, tc.key, ctx["key"])
			assert.Equal(t, "rid-1", ctx["request_id"])
		})
	}
}

func TestHandle_UnknownKeyIsAcked(t *testing.T) {
	n, logs := observed()
	err := n.Handle(context.Background(), queue.Delivery{Key: "something.else", Body: []byte(`{}`)})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("unknown event key").Len())
}

func TestHandle_MalformedBodyIsDropped(t *testing.T) {
	n, logs := observed()
	err := n.Handle(context.Background(), queue.Delivery{Key: queue.KeyHabitCreated, Body: []byte(`{"title":`)})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("drop event").Len())
	assert.Zero(t, logs.FilterMessage("notification").Len())
}
