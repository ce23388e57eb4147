package http_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	api "github.com/tazhibayda/habits-service/internal/http"
	"github.com/tazhibayda/habits-service/internal/log"
	"github.com/tazhibayda/habits-service/internal/repo"
	"github.com/tazhibayda/habits-service/internal/security"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

type testEnv struct {
	T      *testing.T
	Ctx    context.Context
	Mongo  *mongodb.MongoDBContainer
	Store  *repo.Store
	Events *recordingPub
	Router *gin.Engine
}

// recordingPub captures routing keys instead of talking to a broker.
type recordingPub struct{ keys chan string }

func (p *recordingPub) Publish(_ context.Context, key string, _ any, _ string) error {
	p.keys <- key
	return nil
}
func (p *recordingPub) Close() error { return nil }

func (p *recordingPub) expect(t *testing.T, key string) {
	t.Helper()
	select {
	case got := <-p.keys:
		if got != key {
			t.Fatalf("event key = %q, want %q", got, key)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no %q event published", key)
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if testing.Short() {
		t.Skip("mongo container tests skipped in -short mode")
	}
	ctx := context.Background()

	mc, err := mongodb.RunContainer(ctx,
		testcontainers.WithImage("mongo:6"),
	)
	if err != nil {
		t.Skipf("mongo container unavailable: %v", err)
	}

	uri, err := mc.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("mongo uri: %v", err)
	}

	logger, err := log.Init(false)
	if err != nil {
		t.Fatalf("log init: %v", err)
	}

	store, err := repo.NewStore(ctx, uri, "habits_test")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatal(err)
	}

	pub := &recordingPub{keys: make(chan string, 64)}
	h := api.NewHandler(store, testSecret, time.Hour, pub, logger)

	gin.SetMode(gin.TestMode)
	r := api.NewRouter(h, nil)

	return &testEnv{T: t, Ctx: ctx, Mongo: mc, Store: store, Events: pub, Router: r}
}

func (e *testEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close(e.Ctx)
	}
	if e.Mongo != nil {
		_ = e.Mongo.Terminate(e.Ctx)
	}
}

func (e *testEnv) do(method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	return do(e.Router, method, path, body, hdr)
}

func (e *testEnv) mustCode(w *httptest.ResponseRecorder, code int, what string) {
	e.T.Helper()
	if w.Code != code {
		e.T.Fatalf("%s: code=%d want %d body=%s", what, w.Code, code, w.Body.String())
	}
}

func signedFor(t *testing.T, uid string) string {
	t.Helper()
	tok, err := security.MakeAccess(testSecret, uid, "someone", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return tok
}
