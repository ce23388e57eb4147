package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	api "github.com/tazhibayda/habits-service/internal/http"
	"github.com/tazhibayda/habits-service/internal/security"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

// storeless returns a router whose handler has no store: any request that
// reaches storage would panic, so a clean 4xx proves validation ran first.
func storeless(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := api.NewHandler(nil, testSecret, time.Hour, nil, zap.NewNop())
	return api.NewRouter(h, nil)
}

func do(r http.Handler, method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not json: %s", w.Body.String())
	}
	s, _ := body["error"].(string)
	return s
}

const oid = "65f1c0a8e4b0a1b2c3d4e5f6"

func Test_InvalidPathIDs_Rejected(t *testing.T) {
	r := storeless(t)
	paths := []string{
		"/api/users/nope/habits",
		"/api/users/nope/groups",
		"/api/users/nope/habitEntries/2024-01-01",
		"/api/users/nope/mostLoggedHabit",
		"/api/users/nope/createdAt",
		"/api/groups/123/habits",
		"/api/groups/123/habitEntries/2024-01-01",
		"/api/groups/123/members/completion/2024-01-01",
	}
	for _, p := range paths {
		w := do(r, "GET", p, "", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: code=%d body=%s", p, w.Code, w.Body.String())
			continue
		}
		if msg := errorOf(t, w); msg != "invalid id format" {
			t.Errorf("%s: error=%q", p, msg)
		}
	}
}

func Test_InvalidPathDates_Rejected(t *testing.T) {
	r := storeless(t)
	for _, p := range []string{
		"/api/users/" + oid + "/habitEntries/not-a-date",
		"/api/groups/" + oid + "/habitEntries/2024-02-31",
		"/api/groups/" + oid + "/members/completion/yesterday",
	} {
		w := do(r, "GET", p, "", nil)
		if w.Code != http.StatusBadRequest || errorOf(t, w) != "invalid date" {
			t.Errorf("%s: code=%d body=%s", p, w.Code, w.Body.String())
		}
	}
}

func Test_CreateBodies_Rejected(t *testing.T) {
	r := storeless(t)
	cases := []struct {
		name, path, body string
	}{
		{"habit missing title", "/api/habits", `{"createdBy":"` + oid + `","assignedTo":{"type":"user","id":"` + oid + `"},"schedule":"daily"}`},
		{"habit bad createdBy", "/api/habits", `{"title":"x","createdBy":"abc","assignedTo":{"type":"user","id":"` + oid + `"},"schedule":"daily"}`},
		{"habit bad assignee type", "/api/habits", `{"title":"x","createdBy":"` + oid + `","assignedTo":{"type":"team","id":"` + oid + `"},"schedule":"daily"}`},
		{"habit missing assignedTo", "/api/habits", `{"title":"x","createdBy":"` + oid + `","schedule":"daily"}`},
		{"habit missing schedule", "/api/habits", `{"title":"x","createdBy":"` + oid + `","assignedTo":{"type":"group","id":"` + oid + `"}}`},
		{"user missing password", "/api/users", `{"username":"a","email":"a@x.com"}`},
		{"user extra field", "/api/users", `{"username":"a","email":"a@x.com","password":"p","isAdmin":true}`},
		{"user bad email", "/api/users", `{"username":"a","email":"nope","password":"p"}`},
		{"group missing owner", "/api/groups", `{"name":"g"}`},
		{"group bad member", "/api/groups", `{"name":"g","ownerId":"` + oid + `","memberIds":["` + oid + `","x"]}`},
		{"user entry bad habit", "/api/userHabitEntries", `{"habitId":"x","userId":"` + oid + `","date":"2024-01-01"}`},
		{"user entry missing date", "/api/userHabitEntries", `{"habitId":"` + oid + `","userId":"` + oid + `"}`},
		{"group entry bad checker", "/api/groupHabitEntries", `{"habitId":"` + oid + `","groupId":"` + oid + `","date":"2024-01-01","checkedBy":["x"]}`},
		{"group entry bad notes key", "/api/groupHabitEntries", `{"habitId":"` + oid + `","groupId":"` + oid + `","date":"2024-01-01","notes":{"bob":"hi"}}`},
		{"user password over 72 chars", "/api/users", `{"username":"a","email":"a@x.com","password":"` + strings.Repeat("p", 73) + `"}`},
		{"user password over 72 bytes", "/api/users", `{"username":"a","email":"a@x.com","password":"` + strings.Repeat("€", 25) + `"}`},
		{"login missing password", "/api/auth/login", `{"email":"a@x.com"}`},
		{"not json", "/api/habits", `{`},
	}
	for _, tc := range cases {
		w := do(r, "POST", tc.path, tc.body, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: code=%d body=%s", tc.name, w.Code, w.Body.String())
		}
	}
}

func Test_CreateEntries_InvalidDate(t *testing.T) {
	r := storeless(t)
	for _, p := range []string{"/api/userHabitEntries", "/api/groupHabitEntries"} {
		body := `{"habitId":"` + oid + `","userId":"` + oid + `","groupId":"` + oid + `","date":"31/12/2024"}`
		w := do(r, "POST", p, body, nil)
		if w.Code != http.StatusBadRequest || errorOf(t, w) != "invalid date" {
			t.Errorf("%s: code=%d body=%s", p, w.Code, w.Body.String())
		}
	}
}

func Test_Status_TokenFailures(t *testing.T) {
	r := storeless(t)

	w := do(r, "GET", "/api/auth/status", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: code=%d", w.Code)
	}

	w = do(r, "GET", "/api/auth/status", "", map[string]string{"Authorization": "Bearer garbage"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("garbage token: code=%d", w.Code)
	}

	expired, _ := security.MakeAccess(testSecret, oid, "a", -time.Minute)
	w = do(r, "GET", "/api/auth/status", "", map[string]string{"Authorization": "Bearer " + expired})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expired token: code=%d", w.Code)
	}

	foreign, _ := security.MakeAccess("other-secret", oid, "a", time.Hour)
	w = do(r, "GET", "/api/auth/status", "", map[string]string{"Authorization": "Bearer " + foreign})
	if w.Code != http.StatusForbidden {
		t.Fatalf("foreign token: code=%d", w.Code)
	}

	badUID, _ := security.MakeAccess(testSecret, "not-an-id", "a", time.Hour)
	w = do(r, "GET", "/api/auth/status", "", map[string]string{"Authorization": "Bearer " + badUID})
	if w.Code != http.StatusForbidden {
		t.Fatalf("bad uid: code=%d", w.Code)
	}
}

func Test_Logout_IsStateless(t *testing.T) {
	r := storeless(t)
	w := do(r, "POST", "/api/auth/logout", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("logout code=%d body=%s", w.Code, w.Body.String())
	}
}

func Test_RequestID_Echoed(t *testing.T) {
	r := storeless(t)
	w := do(r, "POST", "/api/auth/logout", "", map[string]string{"X-Request-ID": "rid-1"})
	if got := w.Header().Get("X-Request-ID"); got != "rid-1" {
		t.Fatalf("request id = %q", got)
	}
	w = do(r, "POST", "/api/auth/logout", "", nil)
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected generated request id")
	}
}

func Test_Metrics_Exposed(t *testing.T) {
	r := storeless(t)
	_ = do(r, "POST", "/api/auth/logout", "", nil)
	w := do(r, "GET", "/metrics", "", nil)
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte("http_requests_total")) {
		t.Fatalf("metrics code=%d", w.Code)
	}
}

func Test_Healthz_DegradedHidesCause(t *testing.T) {
	r := storeless(t)
	w := do(r, "GET", "/healthz", "", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("code=%d body=%s", w.Code, w.Body.String())
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"status":"degraded"}` {
		t.Fatalf("body=%s", got)
	}
}

func Test_Recovery_Answers500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(api.Recovery(zap.NewNop()))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := do(r, "GET", "/boom", "", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("code=%d", w.Code)
	}
}
