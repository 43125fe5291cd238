package gameapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-robomaze/api"
	"github.com/beka-birhanu/vinom-robomaze/api/i"
	"github.com/beka-birhanu/vinom-robomaze/api/identity"
	dmn "github.com/beka-birhanu/vinom-robomaze/domain"
	"github.com/beka-birhanu/vinom-robomaze/game"
	"github.com/beka-birhanu/vinom-robomaze/infrastruture/repo"
	"github.com/beka-birhanu/vinom-robomaze/infrastruture/runlock"
	"github.com/beka-birhanu/vinom-robomaze/infrastruture/sessionstore"
	"github.com/beka-birhanu/vinom-robomaze/infrastruture/token"
	"github.com/beka-birhanu/vinom-robomaze/maze"
	"github.com/beka-birhanu/vinom-robomaze/robot"
	"github.com/beka-birhanu/vinom-robomaze/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type silentLogger struct{}

func (silentLogger) Info(string)    {}
func (silentLogger) Warning(string) {}
func (silentLogger) Error(string)   {}

type testServer struct {
	handler   http.Handler
	mazes     *repo.MemoryMazeRepo
	tokenizer *token.JwtService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{
		mazes:     repo.NewMemoryMazeRepo(),
		tokenizer: token.NewJwtService("api-test-secret", "robomaze-test"),
	}
	manager, err := service.NewGameSessionManager(&service.Config{
		Store:     sessionstore.NewMemoryStore(),
		Locker:    runlock.NewMemoryLocker(),
		MazeRepo:  ts.mazes,
		Tokenizer: ts.tokenizer,
		Logger:    silentLogger{},
	})
	require.NoError(t, err)

	controller, err := NewSessionController(manager, 0)
	require.NoError(t, err)

	router := api.NewRouter(api.Config{
		BaseURL:                 "/api",
		Controllers:             []i.Controller{controller},
		AuthorizationMiddleware: identity.Authorize(ts.tokenizer),
	})
	ts.handler = router.Engine()
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, tok string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}

	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

// corridorSession starts a session on a maze solved by FORWARD x4, TURN_RIGHT, FORWARD x4.
func (ts *testServer) corridorSession(t *testing.T) (*SessionResponse, string) {
	t.Helper()
	grid, err := maze.FromLayout([][]int{
		{1, 1, 1, 1, 1, 1, 1},
		{1, 0, 0, 0, 0, 0, 1},
		{1, 1, 1, 1, 1, 0, 1},
		{1, 1, 1, 1, 1, 0, 1},
		{1, 1, 1, 1, 1, 0, 1},
		{1, 1, 1, 1, 1, 2, 1},
		{1, 1, 1, 1, 1, 1, 1},
	})
	require.NoError(t, err)
	record := dmn.NewMazeRecord(1, grid)
	require.NoError(t, ts.mazes.Save(context.Background(), record))

	w := ts.do(t, http.MethodPost, "/api/v1/sessions", "", NewSessionRequest{MazeID: &record.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created NewSessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	return created.Session, created.Token
}

func (ts *testServer) addCommands(t *testing.T, id uuid.UUID, tok string, names ...string) {
	t.Helper()
	for _, name := range names {
		w := ts.do(t, http.MethodPost, "/api/v1/sessions/"+id.String()+"/commands", tok, AddCommandRequest{Command: name})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
}

var corridorSolution = []string{
	"FORWARD", "FORWARD", "FORWARD", "FORWARD", "TURN_RIGHT", "FORWARD", "FORWARD", "FORWARD", "FORWARD",
}

func TestCreateSession(t *testing.T) {
	ts := newTestServer(t)

	t.Run("generated", func(t *testing.T) {
		seed := int64(9)
		w := ts.do(t, http.MethodPost, "/api/v1/sessions", "", NewSessionRequest{Level: 3, Seed: &seed})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created NewSessionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.NotEmpty(t, created.Token)
		assert.Equal(t, game.Idle, created.Session.Phase)
		assert.Equal(t, 11, created.Session.Level.Width)
		assert.Equal(t, int64(9), created.Session.Seed)
		assert.Equal(t, 25, created.Session.CommandsLeft)
		assert.True(t, strings.HasPrefix(created.Session.Maze, "###########\n#S"))
	})

	t.Run("empty body", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/v1/sessions", "", nil)
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("bad level", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/v1/sessions", "", map[string]any{"level": -1})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown maze", func(t *testing.T) {
		missing := uuid.New()
		w := ts.do(t, http.MethodPost, "/api/v1/sessions", "", NewSessionRequest{MazeID: &missing})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAuthorization(t *testing.T) {
	ts := newTestServer(t)
	session, tok := ts.corridorSession(t)
	path := "/api/v1/sessions/" + session.ID.String()

	assert.Equal(t, http.StatusUnauthorized, ts.do(t, http.MethodGet, path, "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, ts.do(t, http.MethodGet, path, "garbage", nil).Code)

	other, err := ts.tokenizer.SessionToken(uuid.New(), time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, ts.do(t, http.MethodGet, path, other, nil).Code)

	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, "/api/v1/sessions/not-a-uuid", tok, nil).Code)

	w := ts.do(t, http.MethodGet, path, tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, session.ID, got.ID)
}

func TestSessionLifecycle(t *testing.T) {
	ts := newTestServer(t)
	session, tok := ts.corridorSession(t)
	base := "/api/v1/sessions/" + session.ID.String()

	w := ts.do(t, http.MethodPost, base+"/commands", tok, AddCommandRequest{Command: "FLY"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodDelete, base+"/commands", tok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, base+"/run", tok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, base+"/level", tok, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	ts.addCommands(t, session.ID, tok, corridorSolution...)

	w = ts.do(t, http.MethodPost, base+"/run", tok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var run RunResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &run))
	assert.Equal(t, robot.Success, run.Result)
	assert.Equal(t, game.Succeeded, run.Phase)
	assert.Len(t, run.Steps, len(corridorSolution))

	w = ts.do(t, http.MethodPost, base+"/commands", tok, AddCommandRequest{Command: "FORWARD"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ts.do(t, http.MethodPost, base+"/level", tok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var advanced SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &advanced))
	assert.Equal(t, 2, advanced.Level.Number)
	assert.Equal(t, game.Idle, advanced.Phase)
	assert.Empty(t, advanced.Commands)

	w = ts.do(t, http.MethodPost, base+"/maze", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var regenerated SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &regenerated))
	assert.NotEqual(t, advanced.MazeID, regenerated.MazeID)

	w = ts.do(t, http.MethodPost, base+"/reset", tok, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodDelete, base, tok, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = ts.do(t, http.MethodGet, base, tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStreamRun(t *testing.T) {
	ts := newTestServer(t)
	session, tok := ts.corridorSession(t)
	base := "/api/v1/sessions/" + session.ID.String()

	ts.addCommands(t, session.ID, tok, "TURN_RIGHT", "FORWARD", "FORWARD")

	w := ts.do(t, http.MethodGet, base+"/run/stream", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Equal(t, 2, strings.Count(body, "event:step"))
	assert.Contains(t, body, "event:result")
	assert.Contains(t, body, "FAIL_WALL_COLLISION")
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
}
