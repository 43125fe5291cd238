package gameapi

import (
	"errors"
	"io"
	"net/http"
	"time"

	dmn "github.com/beka-birhanu/vinom-robomaze/domain"
	"github.com/beka-birhanu/vinom-robomaze/game"
	"github.com/beka-birhanu/vinom-robomaze/robot"
	"github.com/beka-birhanu/vinom-robomaze/service"
	"github.com/beka-birhanu/vinom-robomaze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionController exposes game sessions over HTTP.
type SessionController struct {
	sessionManager i.SessionManager
	stepDelay      time.Duration
}

// NewSessionController initializes a SessionController. stepDelay paces streamed runs.
func NewSessionController(sm i.SessionManager, stepDelay time.Duration) (*SessionController, error) {
	if sm == nil {
		return nil, service.ErrMissingDependency
	}
	return &SessionController{
		sessionManager: sm,
		stepDelay:      stepDelay,
	}, nil
}

// RegisterPublic registers public routes.
func (sc *SessionController) RegisterPublic(route *gin.RouterGroup) {
	route.POST("/sessions", sc.newSession)
}

// RegisterProtected registers protected routes.
func (sc *SessionController) RegisterProtected(route *gin.RouterGroup) {
	sessions := route.Group("/sessions/:id")
	{
		sessions.GET("", sc.session)
		sessions.DELETE("", sc.deleteSession)
		sessions.POST("/commands", sc.addCommand)
		sessions.DELETE("/commands", sc.removeLastCommand)
		sessions.POST("/run", sc.run)
		sessions.GET("/run/stream", sc.streamRun)
		sessions.POST("/reset", sc.reset)
		sessions.POST("/maze", sc.newMaze)
		sessions.POST("/level", sc.advanceLevel)
	}
}

func (sc *SessionController) newSession(ctx *gin.Context) {
	var request NewSessionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, token, err := sc.sessionManager.NewSession(ctx.Request.Context(), dmn.SessionOptions{
		Level:  request.Level,
		Seed:   request.Seed,
		MazeID: request.MazeID,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, &NewSessionResponse{
		Token:   token,
		Session: NewSessionResponseFrom(session),
	})
}

func (sc *SessionController) session(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}
	sc.respond(ctx)(sc.sessionManager.Session(ctx.Request.Context(), id))
}

func (sc *SessionController) addCommand(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}

	var request AddCommandRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd, err := robot.ParseCommand(request.Command)
	if err != nil {
		writeError(ctx, err)
		return
	}

	sc.respond(ctx)(sc.sessionManager.AddCommand(ctx.Request.Context(), id, cmd))
}

func (sc *SessionController) removeLastCommand(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}
	sc.respond(ctx)(sc.sessionManager.RemoveLastCommand(ctx.Request.Context(), id))
}

func (sc *SessionController) reset(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}
	sc.respond(ctx)(sc.sessionManager.Reset(ctx.Request.Context(), id))
}

func (sc *SessionController) newMaze(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}
	sc.respond(ctx)(sc.sessionManager.NewMaze(ctx.Request.Context(), id))
}

func (sc *SessionController) advanceLevel(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}
	sc.respond(ctx)(sc.sessionManager.AdvanceLevel(ctx.Request.Context(), id))
}

func (sc *SessionController) deleteSession(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}
	if err := sc.sessionManager.DeleteSession(ctx.Request.Context(), id); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// run executes the program at once and returns every step.
func (sc *SessionController) run(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}

	session, err := sc.sessionManager.Run(ctx.Request.Context(), id, 0, func(robot.Step) error { return nil })
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewRunResponse(session))
}

// streamRun plays the program as server-sent events: one "step" event per command,
// then a "result" event. Errors before the first step are plain JSON responses.
func (sc *SessionController) streamRun(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}

	started := false
	session, err := sc.sessionManager.Run(ctx.Request.Context(), id, sc.stepDelay, func(step robot.Step) error {
		if !started {
			ctx.Header("Cache-Control", "no-cache")
			ctx.Header("Connection", "keep-alive")
			started = true
		}
		ctx.SSEvent("step", step)
		ctx.Writer.Flush()
		return ctx.Request.Context().Err()
	})
	if err != nil {
		if started {
			ctx.SSEvent("error", gin.H{"error": err.Error()})
			return
		}
		writeError(ctx, err)
		return
	}

	ctx.SSEvent("result", NewRunResponse(session))
	ctx.Writer.Flush()
}

// respond writes the session or maps the error.
func (sc *SessionController) respond(ctx *gin.Context) func(*dmn.Session, error) {
	return func(session *dmn.Session, err error) {
		if err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, NewSessionResponseFrom(session))
	}
}

func sessionID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps domain errors onto HTTP statuses.
func writeError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, robot.ErrUnknownCommand),
		errors.Is(err, robot.ErrEmptySequence),
		errors.Is(err, robot.ErrSequenceTooLong):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrMazeNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrSessionBusy),
		errors.Is(err, game.ErrNotAuthoring),
		errors.Is(err, game.ErrCommandLimit),
		errors.Is(err, game.ErrRunInProgress),
		errors.Is(err, game.ErrLevelNotCleared),
		errors.Is(err, game.ErrNotRunning):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		ctx.JSON(status, gin.H{"error": "internal error"})
		return
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}
