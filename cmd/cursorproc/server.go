package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/sirupsen/logrus"
	oracle "github.com/syrx/syrx-oracle"
)

const (
	codeOK          = 200
	codeExecFailed  = 201
	codeBadBody     = 4000
	codeMissingText = 4001
)

type JsonRes struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// queryRequest names either the cursors to drain or how many numbered
// cursors (:1 .. :count) to drain. Neither means one numbered cursor.
type queryRequest struct {
	SQL     string                 `json:"sql" form:"sql"`
	Params  map[string]interface{} `json:"params"`
	Cursors []string               `json:"cursors"`
	Count   int                    `json:"count" form:"count"`
}

type querier interface {
	QueryMultipleMaps(ctx context.Context, text string, params *oracle.CursorParameters, n int) ([][]map[string]interface{}, error)
	Ping(ctx context.Context) error
}

type server struct {
	db      querier
	log     *logrus.Logger
	timeout time.Duration
}

func newApp(s *server) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Post("/query", s.query)
	app.Get("/ping", s.ping)
	return app
}

// requestContext derives the execution context from the request's user
// context, bounded by the configured timeout.
func (s *server) requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	parent := c.UserContext()
	if s.timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, s.timeout)
}

func (s *server) ping(c *fiber.Ctx) error {
	ctx, cancel := s.requestContext(c)
	defer cancel()
	if err := s.db.Ping(ctx); err != nil {
		s.log.WithError(err).Warn("ping failed")
		return c.JSON(JsonRes{Code: codeExecFailed, Msg: err.Error()})
	}
	return c.JSON(JsonRes{Code: codeOK, Msg: "pong"})
}

func (s *server) query(c *fiber.Ctx) error {
	req := new(queryRequest)
	if err := c.BodyParser(req); err != nil {
		return c.JSON(JsonRes{Code: codeBadBody, Msg: "invalid request body"})
	}
	if strings.TrimSpace(req.SQL) == "" {
		return c.JSON(JsonRes{Code: codeMissingText, Msg: "sql is required"})
	}
	fields := logrus.Fields{"sql": req.SQL, "cursors": req.Cursors, "count": req.Count}
	s.log.WithFields(fields).Debug("query")

	params, n, err := req.cursorParameters()
	if err != nil {
		return c.JSON(JsonRes{Code: codeBadBody, Msg: err.Error()})
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()
	sets, err := s.db.QueryMultipleMaps(ctx, req.SQL, params, n)
	if err != nil {
		s.log.WithFields(fields).WithError(err).Error("query failed")
		return c.JSON(JsonRes{Code: codeExecFailed, Msg: err.Error()})
	}
	return c.JSON(JsonRes{Code: codeOK, Data: normalize(sets)})
}

func (r *queryRequest) cursorParameters() (*oracle.CursorParameters, int, error) {
	args := oracle.Args(r.Params)
	if len(r.Cursors) > 0 {
		p, err := oracle.NamedCursors(r.Cursors, args)
		return p, len(r.Cursors), err
	}

	n := r.Count
	switch {
	case n < 0:
		return nil, 0, fmt.Errorf("%w: cursor count %d", oracle.ErrInvalidArgument, n)
	case n == 0:
		n = 1
	}
	if n <= oracle.DefaultCursorCount {
		return oracle.Cursors(args), n, nil
	}
	p, err := oracle.NumberedCursors(n, args)
	return p, n, err
}

// normalize lower-cases column names and turns raw bytes into strings so
// rows serialize as plain JSON objects.
func normalize(sets [][]map[string]interface{}) [][]map[string]interface{} {
	for _, rows := range sets {
		for i, row := range rows {
			record := make(map[string]interface{}, len(row))
			for column, value := range row {
				if b, ok := value.([]byte); ok {
					value = string(b)
				}
				record[strings.ToLower(column)] = value
			}
			rows[i] = record
		}
	}
	return sets
}

func keepAlive(ctx context.Context, db querier, interval time.Duration, log *logrus.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := db.Ping(ctx); err != nil && ctx.Err() == nil {
				log.WithError(err).Warn("keep-alive ping failed")
			}
		}
	}
}
