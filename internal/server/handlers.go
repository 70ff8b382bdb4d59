package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you-not-fish/bl/internal/check"
	"github.com/you-not-fish/bl/internal/syntax"
)

const (
	contentJSON = "application/json; charset=utf-8"
	contentYAML = "application/yaml; charset=utf-8"
	contentText = "text/plain; charset=utf-8"
)

// errorBody is the reply to a request whose program does not parse.
type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	Pos   string `json:"pos,omitempty"`
	Line  uint32 `json:"line,omitempty"`
	Col   uint32 `json:"col,omitempty"`
}

// diagnostic is one entry of a check reply.
type diagnostic struct {
	Severity    string `json:"severity"`
	Instruction string `json:"instruction,omitempty"`
	Message     string `json:"message"`
}

// checkBody is the reply to a check request.
type checkBody struct {
	Program        string         `json:"program"`
	OK             bool           `json:"ok"`
	Diagnostics    []diagnostic   `json:"diagnostics"`
	Calls          map[string]int `json:"calls"`
	Primitives     map[string]int `json:"primitives"`
	MainPrimitives int            `json:"main_primitives"`
	Reachable      []string       `json:"reachable"`
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parse replies with the AST of the posted program.
// The format query parameter selects json (default), yaml or text.
func (s *Server) parse(c *gin.Context) {
	format := c.DefaultQuery("format", "json")
	switch format {
	case "json", "yaml", "text":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown format %q", format)})
		return
	}

	s.cached(c, "parse:"+format, func(prog *syntax.Program) (response, error) {
		var buf bytes.Buffer
		switch format {
		case "yaml":
			if err := syntax.FprintYAML(&buf, prog); err != nil {
				return response{}, err
			}
			return response{http.StatusOK, contentYAML, buf.Bytes()}, nil
		case "text":
			syntax.Fprint(&buf, prog)
			return response{http.StatusOK, contentText, buf.Bytes()}, nil
		}
		if err := syntax.FprintJSON(&buf, prog); err != nil {
			return response{}, err
		}
		return response{http.StatusOK, contentJSON, buf.Bytes()}, nil
	})
}

// check replies with the semantic diagnostics and call counts of the
// posted program.
func (s *Server) check(c *gin.Context) {
	s.cached(c, "check", func(prog *syntax.Program) (response, error) {
		info, err := check.Check(prog, nil)
		body := checkBody{
			Program:        prog.Name(),
			OK:             err == nil,
			Diagnostics:    []diagnostic{},
			Calls:          info.Calls,
			Primitives:     info.Primitives,
			MainPrimitives: info.MainPrimitives,
			Reachable:      info.Reachable,
		}
		if body.Reachable == nil {
			body.Reachable = []string{}
		}
		for _, d := range info.Diagnostics {
			severity := "error"
			if d.Soft {
				severity = "warning"
			}
			body.Diagnostics = append(body.Diagnostics, diagnostic{
				Severity:    severity,
				Instruction: d.Instr,
				Message:     d.Msg,
			})
		}
		return jsonResponse(http.StatusOK, body)
	})
}

// cached reads the posted program and replies from the result cache, or
// parses it and renders the reply with render.
func (s *Server) cached(c *gin.Context, route string, render func(*syntax.Program) (response, error)) {
	log := s.logger(c)

	src, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, s.conf.Server.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
			return
		}
		_ = c.AbortWithError(http.StatusBadRequest, fmt.Errorf("couldn't read source code from body: %w", err))
		return
	}

	filename := c.DefaultQuery("filename", "input.bl")
	key := cacheKey(route+":"+filename, src)
	if r, ok := s.cache.get(key); ok {
		c.Header("X-Cache", "HIT")
		c.Data(r.status, r.contentType, r.body)
		return
	}

	var r response
	prog, err := syntax.ParseProgramDepth(filename, bytes.NewReader(src), s.conf.Parser.MaxDepth, nil)
	if err != nil {
		log.WithError(err).Debug("program rejected")
		r, err = jsonResponse(http.StatusUnprocessableEntity, syntaxErrorBody(err))
	} else {
		log.WithField("program", prog.Name()).Debug("program parsed")
		r, err = render(prog)
	}
	if err != nil {
		log.WithError(err).Error("rendering reply")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.cache.add(key, r)
	c.Header("X-Cache", "MISS")
	c.Data(r.status, r.contentType, r.body)
}

func syntaxErrorBody(err error) errorBody {
	var serr *syntax.SyntaxError
	if !errors.As(err, &serr) {
		return errorBody{Error: err.Error(), Kind: "syntax"}
	}
	body := errorBody{Error: serr.Msg, Kind: serr.Kind()}
	if serr.Pos.IsValid() {
		body.Pos = serr.Pos.String()
		body.Line = serr.Pos.Line()
		body.Col = serr.Pos.Col()
	}
	return body
}

func jsonResponse(status int, v interface{}) (response, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return response{}, err
	}
	return response{status, contentJSON, b}, nil
}
