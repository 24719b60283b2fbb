package web

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"task-board/internal/errors"
	"task-board/internal/logging"
)

type problemRequest struct {
	Problem        string `json:"problem"`
	ExpectedResult string `json:"expectedResult"`
}

type taskRequest struct {
	Title   string `json:"title"`
	Problem string `json:"problem"`
}

type moveRequest struct {
	Column string `json:"column"`
}

func (s *Server) handleListProblems(c *gin.Context) {
	problems, err := s.board.ListProblems(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"problems": problems,
		"count":    len(problems),
	})
}

func (s *Server) handleRegisterProblem(c *gin.Context) {
	var req problemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	problem, err := s.board.RegisterProblem(c.Request.Context(), req.Problem, req.ExpectedResult)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    problem,
	})
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := s.board.CreateTask(c.Request.Context(), req.Title, req.Problem)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    event,
	})
}

func (s *Server) handleMoveTask(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.board.MoveTask(c.Request.Context(), c.Param("id"), req.Column)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"moved":   result.Moved,
		"data":    result.Event,
	})
}

func (s *Server) handleBoard(c *gin.Context) {
	board, err := s.board.Board(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"columns": board.Columns,
	})
}

func (s *Server) handleHistory(c *gin.Context) {
	events, err := s.board.History(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"events":  events,
		"count":   len(events),
	})
}

func (s *Server) handleExport(c *gin.Context) {
	text, err := s.board.ExportCSV(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	attachment(c, s.opts.HistoryExportFile, "text/csv; charset=utf-8", text)
}

// handleImport accepts the export either as the raw request body or as a
// multipart upload in the "file" field.
func (s *Server) handleImport(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.opts.MaxImportBytes)

	text, err := readImportBody(c)
	if err != nil {
		respondError(c, errors.NewFileUnavailableError("upload", err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	summary, err := s.board.ImportCSV(c.Request.Context(), text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    summary,
	})
}

func readImportBody(c *gin.Context) (string, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		header, err := c.FormFile("file")
		if err != nil {
			return "", err
		}
		f, err := header.Open()
		if err != nil {
			return "", err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		return string(data), err
	}

	data, err := io.ReadAll(c.Request.Body)
	return string(data), err
}

func (s *Server) handleTimeReport(c *gin.Context) {
	if c.Query("format") == "csv" {
		text, err := s.board.ExportTimeTracking(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		attachment(c, s.opts.TimeTrackingFile, "text/csv; charset=utf-8", text)
		return
	}

	records, err := s.board.TimeTracking(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	rows := make([]gin.H, 0, len(records))
	for _, r := range records {
		rows = append(rows, gin.H{
			"id":            r.ID,
			"task":          r.Task,
			"problem":       r.Problem,
			"result":        r.Result,
			"totalDuration": r.TotalDuration,
			"formatted":     r.Formatted(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"records": rows,
		"count":   len(rows),
	})
}

// handleDailyReport reports on the day before ?date=YYYY-MM-DD, or before
// today when no date is given.
func (s *Server) handleDailyReport(c *gin.Context) {
	ref := s.opts.Now()
	if date := c.Query("date"); date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, ref.Location())
		if err != nil {
			respondError(c, errors.NewInvalidInputError("date", date, "use YYYY-MM-DD"))
			return
		}
		ref = parsed
	}

	if c.Query("format") == "json" {
		groups, err := s.board.DailyDigest(c.Request.Context(), ref)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"groups":  groups,
		})
		return
	}

	text, err := s.board.DailyReport(c.Request.Context(), ref)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", s.opts.DailyReportFile))
	c.String(http.StatusOK, text)
}

func attachment(c *gin.Context, filename, contentType, body string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, []byte(body))
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   err.Error(),
		"code":    "BAD_REQUEST",
	})
}

func respondError(c *gin.Context, err error) {
	if errors.ShouldLogError(err) {
		logging.Warnf("request %s: %v", c.GetString("requestID"), err)
	}

	c.JSON(statusFor(err), gin.H{
		"success": false,
		"error":   errors.GetUserMessage(err),
		"code":    errors.GetErrorCode(err),
	})
}

// statusFor maps an error's category to an HTTP status.
func statusFor(err error) int {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch appErr.Type {
	case errors.ErrorTypeValidation, errors.ErrorTypeInvalidInput, errors.ErrorTypeFileUnavailable:
		return http.StatusBadRequest
	case errors.ErrorTypeNotFound:
		return http.StatusNotFound
	case errors.ErrorTypePersistence:
		return http.StatusServiceUnavailable
	case errors.ErrorTypeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
