package ingest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vorpalengineering/logupload/types"
)

const defaultListLimit = 100

func (s *Server) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	api.POST("/ingest/http", s.handleIngest)
	api.POST("/ingest/batch", s.handleIngestBatch)
	api.GET("/ingest/sources", handleSources)
	api.GET("/logs", s.handleListLogs)
	router.GET("/health", handleHealth)
}

func (s *Server) handleIngest(ctx *gin.Context) {
	// Read request
	body, err := ctx.GetRawData()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "Failed to read request body",
			Message: err.Error(),
		})
		return
	}

	// Validate and store
	event, err := newEvent(body, s.now())
	if err != nil {
		s.logger.Debug().Err(err).Msg("rejected log event")
		ctx.JSON(statusFor(err), types.ErrorResponse{
			Error:   "Failed to ingest log event",
			Message: err.Error(),
		})
		return
	}
	s.store.Add(event)

	ctx.JSON(http.StatusCreated, types.IngestResponse{
		Success: true,
		ID:      event.ID,
		Source:  event.Source,
		Message: "Log event ingested successfully",
	})
}

func (s *Server) handleIngestBatch(ctx *gin.Context) {
	// Decode request as an array
	var records []json.RawMessage
	if err := ctx.ShouldBindJSON(&records); err != nil {
		ctx.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: "Request body must be an array of log objects",
		})
		return
	}
	if len(records) == 0 {
		ctx.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: "Array cannot be empty",
		})
		return
	}

	// Each record succeeds or fails on its own
	res := types.BatchIngestResponse{Total: len(records)}
	for i, record := range records {
		event, err := newEvent(record, s.now())
		if err != nil {
			res.Errors = append(res.Errors, types.RecordResult{
				Index: i,
				Error: err.Error(),
			})
			continue
		}
		s.store.Add(event)
		res.Results = append(res.Results, types.RecordResult{
			Index:   i,
			Success: true,
			ID:      event.ID,
			Source:  event.Source,
		})
	}
	res.Succeeded = len(res.Results)
	res.Failed = len(res.Errors)
	res.Success = res.Failed == 0

	ctx.JSON(http.StatusCreated, res)
}

func (s *Server) handleListLogs(ctx *gin.Context) {
	limit := defaultListLimit
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			ctx.JSON(http.StatusBadRequest, types.ErrorResponse{
				Error: "limit must be a positive integer",
			})
			return
		}
		limit = n
	}

	events := s.store.Recent(limit)
	ctx.JSON(http.StatusOK, types.LogListResponse{
		Count:  len(events),
		Events: events,
	})
}

func handleSources(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"sources": SupportedSources(),
	})
}

func handleHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
