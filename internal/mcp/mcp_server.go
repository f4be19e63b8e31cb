// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/cybercompass/internal/session"
	"github.com/huangsam/cybercompass/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

var quizPaths = []string{
	string(schema.ExplorerPath),
	string(schema.SpecialistPath),
	string(schema.OperatorPath),
	string(schema.CalibrationPath),
}

// NewMCPServer initializes and configures the quiz MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(reg *session.Registry, version string, logger *zap.Logger) *server.MCPServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := server.NewMCPServer(
		"CyberCompass Quiz Server",
		version,
		server.WithToolCapabilities(false),
		server.WithLogging(),
	)

	h := &toolHandler{reg: reg, logger: logger}
	sessionID := mcp.WithString("session_id", mcp.Description("Session id returned by start_session."), mcp.Required())

	s.AddTool(mcp.NewTool("start_session",
		mcp.WithDescription("Start a new quiz session and return the first question."),
		mcp.WithString("path", mcp.Description("Quiz path. Defaults to 'explorer'."), mcp.Enum(quizPaths...)),
	), h.handleStartSession)

	s.AddTool(mcp.NewTool("get_session",
		mcp.WithDescription("Show session progress, the current question and the current reflex threat."),
		sessionID,
	), h.handleGetSession)

	s.AddTool(mcp.NewTool("answer_question",
		mcp.WithDescription("Answer the current question of a session."),
		sessionID,
		mcp.WithString("choice", mcp.Description("Choice letter (a, b, ...) or 1-based number."), mcp.Required()),
	), h.handleAnswerQuestion)

	s.AddTool(mcp.NewTool("reflex_action",
		mcp.WithDescription("Respond to the current threat of the reflex drill."),
		sessionID,
		mcp.WithString("action", mcp.Description("Response to the threat."), mcp.Required(),
			mcp.Enum("NEUTRALIZE", "DROP", "FREEZE")),
	), h.handleReflexAction)

	s.AddTool(mcp.NewTool("get_dossier",
		mcp.WithDescription("Build the agent dossier of a session."),
		sessionID,
	), h.handleGetDossier)

	s.AddTool(mcp.NewTool("get_gaps",
		mcp.WithDescription("Run the capability gap analysis of a session."),
		sessionID,
	), h.handleGetGaps)

	s.AddTool(mcp.NewTool("end_session",
		mcp.WithDescription("End a session and discard its state."),
		sessionID,
	), h.handleEndSession)

	s.AddTool(mcp.NewTool("list_questions",
		mcp.WithDescription("List the questions of a quiz path without answers or weights."),
		mcp.WithString("path", mcp.Description("Quiz path. Defaults to 'explorer'."), mcp.Enum(quizPaths...)),
	), h.handleListQuestions)

	return s
}

// StartMCPServer serves the quiz tools over stdio until stdin closes.
// Errors are logged through zap so stdout carries protocol traffic only.
func StartMCPServer(_ context.Context, reg *session.Registry, version string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := NewMCPServer(reg, version, logger)
	logger.Info("mcp server listening on stdio")
	return server.ServeStdio(s, server.WithErrorLogger(zap.NewStdLog(logger)))
}
