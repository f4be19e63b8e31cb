package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/cybercompass/internal/session"
	"github.com/huangsam/cybercompass/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	reg    *session.Registry
	logger *zap.Logger
}

// jsonResult renders v as an indented JSON text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// toolError turns a registry failure into a tool error result.
// Tool logic failures are never returned as raw protocol errors.
func (h *toolHandler) toolError(tool string, err error) *mcp.CallToolResult {
	h.logger.Debug("tool call failed", zap.String("tool", tool), zap.Error(err))
	return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", tool, err))
}

func (h *toolHandler) handleStartSession(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := schema.QuizPath(strings.ToLower(request.GetString("path", "")))
	snap, err := h.reg.Start(path)
	if err != nil {
		return h.toolError("start_session", err), nil
	}
	return jsonResult(snap)
}

func (h *toolHandler) handleGetSession(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	snap, err := h.reg.Get(id)
	if err != nil {
		return h.toolError("get_session", err), nil
	}
	return jsonResult(snap)
}

func (h *toolHandler) handleAnswerQuestion(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	choice, err := request.RequireString("choice")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := h.reg.Answer(id, choice)
	if err != nil {
		return h.toolError("answer_question", err), nil
	}
	return jsonResult(res)
}

func (h *toolHandler) handleReflexAction(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	action, err := request.RequireString("action")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := h.reg.Reflex(id, schema.ReflexAction(strings.ToUpper(action)))
	if err != nil {
		return h.toolError("reflex_action", err), nil
	}
	return jsonResult(res)
}

func (h *toolHandler) handleGetDossier(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	d, err := h.reg.Dossier(id)
	if err != nil {
		return h.toolError("get_dossier", err), nil
	}
	return jsonResult(d)
}

func (h *toolHandler) handleGetGaps(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	gaps, err := h.reg.Gaps(id)
	if err != nil {
		return h.toolError("get_gaps", err), nil
	}
	return jsonResult(gaps)
}

func (h *toolHandler) handleEndSession(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := h.reg.End(id); err != nil {
		return h.toolError("end_session", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("session %s ended", id)), nil
}

func (h *toolHandler) handleListQuestions(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := schema.QuizPath(strings.ToLower(request.GetString("path", string(schema.ExplorerPath))))
	if _, ok := schema.ValidQuizPaths[path]; !ok {
		return h.toolError("list_questions", fmt.Errorf("%w: %q", session.ErrInvalidPath, path)), nil
	}
	return jsonResult(h.reg.Questions(path))
}
