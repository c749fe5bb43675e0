// Package mcpserver exposes today's board and the matchup picker as MCP tools.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Dosada05/matchup-generator/models"
	"github.com/Dosada05/matchup-generator/services"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName    = "matchup-generator"
	serverVersion = "1.0.0"
)

type TodayMatchesArgs struct {
	OnlyHighlighted bool `json:"only_highlighted,omitempty" jsonschema:"Return only the biggest wins of the day"`
}

type SuggestMatchupArgs struct {
	MinRating      *float64 `json:"min_rating,omitempty" jsonschema:"Minimum star rating 0-5 (default 4)"`
	MaxRating      *float64 `json:"max_rating,omitempty" jsonschema:"Maximum star rating 0-5 (default 5)"`
	ExcludeNations *bool    `json:"exclude_nations,omitempty" jsonschema:"Skip national teams (default true)"`
}

type ListTeamsArgs struct {
	Query string `json:"query,omitempty" jsonschema:"Fuzzy search over team name and league"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type noArgs struct{}

type tools struct {
	matchups services.MatchupService
	board    services.TodayBoard
	teams    services.TeamService
	logger   *slog.Logger
}

// New builds the MCP server with all tools registered.
func New(matchups services.MatchupService, board services.TodayBoard, teams services.TeamService, logger *slog.Logger) *mcp.Server {
	t := &tools{matchups: matchups, board: board, teams: teams, logger: logger}

	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "today_standings",
		Description: "Player leaderboard for today (UTC): points, goals for/against, goal difference, total OVR",
	}, t.todayStandings)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "today_matches",
		Description: "Matches recorded today, newest first, with rosters and scores",
	}, t.todayMatches)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "suggest_matchup",
		Description: "Draw a random pair of teams that match the rating filter and have not played today",
	}, t.suggestMatchup)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_teams",
		Description: "Search the team catalog by name or league",
	}, t.listTeams)

	return server
}

// Handler serves the MCP server over streamable HTTP.
func Handler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

func (t *tools) todayStandings(ctx context.Context, _ *mcp.CallToolRequest, _ noArgs) (*mcp.CallToolResult, any, error) {
	snapshot, err := t.board.Snapshot(ctx)
	if err != nil {
		return t.toolError(ctx, "today_standings", err), nil, nil
	}
	return toolJSON(map[string]any{
		"day":       snapshot.Day.Format("2006-01-02"),
		"standings": snapshot.Standings,
	})
}

func (t *tools) todayMatches(ctx context.Context, _ *mcp.CallToolRequest, args TodayMatchesArgs) (*mcp.CallToolResult, any, error) {
	snapshot, err := t.board.Snapshot(ctx)
	if err != nil {
		return t.toolError(ctx, "today_matches", err), nil, nil
	}

	matches := snapshot.Matches
	if args.OnlyHighlighted {
		matches = make([]models.MatchHistoryItem, 0, len(snapshot.Matches))
		for _, m := range snapshot.Matches {
			if m.Highlighted {
				matches = append(matches, m)
			}
		}
	}
	return toolJSON(map[string]any{
		"day":     snapshot.Day.Format("2006-01-02"),
		"matches": matches,
	})
}

func (t *tools) suggestMatchup(ctx context.Context, _ *mcp.CallToolRequest, args SuggestMatchupArgs) (*mcp.CallToolResult, any, error) {
	filters := models.DefaultSettings()
	if args.MinRating != nil {
		filters.MinRating = *args.MinRating
	}
	if args.MaxRating != nil {
		filters.MaxRating = *args.MaxRating
	}
	if args.ExcludeNations != nil {
		filters.ExcludeNations = *args.ExcludeNations
	}

	m, err := t.matchups.Suggest(ctx, filters)
	if err != nil {
		return t.toolError(ctx, "suggest_matchup", err), nil, nil
	}
	return toolJSON(map[string]any{
		"matchup":     m,
		"differences": m.Differences(),
	})
}

func (t *tools) listTeams(ctx context.Context, _ *mcp.CallToolRequest, args ListTeamsArgs) (*mcp.CallToolResult, any, error) {
	teams, err := t.teams.Search(ctx, args.Query, args.Limit)
	if err != nil {
		return t.toolError(ctx, "list_teams", err), nil, nil
	}
	return toolJSON(map[string]any{"teams": teams})
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode tool result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}, nil, nil
}

func (t *tools) toolError(ctx context.Context, tool string, err error) *mcp.CallToolResult {
	t.logger.WarnContext(ctx, "mcp tool failed", slog.String("tool", tool), slog.Any("error", err))
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
