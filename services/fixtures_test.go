package services

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/Dosada05/matchup-generator/matchup"
	"github.com/Dosada05/matchup-generator/models"
	"github.com/Dosada05/matchup-generator/realtime"
	"github.com/Dosada05/matchup-generator/repositories/mockrepo"
	"github.com/Dosada05/matchup-generator/settings"
	"github.com/Dosada05/matchup-generator/storage"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2025, 5, 17, 15, 30, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

var (
	teamA = models.Team{ID: "a", Name: "Arsenal", League: "Premier League", Rating: 4.5, OverallRating: 82, AttackRating: 84, MidfieldRating: 81, DefendRating: 80}
	teamB = models.Team{ID: "b", Name: "Barcelona", League: "LaLiga", Rating: 5, OverallRating: 85, AttackRating: 86, MidfieldRating: 84, DefendRating: 82}
	teamC = models.Team{ID: "c", Name: "Celtic", League: "Scottish Premiership", Rating: 4, OverallRating: 75, AttackRating: 76, MidfieldRating: 74, DefendRating: 73}
	teamD = models.Team{ID: "d", Name: "Dortmund", League: "Bundesliga", Rating: 4.5, OverallRating: 81, AttackRating: 83, MidfieldRating: 80, DefendRating: 78}
	teamN = models.Team{ID: "n", Name: "France", League: models.NoLeague, Rating: 5, OverallRating: 86, AttackRating: 87, MidfieldRating: 85, DefendRating: 84}
	teamL = models.Team{ID: "l", Name: "Luton Town", League: "Premier League", Rating: 2.5, OverallRating: 70, AttackRating: 69, MidfieldRating: 70, DefendRating: 71}

	playerAnna = models.Player{ID: "p1", Name: "Anna"}
	playerBen  = models.Player{ID: "p2", Name: "Ben"}
	playerCara = models.Player{ID: "p3", Name: "Cara"}
)

func allTeams() []models.Team {
	return []models.Team{teamA, teamB, teamC, teamD, teamN, teamL}
}

func allPlayers() []models.Player {
	return []models.Player{playerAnna, playerBen, playerCara}
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []realtime.WebSocketMessage
}

func (n *fakeNotifier) BroadcastToRoom(_ string, message interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if msg, ok := message.(realtime.WebSocketMessage); ok {
		n.messages = append(n.messages, msg)
	}
}

func (n *fakeNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.messages))
	for i, m := range n.messages {
		out[i] = m.Type
	}
	return out
}

// testEnv wires real services over mocked repositories.
type testEnv struct {
	clock        clockwork.FakeClock
	teams        *mockrepo.TeamRepository
	players      *mockrepo.PlayerRepository
	matches      *mockrepo.MatchRepository
	participants *mockrepo.ParticipantRepository
	notifier     *fakeNotifier
	store        *settings.MemoryStore

	catalog  CatalogService
	board    TodayBoard
	settings SettingsService
	matchups MatchupService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		clock:        clockwork.NewFakeClockAt(testNow),
		teams:        &mockrepo.TeamRepository{},
		players:      &mockrepo.PlayerRepository{},
		matches:      &mockrepo.MatchRepository{},
		participants: &mockrepo.ParticipantRepository{},
		notifier:     &fakeNotifier{},
	}
	logger := discardLogger()
	env.store = settings.NewMemoryStore(env.clock, time.Hour)
	env.catalog = NewCatalogService(env.teams, env.players, storage.NewReadOnlyStore("https://cdn.example.com"), env.clock, time.Minute, logger)
	env.board = NewTodayBoard(env.catalog, env.matches, env.participants, env.notifier, env.clock, logger)
	env.settings = NewSettingsService(env.store, logger)
	env.matchups = NewMatchupService(env.catalog, env.board, env.settings, matchup.NewPicker(rand.New(rand.NewPCG(7, 8))), env.clock, logger)
	return env
}

// withCatalog makes the repositories return the given teams and players.
func (e *testEnv) withCatalog(teams []models.Team, players []models.Player) *testEnv {
	e.teams.On("List", mock.Anything).Return(teams, nil)
	e.players.On("List", mock.Anything).Return(players, nil)
	return e
}

// withHistory makes today's history return the given matches and roster.
func (e *testEnv) withHistory(matches []models.Match, roster []models.MatchParticipant) *testEnv {
	e.matches.On("ListPlayedBetween", mock.Anything, mock.Anything, mock.Anything).Return(matches, nil)
	e.participants.On("ListByMatchIDs", mock.Anything, mock.Anything).Return(roster, nil)
	return e
}

func (e *testEnv) saveSettings(t *testing.T, sessionID string, s models.Settings) {
	t.Helper()
	if _, err := e.settings.Save(context.Background(), sessionID, s); err != nil {
		t.Fatalf("save settings: %v", err)
	}
}
