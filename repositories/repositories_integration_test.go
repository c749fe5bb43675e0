//go:build integration

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Dosada05/matchup-generator/models"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var testDB *sql.DB

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16.3-alpine",
		postgres.WithDatabase("matchups"),
		postgres.WithUsername("matchups"),
		postgres.WithPassword("secret"),
		postgres.WithInitScripts(filepath.Join("..", "db", "schema.sql")),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("error starting container: %v\n", err)
		os.Exit(1)
	}

	// the container is not configured to use TLS
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err == nil {
		testDB, err = sql.Open("postgres", dsn)
	}
	if err != nil {
		fmt.Printf("error connecting to db: %v\n", err)
		_ = container.Terminate(ctx)
		os.Exit(1)
	}

	code := m.Run()
	testDB.Close()
	if err := container.Terminate(ctx); err != nil {
		fmt.Printf("error terminating container: %v\n", err)
	}
	os.Exit(code)
}

func insertTeam(t *testing.T, name string, rating float64, league string) models.Team {
	t.Helper()
	tm := models.Team{Name: name, League: league, Rating: rating, OverallRating: 80}
	err := testDB.QueryRow(
		`INSERT INTO teams (name, league, rating, overall_rating) VALUES ($1, $2, $3, $4) RETURNING id`,
		tm.Name, tm.League, tm.Rating, tm.OverallRating,
	).Scan(&tm.ID)
	if err != nil {
		t.Fatalf("insert team: %v", err)
	}
	return tm
}

func TestPlayerRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPostgresPlayerRepository(testDB)

	p := &models.Player{Name: "Integration Alice"}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" || p.CreatedAt.IsZero() {
		t.Fatalf("generated fields not populated: %+v", p)
	}

	dup := &models.Player{Name: "integration ALICE"}
	if err := repo.Create(ctx, dup); !errors.Is(err, ErrPlayerNameConflict) {
		t.Errorf("expected name conflict, got %v", err)
	}

	renamed, err := repo.UpdateName(ctx, p.ID, "Integration Alicia")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.Name != "Integration Alicia" {
		t.Errorf("unexpected name %q", renamed.Name)
	}

	if _, err := repo.GetByID(ctx, "not-a-uuid"); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("expected not found for malformed id, got %v", err)
	}
}

func TestMatchRepository_rosterLifecycle(t *testing.T) {
	ctx := context.Background()
	participants := NewPostgresParticipantRepository(testDB)
	matches := NewPostgresMatchRepository(testDB, participants)
	players := NewPostgresPlayerRepository(testDB)

	red := insertTeam(t, "Integration Red", 4.5, "Premier League")
	blue := insertTeam(t, "Integration Blue", 4.0, "La Liga")
	p1 := &models.Player{Name: "Roster One"}
	p2 := &models.Player{Name: "Roster Two"}
	for _, p := range []*models.Player{p1, p2} {
		if err := players.Create(ctx, p); err != nil {
			t.Fatalf("create player: %v", err)
		}
	}

	m := &models.Match{Team1ID: red.ID, Team2ID: blue.ID}
	roster := []*models.MatchParticipant{
		{PlayerID: p1.ID, Side: models.SideHome},
		{PlayerID: p2.ID, Side: models.SideAway},
	}
	if err := matches.CreateWithRoster(ctx, m, roster); err != nil {
		t.Fatalf("create with roster: %v", err)
	}

	start := m.PlayedAt.Add(-time.Minute)
	listed, err := matches.ListPlayedBetween(ctx, start, start.Add(time.Hour))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	found := false
	for _, lm := range listed {
		if lm.ID == m.ID {
			found = true
			if lm.Completed() {
				t.Errorf("new match should be unscored: %+v", lm)
			}
		}
	}
	if !found {
		t.Fatalf("match %s not listed", m.ID)
	}

	rows, err := participants.ListByMatchIDs(ctx, []string{m.ID})
	if err != nil || len(rows) != 2 {
		t.Fatalf("expected 2 participants, got %d (err=%v)", len(rows), err)
	}

	updated, err := matches.UpdateScore(ctx, m.ID, 3, 1)
	if err != nil {
		t.Fatalf("update score: %v", err)
	}
	if s1, s2, ok := updated.Scores(); !ok || s1 != 3 || s2 != 1 {
		t.Errorf("unexpected scores: %+v", updated)
	}

	if err := matches.Delete(ctx, m.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	rows, _ = participants.ListByMatchIDs(ctx, []string{m.ID})
	if len(rows) != 0 {
		t.Errorf("participants not cascaded: %d left", len(rows))
	}
	if err := matches.Delete(ctx, m.ID); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("expected not found on second delete, got %v", err)
	}
}

func TestMatchRepository_rosterFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	participants := NewPostgresParticipantRepository(testDB)
	matches := NewPostgresMatchRepository(testDB, participants)

	red := insertTeam(t, "Rollback Red", 4.5, "Serie A")
	blue := insertTeam(t, "Rollback Blue", 4.5, "Serie A")

	before := countMatches(t)
	m := &models.Match{Team1ID: red.ID, Team2ID: blue.ID}
	roster := []*models.MatchParticipant{
		{PlayerID: "00000000-0000-0000-0000-000000000000", Side: models.SideHome},
	}
	err := matches.CreateWithRoster(ctx, m, roster)
	if !errors.Is(err, ErrRosterWriteFailed) {
		t.Fatalf("expected roster failure, got %v", err)
	}
	if after := countMatches(t); after != before {
		t.Errorf("orphaned match left behind: %d -> %d", before, after)
	}
}

func countMatches(t *testing.T) int {
	t.Helper()
	var n int
	if err := testDB.QueryRow(`SELECT count(*) FROM matches`).Scan(&n); err != nil {
		t.Fatalf("count matches: %v", err)
	}
	return n
}
