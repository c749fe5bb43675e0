package standings

import (
	"reflect"
	"testing"

	"github.com/Dosada05/matchup-generator/models"
)

func intp(n int) *int { return &n }

var (
	alice = models.Player{ID: "p-alice", Name: "Alice"}
	bob   = models.Player{ID: "p-bob", Name: "Bob"}
	carol = models.Player{ID: "p-carol", Name: "Carol"}
	dave  = models.Player{ID: "p-dave", Name: "Dave"}

	red  = models.Team{ID: "t-red", Name: "Red", Rating: 4.5, OverallRating: 85}
	blue = models.Team{ID: "t-blue", Name: "Blue", Rating: 3.0, OverallRating: 78}
)

func match(id string, s1, s2 *int, home, away []models.Player) models.MatchHistoryItem {
	return models.MatchHistoryItem{
		Match:        models.Match{ID: id, Team1ID: red.ID, Team2ID: blue.ID, Team1Score: s1, Team2Score: s2},
		Team1Players: home,
		Team2Players: away,
	}
}

func byID(rows []models.PlayerStanding) map[string]models.PlayerStanding {
	m := make(map[string]models.PlayerStanding, len(rows))
	for _, r := range rows {
		m[r.PlayerID] = r
	}
	return m
}

func TestCompute_singleMatch(t *testing.T) {
	matches := []models.MatchHistoryItem{
		match("m1", intp(3), intp(1), []models.Player{alice}, []models.Player{bob, carol}),
	}
	got := Compute(matches, []models.Player{alice, bob, carol}, []models.Team{red, blue})

	want := map[string]models.PlayerStanding{
		alice.ID: {PlayerID: alice.ID, PlayerName: "Alice", Points: 1, GoalsFor: 3, GoalsAgainst: 1, GoalDifference: 2, TotalOverallRating: 85},
		bob.ID:   {PlayerID: bob.ID, PlayerName: "Bob", Points: 0, GoalsFor: 1, GoalsAgainst: 3, GoalDifference: -2, TotalOverallRating: 78},
		carol.ID: {PlayerID: carol.ID, PlayerName: "Carol", Points: 0, GoalsFor: 1, GoalsAgainst: 3, GoalDifference: -2, TotalOverallRating: 78},
	}
	if !reflect.DeepEqual(byID(got), want) {
		t.Errorf("unexpected standings:\n got: %+v\nwant: %+v", got, want)
	}
	if got[0].PlayerID != alice.ID {
		t.Errorf("expected Alice first, got %s", got[0].PlayerName)
	}
}

func TestCompute_unscoredMatchContributesNothing(t *testing.T) {
	matches := []models.MatchHistoryItem{
		match("m1", nil, nil, []models.Player{alice}, []models.Player{bob}),
		match("m2", intp(2), nil, []models.Player{carol}, []models.Player{dave}),
	}
	got := Compute(matches, []models.Player{alice, bob, carol, dave}, []models.Team{red, blue})

	for _, r := range got {
		zero := models.PlayerStanding{PlayerID: r.PlayerID, PlayerName: r.PlayerName}
		if r != zero {
			t.Errorf("expected zero record for %s, got %+v", r.PlayerName, r)
		}
	}
}

func TestCompute_drawAndUnknownPlayers(t *testing.T) {
	stranger := models.Player{ID: "p-gone", Name: "Gone"}
	matches := []models.MatchHistoryItem{
		match("m1", intp(2), intp(2), []models.Player{alice, stranger}, []models.Player{bob}),
	}
	got := byID(Compute(matches, []models.Player{alice, bob}, []models.Team{red, blue}))

	if len(got) != 2 {
		t.Fatalf("expected records only for known players, got %d", len(got))
	}
	if got[alice.ID].Points != 0 || got[bob.ID].Points != 0 {
		t.Errorf("a draw must not award points: %+v", got)
	}
	if got[alice.ID].GoalsFor != 2 || got[alice.ID].GoalsAgainst != 2 {
		t.Errorf("unexpected goals for alice: %+v", got[alice.ID])
	}
}

func TestCompute_sortOrder(t *testing.T) {
	matches := []models.MatchHistoryItem{
		match("m1", intp(1), intp(0), []models.Player{alice}, []models.Player{bob}),
		match("m2", intp(4), intp(1), []models.Player{carol}, []models.Player{dave}),
		match("m3", intp(0), intp(2), []models.Player{alice}, []models.Player{dave}),
	}
	got := Compute(matches, []models.Player{alice, bob, carol, dave}, []models.Team{red, blue})

	// carol: 1pt +3, dave: 1pt -1 (GF 3), alice: 1pt -1 (GF 1), bob: 0pt
	order := []string{carol.ID, dave.ID, alice.ID, bob.ID}
	for i, id := range order {
		if got[i].PlayerID != id {
			t.Fatalf("position %d: wanted %s, got %s (%+v)", i, id, got[i].PlayerID, got)
		}
	}
}

func TestCompute_properties(t *testing.T) {
	players := []models.Player{alice, bob, carol, dave}
	matches := []models.MatchHistoryItem{
		match("m1", intp(3), intp(1), []models.Player{alice, bob}, []models.Player{carol}),
		match("m2", intp(0), intp(0), []models.Player{dave}, []models.Player{alice}),
		match("m3", intp(5), intp(2), []models.Player{carol, dave}, []models.Player{bob}),
		match("m4", nil, nil, []models.Player{alice}, []models.Player{bob}),
	}
	teams := []models.Team{red, blue}

	got := Compute(matches, players, teams)

	var totalGF, wantGF int
	for _, m := range matches {
		s1, s2, ok := m.Scores()
		if !ok {
			continue
		}
		wantGF += s1*len(m.Team1Players) + s2*len(m.Team2Players)
	}
	for _, r := range got {
		totalGF += r.GoalsFor
		if r.GoalDifference != r.GoalsFor-r.GoalsAgainst {
			t.Errorf("goal difference mismatch for %s: %+v", r.PlayerName, r)
		}
	}
	if totalGF != wantGF {
		t.Errorf("sum of goals for: wanted %d, got %d", wantGF, totalGF)
	}

	for i := 1; i < len(got); i++ {
		if got[i].Points > got[i-1].Points {
			t.Errorf("record %d has more points than record %d: %+v", i, i-1, got)
		}
	}

	again := Compute(matches, players, teams)
	if !reflect.DeepEqual(got, again) {
		t.Error("compute is not idempotent")
	}
}

func TestCompute_emptyInputs(t *testing.T) {
	got := Compute(nil, []models.Player{alice}, nil)
	if len(got) != 1 || got[0].Points != 0 {
		t.Errorf("unexpected standings: %+v", got)
	}
	if got := Compute(nil, nil, nil); len(got) != 0 {
		t.Errorf("expected no standings, got %+v", got)
	}
}
