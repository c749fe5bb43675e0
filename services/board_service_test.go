package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dosada05/matchup-generator/models"
	"github.com/Dosada05/matchup-generator/realtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func todayMatches() ([]models.Match, []models.MatchParticipant) {
	matches := []models.Match{
		{ID: "m2", Team1ID: teamA.ID, Team2ID: teamB.ID, Team1Score: intPtr(3), Team2Score: intPtr(1), PlayedAt: testNow.Add(-time.Hour)},
		{ID: "m1", Team1ID: teamC.ID, Team2ID: "gone", Team1Score: intPtr(0), Team2Score: intPtr(0), PlayedAt: testNow.Add(-2 * time.Hour)},
		{ID: "m3", Team1ID: teamD.ID, Team2ID: teamN.ID, PlayedAt: testNow.Add(-3 * time.Hour)},
	}
	roster := []models.MatchParticipant{
		{MatchID: "m2", PlayerID: playerAnna.ID, Side: models.SideHome},
		{MatchID: "m2", PlayerID: playerBen.ID, Side: models.SideAway},
		{MatchID: "m1", PlayerID: playerCara.ID, Side: models.SideHome},
		{MatchID: "m1", PlayerID: "deleted-player", Side: models.SideAway},
		{MatchID: "m3", PlayerID: playerAnna.ID, Side: models.SideAway},
	}
	return matches, roster
}

func TestBoard_SnapshotBuildsHistoryAndStandings(t *testing.T) {
	matches, roster := todayMatches()
	env := newTestEnv(t).withCatalog(allTeams(), allPlayers())

	start := time.Date(2025, 5, 17, 0, 0, 0, 0, time.UTC)
	env.matches.On("ListPlayedBetween", mock.Anything, start, start.Add(24*time.Hour)).Return(matches, nil)
	env.participants.On("ListByMatchIDs", mock.Anything, []string{"m2", "m1", "m3"}).Return(roster, nil)

	snap, err := env.board.Snapshot(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Matches, 3)
	assert.Equal(t, "Arsenal", snap.Matches[0].Team1Name)
	assert.Equal(t, "Barcelona", snap.Matches[0].Team2Name)
	assert.True(t, snap.Matches[0].Highlighted)
	assert.False(t, snap.Matches[1].Highlighted)
	assert.False(t, snap.Matches[2].Highlighted)

	assert.Equal(t, unknownTeamName, snap.Matches[1].Team2Name)
	assert.Equal(t, []models.Player{playerCara}, snap.Matches[1].Team1Players)
	assert.Empty(t, snap.Matches[1].Team2Players)

	require.Len(t, snap.Standings, 3)
	leader := snap.Standings[0]
	assert.Equal(t, playerAnna.ID, leader.PlayerID)
	assert.Equal(t, 1, leader.Points)
	assert.Equal(t, 2, leader.GoalDifference)
	// m3 не сыгран, OVR Франции не засчитывается
	assert.Equal(t, teamA.OverallRating, leader.TotalOverallRating)

	assert.Equal(t, start, snap.Day)
	assert.Equal(t, map[string]struct{}{"a": {}, "b": {}, "c": {}, "gone": {}, "d": {}, "n": {}}, snap.Played())
	env.matches.AssertExpectations(t)
	env.participants.AssertExpectations(t)
}

func TestBoard_SnapshotIsCachedPerGeneration(t *testing.T) {
	matches, roster := todayMatches()
	env := newTestEnv(t).withCatalog(allTeams(), allPlayers()).withHistory(matches, roster)
	ctx := context.Background()

	first, err := env.board.Snapshot(ctx)
	require.NoError(t, err)
	second, err := env.board.Snapshot(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second)
	env.matches.AssertNumberOfCalls(t, "ListPlayedBetween", 1)

	gen := env.board.Invalidate(ctx, "test")
	assert.Equal(t, uint64(1), gen)

	third, err := env.board.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), third.Generation)
	env.matches.AssertNumberOfCalls(t, "ListPlayedBetween", 2)
}

func TestBoard_SnapshotRollsOverAtMidnight(t *testing.T) {
	env := newTestEnv(t).withCatalog(allTeams(), allPlayers()).withHistory(nil, nil)
	ctx := context.Background()

	first, err := env.board.Snapshot(ctx)
	require.NoError(t, err)

	env.clock.Advance(9 * time.Hour)
	second, err := env.board.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.Day.Add(24*time.Hour), second.Day)
	env.matches.AssertNumberOfCalls(t, "ListPlayedBetween", 2)
}

func TestBoard_InvalidateBroadcasts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.board.Invalidate(ctx, "match_recorded")
	env.board.Invalidate(ctx, "score_updated")

	assert.Equal(t, uint64(2), env.board.Generation())
	require.Len(t, env.notifier.messages, 2)
	last := env.notifier.messages[1]
	assert.Equal(t, realtime.EventHistoryInvalidated, last.Type)
	assert.Equal(t, realtime.BoardRoom, last.RoomID)
	assert.Equal(t, map[string]interface{}{"generation": uint64(2), "reason": "score_updated"}, last.Payload)
}

func TestBoard_StaleFetchIsNotCached(t *testing.T) {
	matches, roster := todayMatches()
	env := newTestEnv(t).withCatalog(allTeams(), allPlayers())
	ctx := context.Background()

	// новая запись матча приходит, пока идёт чтение истории
	env.matches.On("ListPlayedBetween", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { env.board.Invalidate(ctx, "match_recorded") }).
		Return(matches[:1], nil).Once()
	env.matches.On("ListPlayedBetween", mock.Anything, mock.Anything, mock.Anything).
		Return(matches, nil)
	env.participants.On("ListByMatchIDs", mock.Anything, mock.Anything).Return(roster, nil)

	stale, err := env.board.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), stale.Generation)
	assert.Len(t, stale.Matches, 1)

	fresh, err := env.board.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), fresh.Generation)
	assert.Len(t, fresh.Matches, 3)

	cached, err := env.board.Snapshot(ctx)
	require.NoError(t, err)
	assert.Same(t, fresh, cached)
	env.matches.AssertNumberOfCalls(t, "ListPlayedBetween", 2)
}

func TestBoard_FetchErrors(t *testing.T) {
	tests := map[string]struct {
		matchesErr      error
		participantsErr error
	}{
		"matches":      {matchesErr: errors.New("db down")},
		"participants": {participantsErr: errors.New("db down")},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t).withCatalog(allTeams(), allPlayers())
			var matches []models.Match
			if tc.matchesErr == nil {
				matches, _ = todayMatches()
			}
			env.matches.On("ListPlayedBetween", mock.Anything, mock.Anything, mock.Anything).Return(matches, tc.matchesErr)
			env.participants.On("ListByMatchIDs", mock.Anything, mock.Anything).Return(nil, tc.participantsErr)

			snap, err := env.board.Snapshot(context.Background())
			assert.Nil(t, snap)
			assert.ErrorIs(t, err, ErrFetch)
		})
	}
}

func TestBuildHistory_EmptyRosters(t *testing.T) {
	items := buildHistory([]models.Match{{ID: "x", Team1ID: teamA.ID, Team2ID: teamB.ID}}, nil, allTeams(), allPlayers())
	require.Len(t, items, 1)
	assert.NotNil(t, items[0].Team1Players)
	assert.NotNil(t, items[0].Team2Players)
	assert.Empty(t, items[0].Team1Players)
}
