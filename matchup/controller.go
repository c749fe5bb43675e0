package matchup

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/matchup-generator/models"
)

type State int

const (
	StateUninitialized State = iota
	StateSettling
	StateStable
	StateEmpty
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateSettling:
		return "settling"
	case StateStable:
		return "stable"
	case StateEmpty:
		return "empty"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

var (
	ErrNoMatchup   = errors.New("no matchup to edit")
	ErrInvalidSide = errors.New("side must be 1 or 2")
)

// NotEnoughCandidatesError is returned when fewer than two eligible teams
// are left unplayed today.
type NotEnoughCandidatesError struct {
	Available int
	Settings  models.Settings
}

func (e *NotEnoughCandidatesError) Error() string {
	nations := ""
	if e.Settings.ExcludeNations {
		nations = " excluding nations"
	}
	return fmt.Sprintf(
		"Not enough teams available for a new matchup within the current filter (%.1f-%.1f stars%s) that haven't played today. Only %d team(s) remaining.",
		e.Settings.MinRating, e.Settings.MaxRating, nations, e.Available,
	)
}

// Inputs is everything the controller reacts to. It is rebuilt by the
// caller before every call.
type Inputs struct {
	Loaded   bool
	Settings models.Settings
	Eligible []models.Team
	Played   map[string]struct{}
}

func (in Inputs) unplayedEligible() []models.Team {
	return Unplayed(in.Eligible, in.Played)
}

// Controller holds one session's matchup. It is not safe for concurrent use.
type Controller struct {
	picker  *Picker
	logger  *slog.Logger
	state   State
	current *models.Matchup
}

func NewController(picker *Picker, logger *slog.Logger) *Controller {
	return &Controller{
		picker: picker,
		logger: logger,
		state:  StateUninitialized,
	}
}

func (c *Controller) State() State {
	return c.state
}

// Current returns the displayed matchup, if any.
func (c *Controller) Current() (models.Matchup, bool) {
	if c.current == nil {
		return models.Matchup{}, false
	}
	return *c.current, true
}

// Sync re-evaluates the matchup against fresh inputs. Until the first
// successful load the controller stays uninitialized.
func (c *Controller) Sync(in Inputs) State {
	if c.state == StateUninitialized && !in.Loaded {
		return c.state
	}
	if c.state == StateStable && c.stillValid(in) {
		return c.state
	}
	c.settle(in)
	return c.state
}

func (c *Controller) stillValid(in Inputs) bool {
	if c.current == nil || len(in.Eligible) < 2 {
		return false
	}
	return contains(in.Eligible, c.current.Home.ID) && contains(in.Eligible, c.current.Away.ID)
}

func (c *Controller) settle(in Inputs) {
	c.state = StateSettling
	if c.stillValid(in) {
		c.state = StateStable
		return
	}
	home, away, ok := c.picker.PickPair(in.unplayedEligible())
	if !ok {
		c.current = nil
		c.state = StateEmpty
		return
	}
	c.current = &models.Matchup{Home: home, Away: away}
	c.state = StateStable
}

// Generate discards the current matchup and draws a new one from eligible
// teams that have not played today. With fewer than two such teams the
// display is cleared and a *NotEnoughCandidatesError is returned.
func (c *Controller) Generate(in Inputs) (models.Matchup, error) {
	candidates := in.unplayedEligible()
	home, away, ok := c.picker.PickPair(candidates)
	if !ok {
		c.current = nil
		c.state = StateEmpty
		return models.Matchup{}, &NotEnoughCandidatesError{Available: len(candidates), Settings: in.Settings}
	}
	c.current = &models.Matchup{Home: home, Away: away}
	c.state = StateStable
	return *c.current, nil
}

// EditSide puts team on the given side. The other side is kept while it is
// distinct from team, eligible and unplayed; otherwise it is redrawn from
// the eligible unplayed teams minus team. If nothing can replace it, it is
// left as is and a warning is logged.
func (c *Controller) EditSide(in Inputs, side models.Side, team models.Team) (models.Matchup, error) {
	if !side.Valid() {
		return models.Matchup{}, ErrInvalidSide
	}
	if c.current == nil {
		return models.Matchup{}, ErrNoMatchup
	}

	next := *c.current
	other := next.Team(side.Other())
	if side == models.SideHome {
		next.Home = team
	} else {
		next.Away = team
	}

	if c.otherSideInvalid(in, other, team) {
		replacement, ok := c.picker.PickOne(in.unplayedEligible(), team.ID)
		if ok {
			if side == models.SideHome {
				next.Away = replacement
			} else {
				next.Home = replacement
			}
		} else if c.logger != nil {
			c.logger.Warn("no replacement available for opposing side",
				slog.String("edited_team_id", team.ID),
				slog.String("kept_team_id", other.ID),
			)
		}
	}

	c.current = &next
	c.state = StateStable
	return next, nil
}

func (c *Controller) otherSideInvalid(in Inputs, other, edited models.Team) bool {
	if other.ID == edited.ID {
		return true
	}
	if !contains(in.Eligible, other.ID) {
		return true
	}
	_, played := in.Played[other.ID]
	return played
}
