package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openleague/footsim/models"
	"github.com/openleague/footsim/repositories"
)

// TickOutcome records one team action attempt during a tick. Err stays
// nil on success.
type TickOutcome struct {
	TeamID int
	Event  string
	Action string
	Err    error
}

// TickReport is the full trace of one daily tick over the CPU teams.
type TickReport struct {
	Date     time.Time
	Outcomes []TickOutcome
}

// Failed counts the outcomes that carry an error.
func (r *TickReport) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

// DailyTickService walks every CPU team through the day's scheduled
// events. A failing team never aborts the tick: the error lands in the
// report and the loop moves on.
type DailyTickService interface {
	Run(ctx context.Context, gameSaveID, seasonID int, date time.Time) (*TickReport, error)
}

type dailyTickService struct {
	eventRepo repositories.SeasonEventRepository
	teamRepo  repositories.TeamRepository
	// actions maps a season event type to the decisions CPU teams take
	// on that kind of day.
	actions map[models.SeasonEventType][]TeamAction
	logger  *slog.Logger
}

func NewDailyTickService(
	eventRepo repositories.SeasonEventRepository,
	teamRepo repositories.TeamRepository,
	actions map[models.SeasonEventType][]TeamAction,
	logger *slog.Logger,
) DailyTickService {
	return &dailyTickService{
		eventRepo: eventRepo,
		teamRepo:  teamRepo,
		actions:   actions,
		logger:    logger,
	}
}

func (s *dailyTickService) Run(ctx context.Context, gameSaveID, seasonID int, date time.Time) (*TickReport, error) {
	events, err := s.eventRepo.ListByDate(ctx, nil, seasonID, date)
	if err != nil {
		return nil, fmt.Errorf("list season events for %s: %w", date.Format("2006-01-02"), err)
	}
	// A day with nothing on the calendar is still a training day.
	if len(events) == 0 {
		events = []*models.SeasonEvent{{SeasonID: seasonID, Date: date, Type: models.EventTrainingDay}}
	}

	teams, err := s.teamRepo.ListCPUByGameSave(ctx, nil, gameSaveID)
	if err != nil {
		return nil, fmt.Errorf("list CPU teams of save %d: %w", gameSaveID, err)
	}

	report := &TickReport{Date: date}
	for _, event := range events {
		for _, team := range teams {
			for _, action := range s.actions[event.Type] {
				outcome := TickOutcome{TeamID: team.ID, Event: string(event.Type), Action: action.Name()}
				outcome.Err = s.runAction(ctx, action, ActionContext{
					GameSaveID: gameSaveID,
					SeasonID:   seasonID,
					Date:       date,
					TeamID:     team.ID,
					Event:      string(event.Type),
				})
				if outcome.Err != nil {
					s.logger.Error("team action failed",
						slog.Int("team_id", team.ID),
						slog.String("event", string(event.Type)),
						slog.String("action", action.Name()),
						slog.String("error", outcome.Err.Error()))
				}
				report.Outcomes = append(report.Outcomes, outcome)
			}
		}
	}

	s.logger.Info("daily tick complete",
		slog.String("date", date.Format("2006-01-02")),
		slog.Int("events", len(events)),
		slog.Int("teams", len(teams)),
		slog.Int("failures", report.Failed()))
	return report, nil
}

// runAction isolates one team's decision: a panicking action is folded
// into an error instead of taking the whole tick down.
func (s *dailyTickService) runAction(ctx context.Context, action TeamAction, actionCtx ActionContext) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("action %s panicked: %v", action.Name(), r)
		}
	}()
	return action.Run(ctx, actionCtx)
}
