package service

import (
	"context"
	"time"

	"github.com/joanapinto/humsy/internal/assistant"
	"github.com/joanapinto/humsy/internal/model"
	"github.com/joanapinto/humsy/internal/repository"
)

type stubGoalRepo struct {
	goals  map[string]*model.Goal
	erased []string
}

func newStubGoalRepo(goals ...*model.Goal) *stubGoalRepo {
	r := &stubGoalRepo{goals: make(map[string]*model.Goal)}
	for _, g := range goals {
		r.goals[g.ID] = g
	}
	return r
}

func (r *stubGoalRepo) Create(goal *model.Goal) error {
	for _, g := range r.goals {
		if g.UserID == goal.UserID && g.Status == model.GoalStatusActive {
			g.Status = model.GoalStatusArchived
		}
	}
	r.goals[goal.ID] = goal
	return nil
}

func (r *stubGoalRepo) ByID(userID, goalID string) (*model.Goal, error) {
	g, ok := r.goals[goalID]
	if !ok || g.UserID != userID {
		return nil, repository.ErrGoalNotFound
	}
	return g, nil
}

func (r *stubGoalRepo) ActiveByUser(userID string) (*model.Goal, error) {
	for _, g := range r.goals {
		if g.UserID == userID && g.Status == model.GoalStatusActive {
			return g, nil
		}
	}
	return nil, repository.ErrGoalNotFound
}

func (r *stubGoalRepo) Update(goal *model.Goal) error {
	if _, ok := r.goals[goal.ID]; !ok {
		return repository.ErrGoalNotFound
	}
	r.goals[goal.ID] = goal
	return nil
}

func (r *stubGoalRepo) EraseUser(userID string) error {
	r.erased = append(r.erased, userID)
	for id, g := range r.goals {
		if g.UserID == userID {
			delete(r.goals, id)
		}
	}
	return nil
}

type stubPlanRepo struct {
	milestones []*model.Milestone
	steps      []*model.Step
	replaces   int
	diffs      []model.DiffList
}

func (r *stubPlanRepo) ReplacePlan(goalID string, milestones []*model.Milestone, steps []*model.Step) error {
	r.replaces++
	r.milestones = milestones
	r.steps = steps
	return nil
}

func (r *stubPlanRepo) Milestones(goalID string) ([]*model.Milestone, error) {
	return r.milestones, nil
}

func (r *stubPlanRepo) Steps(goalID string) ([]*model.Step, error) {
	return r.steps, nil
}

func (r *stubPlanRepo) StepByID(userID, stepID string) (*model.Step, error) {
	for _, s := range r.steps {
		if s.ID == stepID {
			return s, nil
		}
	}
	return nil, repository.ErrStepNotFound
}

func (r *stubPlanRepo) UpdateStepStatus(stepID, status string, at time.Time) error {
	for _, s := range r.steps {
		if s.ID == stepID {
			s.Status = status
			s.LastScheduled = &at
			return nil
		}
	}
	return repository.ErrStepNotFound
}

func (r *stubPlanRepo) ApplyDiff(goalID string, diff model.DiffList) error {
	r.diffs = append(r.diffs, diff)
	for _, entry := range diff {
		if entry.Action != model.DiffActionReopen {
			continue
		}
		for _, s := range r.steps {
			if s.ID == entry.StepID && s.Status == model.StepStatusSkipped {
				s.Status = model.StepStatusPending
			}
		}
	}
	return nil
}

type stubAdaptationRepo struct {
	records []*model.AdaptationRecord
}

func (r *stubAdaptationRepo) Create(rec *model.AdaptationRecord) error {
	r.records = append(r.records, rec)
	return nil
}

func (r *stubAdaptationRepo) RecentByGoal(goalID string, limit int) ([]*model.AdaptationRecord, error) {
	return r.records, nil
}

type stubCheckinRepo struct {
	checkins []*model.Checkin
}

func (r *stubCheckinRepo) Create(c *model.Checkin) error {
	r.checkins = append(r.checkins, c)
	return nil
}

func (r *stubCheckinRepo) LatestByUser(userID string) (*model.Checkin, error) {
	if len(r.checkins) == 0 {
		return nil, repository.ErrCheckinNotFound
	}
	return r.checkins[len(r.checkins)-1], nil
}

func (r *stubCheckinRepo) RecentByUser(userID string, limit int) ([]*model.Checkin, error) {
	return r.checkins, nil
}

type stubMoodRepo struct {
	entries []*model.MoodLog
}

func (r *stubMoodRepo) Create(e *model.MoodLog) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *stubMoodRepo) RecentByUser(userID string, limit int) ([]*model.MoodLog, error) {
	return r.entries, nil
}

type stubProposer struct {
	plan model.RawPlan
	err  error
}

func (p *stubProposer) ProposePlan(_ context.Context, _ *model.Goal) (model.RawPlan, error) {
	if p.err != nil {
		return model.RawPlan{}, p.err
	}
	return p.plan, nil
}

type stubAligner struct {
	alignment assistant.Alignment
	err       error
}

func (a *stubAligner) ChooseToday(_ context.Context, _ *model.Goal, _ []*model.Step, _ *model.Checkin) (assistant.Alignment, error) {
	if a.err != nil {
		return assistant.Alignment{}, a.err
	}
	return a.alignment, nil
}

type stubAdapter struct {
	adaptation assistant.Adaptation
	err        error
	calls      int
}

func (a *stubAdapter) Adapt(_ context.Context, _ *model.Goal, _ []*model.Step, _ string, _ []*model.Step) (assistant.Adaptation, error) {
	a.calls++
	if a.err != nil {
		return assistant.Adaptation{}, a.err
	}
	return a.adaptation, nil
}
