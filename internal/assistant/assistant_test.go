package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/joanapinto/humsy/internal/model"
)

type stubClient struct {
	response []byte
	err      error
	calls    int
}

func (c *stubClient) GenerateJSON(_ context.Context, _, _ string) ([]byte, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.response, nil
}

type stubUsageStore struct {
	count    int
	recorded int
}

func (s *stubUsageStore) CountSince(_ context.Context, _, _ string, _ time.Time) (int, error) {
	return s.count, nil
}

func (s *stubUsageStore) Record(_ context.Context, _, _ string) error {
	s.recorded++
	return nil
}

func testGoal() *model.Goal {
	return &model.Goal{
		ID:         "goal-1",
		UserID:     "user-1",
		Title:      "Write a novel",
		WeeklyTime: "2-3 hours",
		Intensity:  model.IntensityBalanced,
	}
}

func TestProposerParsesPlan(t *testing.T) {
	client := &stubClient{response: []byte(`{
		"milestones": [{"title": "Outline", "description": "Plot and characters", "target_date": "2026-10-01"}],
		"steps": [{"milestone_title": "Outline", "title": "Draft chapter list", "description": "List every chapter with a one-line summary of its events.", "estimate_minutes": 45, "suggested_day": "Monday", "due_date": "2026-09-15"}]
	}`)}
	proposer := NewOpenAIProposer(client, nil, nil)

	plan, err := proposer.ProposePlan(context.Background(), testGoal())
	if err != nil {
		t.Fatalf("ProposePlan failed: %v", err)
	}
	if len(plan.Milestones) != 1 || plan.Milestones[0].Title != "Outline" {
		t.Errorf("unexpected milestones: %+v", plan.Milestones)
	}
	if len(plan.Steps) != 1 || plan.Steps[0].EstimateMinutes != 45 {
		t.Errorf("unexpected steps: %+v", plan.Steps)
	}
}

func TestProposerMalformedResponseIsUnavailable(t *testing.T) {
	client := &stubClient{response: []byte(`not json`)}
	proposer := NewOpenAIProposer(client, nil, nil)

	_, err := proposer.ProposePlan(context.Background(), testGoal())
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestProposerMissingKeyIsUnavailable(t *testing.T) {
	proposer := NewOpenAIProposer(NewOpenAIClient(""), nil, nil)

	_, err := proposer.ProposePlan(context.Background(), testGoal())
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestCacheSkipsSecondCall(t *testing.T) {
	client := &stubClient{response: []byte(`{"milestones": [], "steps": []}`)}
	cache := NewCache(time.Minute)
	proposer := NewOpenAIProposer(client, cache, nil)

	goal := testGoal()
	if _, err := proposer.ProposePlan(context.Background(), goal); err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	if _, err := proposer.ProposePlan(context.Background(), goal); err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if client.calls != 1 {
		t.Errorf("expected 1 client call, got %d", client.calls)
	}
}

func TestLimiterCapReadsAsUnavailable(t *testing.T) {
	client := &stubClient{response: []byte(`{"milestones": [], "steps": []}`)}
	store := &stubUsageStore{count: 5}
	limiter := NewLimiter(store, map[string]Caps{FeatureGoalPlan: {Daily: 5}})
	proposer := NewOpenAIProposer(client, nil, limiter)

	_, err := proposer.ProposePlan(context.Background(), testGoal())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable at cap, got %v", err)
	}
	if client.calls != 0 {
		t.Errorf("client must not be called at cap, got %d calls", client.calls)
	}
}

func TestLimiterRecordsSuccessfulCalls(t *testing.T) {
	client := &stubClient{response: []byte(`{"milestones": [], "steps": []}`)}
	store := &stubUsageStore{}
	limiter := NewLimiter(store, map[string]Caps{FeatureGoalPlan: {Daily: 5}})
	proposer := NewOpenAIProposer(client, nil, limiter)

	if _, err := proposer.ProposePlan(context.Background(), testGoal()); err != nil {
		t.Fatalf("ProposePlan failed: %v", err)
	}
	if store.recorded != 1 {
		t.Errorf("expected 1 recorded call, got %d", store.recorded)
	}
}
