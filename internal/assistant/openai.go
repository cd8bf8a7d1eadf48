package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joanapinto/humsy/internal/model"
)

// Feature names used for usage accounting and response caching.
const (
	FeatureGoalPlan       = "goal_plan"
	FeatureDailyAlignment = "daily_alignment"
	FeaturePlanAdaptation = "plan_adaptation"
)

// generate runs one assistant call through the shared decorator flow:
// usage cap check, cache lookup, completion, usage record, cache fill.
func generate(ctx context.Context, client Client, cache *Cache, limiter *Limiter, userID, feature, system, user string) ([]byte, error) {
	key := cacheKey(feature, user)
	if cache != nil {
		if data, ok := cache.Get(key); ok {
			return data, nil
		}
	}
	if limiter != nil {
		if err := limiter.Allow(ctx, userID, feature); err != nil {
			if errors.Is(err, ErrUsageCapped) {
				slog.Info("assistant usage capped", "user_id", userID, "feature", feature)
				return nil, ErrUnavailable
			}
			return nil, fmt.Errorf("check usage cap: %w", err)
		}
	}
	data, err := client.GenerateJSON(ctx, system, user)
	if err != nil {
		return nil, err
	}
	if limiter != nil {
		if err := limiter.Record(ctx, userID, feature); err != nil {
			slog.Warn("failed to record assistant usage", "error", err)
		}
	}
	if cache != nil {
		cache.Set(key, data)
	}
	return data, nil
}

// OpenAIProposer drafts a raw plan via the chat completions client.
type OpenAIProposer struct {
	client  Client
	cache   *Cache
	limiter *Limiter
}

func NewOpenAIProposer(client Client, cache *Cache, limiter *Limiter) *OpenAIProposer {
	return &OpenAIProposer{client: client, cache: cache, limiter: limiter}
}

func (p *OpenAIProposer) ProposePlan(ctx context.Context, goal *model.Goal) (model.RawPlan, error) {
	prompt := planPrompt(goal, time.Now())
	data, err := generate(ctx, p.client, p.cache, p.limiter, goal.UserID, FeatureGoalPlan, planSystemPrompt, prompt)
	if err != nil {
		return model.RawPlan{}, err
	}
	var plan model.RawPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		slog.Warn("assistant plan response not parseable", "error", err)
		return model.RawPlan{}, ErrUnavailable
	}
	return plan, nil
}

// OpenAIAligner selects today's steps via the chat completions client.
type OpenAIAligner struct {
	client  Client
	cache   *Cache
	limiter *Limiter
}

func NewOpenAIAligner(client Client, cache *Cache, limiter *Limiter) *OpenAIAligner {
	return &OpenAIAligner{client: client, cache: cache, limiter: limiter}
}

func (a *OpenAIAligner) ChooseToday(ctx context.Context, goal *model.Goal, candidates []*model.Step, checkin *model.Checkin) (Alignment, error) {
	prompt := alignPrompt(goal, candidates, checkin)
	data, err := generate(ctx, a.client, a.cache, a.limiter, goal.UserID, FeatureDailyAlignment, alignSystemPrompt, prompt)
	if err != nil {
		return Alignment{}, err
	}
	var al Alignment
	if err := json.Unmarshal(data, &al); err != nil {
		slog.Warn("assistant alignment response not parseable", "error", err)
		return Alignment{}, ErrUnavailable
	}
	return al, nil
}

// OpenAIAdapter proposes plan mutations via the chat completions client.
type OpenAIAdapter struct {
	client  Client
	cache   *Cache
	limiter *Limiter
}

func NewOpenAIAdapter(client Client, cache *Cache, limiter *Limiter) *OpenAIAdapter {
	return &OpenAIAdapter{client: client, cache: cache, limiter: limiter}
}

func (a *OpenAIAdapter) Adapt(ctx context.Context, goal *model.Goal, skipped []*model.Step, reason string, candidates []*model.Step) (Adaptation, error) {
	prompt := adaptPrompt(goal, skipped, reason, candidates)
	data, err := generate(ctx, a.client, a.cache, a.limiter, goal.UserID, FeaturePlanAdaptation, adaptSystemPrompt, prompt)
	if err != nil {
		return Adaptation{}, err
	}
	var ad Adaptation
	if err := json.Unmarshal(data, &ad); err != nil {
		slog.Warn("assistant adaptation response not parseable", "error", err)
		return Adaptation{}, ErrUnavailable
	}
	return ad, nil
}
