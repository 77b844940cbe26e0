package store

import (
	"context"
	"testing"
)

func TestLLMEventsAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-sonnet", Purpose: "fact-gen", InputTokens: 100, OutputTokens: 400, LatencyMs: 900, Success: true},
		{Provider: "anthropic", Model: "claude-sonnet", Purpose: "question-gen", InputTokens: 50, OutputTokens: 200, LatencyMs: 300, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "fact-gen", InputTokens: 80, LatencyMs: 100, ErrorMessage: "rate limited"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len(events) = %d, want 3", len(got))
	}
	if got[0].Model != "gpt-4o-mini" {
		t.Errorf("newest model = %q, want %q", got[0].Model, "gpt-4o-mini")
	}
	if got[0].Success {
		t.Error("failed request stored as success")
	}
	if got[0].Sequence <= got[1].Sequence {
		t.Errorf("sequence not descending: %d then %d", got[0].Sequence, got[1].Sequence)
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1, Purpose: "fact-gen"})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 || limited[0].Purpose != "fact-gen" {
		t.Errorf("limited query = %+v, want one fact-gen event", limited)
	}
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "gemini",
		Model:        "gemini-2.5-flash",
		Purpose:      "fact-gen",
		Success:      true,
		RequestBody:  `{"system":"..."}`,
		ResponseBody: `{"facts":[]}`,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil || len(all) != 1 {
		t.Fatalf("query: %v (%d events)", err, len(all))
	}

	e, err := repo.GetLLMEvent(ctx, all[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil {
		t.Fatal("expected event, got nil")
	}
	if e.ResponseBody != `{"facts":[]}` {
		t.Errorf("ResponseBody = %q", e.ResponseBody)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("GetLLMEvent(9999) = %+v, want nil", missing)
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Model: "m1", Purpose: "fact-gen", InputTokens: 10, OutputTokens: 20, LatencyMs: 100},
		{Model: "m1", Purpose: "fact-gen", InputTokens: 30, OutputTokens: 40, LatencyMs: 300},
		{Model: "m2", Purpose: "question-gen", InputTokens: 5, OutputTokens: 5, LatencyMs: 50},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	want := []PurposeUsage{
		{Purpose: "fact-gen", Calls: 2, InputTokens: 40, OutputTokens: 60, AvgLatencyMs: 200},
		{Purpose: "question-gen", Calls: 1, InputTokens: 5, OutputTokens: 5, AvgLatencyMs: 50},
	}
	if len(byPurpose) != len(want) {
		t.Fatalf("len = %d, want %d", len(byPurpose), len(want))
	}
	for i := range want {
		if byPurpose[i] != want[i] {
			t.Errorf("byPurpose[%d] = %+v, want %+v", i, byPurpose[i], want[i])
		}
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "m1" || byModel[0].Calls != 2 {
		t.Errorf("byModel = %+v", byModel)
	}
}
