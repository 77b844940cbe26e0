package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sjostromVilgot/Facta-sub000/internal/logger"
	"github.com/sjostromVilgot/Facta-sub000/internal/store"
)

type purposeKey struct{}

// WithPurpose tags requests made with ctx, e.g. "pack-gen". The tag is
// stored with each recorded request.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the tag set by WithPurpose, or "".
func PurposeFrom(ctx context.Context) string {
	p, _ := ctx.Value(purposeKey{}).(string)
	return p
}

type recorder struct {
	inner  Provider
	vendor string
	events store.EventRepo
	log    *logger.Logger
	now    func() time.Time
}

// WithRecorder stores every request and its outcome in events, so that
// `facta llm` can list them and total their cost.
func WithRecorder(p Provider, vendor string, events store.EventRepo, log *logger.Logger) Provider {
	return &recorder{
		inner:  p,
		vendor: vendor,
		events: events,
		log:    logger.OrNop(log).With("component", "llm", "vendor", vendor),
		now:    time.Now,
	}
}

func (r *recorder) ModelID() string { return r.inner.ModelID() }

func (r *recorder) Generate(ctx context.Context, req Request) (*Response, error) {
	started := r.now()
	resp, err := r.inner.Generate(ctx, req)
	ev := r.event(ctx, req, resp, err, r.now().Sub(started))

	if err != nil {
		r.log.Warn("generate failed", "purpose", ev.Purpose, "model", ev.Model, "error", err)
	} else {
		r.log.Debug("generate", "purpose", ev.Purpose, "model", ev.Model,
			"tokens", resp.Usage.Total(), "latency_ms", ev.LatencyMs)
	}

	// The request already happened; losing the record is only logged.
	if werr := r.events.AppendLLMRequest(context.WithoutCancel(ctx), ev); werr != nil {
		r.log.Warn("record request failed", "error", werr)
	}
	return resp, err
}

func (r *recorder) event(ctx context.Context, req Request, resp *Response, err error, took time.Duration) store.LLMRequestEventData {
	ev := store.LLMRequestEventData{
		Provider:    r.vendor,
		Model:       r.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   took.Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		if resp.Model != "" {
			ev.Model = resp.Model
		}
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}
	return ev
}

// transcript is the request as `facta llm view` prints it.
func transcript(req Request) string {
	var sb strings.Builder
	section := func(label, body string) {
		fmt.Fprintf(&sb, "── %s ──\n%s\n\n", label, strings.TrimSpace(body))
	}
	if req.System != "" {
		section("system", req.System)
	}
	for _, m := range req.Messages {
		section(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		def, _ := json.MarshalIndent(req.Schema.Definition, "", "  ")
		section("schema "+req.Schema.Name, string(def))
	}
	return sb.String()
}
