package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnStageStart(ctx, "classic", StageLayout)
	p.OnStageComplete(ctx, "classic", StageLayout, time.Millisecond, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "png")
	c.OnCacheMiss(ctx, "pdf")
	c.OnCacheSet(ctx, "png", 1024)
}

type recordingHooks struct {
	stages []Stage
}

func (r *recordingHooks) OnStageStart(_ context.Context, _ string, s Stage) {
	r.stages = append(r.stages, s)
}

func (r *recordingHooks) OnStageComplete(context.Context, string, Stage, time.Duration, error) {}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	rec := &recordingHooks{}
	SetPipelineHooks(rec)
	Pipeline().OnStageStart(context.Background(), "classic", StageDerive)
	if len(rec.stages) != 1 || rec.stages[0] != StageDerive {
		t.Errorf("recorded stages = %v, want [derive]", rec.stages)
	}

	SetPipelineHooks(nil)
	if Pipeline() != rec {
		t.Error("SetPipelineHooks(nil) should keep the current hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}
