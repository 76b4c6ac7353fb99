package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

// exportRecorder counts export completions and remembers the last files.
type exportRecorder struct {
	NoopPipelineHooks
	mu    sync.Mutex
	calls int
	files []string
}

func (r *exportRecorder) OnExportComplete(_ context.Context, _ string, files []string, _ time.Duration, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.files = files
}

type cacheRecorder struct{ NoopCacheHooks }
type httpRecorder struct{ NoopHTTPHooks }

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T, want NoopPipelineHooks", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want NoopHTTPHooks", HTTP())
	}

	// Every event must be accepted by the defaults.
	Pipeline().OnLoadStart(ctx, "custom_knowledge_taxonomy.json")
	Pipeline().OnLoadComplete(ctx, "custom_knowledge_taxonomy.json", 12, time.Millisecond, nil)
	Pipeline().OnTraverseComplete(ctx, "ex:animals", 3, 2, time.Millisecond)
	Pipeline().OnExportStart(ctx, "ex:animals", []string{"html", "svg"})
	Pipeline().OnExportComplete(ctx, "ex:animals", nil, time.Millisecond, nil)
	Cache().OnCacheHit(ctx, "artifact")
	Cache().OnCacheMiss(ctx, "artifact")
	Cache().OnCacheSet(ctx, "artifact", 512)
	HTTP().OnRequest(ctx, "GET", "/graph")
	HTTP().OnResponse(ctx, "GET", "/graph", 404, time.Millisecond)
}

func TestRegisteredHooksReceiveEvents(t *testing.T) {
	t.Cleanup(Reset)

	rec := &exportRecorder{}
	SetPipelineHooks(rec)
	SetCacheHooks(&cacheRecorder{})
	SetHTTPHooks(&httpRecorder{})

	Pipeline().OnExportComplete(context.Background(), "ex:plants", []string{"plants_taxonomy.html"}, time.Second, nil)
	if rec.calls != 1 || len(rec.files) != 1 || rec.files[0] != "plants_taxonomy.html" {
		t.Errorf("recorder = %d calls, files %v", rec.calls, rec.files)
	}
	if _, ok := Cache().(*cacheRecorder); !ok {
		t.Errorf("Cache() = %T after SetCacheHooks", Cache())
	}
	if _, ok := HTTP().(*httpRecorder); !ok {
		t.Errorf("HTTP() = %T after SetHTTPHooks", HTTP())
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() did not restore the pipeline default")
	}
}

func TestSetNilKeepsCurrentHooks(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	rec := &exportRecorder{}
	SetPipelineHooks(rec)
	SetPipelineHooks(nil)
	SetCacheHooks(nil)
	SetHTTPHooks(nil)

	if Pipeline() != rec {
		t.Error("SetPipelineHooks(nil) replaced the registered hooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("SetCacheHooks(nil) replaced the default")
	}
}
