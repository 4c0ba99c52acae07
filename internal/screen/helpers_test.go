package screen

import (
	"sync"
	"testing"
	"time"

	"quizdesk/internal/testutil"
	"quizdesk/pkg/catalog/httpclient"
)

type recordingRouter struct {
	mu    sync.Mutex
	paths []string
}

func (r *recordingRouter) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recordingRouter) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func (r *recordingRouter) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.paths) == 0 {
		return ""
	}
	return r.paths[len(r.paths)-1]
}

type recordingView[T any] struct {
	mu    sync.Mutex
	snaps []Snapshot[T]
}

func (v *recordingView[T]) Render(s Snapshot[T]) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.snaps = append(v.snaps, s)
}

func (v *recordingView[T]) Phases() []Phase {
	v.mu.Lock()
	defer v.mu.Unlock()
	phases := make([]Phase, 0, len(v.snaps))
	for _, snap := range v.snaps {
		phases = append(phases, snap.Phase)
	}
	return phases
}

const testRedirectDelay = 3 * time.Second

type harness struct {
	server *testutil.CatalogServer
	client *httpclient.Client
	router *recordingRouter
	sched  *testutil.FakeScheduler
	opts   Options
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	server := testutil.StartCatalogServer(t, testutil.CatalogServerConfig{NewID: testutil.SequentialIDs("id")})
	h := &harness{
		server: server,
		client: httpclient.New(server.BaseURL),
		router: &recordingRouter{},
		sched:  testutil.NewFakeScheduler(),
	}
	h.opts = Options{Router: h.router, Scheduler: h.sched, RedirectDelay: testRedirectDelay}
	return h
}

func samePhases(got, want []Phase) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
