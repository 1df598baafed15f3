package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	shared "empleos/common/models"
	"empleos/common/telemetry"
	"empleos/services/processing/internal/config"
	"empleos/services/processing/internal/processor"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
)

type call struct {
	name string
	raws []shared.RawRecord
}

type fakeProcessor struct {
	mu    sync.Mutex
	calls []call
	err   error
	done  chan struct{}
}

func (f *fakeProcessor) Process(_ context.Context, name string, raws []shared.RawRecord) (*processor.Report, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{name: name, raws: raws})
	f.mu.Unlock()
	if f.done != nil {
		f.done <- struct{}{}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &processor.Report{Name: name, Raw: len(raws), Valid: len(raws)}, nil
}

func (f *fakeProcessor) snapshot() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func testConfig() *config.Config {
	return &config.Config{RawSubject: "jobs.raw", ProcessingTimeout: time.Second, PendingRunTTL: time.Hour}
}

func newTestHandler(p RunProcessor) *Handler {
	return NewHandler(zap.NewNop(), nil, telemetry.GetTracer("test"), p, testConfig())
}

func envelopeData(t *testing.T, env shared.RawEnvelope) []byte {
	t.Helper()
	data, err := env.MarshalBinary()
	require.NoError(t, err)
	return data
}

func rawMsg(t *testing.T, runID, title string) *nats.Msg {
	t.Helper()
	return &nats.Msg{Subject: "jobs.raw", Data: envelopeData(t, shared.RawEnvelope{RunID: runID, Record: shared.RawRecord{Title: title}})}
}

func markerMsg(t *testing.T, runID string, count int) *nats.Msg {
	t.Helper()
	marker := &shared.RunMarker{RunID: runID, Platforms: []string{"Computrabajo"}, Count: count}
	return &nats.Msg{Subject: "jobs.raw", Data: envelopeData(t, shared.RawEnvelope{RunID: runID, Marker: marker})}
}

func TestHandlerBatchesByRun(t *testing.T) {
	p := &fakeProcessor{}
	h := newTestHandler(p)

	h.handleMessage(rawMsg(t, "r1", "Desarrollador Go"))
	h.handleMessage(rawMsg(t, "r2", "Analista QA"))
	h.handleMessage(rawMsg(t, "r1", "Ingeniero DevOps"))
	assert.Equal(t, 2, h.Pending("r1"))
	assert.Equal(t, 1, h.Pending("r2"))

	h.handleMessage(markerMsg(t, "r1", 2))

	calls := p.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, "empleos_r1", calls[0].name)
	require.Len(t, calls[0].raws, 2)
	assert.Equal(t, "Desarrollador Go", calls[0].raws[0].Title)
	assert.Equal(t, "Ingeniero DevOps", calls[0].raws[1].Title)
	assert.Equal(t, 0, h.Pending("r1"))
	assert.Equal(t, 1, h.Pending("r2"))
}

func TestHandlerIgnoresMalformedMessages(t *testing.T) {
	p := &fakeProcessor{}
	h := newTestHandler(p)

	h.handleMessage(&nats.Msg{Subject: "jobs.raw", Data: []byte("{not json")})
	h.handleMessage(rawMsg(t, "", "Sin run"))
	h.handleMessage(&nats.Msg{Subject: "jobs.raw", Data: envelopeData(t, shared.RawEnvelope{Marker: &shared.RunMarker{}})})

	assert.Empty(t, p.snapshot())
	assert.Equal(t, 0, h.Pending(""))
}

func TestHandlerProcessesEmptyRun(t *testing.T) {
	p := &fakeProcessor{}
	h := newTestHandler(p)

	h.handleMessage(markerMsg(t, "empty", 0))

	calls := p.snapshot()
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].raws)
}

func TestHandlerMarkerTakesRunIDFromEnvelope(t *testing.T) {
	p := &fakeProcessor{}
	h := newTestHandler(p)

	h.handleMessage(rawMsg(t, "r9", "Desarrollador Go"))
	h.handleMessage(&nats.Msg{Subject: "jobs.raw", Data: envelopeData(t, shared.RawEnvelope{RunID: "r9", Marker: &shared.RunMarker{Count: 1}})})

	calls := p.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, "empleos_r9", calls[0].name)
	assert.Len(t, calls[0].raws, 1)
}

func TestHandlerDropsBatchOnFailure(t *testing.T) {
	p := &fakeProcessor{err: errors.New("boom")}
	h := newTestHandler(p)

	h.handleMessage(rawMsg(t, "r1", "Desarrollador Go"))
	h.handleMessage(markerMsg(t, "r1", 1))

	require.Len(t, p.snapshot(), 1)
	assert.Equal(t, 0, h.Pending("r1"))
}

func TestHandlerDropsRunsWithoutMarker(t *testing.T) {
	p := &fakeProcessor{}
	h := newTestHandler(p)

	clock := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return clock }

	h.handleMessage(rawMsg(t, "abandoned", "Desarrollador Go"))
	clock = clock.Add(50 * time.Minute)
	h.handleMessage(rawMsg(t, "active", "Analista QA"))

	clock = clock.Add(20 * time.Minute)
	dropped := h.dropStale(time.Hour)

	assert.Equal(t, []string{"abandoned"}, dropped)
	assert.Equal(t, 0, h.Pending("abandoned"))
	assert.Equal(t, 1, h.Pending("active"))
	assert.Empty(t, p.snapshot())
}

func runNATSServer(t *testing.T) *server.Server {
	t.Helper()
	ns, err := server.NewServer(&server.Options{Host: "127.0.0.1", Port: server.RANDOM_PORT, NoLog: true, NoSigs: true})
	require.NoError(t, err)
	go ns.Start()
	if !ns.ReadyForConnections(5 * time.Second) {
		t.Fatal("nats server did not start")
	}
	t.Cleanup(ns.Shutdown)
	return ns
}

func TestHandlerSeesMarkerAfterRecordsOverNATS(t *testing.T) {
	ns := runNATSServer(t)

	sub, err := nats.Connect(ns.ClientURL())
	require.NoError(t, err)
	defer sub.Close()
	pub, err := nats.Connect(ns.ClientURL())
	require.NoError(t, err)
	defer pub.Close()

	const runs, perRun = 5, 2000
	p := &fakeProcessor{done: make(chan struct{}, runs)}
	h := NewHandler(zap.NewNop(), sub, telemetry.GetTracer("test"), p, testConfig())

	lc := fxtest.NewLifecycle(t)
	require.NoError(t, h.RegisterSubscriptions(lc))
	lc.RequireStart()
	defer lc.RequireStop()
	require.NoError(t, sub.Flush())

	for r := 0; r < runs; r++ {
		runID := fmt.Sprintf("run-%d", r)
		for i := 0; i < perRun; i++ {
			data := envelopeData(t, shared.RawEnvelope{RunID: runID, Record: shared.RawRecord{Title: fmt.Sprintf("Desarrollador %d", i)}})
			require.NoError(t, pub.Publish("jobs.raw", data))
		}
		marker := &shared.RunMarker{RunID: runID, Count: perRun}
		require.NoError(t, pub.Publish("jobs.raw", envelopeData(t, shared.RawEnvelope{RunID: runID, Marker: marker})))
	}
	require.NoError(t, pub.Flush())

	for r := 0; r < runs; r++ {
		select {
		case <-p.done:
		case <-time.After(10 * time.Second):
			t.Fatalf("only %d of %d runs processed", r, runs)
		}
	}

	calls := p.snapshot()
	require.Len(t, calls, runs)
	for r, c := range calls {
		assert.Equal(t, fmt.Sprintf("empleos_run-%d", r), c.name)
		assert.Len(t, c.raws, perRun)
		assert.Equal(t, 0, h.Pending(fmt.Sprintf("run-%d", r)))
	}
}
