package services_test

import (
	"context"
	"sync"

	"tts-batch-api/application/ports/outbound"
)

// goroutineDispatcher runs every submitted task on its own goroutine,
// standing in for the ants pool.
type goroutineDispatcher struct{}

func (goroutineDispatcher) Submit(task func()) error {
	go task()
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string)                                           {}
func (noopLogger) InfoWithFields(string, map[string]interface{})         {}
func (noopLogger) Error(error, string)                                   {}
func (noopLogger) ErrorWithFields(error, string, map[string]interface{}) {}
func (noopLogger) Warn(string)                                           {}
func (noopLogger) WarnWithFields(string, map[string]interface{})         {}

// mockEngine returns a fixed chunk sequence and counts invocations.
type mockEngine struct {
	mu     sync.Mutex
	chunks [][]byte
	err    error
	calls  int
}

func (m *mockEngine) Synthesize(_ context.Context, _ string) ([][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.chunks, nil
}

func (m *mockEngine) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockLoader hands out engines and sample rates per model name, failing the
// names listed in failures.
type mockLoader struct {
	mu       sync.Mutex
	engines  map[string]*mockEngine
	rates    map[string]int
	failures map[string]error
	loaded   []string
}

func (m *mockLoader) Load(_ context.Context, modelName string) (outbound.SynthesisEnginePort, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failures[modelName]; ok {
		return nil, 0, err
	}
	m.loaded = append(m.loaded, modelName)
	return m.engines[modelName], m.rates[modelName], nil
}

// mockCache is an in-memory AudioCachePort that counts store traffic.
type mockCache struct {
	mu       sync.Mutex
	enabled  bool
	store    map[string][]byte
	getErr   error
	setErr   error
	getCalls int
	setCalls int
}

func newMockCache(enabled bool) *mockCache {
	return &mockCache{
		enabled: enabled,
		store:   make(map[string][]byte),
	}
}

func (m *mockCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	data, ok := m.store[key]
	return data, ok, nil
}

func (m *mockCache) Set(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls++
	if m.setErr != nil {
		return m.setErr
	}
	m.store[key] = data
	return nil
}

func (m *mockCache) Enabled() bool {
	return m.enabled
}
