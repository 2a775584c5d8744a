package queue

import (
	"sync"

	"github.com/tutu-network/splitqueue/internal/domain"
)

// testSplit is a minimal domain.Split used across this package's tests. Its
// UpdateLevelPriority is a no-op unless ageTo has been armed, letting tests
// control exactly when a split is discovered to have aged into a new level.
type testSplit struct {
	name string

	mu       sync.Mutex
	priority domain.Priority
	ready    bool
	ageTo    *domain.Level
}

func newTestSplit(name string, level domain.Level, levelPriority int64) *testSplit {
	return &testSplit{
		name:     name,
		priority: domain.Priority{Level: level, LevelPriority: levelPriority},
	}
}

func (s *testSplit) Priority() domain.Priority {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.priority
}

func (s *testSplit) UpdateLevelPriority() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ageTo == nil {
		return false
	}
	newLevel := *s.ageTo
	s.ageTo = nil
	if newLevel == s.priority.Level {
		return false
	}
	s.priority.Level = newLevel
	return true
}

func (s *testSplit) SetReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = true
}

// ArmAge causes the next UpdateLevelPriority call to report a level change
// to newLevel.
func (s *testSplit) ArmAge(newLevel domain.Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ageTo = &newLevel
}
