package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateManager_Lifecycle(t *testing.T) {
	s := NewStateManager()
	assert.False(t, s.IsFitted())
	assert.Equal(t, NotFitted, s.State())
	assert.Equal(t, "not fitted", s.State().String())

	s.SetFitted()
	s.SetDimensions(6, 1000)
	assert.True(t, s.IsFitted())
	assert.Equal(t, "fitted", s.State().String())

	features, samples := s.GetDimensions()
	assert.Equal(t, 6, features)
	assert.Equal(t, 1000, samples)

	s.Reset()
	assert.False(t, s.IsFitted())
	features, samples = s.GetDimensions()
	assert.Zero(t, features)
	assert.Zero(t, samples)
}

func TestStateManager_Concurrent(t *testing.T) {
	s := NewStateManager()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			s.SetDimensions(i, i*10)
			s.SetFitted()
		}(i)
		go func() {
			defer wg.Done()
			_ = s.IsFitted()
			_, _ = s.GetDimensions()
		}()
	}
	wg.Wait()
	assert.True(t, s.IsFitted())
}
