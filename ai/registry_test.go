package ai

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	closed bool
}

func (p *stubProvider) Embedder() Embedder                 { return nil }
func (p *stubProvider) ProfileExtractor() ProfileExtractor { return nil }
func (p *stubProvider) Close() error {
	p.closed = true
	return nil
}

func TestRegistry_MemoizesConstruction(t *testing.T) {
	reg := NewRegistry(DefaultConfig())

	constructions := 0
	reg.Register("stub", func(cfg *Config) (AIProvider, error) {
		constructions++
		return &stubProvider{}, nil
	})

	first, err := reg.Provider("stub")
	require.NoError(t, err)
	second, err := reg.Provider("stub")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, constructions)
}

func TestRegistry_ConcurrentFirstUse(t *testing.T) {
	reg := NewRegistry(DefaultConfig())

	constructions := 0
	reg.Register("stub", func(cfg *Config) (AIProvider, error) {
		constructions++
		return &stubProvider{}, nil
	})

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := reg.Provider("stub")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, constructions)
}

func TestRegistry_UnknownProvider(t *testing.T) {
	reg := NewRegistry(nil)

	_, err := reg.Provider("missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestRegistry_CloseClosesConstructedProviders(t *testing.T) {
	reg := NewRegistry(DefaultConfig())

	p := &stubProvider{}
	reg.Register("stub", func(cfg *Config) (AIProvider, error) { return p, nil })

	_, err := reg.Provider("stub")
	require.NoError(t, err)

	require.NoError(t, reg.Close())
	assert.True(t, p.closed)
}

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(ErrServiceUnavailable))
	assert.True(t, Retryable(ErrExtractionTimeout))
	assert.True(t, Retryable(ErrEmbedding))
	assert.False(t, Retryable(ErrSchemaValidation))
	assert.False(t, Retryable(ErrUnknownProvider))
}
