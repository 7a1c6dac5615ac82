package naming

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_Decompose(t *testing.T) {
	t.Run("should match uncached decomposition", func(t *testing.T) {
		cache, err := NewCache(8)
		require.NoError(t, err)

		for _, name := range []string{"testLogout", "TC01_userCanLogin", "givenA_whenB_thenC"} {
			assert.Equal(t, Decompose(name), cache.Decompose(name))
		}
		assert.Equal(t, 3, cache.Len())
	})

	t.Run("should evict beyond capacity", func(t *testing.T) {
		cache, err := NewCache(2)
		require.NoError(t, err)

		cache.Decompose("a")
		cache.Decompose("b")
		cache.Decompose("c")

		assert.Equal(t, 2, cache.Len())
	})

	t.Run("should fall back to default size", func(t *testing.T) {
		cache, err := NewCache(0)
		require.NoError(t, err)
		assert.NotNil(t, cache)
	})

	t.Run("should be safe for concurrent use", func(t *testing.T) {
		cache, err := NewCache(16)
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				cache.Decompose("userShouldBeAbleToLogin")
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, cache.Len())
	})
}
