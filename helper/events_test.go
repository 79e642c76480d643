package helper

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/redis/go-redis/v9"
)

func TestRedisSharedAcrossGoroutines(t *testing.T) {
	const callers = 16

	clients := make([]*redis.Client, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			clients[i] = Redis()
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		assert.Same(t, clients[0], clients[i])
	}
}
