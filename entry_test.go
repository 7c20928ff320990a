package expcache

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewEntry(t *testing.T) {
	now := time.Now()

	e := newEntry(1, NeverExpire, now)
	assert.False(t, e.Expires())
	assert.False(t, e.expired(math.MaxInt64-1))

	e = newEntry(1, NeverExpire-1, now)
	assert.True(t, e.Expires())
	assert.False(t, e.expired(now.Add(100*365*24*time.Hour).UnixMilli()))

	e = newEntry(1, 500*time.Millisecond, now)
	assert.True(t, e.Expires())
	assert.Equal(t, now.UnixMilli()+500, e.exp)
	assert.False(t, e.expired(now.UnixMilli()))
	assert.False(t, e.expired(now.UnixMilli()+499))
	assert.True(t, e.expired(now.UnixMilli()+500))

	e = newEntry(1, 0, now)
	assert.True(t, e.expired(now.UnixMilli()))

	e = newEntry(1, -time.Second, now)
	assert.True(t, e.expired(now.UnixMilli()))
}

func TestIsAbsent(t *testing.T) {
	var (
		p  *int
		m  map[string]int
		s  []int
		f  func()
		ch chan int
		i  interface{}
	)

	for _, v := range []interface{}{nil, p, m, s, f, ch, i} {
		assert.True(t, isAbsent(v))
	}

	for _, v := range []interface{}{0, "", struct{}{}, []int{}, map[string]int{}, new(int)} {
		assert.False(t, isAbsent(v))
	}
}
