package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClickCounter(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	at := func(ms int) time.Time { return base.Add(time.Duration(ms) * time.Millisecond) }

	c := NewClickCounter(400 * time.Millisecond)
	assert.False(t, c.Click("icon:terminal", at(0)))
	assert.True(t, c.Click("icon:terminal", at(300)))
	assert.False(t, c.Click("icon:terminal", at(350)), "third click starts a new pair")
	assert.True(t, c.Click("icon:terminal", at(700)))

	assert.False(t, c.Click("icon:notepad", at(1000)))
	assert.False(t, c.Click("icon:terminal", at(1100)), "different target")
	assert.False(t, c.Click("icon:terminal", at(1600)), "too slow")
	assert.True(t, c.Click("icon:terminal", at(2000)), "exactly at the interval")

	c.Click("title:w1", at(3000))
	c.Reset()
	assert.False(t, c.Click("title:w1", at(3100)))
}
