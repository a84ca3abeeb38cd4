package http

import (
	"io"
	"log/slog"
	"testing"

	"github.com/aretw0/trinomial/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStreamManager_Filtering(t *testing.T) {
	sm := NewStreamManager()

	all, cancelAll := sm.Subscribe("")
	defer cancelAll()
	classic, cancelClassic := sm.Subscribe(domain.FormClassic)
	defer cancelClassic()

	sm.Broadcast(domain.FormSubstitution, "sub")
	sm.Broadcast(domain.FormClassic, "cls")

	assert.Equal(t, "sub", <-all)
	assert.Equal(t, "cls", <-all)
	assert.Equal(t, "cls", <-classic)
	assert.Empty(t, classic)
}

func TestStreamManager_DropsWhenFull(t *testing.T) {
	sm := NewStreamManager()
	ch, cancel := sm.Subscribe("")

	for i := 0; i < 20; i++ {
		sm.Broadcast(domain.FormClassic, "x")
	}
	assert.Len(t, ch, 10)

	cancel()
	cancel()
	_, open := <-ch
	for open {
		_, open = <-ch
	}
	assert.Empty(t, sm.subscribers)
}
