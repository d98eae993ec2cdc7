package goroutine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_RecoverableGo(t *testing.T) {
	t.Run("normal completion closes channel", func(t *testing.T) {
		req := require.New(t)
		done := false
		ch := RecoverableGo(func() {
			done = true
		})
		_, ok := <-ch
		req.False(ok)
		req.True(done)
	})

	t.Run("panic is recovered and reported", func(t *testing.T) {
		req := require.New(t)
		recovered := false
		ch := RecoverableGo(func() {
			panic("boom")
		}, WithAfterRecovered(func(p interface{}, stack []byte) {
			recovered = true
		}))
		ev := <-ch
		req.NotNil(ev)
		req.Equal("boom", ev.Panic)
		req.True(recovered)
	})
}
