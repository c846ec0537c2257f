package pymp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecCapturesPanicWithStack(t *testing.T) {
	r := &region{}

	err := r.exec(&Parallel{r: r}, func(p *Parallel) error {
		panic("boom")
	})

	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "boom", pe.Value)
	assert.Contains(t, pe.Stack, "goroutine")
	assert.Contains(t, pe.Error(), "boom")
}

func TestExecPassesErrorsThrough(t *testing.T) {
	r := &region{}
	cause := errors.New("plain failure")

	err := r.exec(&Parallel{r: r}, func(p *Parallel) error {
		return cause
	})

	assert.ErrorIs(t, err, cause)
}
