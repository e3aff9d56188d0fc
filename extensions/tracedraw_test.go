package extensions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	owned "github.com/pumped-fn/owned-go"
)

func TestDrawTraceGroupsByEntity(t *testing.T) {
	rec := owned.NewRecorder(64)

	a := owned.NewUnique("a", owned.WithLabel("first"), owned.WithRecorder(rec))
	b := owned.NewShared("b", owned.WithLabel("second"), owned.WithRecorder(rec))
	a.Release()
	b.Release()

	out := DrawTrace(rec)

	assert.Contains(t, out, "lifecycle")
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "second")
	assert.Contains(t, out, "destroyed")
}

func TestDrawTraceEmptyRecorder(t *testing.T) {
	rec := owned.NewRecorder(4)

	out := DrawTrace(rec)
	assert.Contains(t, out, "lifecycle")
}
