package duration

import (
	"bytes"
	"testing"

	"github.com/Mmx233/gwfixture/duration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(args ...string) (string, error) {
	seconds, nanos = 0, 0
	var out bytes.Buffer
	Cmd.SetOut(&out)
	Cmd.SetErr(&bytes.Buffer{})
	Cmd.SetArgs(args)
	err := Cmd.Execute()
	return out.String(), err
}

func TestDurationCmd(t *testing.T) {
	out, err := execute("--seconds", "1", "--nanos", "1500000000")
	require.NoError(t, err)
	assert.Equal(t, "2 500000000 2.5s\n", out)
}

func TestDurationCmd_Negative(t *testing.T) {
	_, err := execute("--seconds=-1")
	assert.ErrorIs(t, err, duration.ErrNegative)
}
