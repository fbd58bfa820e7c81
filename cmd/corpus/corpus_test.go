package corpus

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Mmx233/gwfixture/config"
	"github.com/Mmx233/gwfixture/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	configFile, listKinds = "", false
	overrides = config.Generator{}

	var out bytes.Buffer
	Cmd.SetOut(&out)
	Cmd.SetArgs(args)
	require.NoError(t, Cmd.Execute())
	return out.String()
}

func TestCorpusCmd_List(t *testing.T) {
	out := execute(t, "--list")
	kinds := strings.Fields(out)
	assert.Contains(t, kinds, "status")
	assert.Contains(t, kinds, corpus.KindCidrs)
	assert.Contains(t, kinds, corpus.KindAddrs)
}

func TestCorpusCmd_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "generator.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 3\ncount: 2\nkind: status\n"), 0644))

	out := filepath.Join(dir, "out")
	execute(t, "--config", path, "--kind", "device", "--count", "3", "--output", out)

	for i := range 3 {
		_, err := os.Stat(filepath.Join(out, corpus.FileName("device", i, config.FormatJSON)))
		assert.NoError(t, err)
	}
	_, err := os.Stat(filepath.Join(out, corpus.ManifestFile))
	assert.NoError(t, err)
}
