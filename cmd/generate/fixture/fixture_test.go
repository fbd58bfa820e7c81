package fixture

import (
	"bytes"
	"net"
	"net/netip"
	"os"
	"path/filepath"
	"testing"

	"github.com/Mmx233/gwfixture/draw"
	"github.com/Mmx233/gwfixture/schema"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, cmd *cobra.Command, args ...string) []byte {
	t.Helper()
	resetFlags()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.Bytes()
}

func resetFlags() {
	seed, format, input, record = 0, "json", "", ""
	family, count, mask = "v4", 8, 24
}

func TestStatusCmd_SameSeedSameOutput(t *testing.T) {
	a := run(t, StatusCmd, "--seed", "5")
	b := run(t, StatusCmd, "--seed", "5")
	assert.Equal(t, a, b)

	var snap schema.DataplaneStatusSnapshot
	require.NoError(t, jsoniter.Unmarshal(a, &snap))
}

func TestConfigCmd_YAML(t *testing.T) {
	out := run(t, ConfigCmd, "--seed", "8", "--format", "yaml")

	var cfg schema.GatewayConfig
	require.NoError(t, yaml.Unmarshal(out, &cfg))
	assert.NoError(t, cfg.Validate())
}

func TestCidrsCmd(t *testing.T) {
	out := run(t, CidrsCmd, "--family", "v6", "--count", "4", "--mask", "48", "--format", "json")

	var blocks []string
	require.NoError(t, jsoniter.Unmarshal(out, &blocks))
	require.Len(t, blocks, 4)
	for _, b := range blocks {
		p, err := netip.ParsePrefix(b)
		require.NoError(t, err)
		assert.Equal(t, 48, p.Bits())
	}
}

func TestAddrsCmd_ReplaysInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draws.bin")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{0x5a}, 256), 0644))

	a := run(t, AddrsCmd, "--input", path, "--count", "3", "--family", "v4")
	b := run(t, AddrsCmd, "--input", path, "--count", "3", "--family", "v4")
	assert.Equal(t, a, b)

	var addrs []string
	require.NoError(t, jsoniter.Unmarshal(a, &addrs))
	assert.Len(t, addrs, 3)
}

func TestStatusCmd_RecordThenReplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.draws")
	recorded := run(t, StatusCmd, "--seed", "13", "--record", path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	replayed := run(t, StatusCmd, "--input", path)
	assert.Equal(t, string(recorded), string(replayed))
}

func TestKindCmd(t *testing.T) {
	out := run(t, KindCmd, "mac", "--seed", "3")
	var mac string
	require.NoError(t, jsoniter.Unmarshal(out, &mac))
	_, err := net.ParseMAC(mac)
	assert.NoError(t, err)

	resetFlags()
	KindCmd.SetArgs([]string{"nope"})
	KindCmd.SetOut(&bytes.Buffer{})
	KindCmd.SilenceUsage = true
	assert.ErrorContains(t, KindCmd.Execute(), "unknown fixture kind")
}

func TestAllocatorCmds_RejectUnknownFamily(t *testing.T) {
	for _, cmd := range []*cobra.Command{CidrsCmd, AddrsCmd} {
		resetFlags()
		cmd.SetArgs([]string{"--family", "v5"})
		cmd.SetOut(&bytes.Buffer{})
		cmd.SilenceUsage = true
		assert.ErrorContains(t, cmd.Execute(), `got "v5"`, cmd.Name())
	}
}

func TestEmit_ExhaustedInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	resetFlags()
	ConfigCmd.SetArgs([]string{"--input", path})
	ConfigCmd.SetOut(&bytes.Buffer{})
	ConfigCmd.SilenceUsage = true
	err := ConfigCmd.Execute()
	assert.ErrorIs(t, err, draw.ErrExhausted)
}
