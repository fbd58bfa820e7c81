package certs

import (
	"crypto/tls"
	"crypto/x509"
	"os"
	"path/filepath"
	"testing"

	"github.com/Mmx233/gwfixture/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadRoots(t *testing.T, dir string) *x509.CertPool {
	t.Helper()
	caPEM, err := os.ReadFile(filepath.Join(dir, "ca.crt"))
	require.NoError(t, err)
	roots := x509.NewCertPool()
	require.True(t, roots.AppendCertsFromPEM(caPEM))
	return roots
}

func loadLeaf(t *testing.T, dir, name string) *x509.Certificate {
	t.Helper()
	pair, err := tls.LoadX509KeyPair(filepath.Join(dir, name+".crt"), filepath.Join(dir, name+".key"))
	require.NoError(t, err, name)
	leaf, err := x509.ParseCertificate(pair.Certificate[0])
	require.NoError(t, err)
	return leaf
}

func TestWrite_ChainVerifies(t *testing.T) {
	dir := t.TempDir()
	paths, err := Write(dir, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "ca.key"), filepath.Join(dir, "ca.crt"),
		filepath.Join(dir, "server.key"), filepath.Join(dir, "server.crt"),
		filepath.Join(dir, "client.key"), filepath.Join(dir, "client.crt"),
	}, paths)

	roots := loadRoots(t, dir)
	for _, tc := range []struct {
		name       string
		commonName string
		usage      x509.ExtKeyUsage
	}{
		{"server", ServerCommonName, x509.ExtKeyUsageServerAuth},
		{"client", ClientCommonName, x509.ExtKeyUsageClientAuth},
	} {
		leaf := loadLeaf(t, dir, tc.name)
		assert.Equal(t, tc.commonName, leaf.Subject.CommonName)
		_, err := leaf.Verify(x509.VerifyOptions{Roots: roots, KeyUsages: []x509.ExtKeyUsage{tc.usage}})
		assert.NoError(t, err, tc.name)
	}

	// a client leaf must not pass as a server
	_, err = loadLeaf(t, dir, "client").Verify(x509.VerifyOptions{
		Roots:     roots,
		KeyUsages: []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	})
	assert.Error(t, err)

	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), p)
	}
}

func TestWrite_ServerSANs(t *testing.T) {
	dir := t.TempDir()
	_, err := Write(dir, 1, "gw.example.net", "10.1.2.3", config.DefaultServerName)
	require.NoError(t, err)

	leaf := loadLeaf(t, dir, "server")
	for _, host := range []string{config.DefaultServerName, "127.0.0.1", "::1", "gw.example.net", "10.1.2.3"} {
		assert.NoError(t, leaf.VerifyHostname(host), host)
	}
	assert.Error(t, leaf.VerifyHostname("other.example.net"))
	assert.Equal(t, []string{config.DefaultServerName, "gw.example.net"}, leaf.DNSNames)

	assert.Empty(t, loadLeaf(t, dir, "client").DNSNames)
}

func TestServerHosts(t *testing.T) {
	assert.Equal(t,
		[]string{config.DefaultServerName, "127.0.0.1", "::1", "0.0.0.0", "gw"},
		ServerHosts("", "0.0.0.0", "gw", "127.0.0.1", "gw"),
	)
}

func TestCmd_DerivesHostFromListen(t *testing.T) {
	dir := t.TempDir()
	Cmd.SetArgs([]string{"--output", dir, "--years", "1", "--listen", "gw.internal:50051", "--host", "10.9.9.9"})
	require.NoError(t, Cmd.Execute())

	leaf := loadLeaf(t, dir, "server")
	assert.NoError(t, leaf.VerifyHostname("gw.internal"))
	assert.NoError(t, leaf.VerifyHostname("10.9.9.9"))
}
