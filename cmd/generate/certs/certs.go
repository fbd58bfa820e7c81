package certs

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"net"
	"net/netip"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/Mmx233/gwfixture/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	ServerCommonName = "gwfixture config service"
	ClientCommonName = "gwfixture query client"
)

var (
	outputDir  string
	validYears int
	listen     string
	extraHosts []string

	Cmd = &cobra.Command{
		Use:   "certs",
		Short: "Generate mTLS certificates for the mock config service (CA, server, client)",
		Args:  cobra.NoArgs,
		RunE:  runGenerate,
	}
)

func init() {
	Cmd.Flags().StringVarP(&outputDir, "output", "o", "./certs", "output directory")
	Cmd.Flags().IntVarP(&validYears, "years", "y", 10, "certificate validity in years")
	Cmd.Flags().StringVarP(&listen, "listen", "l", config.DefaultListenAddress, "listen address of the service, its host joins the server SANs")
	Cmd.Flags().StringSliceVar(&extraHosts, "host", nil, "additional server SAN, DNS name or IP (repeatable)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger := log.With().Str("com", "generate").Logger()

	if err := config.ValidateAddress(listen, true); err != nil {
		return fmt.Errorf("invalid --listen: %w", err)
	}
	host, _, _ := net.SplitHostPort(listen)
	hosts := append([]string{host}, extraHosts...)

	logger.Info().Str("dir", outputDir).Int("years", validYears).Strs("hosts", ServerHosts(hosts...)).Msg("generating certificates")
	paths, err := Write(outputDir, validYears, hosts...)
	if err != nil {
		return err
	}
	for _, path := range paths {
		logger.Info().Str("file", path).Msg("generated")
	}
	return nil
}

// ServerHosts returns the SANs of the server leaf: the default server name,
// loopback, and the given hosts. Empty and duplicate entries are dropped.
func ServerHosts(hosts ...string) []string {
	all := append([]string{config.DefaultServerName, "127.0.0.1", "::1"}, hosts...)
	out := make([]string, 0, len(all))
	for _, h := range all {
		if h != "" && !slices.Contains(out, h) {
			out = append(out, h)
		}
	}
	return out
}

// Write issues a CA plus a server and a client leaf and writes the PEM files
// into dir. The server leaf covers ServerHosts(hosts...). The written paths
// are returned in a stable order.
func Write(dir string, validYears int, hosts ...string) ([]string, error) {
	notAfter := time.Now().AddDate(validYears, 0, 0)

	ca, err := newAuthority(notAfter)
	if err != nil {
		return nil, fmt.Errorf("generate CA: %w", err)
	}
	server, err := ca.issue(ServerCommonName, x509.ExtKeyUsageServerAuth, ServerHosts(hosts...), notAfter)
	if err != nil {
		return nil, fmt.Errorf("generate server cert: %w", err)
	}
	client, err := ca.issue(ClientCommonName, x509.ExtKeyUsageClientAuth, nil, notAfter)
	if err != nil {
		return nil, fmt.Errorf("generate client cert: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	var paths []string
	for _, kp := range []struct {
		name string
		pair *keyPair
	}{{"ca", &ca.keyPair}, {"server", server}, {"client", client}} {
		keyPEM, err := kp.pair.keyPEM()
		if err != nil {
			return nil, err
		}
		for _, f := range []struct {
			ext  string
			data []byte
		}{{".key", keyPEM}, {".crt", kp.pair.certPEM()}} {
			path := filepath.Join(dir, kp.name+f.ext)
			if err := os.WriteFile(path, f.data, 0600); err != nil {
				return nil, fmt.Errorf("write %s: %w", filepath.Base(path), err)
			}
			paths = append(paths, path)
		}
	}
	return paths, nil
}

type keyPair struct {
	key  *ecdsa.PrivateKey
	cert *x509.Certificate
}

func (p *keyPair) keyPEM() ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(p.key)
	if err != nil {
		return nil, fmt.Errorf("marshal key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}

func (p *keyPair) certPEM() []byte {
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: p.cert.Raw})
}

// authority is a self-signed CA that can only sign leaves.
type authority struct {
	keyPair
}

func newAuthority(notAfter time.Time) (*authority, error) {
	tmpl := &x509.Certificate{
		Subject:               pkix.Name{Organization: []string{"gwfixture"}, CommonName: "gwfixture CA"},
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
		MaxPathLenZero:        true,
	}
	pair, err := sign(tmpl, nil, notAfter)
	if err != nil {
		return nil, err
	}
	return &authority{keyPair: *pair}, nil
}

// issue signs a leaf for one extended key usage. Hosts that parse as IP
// addresses become IP SANs, the rest DNS SANs.
func (a *authority) issue(commonName string, usage x509.ExtKeyUsage, hosts []string, notAfter time.Time) (*keyPair, error) {
	tmpl := &x509.Certificate{
		Subject:     pkix.Name{Organization: []string{"gwfixture"}, CommonName: commonName},
		KeyUsage:    x509.KeyUsageDigitalSignature,
		ExtKeyUsage: []x509.ExtKeyUsage{usage},
	}
	for _, h := range hosts {
		if ip, err := netip.ParseAddr(h); err == nil {
			tmpl.IPAddresses = append(tmpl.IPAddresses, net.IP(ip.AsSlice()))
		} else {
			tmpl.DNSNames = append(tmpl.DNSNames, h)
		}
	}
	return sign(tmpl, a, notAfter)
}

// sign fills in key, serial and validity, then signs tmpl with parent, or
// with its own key when parent is nil.
func sign(tmpl *x509.Certificate, parent *authority, notAfter time.Time) (*keyPair, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	if tmpl.SerialNumber, err = rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128)); err != nil {
		return nil, fmt.Errorf("generate serial number: %w", err)
	}
	tmpl.NotBefore = time.Now().Add(-time.Minute)
	tmpl.NotAfter = notAfter

	issuer, signer := tmpl, crypto.Signer(key)
	if parent != nil {
		issuer, signer = parent.cert, parent.key
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, issuer, &key.PublicKey, signer)
	if err != nil {
		return nil, fmt.Errorf("create certificate: %w", err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, fmt.Errorf("parse certificate: %w", err)
	}
	return &keyPair{key: key, cert: cert}, nil
}
