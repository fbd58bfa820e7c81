package server

import (
	"crypto/x509"
	"errors"
	"fmt"

	"github.com/quic-go/quic-go"
)

var ErrNoClientCert = errors.New("no client certificate provided")

// verifyPeer checks the client certificate chain against roots and returns
// the certificate subject common name.
func verifyPeer(conn *quic.Conn, roots *x509.CertPool) (string, error) {
	tlsState := conn.ConnectionState().TLS

	if len(tlsState.PeerCertificates) == 0 {
		return "", ErrNoClientCert
	}

	opts := x509.VerifyOptions{
		Roots:         roots,
		Intermediates: x509.NewCertPool(),
		KeyUsages:     []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
	}
	for _, cert := range tlsState.PeerCertificates[1:] {
		opts.Intermediates.AddCert(cert)
	}

	leaf := tlsState.PeerCertificates[0]
	if _, err := leaf.Verify(opts); err != nil {
		return "", fmt.Errorf("certificate verification failed: %w", err)
	}
	return leaf.Subject.CommonName, nil
}
