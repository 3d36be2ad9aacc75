package tool

import (
	"crypto/tls"
	"crypto/x509"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTlsCertificate(t *testing.T) {
	dir := t.TempDir()
	keyFilename := filepath.Join(dir, "key.pem")
	certFilename := filepath.Join(dir, "cert.pem")

	exists, err := IsFileExists(certFilename)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, GenerateTlsCertificate("jypelle", "Vekimoji Server", keyFilename, certFilename, []string{"localhost", "127.0.0.1"}))

	exists, err = IsFileExists(certFilename)
	require.NoError(t, err)
	assert.True(t, exists)

	pair, err := tls.LoadX509KeyPair(certFilename, keyFilename)
	require.NoError(t, err)
	cert, err := x509.ParseCertificate(pair.Certificate[0])
	require.NoError(t, err)

	assert.Equal(t, "Vekimoji Server", cert.Subject.CommonName)
	assert.Equal(t, []string{"localhost"}, cert.DNSNames)
	require.Len(t, cert.IPAddresses, 1)
	assert.Equal(t, "127.0.0.1", cert.IPAddresses[0].String())
}
