package transport

import (
	"crypto/tls"
	"encoding/pem"
	"fmt"
	"os"

	"golang.org/x/crypto/pkcs12"
)

// newTLSConfig builds the TLS client configuration for the given
// ClientConfig, or nil when the stdlib defaults suffice.
func newTLSConfig(config ClientConfig) (*tls.Config, error) {
	if !config.TLSInsecureSkipVerify && config.ClientCertFile == "" {
		return nil, nil
	}

	tlsConfig := &tls.Config{
		// Cameras commonly ship self-signed certificates; callers
		// opt in to skipping verification explicitly.
		InsecureSkipVerify: config.TLSInsecureSkipVerify,
	}

	if config.ClientCertFile != "" {
		cert, err := loadClientCertificate(config.ClientCertFile, config.ClientCertPassword)
		if err != nil {
			return nil, err
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

// loadClientCertificate loads a TLS client certificate from a PKCS#12
// bundle, the format device management suites hand out.
func loadClientCertificate(path, password string) (tls.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to read client certificate: %w", err)
	}

	blocks, err := pkcs12.ToPEM(data, password)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to decode PKCS#12 bundle: %w", err)
	}

	var pemData []byte
	for _, block := range blocks {
		pemData = append(pemData, pem.EncodeToMemory(block)...)
	}

	cert, err := tls.X509KeyPair(pemData, pemData)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to parse client certificate: %w", err)
	}

	return cert, nil
}
