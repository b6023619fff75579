package httpx

import "crypto/x509"

// TrustSource supplies root CAs for the transport. The system source pulls
// in the platform store (the OS trust store on Windows); the nop source
// leaves Go's built-in verification untouched.
type TrustSource interface {
    CertPool() (*x509.CertPool, error)
}

type systemTrust struct{}

func SystemTrust() TrustSource { return systemTrust{} }

func (systemTrust) CertPool() (*x509.CertPool, error) { return x509.SystemCertPool() }

type nopTrust struct{}

func NopTrust() TrustSource { return nopTrust{} }

func (nopTrust) CertPool() (*x509.CertPool, error) { return nil, nil }
