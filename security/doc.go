// Package security provides shared TLS primitives for circuitkit transports.
//
// It includes TLS configuration and certificate handling used by the HTTP
// client and reusable by any other transport layer.
//
// # TLS Configuration
//
//	cfg := security.TLSConfig{
//	    CAFile:   "/path/to/ca.pem",
//	    CertFile: "/path/to/cert.pem",
//	    KeyFile:  "/path/to/key.pem",
//	}
//
//	tlsConfig, err := cfg.Build()
package security
