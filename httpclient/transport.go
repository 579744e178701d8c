package httpclient

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"

	"golang.org/x/net/http2"
)

// newTransport builds the HTTP transport for the client configuration.
//
// With EnableH2C the transport speaks cleartext HTTP/2, which gRPC-style
// backends require when running without TLS. The h2c transport dials plain
// TCP, so the TLS settings do not apply to it.
func newTransport(cfg Config) (http.RoundTripper, error) {
	if cfg.EnableH2C {
		dialTimeout := cfg.DialTimeout
		return &http2.Transport{
			AllowHTTP: true,
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return (&net.Dialer{Timeout: dialTimeout}).DialContext(ctx, network, addr)
			},
		}, nil
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			transport.TLSClientConfig = tlsCfg
		}
	}
	return transport, nil
}
