package cmd

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

type metricsServer struct {
	listener net.Listener
	server   *http.Server
	logger   *log.Entry
}

// listenMetrics binds addr and prepares reg to be served under /metrics.
func listenMetrics(addr string, reg *prometheus.Registry, logger *log.Entry) (*metricsServer, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "failed listen on %s", addr)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return &metricsServer{
		listener: listener,
		server: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}, nil
}

func (m *metricsServer) Addr() net.Addr {
	return m.listener.Addr()
}

// Serve blocks until ctx is done or the server fails. A shutdown caused by
// ctx returns nil.
func (m *metricsServer) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		m.logger.Infof("serve metrics on %s", m.Addr())
		errCh <- m.server.Serve(m.listener)
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return errors.Wrap(err, "metrics server")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := m.server.Shutdown(shutdownCtx); err != nil {
		m.logger.Warnf("failed stop metrics server: %v", err)
	}
	<-errCh
	return nil
}
