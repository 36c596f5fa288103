package main

import (
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/rigado/attmon"
	"github.com/rigado/attmon/att"
	"github.com/rigado/attmon/cache"
	"github.com/rigado/attmon/capture"
	"github.com/rigado/attmon/config"
	"github.com/rigado/attmon/display"
	"github.com/rigado/attmon/hci"
	"github.com/rigado/attmon/metrics"
)

type errSink interface {
	display.Sink
	Err() error
}

func newSink(output string, w io.Writer) errSink {
	switch output {
	case config.OutputJSON:
		return display.NewJSONSink(w)
	case config.OutputCBOR:
		return display.NewCBORSink(w)
	}
	return display.NewTextSink(w)
}

// session is one decoding run: decoder, its sink and the optional metrics.
type session struct {
	sink    errSink
	dec     *att.Decoder
	metrics *metrics.Metrics
	demux   map[uint16]*hci.Demux
}

func newSession(cfg config.Config, w io.Writer) (*session, error) {
	s := &session{
		sink:  newSink(cfg.Output, w),
		demux: make(map[uint16]*hci.Demux),
	}

	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts, attmon.OptSink(s.sink))
	if cfg.StorageDir != "" {
		opts = append(opts, attmon.OptGattCache(cache.New(cfg.StorageDir)))
	}
	if cfg.MetricsAddr != "" {
		s.metrics = metrics.New()
		opts = append(opts, attmon.OptMetrics(s.metrics))
		go serveMetrics(cfg.MetricsAddr, s.metrics)
	}

	if s.dec, err = att.NewDecoder(opts...); err != nil {
		return nil, errors.Wrap(err, "can't create decoder")
	}
	return s, nil
}

func serveMetrics(addr string, m *metrics.Metrics) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	attmon.GetLogger().Infof("serving metrics on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		attmon.GetLogger().Errorf("metrics server: %v", err)
	}
}

// feed decodes every record of r.
func (s *session) feed(r capture.Reader) error {
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return s.sink.Err()
		}
		if err != nil {
			return err
		}
		s.handle(rec)
		if err := s.sink.Err(); err != nil {
			return errors.Wrap(err, "can't write output")
		}
	}
}

func (s *session) handle(rec capture.Record) {
	d, ok := s.demux[rec.Index]
	if !ok {
		d = hci.NewDemux(s.dec, s.metrics)
		s.demux[rec.Index] = d
	}

	if rec.NewIndex != nil {
		d.SetLocal(rec.NewIndex)
		return
	}
	if err := d.Handle(rec.Type, rec.In, rec.Data); err != nil {
		attmon.GetLogger().Debugf("hci%d: skipping packet: %v", rec.Index, err)
	}
}
