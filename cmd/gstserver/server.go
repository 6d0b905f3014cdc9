package main

import (
	"strconv"
	"time"

	"github.com/miekg/dns"
)

// Server runs the GST protocol over both TCP and UDP, exactly the way
// the teacher ran its DNS resolver over both transports at once.
type Server struct {
	host     string
	port     int
	rTimeout time.Duration
	wTimeout time.Duration
}

func (s *Server) Addr() string {
	return s.host + ":" + strconv.Itoa(s.port)
}

func (s *Server) Run() {
	handler := NewHandler()

	tcpMux := dns.NewServeMux()
	tcpMux.HandleFunc(".", handler.DoTCP)

	udpMux := dns.NewServeMux()
	udpMux.HandleFunc(".", handler.DoUDP)

	tcpServer := &dns.Server{
		Addr:         s.Addr(),
		Net:          "tcp",
		Handler:      tcpMux,
		ReadTimeout:  s.rTimeout,
		WriteTimeout: s.wTimeout,
	}

	udpServer := &dns.Server{
		Addr:         s.Addr(),
		Net:          "udp",
		Handler:      udpMux,
		UDPSize:      65535,
		ReadTimeout:  s.rTimeout,
		WriteTimeout: s.wTimeout,
	}

	go s.start(udpServer)
	go s.start(tcpServer)
}

func (s *Server) start(ds *dns.Server) {
	logger.Info("start %s listener on %s", ds.Net, s.Addr())
	if err := ds.ListenAndServe(); err != nil {
		logger.Error("start %s listener on %s failed: %s", ds.Net, s.Addr(), err.Error())
	}
}
