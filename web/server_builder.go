package web

import (
	"go.uber.org/zap"

	"github.com/nexusnext/nexusnext/web/waitlist"
)

// ServerBuilderOption defines a functional option for configuring the web
// server during creation.
//
// Parameters:
//   - s: pointer to the server instance to configure
type ServerBuilderOption func(s *server)

// WithLogger sets the logger used for request and lifecycle diagnostics.
//
// Parameters:
//   - log: the logger to use
//
// Returns:
//   - ServerBuilderOption: the option function
func WithLogger(log *zap.Logger) ServerBuilderOption {
	return func(s *server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithPort sets the TCP port the server listens on.
//
// Parameters:
//   - port: the listen port
//
// Returns:
//   - ServerBuilderOption: the option function
func WithPort(port int) ServerBuilderOption {
	return func(s *server) {
		if port > 0 {
			s.port = port
		}
	}
}

// WithStore sets the waitlist store.
//
// Parameters:
//   - store: the store recording signups
//
// Returns:
//   - ServerBuilderOption: the option function
func WithStore(store waitlist.Store) ServerBuilderOption {
	return func(s *server) {
		s.store = store
	}
}

// WithMailer sets the confirmation mailer.
//
// Parameters:
//   - mailer: the mailer invoked after new signups
//
// Returns:
//   - ServerBuilderOption: the option function
func WithMailer(mailer waitlist.Mailer) ServerBuilderOption {
	return func(s *server) {
		s.mailer = mailer
	}
}
