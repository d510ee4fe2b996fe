// Package logging provides structured logging for Lumen Core.
//
// It wraps log/slog with the service's conventions: every record
// carries service and version attributes, output is json or text to
// stdout or stderr, and subsystems tag their records through
// Logger.Component.
//
// Configured via the logging section of config.yaml:
//
//	logging:
//	  level: "info"    # debug, info, warn, error
//	  format: "json"   # json, text
//	  output: "stdout" # stdout, stderr
//
// Typical use:
//
//	log := logging.New(cfg.Logging, version)
//	log.Component("structure").Info("regenerated", "fixtures", n)
package logging
