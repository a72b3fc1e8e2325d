// Package logger provides a structured logging facility based on Zap.
//
// New builds a development logger for the "debug" level and a production
// logger otherwise, encoded as JSON or colored console output.
//
// # Context Awareness
//
// The rayid middleware stores a request id in the fiber context. WithRayID
// copies it onto the logger so every line of one request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Comparison failed", zap.Error(err))
package logger
