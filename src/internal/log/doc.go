// Package log provides simple leveled logging for xrouter.
//
// This package implements a lightweight logging system with colored output
// and support for different log levels: DEBUG, INFO, WARN, and ERROR.
// It provides global logging functions that can be used throughout the application.
//
// # Log Levels
//
//   - DEBUG: Detailed diagnostic information (only shown in verbose mode)
//   - INFO: General informational messages
//   - WARN: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures and exceptions
//
// # Log File
//
// Every CLI run also appends its messages to a plain-text log file
// (colors stripped, timestamped) once SetLogFile is called:
//
//	[INFO][2024-05-01 10:00:00] Route file updated: /opt/xrouter/bin/setup-route.sh
//
// The file is rotated by size so a long-lived router never fills its disk.
//
// # Example Usage
//
//	log.SetVerbose(true)
//	if err := log.SetLogFile("/opt/xrouter/logs/cli.log"); err != nil {
//	    log.Warnf("File logging disabled: %v", err)
//	}
//	defer log.CloseLogFile()
//
//	log.Infof("Compiling routing tables")
//	log.Errorf("Bad gateway name in table %d: %s, skipped", 100, "missing")
package log
