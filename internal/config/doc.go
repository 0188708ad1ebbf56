// Package config provides configuration loading for roster.
//
// Configuration is read from roster.json, then ROSTER_* environment
// variables override individual values, then command-line flags override
// both.
//
// # Configuration File Structure
//
//	{
//	  "name": "roster",
//	  "host": "0.0.0.0",
//	  "port": 8080,
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  },
//	  "session": {
//	    "idleTimeout": "30m",
//	    "sweepInterval": "1m"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "path": "/metrics"
//	  },
//	  "tracing": {
//	    "enabled": false,
//	    "tracerName": "roster"
//	  }
//	}
//
// # Environment
//
//	ROSTER_HOST, ROSTER_PORT
//	ROSTER_LOG_LEVEL, ROSTER_LOG_FORMAT
//	ROSTER_SESSION_IDLE_TIMEOUT, ROSTER_SESSION_SWEEP_INTERVAL
//	ROSTER_METRICS_ENABLED, ROSTER_METRICS_PATH
//	ROSTER_TRACING_ENABLED, ROSTER_TRACING_TRACER_NAME
package config
