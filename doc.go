// Package mneme is a small leveled logger for a single process: messages go
// to the console when their level passes a threshold and, when asked, to a
// log file that rotates by size into numbered backups.
//
// # Quick Start
//
//	logger := mneme.New(mneme.LevelDebug, "[ NET ]")
//	defer logger.Close()
//
//	logger.Init(mneme.LevelDebug, "[ NET ]", "run.log", 3, 2*mneme.MB)
//	logger.Log(mneme.MsgInfo, "listening on %s", addr)
//	logger.Log(mneme.MsgDebug|mneme.ToFile, "peer %s connected", peer)
//
// # Levels and Flags
//
// Levels run from LevelSilent (0) to LevelTrace (6). A message carries a
// level in its low seven bits and, optionally, the ToFile bit:
//
//	mneme.MsgWarning           // console only
//	mneme.MsgWarning|ToFile    // console and file
//
// The console receives a message when its level is non-zero and not above
// the threshold. The file receives it whenever ToFile is set, whatever the
// level and the threshold. LevelSilent silences the console; it never
// silences the file.
//
// # Stamps
//
// Every record starts with a stamp built from the local time and the module
// name:
//
//	StampDateTime  [ 17.10.26 14:03:07 ][ NET ]
//	StampTime      [ 14:03:07 ][ NET ]
//	StampMillis    [ 17.10.26 14:03:07.042 ][ NET ]
//	StampCustom    any strftime pattern, see SetStampFormat
//	StampNone      no stamp
//
// One stamp is computed per message and shared by both sinks.
//
// # Rotation
//
// The file is opened and closed around every write. When it has reached
// MaxSize bytes before a write, the rotation callback runs, the file is
// renamed to "<path>.<n>" and a fresh file is started with a marker line.
// The backup number n cycles through 1..MaxBackups, so the oldest backup is
// overwritten once the cycle wraps.
//
//	logger.SetRotationCallback(func(path string) error {
//		return upload(path)
//	})
//
// Rotation can also be forced with Rotate.
//
// # Shared Logger
//
// Default returns a process-wide logger. Scope binds a module name to a
// logger without changing it, so many components can share one file and
// one set of guards:
//
//	var log = mneme.Named("[ DB ]")
//
//	log.Error("query failed: %s", q)
//
// # Settings
//
// Settings configures a logger in one step and can be loaded from JSON:
//
//	{
//	  "level": "debug",
//	  "filename": "run.log",
//	  "max_size_str": "2MB",
//	  "max_backups": 3,
//	  "stamp": "millis"
//	}
//
// WatchSettings re-applies such a file whenever it changes.
//
// # Error Handling
//
// Logging never returns an error and never panics on I/O failure. A failed
// write drops the message from that sink; the failure goes to the error
// callback, or is printed on the console at Debug level when none is set:
//
//	logger.SetErrorCallback(func(op string, err error) {
//		metrics.Inc("log_" + op)
//	})
//
// # Thread Safety
//
// All methods are safe for concurrent use. Console lines from different
// goroutines never interleave. File writers wait at most LockTimeout
// (10ms by default) for the file and drop the file copy on timeout.
// Code running inside the rotation callback must not log to file.
package mneme
