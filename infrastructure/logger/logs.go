package logger

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// BackendLog is the logging backend used to create all subsystem loggers.
var BackendLog = NewBackend()

// SubsystemTags is an enum of all sub system tags
var SubsystemTags = struct {
	HDWL,
	BP32,
	SIGN,
	CRVS,
	VECT string
}{
	HDWL: "HDWL",
	BP32: "BP32",
	SIGN: "SIGN",
	CRVS: "CRVS",
	VECT: "VECT",
}

// subsystemLoggers maps each subsystem identifier to its associated logger.
var subsystemLoggers = map[string]*Logger{
	SubsystemTags.HDWL: BackendLog.Logger(SubsystemTags.HDWL),
	SubsystemTags.BP32: BackendLog.Logger(SubsystemTags.BP32),
	SubsystemTags.SIGN: BackendLog.Logger(SubsystemTags.SIGN),
	SubsystemTags.CRVS: BackendLog.Logger(SubsystemTags.CRVS),
	SubsystemTags.VECT: BackendLog.Logger(SubsystemTags.VECT),
}

// InitLogStdErr attaches stderr to the backend log at the given level.
func InitLogStdErr(logLevel Level) {
	err := BackendLog.AddUnownedLogWriter(os.Stderr, logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding stderr to the logger for level %s: %s", logLevel, err)
		os.Exit(1)
	}
}

// InitLog attaches log file and error log file to the backend log.
func InitLog(logFile, errLogFile string) {
	err := BackendLog.AddLogFile(logFile, LevelTrace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding log file %s as log rotator for level %s: %s", logFile, LevelTrace, err)
		os.Exit(1)
	}
	err = BackendLog.AddLogFile(errLogFile, LevelWarn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding log file %s as log rotator for level %s: %s", errLogFile, LevelWarn, err)
		os.Exit(1)
	}
}

// Get returns a logger of a specific sub system
func Get(tag string) (logger *Logger, ok bool) {
	logger, ok = subsystemLoggers[tag]
	return
}

// SetLogLevel sets the logging level for provided subsystem. Invalid
// subsystems are ignored. Uninitialized subsystems are dynamically created as
// needed.
func SetLogLevel(subsystemID string, logLevel string) {
	logger, ok := subsystemLoggers[subsystemID]
	if !ok {
		return
	}

	// Defaults to info if the log level is invalid.
	level, _ := LevelFromString(logLevel)
	logger.SetLevel(level)
}

// SetLogLevels sets the log level for all subsystem loggers to the passed
// level. It also dynamically creates the subsystem loggers as needed, so it
// can be used to initialize the logging system.
func SetLogLevels(logLevel string) error {
	level, ok := LevelFromString(logLevel)
	if !ok {
		return errors.Errorf("invalid log level %s", logLevel)
	}
	for _, logger := range subsystemLoggers {
		logger.SetLevel(level)
	}
	return nil
}

// SupportedSubsystems returns a sorted slice of the supported subsystems for
// logging purposes.
func SupportedSubsystems() []string {
	subsystems := make([]string, 0, len(subsystemLoggers))
	for subsysID := range subsystemLoggers {
		subsystems = append(subsystems, subsysID)
	}
	sort.Strings(subsystems)
	return subsystems
}

// ParseAndSetLogLevels attempts to parse the specified debug level and set
// the levels accordingly. An appropriate error is returned if anything is
// invalid. It accepts either a single level for all subsystems or a comma
// separated list of <subsystem>=<level> pairs.
func ParseAndSetLogLevels(logLevel string) error {
	if !strings.Contains(logLevel, "=") {
		return SetLogLevels(logLevel)
	}

	for _, logLevelPair := range strings.Split(logLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			return errors.Errorf("the specified debug level contains an invalid subsystem/level pair [%s]", logLevelPair)
		}

		fields := strings.Split(logLevelPair, "=")
		subsysID, levelString := fields[0], fields[1]

		if _, exists := subsystemLoggers[subsysID]; !exists {
			return errors.Errorf("the specified subsystem [%s] is invalid -- supported subsystems %v",
				subsysID, SupportedSubsystems())
		}
		if _, ok := LevelFromString(levelString); !ok {
			return errors.Errorf("the specified debug level [%s] is invalid", levelString)
		}

		SetLogLevel(subsysID, levelString)
	}
	return nil
}
