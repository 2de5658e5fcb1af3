package log

import (
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

var (
	WarningLog *log.Logger
	InfoLog    *log.Logger
	ErrorLog   *log.Logger
	DebugLog   *log.Logger
)

var debugEnabled = os.Getenv("DEBUG") == "true" || os.Getenv("DEBUG") == "1"

var logFileName = filepath.Join(os.TempDir(), "growlens.log")

var globalLogFile *os.File

// Initialize should be called once at the beginning of the program to set up logging.
// defer Close() after calling this function. When headless is false the TUI owns the
// terminal, so everything goes to the log file in the os temp directory.
func Initialize(headless bool) {
	prefix := "%s"
	if headless {
		prefix = "[CLI] %s"
	}

	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		setLoggers(os.Stderr, prefix)
		fmt.Fprintf(os.Stderr, "Warning: using stderr for logging: %v\n", err)
		return
	}

	// Set log format to include timestamp and file/line number
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	setLoggers(f, prefix)
	globalLogFile = f
}

func setLoggers(w io.Writer, prefix string) {
	flags := log.Ldate | log.Ltime | log.Lshortfile
	InfoLog = log.New(w, fmt.Sprintf(prefix, "INFO:"), flags)
	WarningLog = log.New(w, fmt.Sprintf(prefix, "WARNING:"), flags)
	ErrorLog = log.New(w, fmt.Sprintf(prefix, "ERROR:"), flags)
	if debugEnabled {
		DebugLog = log.New(w, fmt.Sprintf(prefix, "DEBUG:"), flags)
	} else {
		DebugLog = log.New(io.Discard, "", 0)
	}
}

// Close flushes the log file. It is safe to call when Initialize fell back to stderr.
func Close() {
	if globalLogFile == nil {
		return
	}
	_ = globalLogFile.Close()
	globalLogFile = nil
}

// FileName returns the path of the log file.
func FileName() string {
	return logFileName
}

// IsDebugEnabled returns true if debug logging is enabled.
func IsDebugEnabled() bool {
	return debugEnabled
}

// SanitizeURL removes credentials from a URL string for safe logging.
func SanitizeURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "[INVALID_URL]"
	}

	if u.User != nil {
		_, hasPassword := u.User.Password()
		if hasPassword {
			u.User = url.UserPassword("***", "***")
		} else {
			u.User = url.User("***")
		}
	}

	return u.String()
}

// RedactToken keeps the first four characters of a bearer token and masks the rest.
func RedactToken(token string) string {
	if token == "" {
		return "<none>"
	}
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + "***"
}
