package services

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// SecurityLogger appends security events to a log file.
type SecurityLogger struct {
	mu sync.Mutex
	w  io.WriteCloser
}

// NewSecurityLogger opens path for appending. It returns a logger that
// discards events when the file cannot be opened.
func NewSecurityLogger(path string) *SecurityLogger {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("Security log could not be opened: %v", err)
		return &SecurityLogger{}
	}
	return &SecurityLogger{w: file}
}

// NewSecurityLoggerTo writes events to w.
func NewSecurityLoggerTo(w io.WriteCloser) *SecurityLogger {
	return &SecurityLogger{w: w}
}

// LogSecurityEvent writes one event line.
func (sl *SecurityLogger) LogSecurityEvent(eventType, details, ipAddress string) {
	if sl == nil || sl.w == nil {
		return
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	entry := fmt.Sprintf("[%s] %s - %s - IP: %s\n", timestamp, eventType, details, ipAddress)

	sl.mu.Lock()
	defer sl.mu.Unlock()
	if _, err := io.WriteString(sl.w, entry); err != nil {
		log.Printf("Security log write failed: %v", err)
	}
}

// Close closes the log file.
func (sl *SecurityLogger) Close() {
	if sl != nil && sl.w != nil {
		sl.w.Close()
	}
}

// SpamDetector flags contact messages that look like spam.
type SpamDetector struct {
	spamWords []string
}

func NewSpamDetector() *SpamDetector {
	return &SpamDetector{
		spamWords: []string{
			"bitcoin", "btc", "crypto", "wallet", "forex",
			"earn money", "make money", "get rich", "work from home",
			"free money", "lottery", "prize", "winner", "claim your",
			"casino", "betting", "loan offer", "seo services",
			"backlinks", "rank your website", "viagra",
			"western union", "moneygram", "inheritance",
			"bank account", "credit card", "verify your account",
		},
	}
}

// IsSpam reports whether message contains a known spam phrase or too many links.
func (sd *SpamDetector) IsSpam(message string) bool {
	lower := strings.ToLower(message)
	for _, word := range sd.spamWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return strings.Count(lower, "http://")+strings.Count(lower, "https://") > 2
}
