package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
}

// WebLogger implements core.Logger by writing to the server log and, when a
// channel is given, collecting the messages for the client
type WebLogger struct {
	renderID    string
	logger      zerolog.Logger
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, logger zerolog.Logger, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		renderID:    renderID,
		logger:      logger,
		consoleChan: consoleChan,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	wl.logger.Info().Str("render", wl.renderID).Msg(message)

	if wl.consoleChan != nil {
		select {
		case wl.consoleChan <- ConsoleMessage{Message: message, Timestamp: time.Now(), Level: "info"}:
		default:
			// Channel full, skip (don't block)
		}
	}
}
