package utils

import (
	"io"

	"github.com/MrSnakeDoc/pitch/internal/logger"
)

// CloseLogged closes c and logs the outcome under the name what.
func CloseLogged(c io.Closer, log logger.Logger, what string) {
	if err := c.Close(); err != nil {
		log.Warn("failed to close", logger.String("what", what), logger.Error(err))
		return
	}
	log.Debug("closed", logger.String("what", what))
}
