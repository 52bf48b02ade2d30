package deps

import (
	"time"

	"github.com/MrSnakeDoc/marks/internal/catalog"
	"github.com/MrSnakeDoc/marks/internal/logger"
)

// Deps carries the shared dependencies handed to route registrars.
// All state lives behind Catalog; handlers hold nothing of their own.
type Deps struct {
	Logger    logger.Logger
	Catalog   *catalog.Catalog
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now
}
