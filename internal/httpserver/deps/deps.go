package deps

import (
	"time"

	"github.com/MrSnakeDoc/pitch/internal/auth"
	"github.com/MrSnakeDoc/pitch/internal/content"
	"github.com/MrSnakeDoc/pitch/internal/logger"
	"github.com/MrSnakeDoc/pitch/internal/registration"
	"github.com/MrSnakeDoc/pitch/internal/store"
)

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	TimeNow      func() time.Time // for testing, defaults to time.Now
	AllowedHosts []string         // Host headers allowed to access the server
	AllowedCIDRS []string         // IPs allowed to access ops endpoints (healthz, readyz, infra, metrics)
	AdminCIDRS   []string         // IPs allowed to reach the admin API (empty = any)
	CORSOrigins  []string         // browser origins allowed to call the API
	TrustProxy   bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)

	Store         store.DocumentStore // nil when storage is not configured
	StoreDriver   string              // configured driver name
	StoreErr      error               // why Store is nil
	Site          *content.Site
	Auth          *auth.Service
	Registrations *registration.Service
	ReloadTrigger chan struct{} // Channel to trigger a manual content reload
	SessionTTL    time.Duration // lifetime of the session cookie

	RegistrationBurst     int
	RegistrationPerMinute int
	AuthRequestsPerMinute int
}
