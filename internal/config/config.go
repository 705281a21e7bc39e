package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-LifeWeeks/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Life Weeks"
	AppID             = "com.github.tartampluch.go-lifeweeks"
	KeyringService    = "com.github.tartampluch.go-lifeweeks"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	ShareBaseURL      = "https://mmmotivator.com/"
	ExportFileName    = "life-in-weeks.json"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagShare        = "share"
	FlagDecode       = "decode"
	FlagICS          = "ics"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescShare    = "Print the share link for a configuration file (.json/.yaml) and exit"
	FlagDescDecode   = "Decode a share token or link and print the configuration JSON"
	FlagDescICS      = "Print the iCalendar feed for a configuration file and exit"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Preferences
// -----------------------------------------------------------------------------

const (
	// PrefLifeConfig holds the stored configuration envelope as JSON.
	PrefLifeConfig = "life-in-weeks-config"

	PrefServerPort = "server_port"
	PrefInterval   = "refresh_interval_min"
	PrefSourceMode = "source_mode"
	PrefCardDAVURL = "carddav_url"
	PrefUsername   = "username"
	PrefLocalPath  = "local_path"
	PrefLastRun    = "last_run_version"
)

// -----------------------------------------------------------------------------
// Life Calendar Model
// -----------------------------------------------------------------------------

const (
	// ConfigVersion is the envelope version written by every serializer.
	ConfigVersion = 1

	// WeeksPerRow is the fixed number of cells in one grid row.
	WeeksPerRow = 52

	// DaysPerYear is the mean Gregorian year used by the grid arithmetic.
	DaysPerYear = 365.25
	DaysPerWeek = 7

	// MaxTotalYears bounds the grid height accepted from external data.
	MaxTotalYears = 200

	DefaultTotalYears = 90
	TodayMarkerTitle  = "Today"
	DateLayout        = "2006-01-02"
)

// -----------------------------------------------------------------------------
// Sharing
// -----------------------------------------------------------------------------

const (
	// MaxDecodedSize caps the inflated size of a share token payload.
	MaxDecodedSize = 1 << 20 // 1MB

	ShareParam     = "config"
	ShareSeparator = "="
)

// -----------------------------------------------------------------------------
// UI Constants
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 900
	MainWindowHeight    = 900
	SettingsWindowWidth = 520

	CellSize        = 10
	CellGap         = 1
	YearTickEvery   = 5
	WeekTickEvery   = 5
	LabelTextSize   = 9
	TickTextSize    = 7
	TitleText       = "Memento mori"
	SubtitleText    = "(efficient life planning motivator)"
	LegendUnassign  = "Unassigned"
	LayoutColumns   = 2
	LegendColumns   = 4
	ShareDialogWide = 480
	MarkerColWidth  = 140
	YearColWidth    = 26
	LabelColWidth   = 160
	HeaderHeight    = 14
	TitleHeight     = 24
	TitleTextSize   = 16
	MarkerBorder    = 2
	StarGlyph       = "★"

	ContactsWinWidth  = 420
	ContactsWinHeight = 480
	ColIDName         = 0
	ColIDDate         = 1
	ColWidthName      = 260
	ColWidthDate      = 120
	TablePlaceholder  = "Placeholder Text"
	SortIconAsc       = " ▲"
	SortIconDesc      = " ▼"

	// Window titles and labels
	TitleMain         = "Life in Weeks"
	TitleSettings     = "Settings"
	TitleShare        = "Share link"
	TitleOpenLink     = "Open shared link"
	TitleImportError  = "Import failed"
	TitleResetConfirm = "Reset configuration"
	TitleContacts     = "Contact birthdays"
	TitleLife         = "Life"
	TitleGeneral      = "General"

	LblBirthdate   = "Birthdate"
	LblTotalYears  = "Years"
	LblShowToday   = "Show today"
	LblPort        = "Server port"
	LblRefresh     = "Refresh interval"
	LblMinutes     = "minutes"
	LblSource      = "Contacts source"
	LblURL         = "URL"
	LblUser        = "Username"
	LblPass        = "Password"
	LblPath        = "File"
	LblLink        = "Link or token"
	ColName        = "Name"
	ColBirthday    = "Birthday"
	TrayShow       = "Show calendar"
	BtnSave        = "Save"
	BtnCancel      = "Cancel"
	BtnBrowse      = "Browse..."
	BtnAddMarkers  = "Add to calendar"
	ModeLabelWeb   = "CardDAV / WebDAV"
	ModeLabelLocal = "Local file"

	ActionImport   = "Import"
	ActionExport   = "Export"
	ActionShare    = "Share"
	ActionOpenLink = "Open link"
	ActionContacts = "Import contacts"
	ActionReset    = "Reset"
	ActionSettings = "Settings"

	MsgResetConfirm = "Replace the current configuration with the sample one?"
	MsgCopied       = "The link was copied to the clipboard."
	MsgLinkInvalid  = "The link does not contain a valid configuration."
	MsgContactsNone = "No contact with a full birth date was found."
	MsgMarkersAdded = "%d date markers added."
	MsgFooter       = "Go Life Weeks %s"

	PlaceholderURL   = "https://..."
	PlaceholderDate  = "YYYY-MM-DD"
	PlaceholderToken = "https://...#config=..."
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeWeb     = "web"
	SourceModeLocal   = "local"
	DefaultPort       = "18081"
	DefaultRefreshMin = 60
	DisabledInterval  = 0
	DefaultLeapYear   = 2000 // Leap year fallback for dates like --02-29
	UIDNamespace      = "go-lifeweeks-v1"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Life Weeks//Engine//EN"
	ICalCalName = "Life in Weeks"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTEnd      = "DTEND"
	PropDTStamp    = "DTSTAMP"
	PropCategories = "CATEGORIES"
	PropRefresh    = "REFRESH-INTERVAL"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	EventKindPeriod = "period"
	EventKindMarker = "marker"
	EventKindToday  = "today"

	DefaultICalRefresh = 24 * time.Hour

	ICalDomain = "go-lifeweeks.local"

	// FormatUID expects the uuid and the domain.
	FormatUID = "%s@%s"

	// FormatUIDInput expects kind, index, title and date.
	FormatUIDInput = "%s|%d|%s|%s"

	// FormatContactInput expects name and RFC3339 birth date.
	FormatContactInput = "contact|%s|%s"

	// StubVCalendar is served when the configuration yields no event.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid +
		"\r\nX-WR-CALNAME:" + ICalCalName + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// Limits
	MinPort = 1
	MaxPort = 65535

	// File Extensions
	ExtJSON  = ".json"
	ExtYAML  = ".yaml"
	ExtYML   = ".yml"
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"

	JSONIndent = "  "
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	RouteRootExact      = "/{$}"
	RouteCalendar       = "/calendar.ics"
	RouteConfig         = "/config.json"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages
// -----------------------------------------------------------------------------

const (
	// ErrInvalidConfig is surfaced to users when an imported file has the wrong shape.
	ErrInvalidConfig = "Invalid configuration file"

	ErrConfigParse      = "failed to parse configuration"
	ErrConfigEncode     = "failed to encode configuration"
	ErrYAMLParse        = "failed to parse YAML configuration"
	ErrBirthdate        = "invalid birthdate"
	ErrTokenCompress    = "failed to compress share token"
	ErrShareURL         = "invalid share base URL"
	ErrLocalPathEmpty   = "configuration error: local path is empty"
	ErrWebURLEmpty      = "configuration error: web URL is empty"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrModeUnsupport    = "configuration error: unsupported source mode"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrPortNumber       = "server port must be a number"
	ErrPortRange        = "server port must be between 1 and 65535"
	ErrTotalYears       = "years must be a number between 0 and 200"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrDateParse        = "unable to parse date"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrReadFile         = "failed to read file"
	ErrWriteFile        = "failed to write file"
	ErrUnknownExt       = "unsupported file extension"
	ErrPrefsUnavailable = "preferences store is not available"
	ErrRequestCreate    = "failed to create request"
	ErrNetwork          = "network error during fetch"
	ErrHTTPStatus       = "server returned unexpected status"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgNotFound     = "Not Found"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackName = "Unknown"

	TitleStartupError = "Startup Error"

	MsgPortBusy       = "Port %s is busy or unavailable."
	MsgFeedRequested  = "Feed regeneration requested"
	MsgFeedFailed     = "Feed regeneration failed"
	MsgWorkerStart    = "Background worker started"
	MsgWorkerStop     = "Worker stopping due to context cancellation"
	MsgUpdateInterval = "Updating refresh interval"
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgSkippedEvent   = "Skipping entry with invalid date"
	MsgGenSuccess     = "Calendar generation successful"
	MsgContactsLoaded = "Contact birthdays imported"
	MsgAppStarting    = "Starting application"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Feed cache updated"
	MsgConfigLoaded   = "Configuration loaded"
	MsgConfigDefault  = "No stored configuration, using sample"
	MsgConfigSaved    = "Configuration saved"
	MsgConfigInvalid  = "Stored configuration rejected"
	MsgConfigImported = "Configuration imported"
	MsgConfigExported = "Configuration exported"
	MsgLinkOpened     = "Configuration loaded from share link"
	MsgLinkRejected   = "Share link rejected"
	MsgSettingsOpen   = "Opening settings window"
	MsgSettingsFocus  = "Settings window already open, requesting focus"
	MsgSettingsSave   = "Saving preferences"
	MsgRefreshOff     = "Refresh interval left to the default"
	MsgKeyringFail    = "Failed to save credentials to keyring"
	MsgContactsOpen   = "Opening contacts window"
	MsgContactsSorted = "Contacts sorted"
	MsgTrayMissing    = "System tray not supported on this platform"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgFetchStart     = "Initiating vCard download"
	MsgFetchStatus    = "Server returned error status"
	MsgFetchBody      = "vCards downloading"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyInterval  = "interval"
	LogKeyOld       = "old"
	LogKeyNew       = "new"
	LogKeyUser      = "user"
	LogKeyRoute     = "route"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyKind      = "kind"
	LogKeyIndex     = "index"
	LogKeyPeriods   = "periods"
	LogKeyMarkers   = "markers"
	LogKeyEvents    = "events"
	LogKeyCards     = "cards"
	LogKeyCount     = "count"
	LogKeyYears     = "total_years"
	LogKeyDuration  = "duration_ms"
	LogKeyReason    = "reason"
	LogKeyLength    = "content_length"
	LogKeySkipped   = "skipped"
	LogKeySortCol   = "sort_col"
	LogKeySortAsc   = "sort_asc"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI      = "ui"
	CompUISet   = "ui_settings"
	CompEngine  = "engine"
	CompServer  = "server"
	CompFetcher = "fetcher"
	CompWorker  = "worker"
	CompStorage = "storage"
	CompSharing = "sharing"
	CompMain    = "main"
)
