package constants

// Centralized constants for env keys, routes and common API strings.
const (
	// Environment variable keys
	EnvMudderyConfig = "MUDDERY_CONFIG"
	EnvMudderyDB     = "MUDDERY_DB"
	EnvGinMode       = "GIN_MODE"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// Routes used by the backend router
const (
	RouteAPIPrefix = "/api"

	RouteCharacters = "/characters"
	RouteSkills     = "/skills"

	RouteEncounters      = "/encounters"
	RouteEncounterByID   = "/encounters/:encounterID"
	RouteEncounterAction = "/encounters/:encounterID/action"
	RouteEncounterEscape = "/encounters/:encounterID/escape"
	RouteEncounterLeave  = "/encounters/:encounterID/leave"
	RouteEncounterEnd    = "/encounters/:encounterID/end"
	RouteEncounterEvents = "/encounters/:encounterID/events"

	RouteVersion = "/version"
	RouteHealthz = "/healthz"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest     = "Invalid request"
	ErrInvalidEncounterID = "Invalid encounter ID"
	ErrEncounterNotFound  = "Encounter not found"
	ErrActorNotFound      = "Actor not in this encounter"
	ErrActorHasNoSink     = "Actor has no event channel"
	ErrEncounterFinished  = "Encounter already finished"

	ErrFailedFetchCharacters = "Failed to fetch characters"
	ErrFailedFetchSkills     = "Failed to fetch skills"
	ErrFailedCreateEncounter = "Failed to create encounter"
	ErrFailedSubmitAction    = "Failed to submit action"

	ErrTeamsRequired       = "At least two teams are required"
	ErrUnknownCharacterFmt = "unknown character template: %s"
)

// Logging field names
const (
	LogFieldEncounterID = "encounter_id"
	LogFieldActorID     = "actor_id"
	LogFieldSkillKey    = "skill_key"
	LogFieldTeam        = "team"
	LogFieldAddr        = "addr"
)
