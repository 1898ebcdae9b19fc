package env

import "time"

// Variables consumed by the appwash shell and API client.
var (
	APIURL = RegisterStringVar(
		"APPWASH_API_URL",
		"api_url",
		"https://www.involtum-services.com/api-rest",
		"Base URL of the AppWash REST API.",
		ComponentClient,
	)

	LocationID = RegisterStringVar(
		"APPWASH_LOCATION_ID",
		"location_id",
		"9944",
		"Location whose machines `list` shows.",
		ComponentClient,
	)

	ServiceType = RegisterStringVar(
		"APPWASH_SERVICE_TYPE",
		"service_type",
		"WASHING_MACHINE",
		"Service type `list` filters on (e.g. WASHING_MACHINE, DRYER).",
		ComponentClient,
	)

	Language = RegisterStringVar(
		"APPWASH_LANGUAGE",
		"language",
		"en",
		"Language sent to the API and used for number formatting.",
		ComponentClient,
	)

	Timeout = RegisterDurationVar(
		"APPWASH_TIMEOUT",
		"timeout",
		30*time.Second,
		"Timeout for a single API request.",
		ComponentClient,
	)

	Verbose = RegisterBoolVar(
		"APPWASH_VERBOSE",
		"verbose",
		false,
		"Print remote error descriptions next to error codes.",
		ComponentShell,
	)

	ConfigDir = RegisterStringVar(
		"APPWASH_CONFIG_DIR",
		"",
		"",
		"Directory holding config.yaml. Defaults to ~/.appwash.",
		ComponentShell,
	)

	LogLevel = RegisterStringVar(
		"APPWASH_LOG_LEVEL",
		"",
		"warn",
		"Log level written to stderr (debug, info, warn, error).",
		ComponentLogging,
	)

	Environment = RegisterStringVar(
		"APPWASH_ENV",
		"",
		"",
		"Set to `development` for human readable, colored logs.",
		ComponentLogging,
	)
)
