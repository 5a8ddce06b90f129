package constant

import "time"

const (
	REQUEST_SUCCESSFUL   = "Request successful"
	REQUEST_UNSUCCESSFUL = "Request unsuccessful"

	QUERY_TIMEOUT_DURATION = 5 * time.Second

	DefaultPageSize = 10
	MaxPageSize     = 100
)

const (
	JWT_TYPE_ACCESS  = "access"
	JWT_TYPE_REFRESH = "refresh"

	OAUTH_PROVIDER_GOOGLE = "google"
)

// Directories inside the bucket
const (
	CERTIFICATE_DIRECTORY = "certificates"
	TEMPLATE_DIRECTORY    = "templates"
)

const MAX_TEMPLATE_IMAGE_SIZE = 5 << 20
const MAX_IMPORT_FILE_SIZE = 20 << 20
