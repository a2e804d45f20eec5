package urls

// Remote endpoints used by the API client. Both can be overridden through the
// config file, environment variables or flags.

// DefaultBaseURL is the interception service backend.
const DefaultBaseURL = "https://7267948b-743f-4a51-bb4e-d5334845e279-00-3m2byn9ja8vm3.pike.replit.dev/"

// DefaultLimitURL is the host serving the delete-limit endpoint. It has no
// published default, so DeleteLimit refuses to run until one is configured.
const DefaultLimitURL = ""

// DefaultExporterListen is the listen address of `tmcatcher exporter`.
const DefaultExporterListen = ":9464"
