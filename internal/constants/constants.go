package constants

// Application constants
const (
	ApplicationName  = "filebrowser"
	ApplicationTitle = "Asset Picker"
	ApplicationID    = "io.github.nekomimist.filebrowser"
	EnvPrefix        = "FILEBROWSER"
)

// UI constants
const (
	// Window dimensions
	DefaultWindowWidth  = 640
	DefaultWindowHeight = 240

	// Resources dialog dimensions
	ResourcesDialogWidth  = 520
	ResourcesDialogHeight = 320

	// SMB login dialog dimensions
	LoginDialogWidth  = 420
	LoginDialogHeight = 200
)

// Chooser titles shared by the built-in descriptors
const (
	ResourceDirTitle      = "Select Resource Root"
	ImageFileTitle        = "Select Image Asset"
	ImageFilesFolderTitle = "Select Image Asset(s)"
)

// Path constants
const (
	PathDelimiter = '/'
	SMBScheme     = "smb://"
	SMBPort       = "445"
)

// Configuration constants
const (
	ConfigFileName         = "config.yml"
	DefaultShowHiddenFiles = false
	DefaultMaxRecent       = 20
)

// Default glob patterns treated as image files (doublestar syntax, matched
// against the lower-cased base name).
var DefaultImagePatterns = []string{
	"*.{png,jpg,jpeg,gif,bmp,webp,svg,ico}",
	"*.9.png",
}

// Default module-relative globs for candidate resource folders.
var DefaultResourceGlobs = []string{
	"res",
	"src/*/res",
}

// Preference keys (prefixed with the project name by settings.Store)
const (
	PrefLastImageFolder = "lastImageFolder"
	PrefResourceRoot    = "resourceRoot"
)
