package commands

// CLI-specific constants
const (
	// DefaultEditorCommand is used when $EDITOR is unset.
	DefaultEditorCommand = "vi"
	envKeyEditor         = "EDITOR"
)

// Annotation keys read by the root command.
const (
	// AnnotationSkipContainer marks commands that run without loading config.
	AnnotationSkipContainer = "wai/skip-container"
	// AnnotationLogToFile marks full-screen commands whose logs go to wai.log.
	AnnotationLogToFile = "wai/log-to-file"
)

// Error messages
const (
	ErrConfigLoaderUnavailable  = "config loader unavailable"
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrAssistantUnavailable     = "assistant unavailable"
)

// Success messages
const (
	MsgConfigurationValid       = "Configuration valid"
	MsgNoDifferencesFromDefault = "No differences from default configuration."
)
