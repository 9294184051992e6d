package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// Using a slice (not a map) because errors.Is() requires proper error chain traversal.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	{
		err: ErrNotGitRepo,
		info: ErrorInfo{
			Message: "The current directory is not a git repository.",
			Action:  "Run 'git init' or 'git remote add origin <url>', or pass --dir.",
		},
	},
	{
		err: ErrSpawnFailed,
		info: ErrorInfo{
			Message: "Could not run git.",
			Action:  "Make sure git is installed and on your PATH, or set git.binary.",
		},
	},
	{
		err: ErrCommandTimeout,
		info: ErrorInfo{
			Message: "A git command took too long and was stopped.",
			Action:  "Check your network connection or raise sync.command_timeout.",
		},
	},
	{
		err: ErrRemoteAhead,
		info: ErrorInfo{
			Message: "The remote has new commits.",
			Action:  "Run 'gitsync pull' first to avoid conflicts.",
		},
	},
	{
		err: ErrInvalidBranchName,
		info: ErrorInfo{
			Message: "The branch name is not valid.",
			Action:  "Use letters, digits, '-', '_', '.' and '/' only.",
		},
	},
	{
		err: ErrInvalidRemoteURL,
		info: ErrorInfo{
			Message: "The remote address is not valid.",
			Action:  "Use a URL such as https://github.com/user/repo.git or git@github.com:user/repo.git.",
		},
	},
	{
		err: ErrInvalidLocation,
		info: ErrorInfo{
			Message: "Unknown sync location.",
			Action:  "Pick one of sync.locations, or add it to your config.",
		},
	},
	{
		err: ErrLockHeld,
		info: ErrorInfo{
			Message: "Another gitsync process is saving state.",
			Action:  "Wait for it to finish and try again.",
		},
	},
	{
		err: ErrStateCorrupt,
		info: ErrorInfo{
			Message: "Saved session state could not be read.",
			Action:  "Delete the file under ~/.gitsync/state and retry.",
		},
	},
	{
		err: ErrConfigNil,
		info: ErrorInfo{
			Message: "Configuration is not loaded.",
			Action:  "Ensure config.yaml exists and is valid YAML.",
		},
	},
	{
		err: ErrConfigInvalid,
		info: ErrorInfo{
			Message: "Configuration is invalid.",
			Action:  "Run 'gitsync config show' and fix the reported value.",
		},
	},
	{
		err: ErrConfigExists,
		info: ErrorInfo{
			Message: "A config file already exists.",
			Action:  "Pass --force to overwrite it.",
		},
	},
	{
		err: ErrInteractiveRequired,
		info: ErrorInfo{
			Message: "This command needs an interactive terminal.",
			Action:  "Pass the value as an argument instead.",
		},
	},
	{
		err: ErrPromptCanceled,
		info: ErrorInfo{
			Message: "Canceled.",
		},
	},
	{
		err: ErrGitOperation,
		info: ErrorInfo{
			Message: "A git operation failed.",
			Action:  "Run 'gitsync log' to see the captured output.",
		},
	},
}

// getErrorInfo looks up the ErrorInfo for a given error.
// Returns an ErrorInfo with the original error message if not found.
func getErrorInfo(err error) ErrorInfo {
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}
	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve or work around the issue.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
