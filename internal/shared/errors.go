package shared

type Error string

// Implement the error interface
func (e Error) Error() string { return string(e) }

//------------
// Definitions
//------------

// cli errors
const (
	ErrorCreateFile = Error("could not create the file")
	ErrorEncodeFile = Error("could not encode to file")
	ErrorWriteFile  = Error("could not write the file")
	ErrConfigExists = Error("config file already exists")
)

// config errors
const (
	ErrInvalidFormat   = Error("invalid output format")
	ErrInvalidVariable = Error("invalid variable name")
	ErrInvalidLogLevel = Error("invalid log level")
	ErrInvalidBool     = Error("invalid boolean value")
)

// secret errors
const (
	ErrEntropyUnavailable = Error("secure random source unavailable")
	ErrInvalidSecret      = Error("invalid secret")
	ErrSecretNotSet       = Error("secret not set")
)
