package errs

import "fmt"

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type AlreadyExistsError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// AuthError collapses every sign-in failure into one message.
type AuthError struct {
	ErrorMessage
}

// ReauthError is returned when a destructive action could not be confirmed.
// WrongPassword distinguishes a bad password from every other failure.
type ReauthError struct {
	ErrorMessage
	WrongPassword bool
}

// ProviderError carries the identity provider's own message verbatim.
type ProviderError struct {
	ErrorMessage
	Err error
}

func (e *ProviderError) Unwrap() error { return e.Err }

type DatabaseError struct {
	ErrorMessage
	Operation string
	Err       error
}

func (e *DatabaseError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *DatabaseError) Unwrap() error { return e.Err }

type ExternalServiceError struct {
	ErrorMessage
	Service   string
	Transient bool
	Err       error
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

const (
	InvalidCredentialsMessage = "Invalid email or password"
	WrongPasswordMessage      = "Incorrect password"
	DeleteAccountMessage      = "Failed to delete account. Please try again."
	MissingPasswordMessage    = "Please enter your password"
)

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewAlreadyExistsError(message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewInvalidCredentialsError() *AuthError {
	return &AuthError{
		ErrorMessage: ErrorMessage{Message: InvalidCredentialsMessage},
	}
}

func NewWrongPasswordError() *ReauthError {
	return &ReauthError{
		ErrorMessage:  ErrorMessage{Message: WrongPasswordMessage},
		WrongPassword: true,
	}
}

func NewDeleteAccountError() *ReauthError {
	return &ReauthError{
		ErrorMessage: ErrorMessage{Message: DeleteAccountMessage},
	}
}

func NewProviderError(err error) *ProviderError {
	return &ProviderError{
		ErrorMessage: ErrorMessage{Message: err.Error()},
		Err:          err,
	}
}

func NewDatabaseError(operation, message string, err error) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: message},
		Operation:    operation,
		Err:          err,
	}
}

func NewExternalServiceError(service, message string, transient bool, err error) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: message},
		Service:      service,
		Transient:    transient,
		Err:          err,
	}
}
